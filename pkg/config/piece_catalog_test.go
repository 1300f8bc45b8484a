package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gonewx/lostkingdom/pkg/embedded"
	"github.com/gonewx/lostkingdom/pkg/types"
)

func TestParsePieceCatalog(t *testing.T) {
	t.Run("加载有效配置", func(t *testing.T) {
		content := `
pieces:
  - id: giant
    name: 巨人
    category: troop
    shape:
      - [1, 1]
      - [1, 1]
    cost: 5
    damage: 50
    health: 200
  - id: knight
    category: troop
    shape:
      - [1, 0]
      - [1, 1]
    cost: 3
    damage: 40
    health: 120
  - id: cannon
    category: building
    shape: [[1]]
    cost: 3
    damage: 40
    health: 150
`
		catalog, err := ParsePieceCatalog([]byte(content))
		if err != nil {
			t.Fatalf("ParsePieceCatalog failed: %v", err)
		}
		if len(catalog.Pieces) != 3 {
			t.Fatalf("Expected 3 pieces, got %d", len(catalog.Pieces))
		}

		giant, ok := catalog.Get("giant")
		if !ok {
			t.Fatal("giant not found")
		}
		if giant.Category != types.CategoryTroop {
			t.Errorf("giant category: expected troop, got %v", giant.Category)
		}
		if giant.Damage != 50 || giant.Health != 200 || giant.Cost != 5 {
			t.Errorf("giant stats mismatch: %+v", giant)
		}

		knight, _ := catalog.Get("knight")
		cells := knight.Cells()
		expected := []Offset{{0, 0}, {1, 0}, {1, 1}}
		if len(cells) != len(expected) {
			t.Fatalf("knight cells: expected %v, got %v", expected, cells)
		}
		for i := range expected {
			if cells[i] != expected[i] {
				t.Errorf("knight cell %d: expected %v, got %v", i, expected[i], cells[i])
			}
		}

		cannon, _ := catalog.Get("cannon")
		if cannon.Category != types.CategoryBuilding {
			t.Errorf("cannon category: expected building, got %v", cannon.Category)
		}

		names := catalog.DisplayNames()
		if names["giant"] != "巨人" {
			t.Errorf("display name of giant: expected 巨人, got %q", names["giant"])
		}
		if _, ok := names["knight"]; ok {
			t.Error("knight has no name and should not appear in DisplayNames")
		}
	})

	invalid := []struct {
		name    string
		content string
		errPart string
	}{
		{"不规则掩码", "pieces:\n  - {id: a, category: troop, shape: [[1, 1], [1]]}\n", "ragged"},
		{"空掩码", "pieces:\n  - {id: a, category: troop, shape: []}\n", "must not be empty"},
		{"全零掩码", "pieces:\n  - {id: a, category: troop, shape: [[0, 0]]}\n", "at least one cell"},
		{"非法掩码值", "pieces:\n  - {id: a, category: troop, shape: [[2]]}\n", "must be 0 or 1"},
		{"未知类别", "pieces:\n  - {id: a, category: hero, shape: [[1]]}\n", "unknown piece category"},
		{"缺少类别", "pieces:\n  - {id: a, shape: [[1]]}\n", "category is required"},
		{"重复 ID", "pieces:\n  - {id: a, category: troop, shape: [[1]]}\n  - {id: a, category: spell, shape: [[1]]}\n", "duplicate"},
		{"负费用", "pieces:\n  - {id: a, category: troop, shape: [[1]], cost: -1}\n", "cost cannot be negative"},
		{"空目录", "pieces: []\n", "at least one piece"},
		{"无效 YAML", "pieces: [", "failed to parse"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePieceCatalog([]byte(tt.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

// TestLoadPieceCatalogFromEmbedded 测试通过 embedded 包加载
func TestLoadPieceCatalogFromEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/pieces.yaml": {Data: []byte("pieces:\n  - {id: skeleton, name: 骷髅兵, category: troop, shape: [[1]], cost: 1, damage: 20, health: 40}\n")},
	})
	defer embedded.Init(nil)

	catalog, err := LoadPieceCatalog(DefaultPieceCatalogPath)
	if err != nil {
		t.Fatalf("LoadPieceCatalog failed: %v", err)
	}
	if _, ok := catalog.Get("skeleton"); !ok {
		t.Error("skeleton should be in the catalog")
	}

	if _, err := LoadPieceCatalog("data/missing.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestBundledPieceCatalog 校验仓库内置的 data/pieces.yaml
func TestBundledPieceCatalog(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", DefaultPieceCatalogPath))
	if err != nil {
		t.Fatalf("Failed to read bundled catalog: %v", err)
	}

	catalog, err := ParsePieceCatalog(data)
	if err != nil {
		t.Fatalf("Bundled catalog is invalid: %v", err)
	}
	if len(catalog.Pieces) != 10 {
		t.Errorf("Expected 10 bundled pieces, got %d", len(catalog.Pieces))
	}

	rage, ok := catalog.Get("rage")
	if !ok {
		t.Fatal("rage not found")
	}
	if rage.Category != types.CategorySpell {
		t.Errorf("rage should be a spell, got %v", rage.Category)
	}
}

func TestNewPieceCatalog(t *testing.T) {
	_, err := NewPieceCatalog(&PieceDefinition{ID: "x", Category: types.CategoryTroop, Shape: [][]int{{1}, {1, 1}}})
	if err == nil {
		t.Error("Expected ragged mask to be rejected")
	}

	catalog, err := NewPieceCatalog(&PieceDefinition{ID: "x", Category: types.CategoryTroop, Shape: [][]int{{1, 1, 1}}})
	if err != nil {
		t.Fatalf("NewPieceCatalog failed: %v", err)
	}
	x, _ := catalog.Get("x")
	if x.Rows() != 1 || x.Cols() != 3 {
		t.Errorf("Expected 1x3 shape, got %dx%d", x.Rows(), x.Cols())
	}
}
