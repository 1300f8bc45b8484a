package inventory

import (
	"errors"
	"testing"

	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/types"
)

// newTestPiece 创建测试用卡牌
func newTestPiece(id string, cost int, shape ...[]int) *config.PieceDefinition {
	return &config.PieceDefinition{
		ID:       id,
		Name:     id,
		Category: types.CategoryTroop,
		Shape:    shape,
		Cost:     cost,
		Damage:   10,
		Health:   10,
	}
}

// testShapes 覆盖常见形状（含非左上角起始的掩码）
func testShapes() []*config.PieceDefinition {
	return []*config.PieceDefinition{
		newTestPiece("single", 1, []int{1}),
		newTestPiece("square", 5, []int{1, 1}, []int{1, 1}),
		newTestPiece("ell", 3, []int{1, 0}, []int{1, 1}),
		newTestPiece("bar", 5, []int{1, 1}),
		newTestPiece("hook", 2, []int{0, 1}, []int{1, 1}),
		newTestPiece("column", 2, []int{1}, []int{1}, []int{1}),
	}
}

// snapshot 记录网格每个格子当前的占用者
func snapshot(g *ShapeGrid) [GridSize][GridSize]*PlacedPiece {
	return g.cells
}

// TestPlaceScenario 空网格放 2x2，再尝试在 (0,0) 和 (0,2) 放 1x1
func TestPlaceScenario(t *testing.T) {
	g := NewShapeGrid(PlacementAtomic)
	square := newTestPiece("square", 5, []int{1, 1}, []int{1, 1})
	single := newTestPiece("single", 1, []int{1})

	if err := g.Place(square, 0, 0); err != nil {
		t.Fatalf("Place square failed: %v", err)
	}
	for _, pos := range []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		pp := g.PieceAt(pos.Row, pos.Col)
		if pp == nil || pp.Piece.ID != "square" {
			t.Errorf("cell %v should be occupied by square", pos)
		}
	}

	if g.CanPlace(single, 0, 0) {
		t.Error("CanPlace(single, 0, 0) should be false on an occupied cell")
	}
	err := g.Place(single, 0, 0)
	if !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("Expected ErrInvalidPlacement, got %v", err)
	}

	if err := g.Place(single, 0, 2); err != nil {
		t.Errorf("Place single at (0,2) failed: %v", err)
	}
}

// TestCanPlaceImpliesPlaceFootprint 对所有形状和锚点：CanPlace 为真时，
// Place 之后足迹内全部是该卡牌，足迹外的格子不变
func TestCanPlaceImpliesPlaceFootprint(t *testing.T) {
	blocker := newTestPiece("blocker", 1, []int{1})

	for _, piece := range testShapes() {
		for row := -1; row <= GridSize; row++ {
			for col := -1; col <= GridSize; col++ {
				g := NewShapeGrid(PlacementAtomic)
				if err := g.Place(blocker, 2, 3); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				before := snapshot(g)

				if !g.CanPlace(piece, row, col) {
					if err := g.Place(piece, row, col); !errors.Is(err, ErrInvalidPlacement) {
						t.Errorf("%s at (%d,%d): expected ErrInvalidPlacement, got %v", piece.ID, row, col, err)
					}
					if snapshot(g) != before {
						t.Errorf("%s at (%d,%d): failed placement mutated the grid", piece.ID, row, col)
					}
					continue
				}

				if err := g.Place(piece, row, col); err != nil {
					t.Fatalf("%s at (%d,%d): CanPlace true but Place failed: %v", piece.ID, row, col, err)
				}

				footprint := make(map[Position]bool)
				for _, c := range piece.Cells() {
					footprint[Position{Row: row + c.Row, Col: col + c.Col}] = true
				}
				after := snapshot(g)
				for r := 0; r < GridSize; r++ {
					for c := 0; c < GridSize; c++ {
						pos := Position{Row: r, Col: c}
						if footprint[pos] {
							if after[r][c] == nil || after[r][c].Piece.ID != piece.ID {
								t.Errorf("%s at (%d,%d): footprint cell %v not written", piece.ID, row, col, pos)
							}
						} else if after[r][c] != before[r][c] {
							t.Errorf("%s at (%d,%d): cell %v outside footprint changed", piece.ID, row, col, pos)
						}
					}
				}
			}
		}
	}
}

// TestMaskHolesAreNotChecked 掩码中的 0 不占用也不检查
func TestMaskHolesAreNotChecked(t *testing.T) {
	g := NewShapeGrid(PlacementAtomic)
	single := newTestPiece("single", 1, []int{1})
	hook := newTestPiece("hook", 2, []int{0, 1}, []int{1, 1})

	if err := g.Place(single, 0, 0); err != nil {
		t.Fatalf("Place single failed: %v", err)
	}
	// hook 的 (0,0) 是空洞，正好落在 single 上
	if err := g.Place(hook, 0, 0); err != nil {
		t.Fatalf("hook should fit around the single piece: %v", err)
	}
	if g.PieceAt(0, 0).Piece.ID != "single" {
		t.Error("single should keep (0,0)")
	}

	// 空洞可以悬在网格外
	g2 := NewShapeGrid(PlacementAtomic)
	if g2.CanPlace(hook, 5, 5) {
		t.Error("hook at (5,5) extends past the grid")
	}
	ell := newTestPiece("ell", 3, []int{1, 0}, []int{1, 1})
	if !g2.CanPlace(ell, 4, 4) {
		t.Error("ell at (4,4) fits exactly in the corner")
	}
}

// TestRemoveReclaimsSpace 移除后同一形状同一位置可以再次放置
func TestRemoveReclaimsSpace(t *testing.T) {
	for _, piece := range testShapes() {
		t.Run(piece.ID, func(t *testing.T) {
			g := NewShapeGrid(PlacementAtomic)
			pos, ok := g.AutoPlace(piece)
			if !ok {
				t.Fatal("AutoPlace on empty grid failed")
			}
			if g.CanPlace(piece, pos.Row, pos.Col) {
				t.Fatal("occupied anchor should not accept the same piece")
			}

			g.Remove(piece.ID)
			if !g.IsEmpty() {
				t.Error("grid should be empty after removing the only piece")
			}
			if !g.CanPlace(piece, pos.Row, pos.Col) {
				t.Error("space should be fully reclaimed after Remove")
			}
		})
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	g := NewShapeGrid(PlacementAtomic)
	square := newTestPiece("square", 5, []int{1, 1}, []int{1, 1})
	if err := g.Place(square, 3, 3); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	before := snapshot(g)
	g.Remove("missing")
	if snapshot(g) != before {
		t.Error("Remove of an absent id should not change the grid")
	}
}

// TestAutoPlaceRowMajor 自动放置按行优先选择第一个锚点
func TestAutoPlaceRowMajor(t *testing.T) {
	g := NewShapeGrid(PlacementAtomic)
	bar := newTestPiece("bar", 5, []int{1, 1})
	square := newTestPiece("square", 5, []int{1, 1}, []int{1, 1})
	single := newTestPiece("single", 1, []int{1})

	if pos, ok := g.AutoPlace(bar); !ok || pos != (Position{0, 0}) {
		t.Fatalf("bar: expected (0,0), got %v ok=%v", pos, ok)
	}
	if pos, ok := g.AutoPlace(square); !ok || pos != (Position{0, 2}) {
		t.Fatalf("square: expected (0,2), got %v ok=%v", pos, ok)
	}
	if pos, ok := g.AutoPlace(single); !ok || pos != (Position{0, 4}) {
		t.Fatalf("single: expected (0,4), got %v ok=%v", pos, ok)
	}
}

// TestFindAnchorDeterministic 网格不变时重复查找得到同一锚点
func TestFindAnchorDeterministic(t *testing.T) {
	g := NewShapeGrid(PlacementAtomic)
	_ = g.Place(newTestPiece("single", 1, []int{1}), 0, 1)
	_ = g.Place(newTestPiece("column", 2, []int{1}, []int{1}, []int{1}), 0, 3)

	square := newTestPiece("square", 5, []int{1, 1}, []int{1, 1})
	first, ok := g.FindAnchor(square)
	if !ok {
		t.Fatal("FindAnchor should find a spot")
	}
	before := snapshot(g)
	for i := 0; i < 10; i++ {
		pos, ok := g.FindAnchor(square)
		if !ok || pos != first {
			t.Fatalf("call %d: expected %v, got %v", i, first, pos)
		}
	}
	if snapshot(g) != before {
		t.Error("FindAnchor must not mutate the grid")
	}

	// AutoPlace 在相同网格的副本上也选同一锚点
	for i := 0; i < 3; i++ {
		clone := g.Clone()
		pos, ok := clone.AutoPlace(square)
		if !ok || pos != first {
			t.Errorf("AutoPlace on clone: expected %v, got %v", first, pos)
		}
	}
}

func TestAutoPlaceFullGrid(t *testing.T) {
	g := NewShapeGrid(PlacementAtomic)
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			id := string(rune('a'+r)) + string(rune('a'+c))
			if err := g.Place(newTestPiece(id, 1, []int{1}), r, c); err != nil {
				t.Fatalf("fill failed: %v", err)
			}
		}
	}
	if _, ok := g.AutoPlace(newTestPiece("extra", 1, []int{1})); ok {
		t.Error("AutoPlace on a full grid should fail")
	}
}

// TestReplaceAtomic 原子模式下非法的重新放置保持原位
func TestReplaceAtomic(t *testing.T) {
	g := NewShapeGrid(PlacementAtomic)
	square := newTestPiece("square", 5, []int{1, 1}, []int{1, 1})
	single := newTestPiece("single", 1, []int{1})

	_ = g.Place(square, 0, 0)
	_ = g.Place(single, 3, 3)

	// 与自身旧位置重叠的移动是合法的
	if err := g.Place(square, 1, 1); err != nil {
		t.Fatalf("overlapping self move should succeed: %v", err)
	}
	if g.PieceAt(0, 0) != nil {
		t.Error("old footprint cell (0,0) should be cleared")
	}
	if pp := g.PieceAt(2, 2); pp == nil || pp.Anchor != (Position{1, 1}) {
		t.Error("square should now be anchored at (1,1)")
	}

	// 压到 single 上：失败，原位置不变
	before := snapshot(g)
	if err := g.Place(square, 2, 2); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("Expected ErrInvalidPlacement, got %v", err)
	}
	if snapshot(g) != before {
		t.Error("atomic mode must leave the grid untouched on failure")
	}
	if !g.IsPlaced("square") {
		t.Error("square should still be placed")
	}
}

// TestReplaceLegacy 兼容模式下非法的重新放置使卡牌变为未放置
func TestReplaceLegacy(t *testing.T) {
	g := NewShapeGrid(PlacementLegacy)
	square := newTestPiece("square", 5, []int{1, 1}, []int{1, 1})
	single := newTestPiece("single", 1, []int{1})

	_ = g.Place(square, 0, 0)
	_ = g.Place(single, 3, 3)

	if err := g.Place(square, 2, 2); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("Expected ErrInvalidPlacement, got %v", err)
	}
	if g.IsPlaced("square") {
		t.Error("legacy mode leaves the piece unplaced after a failed move")
	}
	if !g.IsPlaced("single") {
		t.Error("other pieces must not be affected")
	}

	// 合法移动仍然有效
	if err := g.Place(square, 0, 0); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := g.Place(square, 0, 4); err != nil {
		t.Fatalf("legacy move failed: %v", err)
	}
	if g.PieceAt(0, 0) != nil || g.PieceAt(1, 5) == nil {
		t.Error("legacy move should clear old footprint and write the new one")
	}
}

// TestPlacementsOrder 实例按锚点行优先排序且不重复
func TestPlacementsOrder(t *testing.T) {
	g := NewShapeGrid(PlacementAtomic)
	hook := newTestPiece("hook", 2, []int{0, 1}, []int{1, 1})
	single := newTestPiece("single", 1, []int{1})
	square := newTestPiece("square", 5, []int{1, 1}, []int{1, 1})

	_ = g.Place(square, 3, 0)
	_ = g.Place(hook, 0, 2) // 锚点 (0,2)，第一个占用格子在 (0,3)
	_ = g.Place(single, 0, 4)

	placements := g.Placements()
	if len(placements) != 3 {
		t.Fatalf("Expected 3 placements, got %d", len(placements))
	}
	order := []string{"hook", "single", "square"}
	for i, id := range order {
		if placements[i].Piece.ID != id {
			t.Errorf("placement %d: expected %s, got %s", i, id, placements[i].Piece.ID)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewShapeGrid(PlacementLegacy)
	square := newTestPiece("square", 5, []int{1, 1}, []int{1, 1})
	_ = g.Place(square, 0, 0)

	clone := g.Clone()
	if clone.Mode != PlacementLegacy {
		t.Error("clone should keep the placement mode")
	}
	if clone.PieceAt(0, 0) != clone.PieceAt(1, 1) {
		t.Error("cells of one instance should share a pointer in the clone")
	}
	clone.Remove("square")
	if !g.IsPlaced("square") {
		t.Error("removing from the clone must not touch the original")
	}

	g.Clear()
	if !g.IsEmpty() {
		t.Error("Clear should empty the grid")
	}
}
