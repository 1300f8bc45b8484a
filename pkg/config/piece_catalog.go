package config

import (
	"fmt"
	"log"

	"github.com/gonewx/lostkingdom/pkg/embedded"
	"github.com/gonewx/lostkingdom/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultPieceCatalogPath 内置卡牌目录的路径
const DefaultPieceCatalogPath = "data/pieces.yaml"

// Offset 形状内某个被占用格子相对锚点（左上角）的偏移
type Offset struct {
	Row int
	Col int
}

// PieceDefinition 单张卡牌的静态定义
// 加载后只读，在网格和战斗中以指针共享
type PieceDefinition struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`     // 显示名称，用于战斗日志
	Category    types.PieceCategory `yaml:"category"` // troop / spell / building
	Shape       [][]int             `yaml:"shape"`    // 占用掩码，1 表示占用
	Color       string              `yaml:"color"`
	Cost        int                 `yaml:"cost"`
	Damage      float64             `yaml:"damage"`
	Health      float64             `yaml:"health"`
	Description string              `yaml:"description"`
}

// Rows 返回形状的行数
func (p *PieceDefinition) Rows() int {
	return len(p.Shape)
}

// Cols 返回形状的列数（形状已校验为矩形）
func (p *PieceDefinition) Cols() int {
	if len(p.Shape) == 0 {
		return 0
	}
	return len(p.Shape[0])
}

// Cells 返回所有被占用格子的偏移，按行优先顺序
func (p *PieceDefinition) Cells() []Offset {
	cells := make([]Offset, 0, p.Rows()*p.Cols())
	for r, row := range p.Shape {
		for c, v := range row {
			if v == 1 {
				cells = append(cells, Offset{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Validate 校验卡牌定义的合法性
// 形状必须非空、为矩形、只含 0/1 且至少有一个 1
func (p *PieceDefinition) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("piece id is required")
	}
	if p.Category == types.CategoryUnknown {
		return fmt.Errorf("piece %s: category is required", p.ID)
	}
	if len(p.Shape) == 0 || len(p.Shape[0]) == 0 {
		return fmt.Errorf("piece %s: shape must not be empty", p.ID)
	}

	width := len(p.Shape[0])
	filled := 0
	for r, row := range p.Shape {
		if len(row) != width {
			return fmt.Errorf("piece %s: shape row %d has %d columns, expected %d (ragged mask)", p.ID, r, len(row), width)
		}
		for c, v := range row {
			switch v {
			case 0:
			case 1:
				filled++
			default:
				return fmt.Errorf("piece %s: shape cell (%d, %d) must be 0 or 1, got %d", p.ID, r, c, v)
			}
		}
	}
	if filled == 0 {
		return fmt.Errorf("piece %s: shape must occupy at least one cell", p.ID)
	}

	if p.Cost < 0 {
		return fmt.Errorf("piece %s: cost cannot be negative, got %d", p.ID, p.Cost)
	}
	if p.Damage < 0 {
		return fmt.Errorf("piece %s: damage cannot be negative, got %v", p.ID, p.Damage)
	}
	if p.Health < 0 {
		return fmt.Errorf("piece %s: health cannot be negative, got %v", p.ID, p.Health)
	}
	return nil
}

// PieceCatalog 卡牌目录
// 加载一次，之后只读
type PieceCatalog struct {
	Pieces []*PieceDefinition `yaml:"pieces"`

	byID map[string]*PieceDefinition
}

// LoadPieceCatalog 从嵌入的 YAML 文件加载卡牌目录
// 参数：
//
//	path - 配置文件路径（必须以 data/ 开头）
//
// 返回：
//
//	*PieceCatalog - 解析并校验后的目录
//	error - 读取、解析或校验失败时返回错误（加载期致命错误）
func LoadPieceCatalog(path string) (*PieceCatalog, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read piece catalog %s: %w", path, err)
	}

	catalog, err := ParsePieceCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid piece catalog %s: %w", path, err)
	}

	log.Printf("[PieceCatalog] Loaded %d pieces from %s", len(catalog.Pieces), path)
	return catalog, nil
}

// ParsePieceCatalog 解析 YAML 格式的卡牌目录并校验
func ParsePieceCatalog(data []byte) (*PieceCatalog, error) {
	var catalog PieceCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse piece catalog YAML: %w", err)
	}

	if err := catalog.index(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// NewPieceCatalog 用给定定义构造目录（主要用于测试和程序内置数据）
func NewPieceCatalog(pieces ...*PieceDefinition) (*PieceCatalog, error) {
	catalog := &PieceCatalog{Pieces: pieces}
	if err := catalog.index(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// index 校验所有定义并建立 ID 索引
func (c *PieceCatalog) index() error {
	if len(c.Pieces) == 0 {
		return fmt.Errorf("at least one piece is required")
	}

	c.byID = make(map[string]*PieceDefinition, len(c.Pieces))
	for i, p := range c.Pieces {
		if p == nil {
			return fmt.Errorf("piece #%d is empty", i)
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := c.byID[p.ID]; dup {
			return fmt.Errorf("duplicate piece id %s", p.ID)
		}
		c.byID[p.ID] = p
	}
	return nil
}

// Get 按 ID 查找卡牌定义
func (c *PieceCatalog) Get(id string) (*PieceDefinition, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// DisplayNames 返回 ID 到显示名称的映射，用于战斗日志
func (c *PieceCatalog) DisplayNames() map[string]string {
	names := make(map[string]string, len(c.Pieces))
	for _, p := range c.Pieces {
		if p.Name != "" {
			names[p.ID] = p.Name
		}
	}
	return names
}
