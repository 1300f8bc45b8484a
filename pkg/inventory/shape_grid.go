// Package inventory 实现背包整理玩法：形状网格放置与阵容管理
package inventory

import (
	"fmt"
	"sort"

	"github.com/gonewx/lostkingdom/pkg/config"
)

// GridSize 网格边长（6x6）
const GridSize = 6

// PlacementMode 重新放置已在网格上的卡牌时的行为
type PlacementMode int

const (
	// PlacementAtomic 先完整校验新位置（忽略自身旧占用），失败时保持原位
	PlacementAtomic PlacementMode = iota
	// PlacementLegacy 先清除旧占用再尝试新位置，失败时卡牌变为未放置
	PlacementLegacy
)

// Position 网格坐标，Row 从上到下，Col 从左到右
type Position struct {
	Row int
	Col int
}

// PlacedPiece 放置在网格上的卡牌实例
// 网格中该实例覆盖的每个格子都指向同一个 *PlacedPiece
type PlacedPiece struct {
	Piece  *config.PieceDefinition
	Anchor Position // 形状左上角所在格子
}

// Footprint 返回该实例实际占用的格子
func (pp *PlacedPiece) Footprint() []Position {
	cells := pp.Piece.Cells()
	out := make([]Position, len(cells))
	for i, c := range cells {
		out[i] = Position{Row: pp.Anchor.Row + c.Row, Col: pp.Anchor.Col + c.Col}
	}
	return out
}

// ShapeGrid 固定大小的放置网格
//
// 每个格子存放占用它的 *PlacedPiece（nil 表示空格子）。
// 网格本身就是放置记录，不另外维护实例列表。
// 同一目录 ID 在网格上最多只有一个实例。
type ShapeGrid struct {
	Mode  PlacementMode
	cells [GridSize][GridSize]*PlacedPiece
}

// NewShapeGrid 创建空网格
func NewShapeGrid(mode PlacementMode) *ShapeGrid {
	return &ShapeGrid{Mode: mode}
}

// inBounds 检查坐标是否在网格内
func inBounds(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// CanPlace 检查卡牌能否以 (row, col) 为锚点放置
// 只检查形状中被占用的格子：必须在网格内且为空
func (g *ShapeGrid) CanPlace(piece *config.PieceDefinition, row, col int) bool {
	return g.canPlaceIgnoring(piece, row, col, "")
}

// canPlaceIgnoring 与 CanPlace 相同，但把属于 ignoreID 的格子视为空
func (g *ShapeGrid) canPlaceIgnoring(piece *config.PieceDefinition, row, col int, ignoreID string) bool {
	if piece == nil {
		return false
	}
	for _, c := range piece.Cells() {
		r, cc := row+c.Row, col+c.Col
		if !inBounds(r, cc) {
			return false
		}
		if occupant := g.cells[r][cc]; occupant != nil {
			if ignoreID == "" || occupant.Piece.ID != ignoreID {
				return false
			}
		}
	}
	return true
}

// Place 以 (row, col) 为锚点放置卡牌
//
// 如果该卡牌已经在网格上，按 Mode 处理重新放置：
//   - PlacementAtomic: 新位置不合法时返回错误，原位置不变
//   - PlacementLegacy: 先移除旧占用，新位置不合法时卡牌保持未放置
//
// 返回：
//   - error: 新位置越界或被占用时返回包装了 ErrInvalidPlacement 的错误
func (g *ShapeGrid) Place(piece *config.PieceDefinition, row, col int) error {
	if piece == nil {
		return fmt.Errorf("nil piece: %w", ErrInvalidPlacement)
	}

	placed := g.IsPlaced(piece.ID)
	if placed && g.Mode == PlacementLegacy {
		g.Remove(piece.ID)
		placed = false
	}

	if !g.canPlaceIgnoring(piece, row, col, piece.ID) {
		return fmt.Errorf("piece %s at (%d, %d): %w", piece.ID, row, col, ErrInvalidPlacement)
	}

	if placed {
		g.Remove(piece.ID)
	}
	pp := &PlacedPiece{Piece: piece, Anchor: Position{Row: row, Col: col}}
	for _, pos := range pp.Footprint() {
		g.cells[pos.Row][pos.Col] = pp
	}
	return nil
}

// Remove 清除网格上所有属于 pieceID 的格子
// ID 不存在时不做任何事
func (g *ShapeGrid) Remove(pieceID string) {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if occupant := g.cells[r][c]; occupant != nil && occupant.Piece.ID == pieceID {
				g.cells[r][c] = nil
			}
		}
	}
}

// FindAnchor 按行优先顺序查找第一个可放置的锚点，不修改网格
func (g *ShapeGrid) FindAnchor(piece *config.PieceDefinition) (Position, bool) {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g.CanPlace(piece, r, c) {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// AutoPlace 把卡牌放到第一个可用的锚点（行优先）
// 没有可用位置时返回 false，网格不变
func (g *ShapeGrid) AutoPlace(piece *config.PieceDefinition) (Position, bool) {
	pos, ok := g.FindAnchor(piece)
	if !ok {
		return Position{}, false
	}
	if err := g.Place(piece, pos.Row, pos.Col); err != nil {
		return Position{}, false
	}
	return pos, true
}

// PieceAt 返回占用 (row, col) 的实例，越界或空格子返回 nil
func (g *ShapeGrid) PieceAt(row, col int) *PlacedPiece {
	if !inBounds(row, col) {
		return nil
	}
	return g.cells[row][col]
}

// IsPlaced 检查卡牌是否在网格上
func (g *ShapeGrid) IsPlaced(pieceID string) bool {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if occupant := g.cells[r][c]; occupant != nil && occupant.Piece.ID == pieceID {
				return true
			}
		}
	}
	return false
}

// IsEmpty 网格上没有任何卡牌
func (g *ShapeGrid) IsEmpty() bool {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g.cells[r][c] != nil {
				return false
			}
		}
	}
	return true
}

// Placements 返回网格上所有卡牌实例，按锚点行优先排序
// 战斗出兵顺序依赖这个顺序
func (g *ShapeGrid) Placements() []*PlacedPiece {
	seen := make(map[*PlacedPiece]bool)
	out := make([]*PlacedPiece, 0)
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if occupant := g.cells[r][c]; occupant != nil && !seen[occupant] {
				seen[occupant] = true
				out = append(out, occupant)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Anchor, out[j].Anchor
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return out
}

// Clear 清空网格（准备阶段的“重置”）
func (g *ShapeGrid) Clear() {
	g.cells = [GridSize][GridSize]*PlacedPiece{}
}

// Clone 深拷贝网格，实例指针在副本内部保持共享关系
func (g *ShapeGrid) Clone() *ShapeGrid {
	clone := &ShapeGrid{Mode: g.Mode}
	copies := make(map[*PlacedPiece]*PlacedPiece)
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			occupant := g.cells[r][c]
			if occupant == nil {
				continue
			}
			cp, ok := copies[occupant]
			if !ok {
				cp = &PlacedPiece{Piece: occupant.Piece, Anchor: occupant.Anchor}
				copies[occupant] = cp
			}
			clone.cells[r][c] = cp
		}
	}
	return clone
}
