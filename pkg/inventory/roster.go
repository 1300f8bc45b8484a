package inventory

import (
	"fmt"

	"github.com/gonewx/lostkingdom/pkg/config"
)

// AddResult 加入阵容的结果
// 加入成功但网格已满时 Placed 为 false（已选未放置是合法状态）
type AddResult struct {
	Placed bool
	Anchor Position
}

// Roster 玩家选中的卡牌序列，受预算和张数上限约束
// 阵容和网格保持一致：移出阵容的卡牌同时从网格上移除
type Roster struct {
	limits config.RosterLimits
	grid   *ShapeGrid
	pieces []*config.PieceDefinition
}

// NewRoster 创建绑定到网格的阵容
// 参数:
//   - grid: 阵容对应的放置网格
//   - limits: 预算与张数上限，0 表示不限制
func NewRoster(grid *ShapeGrid, limits config.RosterLimits) *Roster {
	return &Roster{
		limits: limits,
		grid:   grid,
		pieces: make([]*config.PieceDefinition, 0),
	}
}

// Grid 返回阵容绑定的网格
func (r *Roster) Grid() *ShapeGrid {
	return r.grid
}

// Limits 返回阵容上限
func (r *Roster) Limits() config.RosterLimits {
	return r.limits
}

// Add 把卡牌加入阵容并尝试自动放置到网格
//
// 校验顺序：重复 -> 张数上限 -> 预算。任何一项失败时阵容和网格都不变。
func (r *Roster) Add(piece *config.PieceDefinition) (AddResult, error) {
	if piece == nil {
		return AddResult{}, fmt.Errorf("nil piece")
	}
	if r.Contains(piece.ID) {
		return AddResult{}, fmt.Errorf("add %s: %w", piece.ID, ErrDuplicatePiece)
	}
	if r.limits.MaxCount > 0 && len(r.pieces) >= r.limits.MaxCount {
		return AddResult{}, fmt.Errorf("add %s: at most %d pieces: %w", piece.ID, r.limits.MaxCount, ErrRosterFull)
	}
	if r.limits.Budget > 0 && r.TotalCost()+piece.Cost > r.limits.Budget {
		return AddResult{}, fmt.Errorf("add %s: cost %d + %d > budget %d: %w",
			piece.ID, r.TotalCost(), piece.Cost, r.limits.Budget, ErrBudgetExceeded)
	}

	r.pieces = append(r.pieces, piece)

	anchor, ok := r.grid.AutoPlace(piece)
	return AddResult{Placed: ok, Anchor: anchor}, nil
}

// Remove 从阵容移除卡牌并清除其网格占用，不存在时不做任何事
func (r *Roster) Remove(pieceID string) {
	for i, p := range r.pieces {
		if p.ID == pieceID {
			r.pieces = append(r.pieces[:i], r.pieces[i+1:]...)
			break
		}
	}
	r.grid.Remove(pieceID)
}

// Place 把已选中的卡牌放到指定位置（拖拽放置）
// 未选中的卡牌返回 ErrNotSelected；位置不合法时返回 ErrInvalidPlacement
func (r *Roster) Place(pieceID string, row, col int) error {
	piece := r.find(pieceID)
	if piece == nil {
		return fmt.Errorf("place %s: %w", pieceID, ErrNotSelected)
	}
	return r.grid.Place(piece, row, col)
}

// ValidateForBattle 检查能否开始战斗
// 阵容不能为空，且至少一张卡牌真正放到了网格上
func (r *Roster) ValidateForBattle() error {
	if len(r.pieces) == 0 {
		return ErrEmptyRoster
	}
	for _, p := range r.pieces {
		if r.grid.IsPlaced(p.ID) {
			return nil
		}
	}
	return ErrNoPiecesPlaced
}

// TotalCost 阵容总费用
func (r *Roster) TotalCost() int {
	total := 0
	for _, p := range r.pieces {
		total += p.Cost
	}
	return total
}

// Remaining 剩余预算，不限预算时返回 -1
func (r *Roster) Remaining() int {
	if r.limits.Budget <= 0 {
		return -1
	}
	return r.limits.Budget - r.TotalCost()
}

// Contains 检查卡牌是否已在阵容中
func (r *Roster) Contains(pieceID string) bool {
	return r.find(pieceID) != nil
}

// Len 阵容张数
func (r *Roster) Len() int {
	return len(r.pieces)
}

// Pieces 返回阵容的副本（按加入顺序）
func (r *Roster) Pieces() []*config.PieceDefinition {
	out := make([]*config.PieceDefinition, len(r.pieces))
	copy(out, r.pieces)
	return out
}

// Unplaced 返回已选中但未放到网格上的卡牌
func (r *Roster) Unplaced() []*config.PieceDefinition {
	out := make([]*config.PieceDefinition, 0)
	for _, p := range r.pieces {
		if !r.grid.IsPlaced(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (r *Roster) find(pieceID string) *config.PieceDefinition {
	for _, p := range r.pieces {
		if p.ID == pieceID {
			return p
		}
	}
	return nil
}
