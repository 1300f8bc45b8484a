package inventory

import "errors"

// 放置与阵容相关的错误
// 调用方用 errors.Is 判断类别，具体信息由 fmt.Errorf 包装
var (
	// ErrInvalidPlacement 越界或目标格子已被占用，放置不会发生
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrBudgetExceeded 加入后总费用会超过预算
	ErrBudgetExceeded = errors.New("budget exceeded")

	// ErrRosterFull 已达到张数上限
	ErrRosterFull = errors.New("roster full")

	// ErrDuplicatePiece 同一张卡牌已在阵容中
	ErrDuplicatePiece = errors.New("piece already selected")

	// ErrNotSelected 卡牌未被选入阵容，不能放置
	ErrNotSelected = errors.New("piece not selected")

	// ErrEmptyRoster 阵容为空，不能开始战斗
	ErrEmptyRoster = errors.New("roster is empty")

	// ErrNoPiecesPlaced 没有任何卡牌放到网格上，不能开始战斗
	ErrNoPiecesPlaced = errors.New("no pieces placed on the grid")
)
