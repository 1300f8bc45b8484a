package components

// MovementComponent 单位的移动能力
// Speed 为每个 tick 的水平移动距离，0 表示固定不动（法术、建筑）
type MovementComponent struct {
	Speed float64
}
