package components

// PositionComponent 单位在战场上的坐标（逻辑像素）
type PositionComponent struct {
	X float64
	Y float64
}

// ManhattanDistance 两点的曼哈顿距离，用于选择最近的敌人
func (p *PositionComponent) ManhattanDistance(other *PositionComponent) float64 {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// HorizontalDistance 两点的水平距离，用于判断是否进入交战距离
func (p *PositionComponent) HorizontalDistance(other *PositionComponent) float64 {
	return abs(p.X - other.X)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
