// Package utils 观战程序使用的布局和颜色辅助函数
package utils

import "github.com/gonewx/lostkingdom/pkg/inventory"

// 布置网格预览参数常量
// 网格画在战场右侧，用于查看和调整卡牌位置
const (
	GridStartX = 850.0 // 网格起始X坐标
	GridStartY = 60.0  // 网格起始Y坐标
	CellSize   = 36.0  // 每格边长
)

// MouseToGridCoords 将鼠标屏幕坐标转换为网格坐标
// 参数:
//   - mouseX, mouseY: 鼠标的屏幕坐标
//
// 返回:
//   - col: 列索引 (0-5)
//   - row: 行索引 (0-5)
//   - isValid: 是否在网格范围内
func MouseToGridCoords(mouseX, mouseY int) (col, row int, isValid bool) {
	x := float64(mouseX)
	y := float64(mouseY)

	gridEnd := float64(inventory.GridSize) * CellSize
	if x < GridStartX || x >= GridStartX+gridEnd || y < GridStartY || y >= GridStartY+gridEnd {
		return 0, 0, false
	}

	col = int((x - GridStartX) / CellSize)
	row = int((y - GridStartY) / CellSize)

	// 防止浮点误差导致越界
	col = min(max(col, 0), inventory.GridSize-1)
	row = min(max(row, 0), inventory.GridSize-1)

	return col, row, true
}

// GridToScreenCoords 返回格子左上角的屏幕坐标
func GridToScreenCoords(col, row int) (x, y float64) {
	return GridStartX + float64(col)*CellSize, GridStartY + float64(row)*CellSize
}
