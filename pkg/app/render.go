package app

import (
	"fmt"
	"image/color"

	"github.com/gonewx/lostkingdom/pkg/game"
	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/gonewx/lostkingdom/pkg/types"
	"github.com/gonewx/lostkingdom/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 单位绘制半径（8 像素缩小到 0.3 倍）
const unitRadius = 2.4

var (
	backgroundColor = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	fieldColor      = color.RGBA{R: 20, G: 83, B: 45, A: 255}
	fieldBorder     = color.RGBA{R: 74, G: 222, B: 128, A: 160}
	marginColor     = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	attackerRing    = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	defenderRing    = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	gridLineColor   = color.RGBA{R: 75, G: 85, B: 99, A: 255}
	selectedColor   = color.RGBA{R: 250, G: 204, B: 21, A: 255}
	fallbackColor   = color.RGBA{R: 107, G: 114, B: 128, A: 255}
)

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	a.drawField(screen)
	a.drawAgents(screen)
	a.drawGrid(screen)
	a.drawHUD(screen)
}

func (a *App) drawField(screen *ebiten.Image) {
	w, h := float32(a.battleCfg.Width), float32(a.battleCfg.Height)
	vector.FillRect(screen, fieldX, fieldY, w, h, fieldColor, false)
	vector.StrokeRect(screen, fieldX, fieldY, w, h, 1, fieldBorder, false)

	// 单位可到达的左右边界
	for _, x := range []float64{a.battleCfg.MinX(), a.battleCfg.MaxX()} {
		sx := float32(fieldX + x)
		vector.StrokeLine(screen, sx, fieldY, sx, fieldY+h, 1, marginColor, false)
	}
}

func (a *App) drawAgents(screen *ebiten.Image) {
	if a.gameState.Phase() == game.PhasePreparation {
		return
	}
	for _, agent := range a.frame.Agents {
		c, ok := a.colors[agent.Type]
		if !ok {
			c = fallbackColor
		}
		ratio := 0.0
		if agent.MaxHealth > 0 {
			ratio = agent.Health / agent.MaxHealth
		}

		cx := float32(fieldX + agent.X)
		cy := float32(fieldY + agent.Y)
		vector.FillCircle(screen, cx, cy, unitRadius, utils.WithAlpha(c, ratio), true)

		ring := defenderRing
		if agent.Team == types.TeamAttacker {
			ring = attackerRing
		}
		vector.StrokeCircle(screen, cx, cy, unitRadius+0.5, 0.5, ring, true)
	}
}

// drawGrid 右侧的布置网格，战斗中也显示本场阵容
func (a *App) drawGrid(screen *ebiten.Image) {
	roster := a.gameState.Roster()
	if roster == nil {
		return
	}
	grid := roster.Grid()

	for row := 0; row < inventory.GridSize; row++ {
		for col := 0; col < inventory.GridSize; col++ {
			x, y := utils.GridToScreenCoords(col, row)
			fx, fy, size := float32(x), float32(y), float32(utils.CellSize)

			if pp := grid.PieceAt(row, col); pp != nil {
				c, ok := a.colors[pp.Piece.ID]
				if !ok {
					c = fallbackColor
				}
				vector.FillRect(screen, fx+1, fy+1, size-2, size-2, c, false)
				if pp.Anchor == (inventory.Position{Row: row, Col: col}) {
					ebitenutil.DebugPrintAt(screen, pp.Piece.ID[:min(4, len(pp.Piece.ID))], int(x)+2, int(y)+2)
				}
				if pp.Piece.ID == a.selected {
					vector.StrokeRect(screen, fx+1, fy+1, size-2, size-2, 2, selectedColor, false)
				}
			}
			vector.StrokeRect(screen, fx, fy, size, size, 1, gridLineColor, false)
		}
	}

	// 网格下方列出阵容
	listY := int(utils.GridStartY + float64(inventory.GridSize)*utils.CellSize + 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("roster %d  cost %d/%d", roster.Len(), roster.TotalCost(), roster.Limits().Budget), int(utils.GridStartX), listY)
	for i, p := range roster.Pieces() {
		mark := " "
		if !grid.IsPlaced(p.ID) {
			mark = "!"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %-9s %s %d", mark, p.ID, p.Category, p.Cost), int(utils.GridStartX), listY+16*(i+1))
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	gs := a.gameState
	status := fmt.Sprintf("gold %d   phase %s", gs.Gold(), gs.Phase())

	if gs.Phase() != game.PhasePreparation {
		f := a.frame
		status += fmt.Sprintf("   ATK %d vs DEF %d   t=%.1fs (tick %d)",
			f.AttackersAlive, f.DefendersAlive, f.Elapsed.Seconds(), f.Tick)
		if a.runner != nil {
			status += fmt.Sprintf("   x%d", a.runner.Speed())
			if a.runner.Paused() {
				status += "   PAUSED"
			}
		}
	}
	ebitenutil.DebugPrintAt(screen, status, int(fieldX), 12)

	help := "SPACE pause  1/2/4 speed  F11 fullscreen  ESC quit"
	if gs.Phase() == game.PhasePreparation {
		help = "click to move pieces  A auto place  C clear  ENTER fight  ESC quit"
	}
	bottom := int(fieldY+a.battleCfg.Height) + 12
	ebitenutil.DebugPrintAt(screen, help, int(fieldX), bottom)
	if a.notice != "" {
		ebitenutil.DebugPrintAt(screen, a.notice, int(fieldX), bottom+18)
	}
}
