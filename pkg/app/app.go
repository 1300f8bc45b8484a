// Package app 提供观战程序的核心包装器
//
// 该包把初始化和输入处理从 main 包中提取出来，main.go 只负责解析参数。
// 界面分两个阶段：战前布置（鼠标调整网格上的卡牌）和战斗观战。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/lostkingdom/pkg/battle"
	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/game"
	"github.com/gonewx/lostkingdom/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 窗口和战场布局
const (
	ScreenWidth  = 1100
	ScreenHeight = 540

	fieldX = 20.0 // 战场左上角屏幕坐标
	fieldY = 40.0
)

// DefaultPieces 未指定卡牌时的开局阵容（总费用 9，不超过战前预算 10）
var DefaultPieces = []string{"knight", "archer", "cannon"}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 非 0 时覆盖设置中的随机种子
	Seed int64
	// Pieces 开局自动加入阵容的卡牌 ID，为空时使用 DefaultPieces
	Pieces []string
}

// App 是观战程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	gameState *game.GameState
	catalog   *config.PieceCatalog
	battleCfg *config.BattleConfig
	pieces    []string
	colors    map[string]color.RGBA

	// 战斗
	sim    *battle.Simulator
	runner *battle.Runner
	frames <-chan battle.Frame
	cancel context.CancelFunc
	frame  battle.Frame

	// 布置
	selected string // 当前拿起的卡牌 ID
	notice   string // 状态栏提示

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化观战程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	catalog, err := config.LoadPieceCatalog(config.DefaultPieceCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("卡牌目录加载失败: %w", err)
	}
	battleCfg, err := config.LoadBattleConfig(config.DefaultBattleConfigPath)
	if err != nil {
		return nil, fmt.Errorf("战斗参数加载失败: %w", err)
	}

	gameState := game.GetGameState()
	settings := gameState.GetSettingsManager()
	if cfg.Seed != 0 {
		settings.SetSeed(cfg.Seed)
		settings.SetRandomizeSeed(false)
	}
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	pieces := cfg.Pieces
	if len(pieces) == 0 {
		pieces = DefaultPieces
	}

	a := &App{
		gameState: gameState,
		catalog:   catalog,
		battleCfg: battleCfg,
		pieces:    pieces,
		colors:    unitColors(catalog, battleCfg),
		verbose:   cfg.Verbose,
	}

	if err := a.prepare(); err != nil {
		return nil, err
	}
	return a, nil
}

// unitColors 卡牌和敌方兵种的渲染颜色
func unitColors(catalog *config.PieceCatalog, cfg *config.BattleConfig) map[string]color.RGBA {
	colors := make(map[string]color.RGBA)
	for _, p := range catalog.Pieces {
		colors[p.ID] = utils.ColorOr(p.Color, fallbackColor)
	}
	for _, d := range cfg.Defenders {
		colors[d.Type] = utils.ColorOr(d.Color, fallbackColor)
	}
	return colors
}

// prepare 进入战前布置，按配置的卡牌组建阵容并自动放置
func (a *App) prepare() error {
	roster := a.gameState.BeginPreparation(config.BattlePrepRoster)
	for _, id := range a.pieces {
		piece, ok := a.catalog.Get(id)
		if !ok {
			return fmt.Errorf("未知卡牌: %s", id)
		}
		res, err := roster.Add(piece)
		if err != nil {
			return fmt.Errorf("无法加入 %s: %w", id, err)
		}
		if !res.Placed {
			log.Printf("[App] %s selected but no room on the grid", id)
		}
	}

	a.selected = ""
	a.notice = "click a piece, then click a cell to move it. ENTER to fight"
	return nil
}

// startBattle 用当前阵容开战，失败时留在布置阶段
func (a *App) startBattle() {
	sim, err := a.gameState.StartBattle(a.battleCfg)
	if err != nil {
		a.notice = err.Error()
		log.Printf("[App] Cannot start battle: %v", err)
		return
	}

	settings := a.gameState.GetSettingsManager()
	ctx, cancel := context.WithCancel(context.Background())

	a.sim = sim
	a.runner = battle.NewRunner(sim)
	a.runner.SetSpeed(settings.GetSettings().PlaybackSpeed)
	// Start 之后模拟器只归 Runner 的 goroutine 使用
	a.frame = a.runner.Opening()
	a.frames = a.runner.Start(ctx)
	a.cancel = cancel
	a.notice = ""
}

// stopBattle 停止调度器，不发放奖励
func (a *App) stopBattle() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.frames = nil
	a.runner = nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.stopBattle()
		return ebiten.Termination
	}

	switch a.gameState.Phase() {
	case game.PhasePreparation:
		a.updatePreparation()
	case game.PhaseBattle:
		a.updateBattle()
	case game.PhaseMenu:
		// 结算完成，ENTER 再来一局
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if err := a.prepare(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *App) toggleFullscreen() {
	settings := a.gameState.GetSettingsManager()
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		settings.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		settings.SetFullscreen(true)
	}
	if err := settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// updatePreparation 布置阶段：鼠标拿起并移动卡牌
func (a *App) updatePreparation() {
	roster := a.gameState.Roster()
	grid := roster.Grid()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		col, row, ok := utils.MouseToGridCoords(ebiten.CursorPosition())
		switch {
		case !ok:
			a.selected = ""
		case a.selected == "":
			if pp := grid.PieceAt(row, col); pp != nil {
				a.selected = pp.Piece.ID
				a.notice = "picked " + pp.Piece.ID
			}
		default:
			if err := roster.Place(a.selected, row, col); err != nil {
				a.notice = err.Error()
			} else {
				a.notice = fmt.Sprintf("moved %s to (%d,%d)", a.selected, row, col)
			}
			a.selected = ""
		}
	}

	// C 清空网格，A 自动放置未放置的卡牌
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		grid.Clear()
		a.selected = ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		for _, p := range roster.Unplaced() {
			grid.AutoPlace(p)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.startBattle()
	}
}

// updateBattle 战斗阶段：处理暂停和倍速，读取 Runner 发来的帧
func (a *App) updateBattle() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.runner.SetPaused(!a.runner.Paused())
	}
	for key, speed := range map[ebiten.Key]int{ebiten.KeyDigit1: 1, ebiten.KeyDigit2: 2, ebiten.KeyDigit4: 4} {
		if inpututil.IsKeyJustPressed(key) {
			a.runner.SetSpeed(speed)
			settings := a.gameState.GetSettingsManager()
			settings.SetPlaybackSpeed(speed)
			if err := settings.Save(); err != nil {
				log.Printf("[App] Failed to save settings: %v", err)
			}
		}
	}

	for {
		select {
		case f, ok := <-a.frames:
			if !ok {
				a.finishBattle()
				return
			}
			a.frame = f
		default:
			return
		}
	}
}

// finishBattle 通道关闭后结算。Runner 的 goroutine 已退出，可以安全读取模拟器
func (a *App) finishBattle() {
	a.stopBattle()

	report, ok := a.sim.Report()
	if !ok {
		a.gameState.ReturnToMenu()
		return
	}
	gold := a.gameState.FinishBattle(report)

	// 调试字体只支持 ASCII，完整战斗日志输出到终端
	for _, line := range report.Log {
		fmt.Println(line)
	}
	a.notice = fmt.Sprintf("%s: +%d gold (total %d). ENTER for a rematch, ESC to quit",
		report.Outcome.Result, report.Reward, gold)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
