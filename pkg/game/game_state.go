package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/lostkingdom/pkg/battle"
	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/quasilyte/gdata/v2"
)

// InitialGold 新游戏的初始金币
const InitialGold = 500

// AppName gdata 存储使用的应用名
const AppName = "lostkingdom"

// ErrWrongPhase 当前阶段不允许该操作
var ErrWrongPhase = errors.New("operation not allowed in current phase")

// Phase 游戏所处阶段
type Phase int

const (
	// PhaseMenu 主菜单（战斗结束后总是回到这里）
	PhaseMenu Phase = iota
	// PhasePreparation 战前布置
	PhasePreparation
	// PhaseBattle 战斗中
	PhaseBattle
)

func (p Phase) String() string {
	switch p {
	case PhasePreparation:
		return "preparation"
	case PhaseBattle:
		return "battle"
	default:
		return "menu"
	}
}

// GameState 存储跨界面的游戏状态：当前阶段、金币和本次布置的阵容
//
// 核心玩法只通过 FinishBattle 请求金币变化，从不直接修改余额。
type GameState struct {
	gold  int
	phase Phase

	roster     *inventory.Roster
	lastReport *battle.Report

	gdataManager    *gdata.Manager   // 可为 nil（降级模式）
	settingsManager *SettingsManager // 总是非 nil
}

// 全局单例实例，供观战程序等入口使用
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 首次调用时初始化 gdata，失败时以降级模式运行（设置只保存在内存中）
func GetGameState() *GameState {
	if globalGameState == nil {
		manager, err := gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			log.Printf("[GameState] Warning: gdata unavailable: %v (settings will not persist)", err)
			manager = nil
		}
		globalGameState = NewGameState(manager)
	}
	return globalGameState
}

// NewGameState 创建独立的游戏状态
// 参数:
//   - gdataManager: 设置存储，可为 nil
func NewGameState(gdataManager *gdata.Manager) *GameState {
	return &GameState{
		gold:            InitialGold,
		phase:           PhaseMenu,
		gdataManager:    gdataManager,
		settingsManager: NewSettingsManager(gdataManager),
	}
}

// Gold 当前金币
func (gs *GameState) Gold() int {
	return gs.gold
}

// SetGold 设置金币，负数按 0 处理
func (gs *GameState) SetGold(amount int) {
	if amount < 0 {
		amount = 0
	}
	gs.gold = amount
}

// AddGold 增减金币，结果不低于 0
func (gs *GameState) AddGold(delta int) {
	gs.SetGold(gs.gold + delta)
}

// SpendGold 扣除金币，余额不足返回 false
// 只有余额充足时才会扣除
func (gs *GameState) SpendGold(amount int) bool {
	if amount < 0 || gs.gold < amount {
		return false
	}
	gs.gold -= amount
	return true
}

// Phase 当前阶段
func (gs *GameState) Phase() Phase {
	return gs.phase
}

// BeginPreparation 进入战前布置，创建新的网格和阵容
// 网格放置模式取自设置
func (gs *GameState) BeginPreparation(limits config.RosterLimits) *inventory.Roster {
	grid := inventory.NewShapeGrid(gs.settingsManager.PlacementMode())
	gs.roster = inventory.NewRoster(grid, limits)
	gs.phase = PhasePreparation
	return gs.roster
}

// Roster 当前阵容，未进入布置阶段时为 nil
func (gs *GameState) Roster() *inventory.Roster {
	return gs.roster
}

// StartBattle 用当前阵容开始战斗
//
// 阵容为空或没有卡牌放到网格上时拒绝开战，阶段保持不变。
// 战斗使用网格的副本，之后对网格的修改不会影响战斗。
func (gs *GameState) StartBattle(cfg *config.BattleConfig) (*battle.Simulator, error) {
	if gs.phase != PhasePreparation || gs.roster == nil {
		return nil, fmt.Errorf("start battle in %s phase: %w", gs.phase, ErrWrongPhase)
	}
	if err := gs.roster.ValidateForBattle(); err != nil {
		return nil, fmt.Errorf("cannot start battle: %w", err)
	}

	seed := gs.settingsManager.BattleSeed()
	sim, err := battle.NewSimulator(gs.roster.Grid().Clone(), cfg, seed)
	if err != nil {
		return nil, err
	}

	gs.phase = PhaseBattle
	log.Printf("[GameState] Battle started with %d pieces (seed=%d)", gs.roster.Len(), seed)
	return sim, nil
}

// FinishBattle 发放战斗奖励并回到主菜单，无论胜负
// 返回发放后的金币余额
func (gs *GameState) FinishBattle(report battle.Report) int {
	gs.AddGold(report.Reward)
	gs.lastReport = &report
	gs.phase = PhaseMenu

	log.Printf("[GameState] Battle finished: %s, +%d gold (total %d)",
		report.Outcome.Result, report.Reward, gs.gold)
	return gs.gold
}

// ReturnToMenu 放弃当前布置或战斗，回到主菜单，不发放奖励
func (gs *GameState) ReturnToMenu() {
	gs.phase = PhaseMenu
}

// LastReport 最近一场战斗的报告
func (gs *GameState) LastReport() (battle.Report, bool) {
	if gs.lastReport == nil {
		return battle.Report{}, false
	}
	return *gs.lastReport, true
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetGdataManager 返回 gdata 存储管理器，降级模式下为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}
