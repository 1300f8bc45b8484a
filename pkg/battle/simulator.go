// Package battle 实现战斗模拟：状态机、战斗时钟、调度器和结果报告
package battle

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/lostkingdom/pkg/components"
	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/ecs"
	"github.com/gonewx/lostkingdom/pkg/entities"
	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/gonewx/lostkingdom/pkg/systems"
	"github.com/gonewx/lostkingdom/pkg/types"
)

// Phase 模拟器状态
type Phase int

const (
	// PhaseSetup 正在生成单位
	PhaseSetup Phase = iota
	// PhaseRunning 按固定步长推进
	PhaseRunning
	// PhaseConcluded 已产生结果，不再修改任何单位
	PhaseConcluded
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	default:
		return "concluded"
	}
}

// 结束原因
const (
	ReasonEliminated = "eliminated" // 一方全灭
	ReasonTimeout    = "timeout"    // 达到战斗时限
)

// Outcome 战斗结果，每场战斗只产生一次
type Outcome struct {
	Result types.BattleResult
	Ticks  int    // 结束时已执行的 tick 数
	Reward int    // 金币奖励
	Reason string // ReasonEliminated 或 ReasonTimeout
}

// AgentView 单位的只读快照，供渲染使用
type AgentView struct {
	Label     string
	Type      string
	Team      types.Team
	X, Y      float64
	Health    float64
	MaxHealth float64
}

// Frame 每个 tick 结束后对外发布的状态
type Frame struct {
	Tick           int
	Elapsed        time.Duration // 战斗时钟
	AttackersAlive int
	DefendersAlive int
	Log            []string    // 最近几条日志
	Agents         []AgentView // 存活单位快照
	Outcome        *Outcome    // 非 nil 表示这是最后一帧
}

// Simulator 单场战斗的模拟器
//
// 模拟器独占本场战斗的所有单位，战斗结束后整体丢弃。
// 每个 tick 依次执行：推进、清理、胜负判定、索敌与战斗、击杀日志。
// Simulator 不是并发安全的，跨 goroutine 驱动请使用 Runner。
type Simulator struct {
	cfg      *config.BattleConfig
	em       *ecs.EntityManager
	interval time.Duration

	movementSystem *systems.BattleMovementSystem
	cullSystem     *systems.BattleCullSystem
	combatSystem   *systems.BattleCombatSystem
	reporter       *Reporter

	phase   Phase
	clock   VirtualClock
	tick    int
	paused  bool
	live    systems.LiveSet
	outcome *Outcome
}

// NewSimulator 根据网格上已放置的卡牌和敌方阵容配置创建一场战斗
// 参数:
//   - grid: 已完成布置的网格，不能为空
//   - cfg: 战斗参数，nil 时使用默认值
//   - seed: 随机种子，相同种子和网格得到完全相同的战斗；0 按 1 处理
func NewSimulator(grid *inventory.ShapeGrid, cfg *config.BattleConfig, seed int64) (*Simulator, error) {
	if grid == nil {
		return nil, fmt.Errorf("grid cannot be nil")
	}
	if grid.IsEmpty() {
		return nil, fmt.Errorf("cannot start battle: %w", inventory.ErrNoPiecesPlaced)
	}
	if cfg == nil {
		cfg = config.DefaultBattleConfig()
	}

	rng := newRNG(seed)
	specs := entities.AttackerSpecs(grid, cfg, rng)
	specs = append(specs, entities.DefenderSpecs(cfg, rng)...)

	sim, err := NewSimulatorFromSpecs(cfg, specs)
	if err != nil {
		return nil, err
	}
	log.Printf("[Simulator] Battle started: %d attackers vs %d defenders (seed=%d)",
		len(sim.live.Attackers), len(sim.live.Defenders), seed)
	return sim, nil
}

// NewSimulatorFromSpecs 用给定的单位创建战斗，单位按 specs 顺序结算
// 用于固定场景（如教学关卡）和测试
func NewSimulatorFromSpecs(cfg *config.BattleConfig, specs []entities.AgentSpec) (*Simulator, error) {
	if cfg == nil {
		cfg = config.DefaultBattleConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid battle config: %w", err)
	}

	em := ecs.NewEntityManager()
	s := &Simulator{
		cfg:            cfg,
		em:             em,
		interval:       cfg.TickDuration(),
		movementSystem: systems.NewBattleMovementSystem(em, cfg),
		cullSystem:     systems.NewBattleCullSystem(em),
		combatSystem:   systems.NewBattleCombatSystem(em, cfg),
		reporter:       NewReporter(cfg),
		phase:          PhaseSetup,
	}

	if _, err := entities.SpawnAgents(em, specs); err != nil {
		return nil, err
	}

	// 部署数包含生命值为 0 的法术单位，它们在这里就被清理掉
	deployed := map[types.Team]int{}
	for _, spec := range specs {
		deployed[spec.Team]++
	}
	s.live = s.cullSystem.Update()
	s.reporter.Started(deployed[types.TeamAttacker], deployed[types.TeamDefender])
	s.phase = PhaseRunning

	return s, nil
}

// newRNG 创建确定性随机数生成器
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Step 执行一个 tick 并返回之后的状态
// 暂停或已结束时不做任何修改，直接返回当前状态
func (s *Simulator) Step() Frame {
	if s.phase == PhaseRunning && !s.paused {
		s.advance()
	}
	return s.Frame()
}

// Run 忽略暂停标志，一直推进到战斗结束
// MaxTicks 为 0 且双方无法接触时不会返回
func (s *Simulator) Run() Outcome {
	for s.phase == PhaseRunning {
		s.advance()
	}
	return *s.outcome
}

func (s *Simulator) advance() {
	s.tick++
	s.clock.Advance(s.interval)

	// 推进
	s.movementSystem.Update()

	// 清理
	s.live = s.cullSystem.Update()

	// 胜负判定：先判我方全灭，双方同时全灭算失败
	switch {
	case len(s.live.Attackers) == 0:
		s.conclude(types.ResultDefeat, ReasonEliminated)
		return
	case len(s.live.Defenders) == 0:
		s.conclude(types.ResultVictory, ReasonEliminated)
		return
	case s.cfg.MaxTicks > 0 && s.tick >= s.cfg.MaxTicks: // 第 MaxTicks 个 tick 到达时限
		s.conclude(types.ResultDefeat, ReasonTimeout)
		return
	}

	// 索敌与战斗
	kills := s.combatSystem.Update(s.live.All, s.clock.Now())

	// 击杀日志
	for _, k := range kills {
		s.reporter.Kill(k.KillerName)
	}
}

func (s *Simulator) conclude(result types.BattleResult, reason string) {
	s.outcome = &Outcome{
		Result: result,
		Ticks:  s.tick,
		Reward: s.reporter.Reward(result),
		Reason: reason,
	}
	s.reporter.Concluded(*s.outcome)
	s.phase = PhaseConcluded

	log.Printf("[Simulator] Battle concluded: %s after %d ticks (%s), reward=%d",
		result, s.tick, reason, s.outcome.Reward)
}

// Frame 返回当前状态
func (s *Simulator) Frame() Frame {
	f := Frame{
		Tick:    s.tick,
		Elapsed: s.clock.Now(),
		Log:     s.reporter.Recent(),
		Agents:  s.Agents(),
	}
	for _, a := range f.Agents {
		if a.Team == types.TeamAttacker {
			f.AttackersAlive++
		} else {
			f.DefendersAlive++
		}
	}
	if s.outcome != nil {
		o := *s.outcome
		f.Outcome = &o
	}
	return f
}

// Agents 存活单位快照，按结算顺序
func (s *Simulator) Agents() []AgentView {
	views := make([]AgentView, 0, len(s.live.All))
	for _, id := range s.live.All {
		if !s.em.Exists(id) {
			continue
		}
		health, _ := ecs.GetComponent[*components.HealthComponent](s.em, id)
		if !health.IsAlive() {
			continue
		}
		agent, _ := ecs.GetComponent[*components.AgentComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		views = append(views, AgentView{
			Label:     agent.Label,
			Type:      agent.SourceType,
			Team:      agent.Team,
			X:         pos.X,
			Y:         pos.Y,
			Health:    health.CurrentHealth,
			MaxHealth: health.MaxHealth,
		})
	}
	return views
}

// SetPaused 设置暂停标志，暂停期间 Step 不推进，战斗时钟也不走
func (s *Simulator) SetPaused(paused bool) {
	s.paused = paused
}

// Paused 是否暂停
func (s *Simulator) Paused() bool {
	return s.paused
}

// Phase 当前状态
func (s *Simulator) Phase() Phase {
	return s.phase
}

// Concluded 是否已结束
func (s *Simulator) Concluded() bool {
	return s.phase == PhaseConcluded
}

// Outcome 战斗结果，未结束时第二个返回值为 false
func (s *Simulator) Outcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// Report 最终报告，未结束时第二个返回值为 false
func (s *Simulator) Report() (Report, bool) {
	if s.outcome == nil {
		return Report{}, false
	}
	return s.reporter.Report(*s.outcome), true
}

// Interval 模拟步长
func (s *Simulator) Interval() time.Duration {
	return s.interval
}

// Now 战斗时钟
func (s *Simulator) Now() time.Duration {
	return s.clock.Now()
}

// Tick 已执行的 tick 数
func (s *Simulator) Tick() int {
	return s.tick
}

// Config 本场战斗使用的参数
func (s *Simulator) Config() *config.BattleConfig {
	return s.cfg
}
