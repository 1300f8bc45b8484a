package battle

import (
	"fmt"

	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/types"
)

// 战斗日志文本
const (
	logBattleStart     = "战斗开始！"
	logAttackersSpawn  = "我方部署了 %d 个单位"
	logDefendersSpawn  = "敌方部署了 %d 个单位"
	logVictory         = "战斗胜利！"
	logDefeat          = "战斗失败！"
	logTimeout         = "战斗超时，判定失败！"
	logKill            = "%s 击败了敌方单位！"
	defaultKillerLabel = "单位"
)

// Report 一场战斗的最终报告，交给外部应用发放奖励
type Report struct {
	Outcome Outcome
	Reward  int
	Log     []string // 完整战斗日志
}

// Reporter 根据战斗事件生成日志和奖励
//
// 完整日志全部保留；显示窗口只保留最近 capacity 条（环形缓冲）。
type Reporter struct {
	victoryReward int
	defeatReward  int

	history []string

	window []string
	head   int
	count  int
}

// NewReporter 创建报告器，奖励和日志窗口大小取自战斗配置
func NewReporter(cfg *config.BattleConfig) *Reporter {
	capacity := cfg.LogCapacity
	if capacity < 1 {
		capacity = 1
	}
	return &Reporter{
		victoryReward: cfg.VictoryReward,
		defeatReward:  cfg.DefeatReward,
		history:       make([]string, 0, 16),
		window:        make([]string, capacity),
	}
}

// Add 追加一条日志
func (r *Reporter) Add(line string) {
	r.history = append(r.history, line)

	r.window[r.head] = line
	r.head = (r.head + 1) % len(r.window)
	if r.count < len(r.window) {
		r.count++
	}
}

// Addf 格式化后追加一条日志
func (r *Reporter) Addf(format string, args ...any) {
	r.Add(fmt.Sprintf(format, args...))
}

// Started 记录开战信息
func (r *Reporter) Started(attackers, defenders int) {
	r.Add(logBattleStart)
	r.Addf(logAttackersSpawn, attackers)
	r.Addf(logDefendersSpawn, defenders)
}

// Kill 记录一次击杀，击杀者没有显示名称时使用通用称呼
func (r *Reporter) Kill(killerName string) {
	if killerName == "" {
		killerName = defaultKillerLabel
	}
	r.Addf(logKill, killerName)
}

// Concluded 记录战斗结果
func (r *Reporter) Concluded(o Outcome) {
	switch {
	case o.Result == types.ResultVictory:
		r.Add(logVictory)
	case o.Reason == ReasonTimeout:
		r.Add(logTimeout)
	default:
		r.Add(logDefeat)
	}
}

// Reward 结果对应的金币奖励：胜利 +150，失败 +50
func (r *Reporter) Reward(result types.BattleResult) int {
	switch result {
	case types.ResultVictory:
		return r.victoryReward
	case types.ResultDefeat:
		return r.defeatReward
	default:
		return 0
	}
}

// Recent 显示窗口内的日志，旧的在前
func (r *Reporter) Recent() []string {
	out := make([]string, r.count)
	n := len(r.window)
	for i := 0; i < r.count; i++ {
		out[i] = r.window[(r.head-r.count+i+n)%n]
	}
	return out
}

// History 完整日志的副本
func (r *Reporter) History() []string {
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}

// Report 生成最终报告
func (r *Reporter) Report(o Outcome) Report {
	return Report{
		Outcome: o,
		Reward:  r.Reward(o.Result),
		Log:     r.History(),
	}
}
