package systems

import (
	"time"

	"github.com/gonewx/lostkingdom/pkg/components"
	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/ecs"
	"github.com/gonewx/lostkingdom/pkg/types"
)

// KillEvent 本 tick 内发生的一次击杀
type KillEvent struct {
	Killer     ecs.EntityID
	Victim     ecs.EntityID
	KillerName string // 击杀者显示名称，可能为空
	KillerTeam types.Team
}

// BattleCombatSystem 索敌与战斗阶段
//
// 结算规则：
//   - 按传入的行动者顺序依次结算，顺序会影响结果
//   - 每个行动者选择曼哈顿距离最近的存活敌人，距离相同时取先遇到的
//   - 水平距离小于交战距离且冷却结束才会攻击
//   - 伤害立即生效并累加，同一 tick 内后行动的单位看到的是已受伤的目标
//   - 本 tick 内被击杀的行动者仍会执行自己的行动，但不会再被选为目标
type BattleCombatSystem struct {
	entityManager   *ecs.EntityManager
	engagementRange float64
	cooldown        time.Duration
}

// NewBattleCombatSystem 创建战斗系统
func NewBattleCombatSystem(em *ecs.EntityManager, cfg *config.BattleConfig) *BattleCombatSystem {
	return &BattleCombatSystem{
		entityManager:   em,
		engagementRange: cfg.EngagementRange,
		cooldown:        cfg.CooldownDuration(),
	}
}

// combatant 结算期间缓存的组件指针
type combatant struct {
	id     ecs.EntityID
	agent  *components.AgentComponent
	pos    *components.PositionComponent
	health *components.HealthComponent
	attack *components.AttackComponent
}

// Update 结算一个 tick 的战斗
// 参数:
//   - actors: 本 tick 的存活单位（清理阶段的结果，按创建顺序）
//   - now: 当前战斗时钟时间，用于冷却判断
//
// 返回: 按发生顺序排列的击杀事件
func (s *BattleCombatSystem) Update(actors []ecs.EntityID, now time.Duration) []KillEvent {
	roster := s.collect(actors)
	var kills []KillEvent

	for _, self := range roster {
		if self.attack == nil {
			continue
		}

		target := nearestOpponent(self, roster)
		if target == nil {
			continue
		}
		if self.pos.HorizontalDistance(target.pos) >= s.engagementRange {
			continue
		}
		if !self.attack.Ready(now, s.cooldown) {
			continue
		}

		target.health.CurrentHealth -= self.attack.Damage
		self.attack.Record(now)

		if !target.health.IsAlive() {
			kills = append(kills, KillEvent{
				Killer:     self.id,
				Victim:     target.id,
				KillerName: self.agent.Name,
				KillerTeam: self.agent.Team,
			})
		}
	}

	return kills
}

// collect 一次性取出行动者的组件，缺少必要组件的实体被忽略
func (s *BattleCombatSystem) collect(actors []ecs.EntityID) []*combatant {
	roster := make([]*combatant, 0, len(actors))
	for _, id := range actors {
		agent, ok := ecs.GetComponent[*components.AgentComponent](s.entityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if !ok {
			continue
		}
		attack, _ := ecs.GetComponent[*components.AttackComponent](s.entityManager, id)
		roster = append(roster, &combatant{id: id, agent: agent, pos: pos, health: health, attack: attack})
	}
	return roster
}

// nearestOpponent 返回最近的存活敌人，严格小于才替换，保证先遇到的优先
func nearestOpponent(self *combatant, roster []*combatant) *combatant {
	var best *combatant
	bestDist := 0.0
	for _, other := range roster {
		if other.agent.Team == self.agent.Team || !other.health.IsAlive() {
			continue
		}
		d := self.pos.ManhattanDistance(other.pos)
		if best == nil || d < bestDist {
			best = other
			bestDist = d
		}
	}
	return best
}
