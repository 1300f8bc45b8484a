package systems

import (
	"github.com/gonewx/lostkingdom/pkg/components"
	"github.com/gonewx/lostkingdom/pkg/ecs"
	"github.com/gonewx/lostkingdom/pkg/types"
)

// LiveSet 一次清理之后的存活单位，各切片均保持创建顺序
type LiveSet struct {
	All       []ecs.EntityID
	Attackers []ecs.EntityID
	Defenders []ecs.EntityID
}

// BattleCullSystem 清理阶段：移除生命值 <= 0 的单位并按阵营划分存活单位
type BattleCullSystem struct {
	entityManager *ecs.EntityManager
}

// NewBattleCullSystem 创建清理系统
func NewBattleCullSystem(em *ecs.EntityManager) *BattleCullSystem {
	return &BattleCullSystem{entityManager: em}
}

// Update 销毁阵亡单位并返回新的存活集合
// 被移除的单位不会再出现，即不存在复活
func (s *BattleCullSystem) Update() LiveSet {
	entities := ecs.GetEntitiesWith2[*components.AgentComponent, *components.HealthComponent](s.entityManager)

	live := LiveSet{
		All:       make([]ecs.EntityID, 0, len(entities)),
		Attackers: make([]ecs.EntityID, 0),
		Defenders: make([]ecs.EntityID, 0),
	}

	for _, id := range entities {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if !health.IsAlive() {
			s.entityManager.DestroyEntity(id)
			continue
		}

		agent, _ := ecs.GetComponent[*components.AgentComponent](s.entityManager, id)
		live.All = append(live.All, id)
		if agent.Team == types.TeamAttacker {
			live.Attackers = append(live.Attackers, id)
		} else {
			live.Defenders = append(live.Defenders, id)
		}
	}

	s.entityManager.RemoveMarkedEntities()
	return live
}
