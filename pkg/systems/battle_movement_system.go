package systems

import (
	"github.com/gonewx/lostkingdom/pkg/components"
	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/ecs"
	"github.com/gonewx/lostkingdom/pkg/types"
)

// BattleMovementSystem 推进阶段：可移动单位朝敌方水平前进
//
// 我方向 +X 移动，最远到 MaxX；敌方向 -X 移动，最远到 MinX。
// 速度为 0 的单位（法术、建筑）不移动。Y 坐标始终不变。
type BattleMovementSystem struct {
	entityManager *ecs.EntityManager
	minX          float64
	maxX          float64
}

// NewBattleMovementSystem 创建推进系统，边界取自战斗配置
func NewBattleMovementSystem(em *ecs.EntityManager, cfg *config.BattleConfig) *BattleMovementSystem {
	return &BattleMovementSystem{
		entityManager: em,
		minX:          cfg.MinX(),
		maxX:          cfg.MaxX(),
	}
}

// Update 执行一个 tick 的移动
func (s *BattleMovementSystem) Update() {
	entities := ecs.GetEntitiesWith3[
		*components.AgentComponent,
		*components.PositionComponent,
		*components.MovementComponent,
	](s.entityManager)

	for _, id := range entities {
		move, _ := ecs.GetComponent[*components.MovementComponent](s.entityManager, id)
		if move.Speed <= 0 {
			continue
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id); ok && !health.IsAlive() {
			continue
		}

		agent, _ := ecs.GetComponent[*components.AgentComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if agent.Team == types.TeamAttacker {
			pos.X = min(pos.X+move.Speed, s.maxX)
		} else {
			pos.X = max(pos.X-move.Speed, s.minX)
		}
	}
}
