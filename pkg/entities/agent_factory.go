package entities

import (
	"fmt"
	"math/rand"

	"github.com/gonewx/lostkingdom/pkg/components"
	"github.com/gonewx/lostkingdom/pkg/config"
	"github.com/gonewx/lostkingdom/pkg/ecs"
	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/gonewx/lostkingdom/pkg/types"
)

// AgentSpec 创建单个战斗单位所需的全部数据
type AgentSpec struct {
	Label      string
	SourceType string
	Name       string
	Category   types.PieceCategory
	Team       types.Team
	X, Y       float64
	Health     float64
	Damage     float64
	Speed      float64 // 每个 tick 的水平移动距离，0 表示不动
}

// NewAgentEntity 按 AgentSpec 创建战斗单位实体
//
// 实体拥有 Agent、Position、Health、Attack、Movement 五个组件。
// 生命值为 0 的单位（如法术卡生成的单位）照常创建，在第一次清理时被移除。
func NewAgentEntity(em *ecs.EntityManager, spec AgentSpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if spec.Health < 0 {
		return 0, fmt.Errorf("agent %s: health cannot be negative, got %v", spec.Label, spec.Health)
	}
	if spec.Damage < 0 || spec.Speed < 0 {
		return 0, fmt.Errorf("agent %s: damage and speed cannot be negative", spec.Label)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.AgentComponent{
		Label:      spec.Label,
		SourceType: spec.SourceType,
		Name:       spec.Name,
		Category:   spec.Category,
		Team:       spec.Team,
	})
	em.AddComponent(entityID, &components.PositionComponent{X: spec.X, Y: spec.Y})
	em.AddComponent(entityID, &components.HealthComponent{
		CurrentHealth: spec.Health,
		MaxHealth:     spec.Health,
	})
	em.AddComponent(entityID, &components.AttackComponent{Damage: spec.Damage})
	em.AddComponent(entityID, &components.MovementComponent{Speed: spec.Speed})

	return entityID, nil
}

// AgentsPerPiece 一张卡牌生成的单位数：部队卡 TroopAgents 个，其余 StationaryAgents 个
func AgentsPerPiece(cfg *config.BattleConfig, piece *config.PieceDefinition) int {
	if piece.Category.IsMobile() {
		return cfg.TroopAgents
	}
	return cfg.StationaryAgents
}

// AttackerSpecs 根据网格上已放置的卡牌生成我方单位数据
//
// 每张已放置的卡牌生成 K 个单位（K 见 AgentsPerPiece）：
// 生命值等于卡牌生命值，伤害为卡牌伤害的 1/K，
// 因此同一张卡牌生成的单位伤害之和等于卡牌伤害。
// 卡牌按锚点行优先顺序处理；坐标在我方出生区域内随机，先取 X 后取 Y。
func AttackerSpecs(grid *inventory.ShapeGrid, cfg *config.BattleConfig, rng *rand.Rand) []AgentSpec {
	placements := grid.Placements()
	specs := make([]AgentSpec, 0, len(placements)*cfg.TroopAgents)

	for _, pp := range placements {
		piece := pp.Piece
		k := AgentsPerPiece(cfg, piece)
		speed := 0.0
		if piece.Category.IsMobile() {
			speed = cfg.TroopSpeed
		}

		for i := 0; i < k; i++ {
			x, y := randomPoint(cfg.AttackerBand, rng)
			specs = append(specs, AgentSpec{
				Label:      fmt.Sprintf("attacker-%s-%d", piece.ID, i),
				SourceType: piece.ID,
				Name:       piece.Name,
				Category:   piece.Category,
				Team:       types.TeamAttacker,
				X:          x,
				Y:          y,
				Health:     piece.Health,
				Damage:     piece.Damage / float64(k),
				Speed:      speed,
			})
		}
	}
	return specs
}

// DefenderSpecs 按配置的敌方阵容生成敌方单位数据，兵种按配置顺序处理
func DefenderSpecs(cfg *config.BattleConfig, rng *rand.Rand) []AgentSpec {
	specs := make([]AgentSpec, 0, cfg.DefenderCount())

	for _, arch := range cfg.Defenders {
		for i := 0; i < arch.Count; i++ {
			x, y := randomPoint(cfg.DefenderBand, rng)
			specs = append(specs, AgentSpec{
				Label:      fmt.Sprintf("defender-%s-%d", arch.Type, i),
				SourceType: arch.Type,
				Name:       arch.Name,
				Category:   types.CategoryTroop,
				Team:       types.TeamDefender,
				X:          x,
				Y:          y,
				Health:     arch.Health,
				Damage:     arch.Damage,
				Speed:      arch.Speed,
			})
		}
	}
	return specs
}

// SpawnAgents 按顺序创建实体，返回的 ID 顺序与 specs 一致
func SpawnAgents(em *ecs.EntityManager, specs []AgentSpec) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(specs))
	for _, spec := range specs {
		id, err := NewAgentEntity(em, spec)
		if err != nil {
			return nil, fmt.Errorf("failed to spawn agents: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func randomPoint(b config.Band, rng *rand.Rand) (float64, float64) {
	x := b.MinX + rng.Float64()*(b.MaxX-b.MinX)
	y := b.MinY + rng.Float64()*(b.MaxY-b.MinY)
	return x, y
}
