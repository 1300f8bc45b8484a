package components

import "github.com/gonewx/lostkingdom/pkg/types"

// AgentComponent 标识实体为战斗单位
//
// 一张卡牌会生成多个单位，它们共享 SourceType。
// 单位只在一场战斗内存在，战斗结束后随 EntityManager 一起丢弃。
type AgentComponent struct {
	// Label 单位标识，如 "attacker-giant-3"
	Label string
	// SourceType 来源卡牌或敌方兵种的 ID，用于渲染颜色
	SourceType string
	// Name 显示名称，用于击杀日志
	Name string
	// Category 来源卡牌类别（敌方兵种视为部队）
	Category types.PieceCategory
	// Team 所属阵营
	Team types.Team
}
