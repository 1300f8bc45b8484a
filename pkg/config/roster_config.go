package config

// RosterLimits 阵容上限
// Budget 和 MaxCount 为 0 时表示不限制
type RosterLimits struct {
	Budget   int
	MaxCount int
}

// 各玩法使用的阵容上限
var (
	// BattlePrepRoster 战斗准备：总费用不超过 10，不限张数
	BattlePrepRoster = RosterLimits{Budget: 10}

	// DefenseSetupRoster 防御布置：最多 5 张
	DefenseSetupRoster = RosterLimits{MaxCount: 5}

	// TerritoryDefenseRoster 领地驻防：最多 3 张
	TerritoryDefenseRoster = RosterLimits{MaxCount: 3}
)
