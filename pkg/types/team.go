package types

// Team 战斗阵营
type Team int

const (
	// TeamAttacker 玩家一方（由网格上的卡牌生成）
	TeamAttacker Team = iota
	// TeamDefender 敌方（AI 生成的固定阵容）
	TeamDefender
)

// String 返回阵营的字符串表示
func (t Team) String() string {
	if t == TeamAttacker {
		return "attacker"
	}
	return "defender"
}

// Opponent 返回敌对阵营
func (t Team) Opponent() Team {
	if t == TeamAttacker {
		return TeamDefender
	}
	return TeamAttacker
}

// BattleResult 战斗结果（以玩家视角）
type BattleResult int

const (
	// ResultNone 战斗尚未结束
	ResultNone BattleResult = iota
	// ResultVictory 敌方全灭
	ResultVictory
	// ResultDefeat 我方全灭、双方同归于尽或超时
	ResultDefeat
)

// String 返回结果的字符串表示
func (r BattleResult) String() string {
	switch r {
	case ResultVictory:
		return "victory"
	case ResultDefeat:
		return "defeat"
	default:
		return "none"
	}
}
