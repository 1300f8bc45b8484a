package components

import "time"

// AttackComponent 单位的攻击能力
//
// 冷却按战斗时钟计算，暂停期间时钟不走，
// 因此暂停的时间不会计入冷却。
type AttackComponent struct {
	Damage         float64       // 每次攻击造成的伤害
	LastAttackTime time.Duration // 上次攻击的战斗时钟时间
	HasAttacked    bool          // 是否攻击过，未攻击过的单位不受冷却限制
}

// Ready 检查在 now 时刻冷却是否已结束
func (a *AttackComponent) Ready(now, cooldown time.Duration) bool {
	if !a.HasAttacked {
		return true
	}
	return now-a.LastAttackTime >= cooldown
}

// Record 记录一次攻击
func (a *AttackComponent) Record(now time.Duration) {
	a.LastAttackTime = now
	a.HasAttacked = true
}
