package battle

import "time"

// VirtualClock 战斗时钟
//
// 只在模拟推进时前进，暂停期间保持不变，
// 因此攻击冷却不会在暂停时流逝。
type VirtualClock struct {
	now time.Duration
}

// Now 当前战斗时间
func (c *VirtualClock) Now() time.Duration {
	return c.now
}

// Advance 时钟前进 d
func (c *VirtualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}
