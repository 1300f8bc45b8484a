package components

// HealthComponent 存储单位的生命值信息
// 生命值降到 0 或以下的单位在下一次清理时被移出战场，不会复活
type HealthComponent struct {
	CurrentHealth float64 // 当前生命值
	MaxHealth     float64 // 最大生命值（出生时的生命值）
}

// IsAlive 生命值大于 0
func (h *HealthComponent) IsAlive() bool {
	return h.CurrentHealth > 0
}

// Ratio 当前生命值占比，用于渲染透明度
func (h *HealthComponent) Ratio() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	r := h.CurrentHealth / h.MaxHealth
	if r < 0 {
		return 0
	}
	return r
}
