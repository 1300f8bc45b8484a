package config

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gonewx/lostkingdom/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultBattleConfigPath 内置战斗参数文件路径
const DefaultBattleConfigPath = "data/battle.yaml"

// Battlefield Configuration (战场配置)
const (
	// BattlefieldWidth 战场宽度（逻辑像素）
	BattlefieldWidth = 800.0

	// BattlefieldHeight 战场高度（逻辑像素）
	BattlefieldHeight = 400.0

	// BattlefieldMargin 单位移动时与左右边界保持的距离
	// 我方最多前进到 BattlefieldWidth - BattlefieldMargin，敌方最多后退到 BattlefieldMargin
	BattlefieldMargin = 50.0

	// DefaultTickInterval 模拟步长（秒），即每秒 10 次
	DefaultTickInterval = 0.1

	// DefaultEngagementRange 交战距离（水平距离严格小于此值才能攻击）
	DefaultEngagementRange = 50.0

	// DefaultAttackCooldown 攻击冷却（秒），按战斗时钟计算，暂停期间不流逝
	DefaultAttackCooldown = 1.0

	// DefaultMaxTicks 战斗时限（3 分钟），到时判负
	DefaultMaxTicks = 1800

	// DefaultLogCapacity 战斗日志显示窗口大小
	DefaultLogCapacity = 5
)

// Spawn Configuration (出兵配置)
const (
	// TroopAgentsPerPiece 每张部队卡生成的单位数
	TroopAgentsPerPiece = 20

	// StationaryAgentsPerPiece 每张法术/建筑卡生成的单位数
	StationaryAgentsPerPiece = 5

	// TroopSpeed 部队每个 tick 的水平移动距离
	TroopSpeed = 1.0
)

// Reward Configuration (奖励配置)
const (
	// VictoryReward 胜利奖励金币
	VictoryReward = 150

	// DefeatReward 失败安慰奖励金币（失败也能获得部分进度）
	DefeatReward = 50
)

// Band 矩形出生区域，X/Y 取值为 [Min, Max)
type Band struct {
	MinX float64 `yaml:"minX"`
	MaxX float64 `yaml:"maxX"`
	MinY float64 `yaml:"minY"`
	MaxY float64 `yaml:"maxY"`
}

// DefenderArchetype 敌方固定阵容中的一种兵种
type DefenderArchetype struct {
	Type   string  `yaml:"type"`
	Name   string  `yaml:"name"`  // 显示名称
	Color  string  `yaml:"color"` // 渲染颜色
	Count  int     `yaml:"count"`
	Health float64 `yaml:"health"`
	Damage float64 `yaml:"damage"`
	Speed  float64 `yaml:"speed"`
}

// BattleConfig 战斗模拟参数
type BattleConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Margin          float64 `yaml:"margin"`
	TickInterval    float64 `yaml:"tickInterval"`    // 秒
	EngagementRange float64 `yaml:"engagementRange"` // 水平距离
	AttackCooldown  float64 `yaml:"attackCooldown"`  // 秒
	MaxTicks        int     `yaml:"maxTicks"`        // 0 表示不限时
	LogCapacity     int     `yaml:"logCapacity"`

	TroopAgents      int     `yaml:"troopAgents"`      // 部队卡生成数量
	StationaryAgents int     `yaml:"stationaryAgents"` // 法术/建筑卡生成数量
	TroopSpeed       float64 `yaml:"troopSpeed"`

	AttackerBand Band                `yaml:"attackerBand"`
	DefenderBand Band                `yaml:"defenderBand"`
	Defenders    []DefenderArchetype `yaml:"defenders"`

	VictoryReward int `yaml:"victoryReward"`
	DefeatReward  int `yaml:"defeatReward"`
}

// DefaultBattleConfig 返回默认战斗参数
func DefaultBattleConfig() *BattleConfig {
	return &BattleConfig{
		Width:            BattlefieldWidth,
		Height:           BattlefieldHeight,
		Margin:           BattlefieldMargin,
		TickInterval:     DefaultTickInterval,
		EngagementRange:  DefaultEngagementRange,
		AttackCooldown:   DefaultAttackCooldown,
		MaxTicks:         DefaultMaxTicks,
		LogCapacity:      DefaultLogCapacity,
		TroopAgents:      TroopAgentsPerPiece,
		StationaryAgents: StationaryAgentsPerPiece,
		TroopSpeed:       TroopSpeed,
		AttackerBand:     Band{MinX: 100, MaxX: 300, MinY: 50, MaxY: 350},
		DefenderBand:     Band{MinX: 500, MaxX: 700, MinY: 50, MaxY: 350},
		Defenders: []DefenderArchetype{
			{Type: "giant", Name: "巨人", Color: "#ef4444", Count: 15, Health: 100, Damage: 10, Speed: 1},
			{Type: "archer", Name: "弓箭手", Color: "#22c55e", Count: 15, Health: 100, Damage: 10, Speed: 1},
			{Type: "skeleton", Name: "骷髅兵", Color: "#6b7280", Count: 15, Health: 100, Damage: 10, Speed: 1},
			{Type: "wizard", Name: "法师", Color: "#8b5cf6", Count: 15, Health: 100, Damage: 10, Speed: 1},
		},
		VictoryReward: VictoryReward,
		DefeatReward:  DefeatReward,
	}
}

// LoadBattleConfig 从嵌入的 YAML 文件加载战斗参数
// 文件中缺省的字段沿用 DefaultBattleConfig 的取值
func LoadBattleConfig(path string) (*BattleConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read battle config %s: %w", path, err)
	}

	cfg, err := ParseBattleConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid battle config %s: %w", path, err)
	}

	log.Printf("[BattleConfig] Loaded %s (tick=%.2fs, defenders=%d archetypes)", path, cfg.TickInterval, len(cfg.Defenders))
	return cfg, nil
}

// ParseBattleConfig 在默认值之上解析 YAML 并校验
func ParseBattleConfig(data []byte) (*BattleConfig, error) {
	cfg := DefaultBattleConfig()
	// yaml.v3 对切片整体替换，写了 defenders 就完全覆盖默认阵容
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse battle config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验战斗参数
func (c *BattleConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("battlefield size must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.Margin < 0 || c.Margin*2 >= c.Width {
		return fmt.Errorf("margin %v does not fit battlefield width %v", c.Margin, c.Width)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tickInterval must be positive, got %v", c.TickInterval)
	}
	if c.EngagementRange <= 0 {
		return fmt.Errorf("engagementRange must be positive, got %v", c.EngagementRange)
	}
	if c.AttackCooldown < 0 {
		return fmt.Errorf("attackCooldown cannot be negative, got %v", c.AttackCooldown)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("maxTicks cannot be negative, got %d", c.MaxTicks)
	}
	if c.LogCapacity < 1 {
		return fmt.Errorf("logCapacity must be at least 1, got %d", c.LogCapacity)
	}
	if c.TroopAgents < 1 || c.StationaryAgents < 1 {
		return fmt.Errorf("agents per piece must be at least 1 (troop=%d, stationary=%d)", c.TroopAgents, c.StationaryAgents)
	}
	if c.TroopSpeed < 0 {
		return fmt.Errorf("troopSpeed cannot be negative, got %v", c.TroopSpeed)
	}
	if err := c.AttackerBand.validate("attackerBand"); err != nil {
		return err
	}
	if err := c.DefenderBand.validate("defenderBand"); err != nil {
		return err
	}
	if len(c.Defenders) == 0 {
		return fmt.Errorf("at least one defender archetype is required")
	}
	for _, d := range c.Defenders {
		if d.Type == "" {
			return fmt.Errorf("defender archetype type is required")
		}
		if d.Count < 1 {
			return fmt.Errorf("defender %s: count must be at least 1, got %d", d.Type, d.Count)
		}
		if d.Health <= 0 {
			return fmt.Errorf("defender %s: health must be positive, got %v", d.Type, d.Health)
		}
		if d.Damage < 0 || d.Speed < 0 {
			return fmt.Errorf("defender %s: damage and speed cannot be negative", d.Type)
		}
	}
	if c.VictoryReward < 0 || c.DefeatReward < 0 {
		return fmt.Errorf("rewards cannot be negative")
	}
	return nil
}

// MinX 单位可到达的最左位置
func (c *BattleConfig) MinX() float64 {
	return c.Margin
}

// MaxX 单位可到达的最右位置
func (c *BattleConfig) MaxX() float64 {
	return c.Width - c.Margin
}

// TickDuration 模拟步长
func (c *BattleConfig) TickDuration() time.Duration {
	return secondsToDuration(c.TickInterval)
}

// CooldownDuration 攻击冷却
func (c *BattleConfig) CooldownDuration() time.Duration {
	return secondsToDuration(c.AttackCooldown)
}

// secondsToDuration 把配置中的秒数转换为 time.Duration，按纳秒四舍五入
func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// DefenderCount 敌方单位总数
func (c *BattleConfig) DefenderCount() int {
	total := 0
	for _, d := range c.Defenders {
		total += d.Count
	}
	return total
}

func (b Band) validate(name string) error {
	if b.MaxX <= b.MinX || b.MaxY <= b.MinY {
		return fmt.Errorf("%s: empty spawn band (%v..%v, %v..%v)", name, b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	return nil
}
