package game

import (
	"fmt"
	"log"
	"time"

	"github.com/gonewx/lostkingdom/pkg/inventory"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// BattleSettings 玩家偏好设置
// 只保存偏好，不保存游戏进度
type BattleSettings struct {
	// 战斗
	Seed          int64 `yaml:"seed"`          // 固定随机种子
	RandomizeSeed bool  `yaml:"randomizeSeed"` // 每场战斗使用新种子

	// 布置
	LegacyPlacement bool `yaml:"legacyPlacement"` // 重新放置时先移除再放置

	// 观战
	PlaybackSpeed int  `yaml:"playbackSpeed"` // 1、2 或 4 倍速
	Fullscreen    bool `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *BattleSettings {
	return &BattleSettings{
		Seed:            1,
		RandomizeSeed:   false,
		LegacyPlacement: false,
		PlaybackSpeed:   1,
		Fullscreen:      false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *BattleSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "battle"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，记录日志后使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或尚未保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 旧版本文件中缺少的字段沿用默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.PlaybackSpeed = normalizeSpeed(loaded.PlaybackSpeed)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *BattleSettings {
	return sm.settings
}

// SetSeed 设置固定随机种子
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSeed(seed int64) {
	sm.settings.Seed = seed
}

// SetRandomizeSeed 设置是否每场战斗使用新种子
func (sm *SettingsManager) SetRandomizeSeed(enabled bool) {
	sm.settings.RandomizeSeed = enabled
}

// SetLegacyPlacement 设置重新放置模式
func (sm *SettingsManager) SetLegacyPlacement(enabled bool) {
	sm.settings.LegacyPlacement = enabled
}

// SetPlaybackSpeed 设置观战倍速，只接受 1、2、4，其他值取不超过它的最大档位
func (sm *SettingsManager) SetPlaybackSpeed(speed int) {
	sm.settings.PlaybackSpeed = normalizeSpeed(speed)
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// PlacementMode 当前设置对应的网格放置模式
func (sm *SettingsManager) PlacementMode() inventory.PlacementMode {
	if sm.settings.LegacyPlacement {
		return inventory.PlacementLegacy
	}
	return inventory.PlacementAtomic
}

// BattleSeed 下一场战斗使用的种子
// 开启 RandomizeSeed 时取当前时间，否则使用固定种子
func (sm *SettingsManager) BattleSeed() int64 {
	if sm.settings.RandomizeSeed {
		return time.Now().UnixNano()
	}
	return sm.settings.Seed
}

// normalizeSpeed 把倍速规整到 1、2、4 三档
func normalizeSpeed(speed int) int {
	switch {
	case speed >= 4:
		return 4
	case speed >= 2:
		return 2
	default:
		return 1
	}
}
