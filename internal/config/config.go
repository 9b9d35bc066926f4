// Package config provides YAML-based tuning for the gold miner game and
// difficulty presets.
package config

import "time"

// GoldMinerConfig contains all tuning for the gold miner engine and its host.
type GoldMinerConfig struct {
	Surface  SurfaceConfig  `yaml:"surface"`
	Hook     HookConfig     `yaml:"hook"`
	PowerUps PowerUpConfig  `yaml:"powerups"`
	Economy  EconomyConfig  `yaml:"economy"`
	Autosave AutosaveConfig `yaml:"autosave"`
}

// SurfaceConfig defines the logical drawing surface in world units.
type SurfaceConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"` // Top of the ground strip; items spawn below it
}

// HookConfig defines hook kinematics. Speeds are per second.
type HookConfig struct {
	PivotX       float64 `yaml:"pivot_x"`
	PivotY       float64 `yaml:"pivot_y"`
	AngularSpeed float64 `yaml:"angular_speed"` // Radians per second while swinging
	DropSpeed    float64 `yaml:"drop_speed"`    // Extension speed in units per second
	ReturnSpeed  float64 `yaml:"return_speed"`  // Base retraction speed in units per second
	MaxLength    float64 `yaml:"max_length"`
	BottomMargin float64 `yaml:"bottom_margin"` // Tip this close to the bottom edge turns back
}

// PowerUpConfig defines effect parameters and shop prices.
type PowerUpConfig struct {
	MagnetDuration     time.Duration  `yaml:"magnet_duration"`
	MagnetRadius       float64        `yaml:"magnet_radius"`
	MagnetPull         float64        `yaml:"magnet_pull"` // Fraction of the distance closed per second
	SpeedBoostDuration time.Duration  `yaml:"speed_boost_duration"`
	SpeedBoostFactor   float64        `yaml:"speed_boost_factor"`
	TimeExtendSeconds  float64        `yaml:"time_extend_seconds"`
	Prices             map[string]int `yaml:"prices"` // Keyed by power-up id
}

// EconomyConfig defines coin rewards.
type EconomyConfig struct {
	LevelReward int `yaml:"level_reward"`
}

// AutosaveConfig defines how often the host persists progress.
type AutosaveConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
