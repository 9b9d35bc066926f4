package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/goldminer.yaml
var defaultGoldMinerYAML []byte

// DefaultGoldMinerConfig returns the built-in tuning.
// It mirrors defaults/goldminer.yaml and is used when the embedded file cannot be parsed.
func DefaultGoldMinerConfig() GoldMinerConfig {
	return GoldMinerConfig{
		Surface: SurfaceConfig{
			Width:   800,
			Height:  600,
			GroundY: 110,
		},
		Hook: HookConfig{
			PivotX:       400,
			PivotY:       100,
			AngularSpeed: 1.25,
			DropSpeed:    300,
			ReturnSpeed:  300,
			MaxLength:    500,
			BottomMargin: 10,
		},
		PowerUps: PowerUpConfig{
			MagnetDuration:     10 * time.Second,
			MagnetRadius:       100,
			MagnetPull:         3,
			SpeedBoostDuration: 15 * time.Second,
			SpeedBoostFactor:   1.5,
			TimeExtendSeconds:  30,
			Prices: map[string]int{
				"bomb":         50,
				"magnet":       80,
				"time_extend":  60,
				"double_coins": 100,
				"speed_boost":  70,
			},
		},
		Economy: EconomyConfig{
			LevelReward: 10,
		},
		Autosave: AutosaveConfig{
			Interval: 5 * time.Second,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultGoldMinerYAML
}
