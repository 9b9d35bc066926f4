package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "goldminer.yaml"

// LoadGoldMiner loads the gold miner configuration.
// Search order: customPath -> ~/.goldminer/configs/goldminer.yaml -> ./configs/goldminer.yaml -> embedded default.
// Files only need to contain the keys they override; everything else keeps its default.
func LoadGoldMiner(customPath string) (GoldMinerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GoldMinerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return GoldMinerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultGoldMinerYAML)
	if err != nil {
		return DefaultGoldMinerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the hard-coded defaults and validates the result.
func parse(data []byte) (GoldMinerConfig, error) {
	cfg := DefaultGoldMinerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports tuning values the engine cannot run with.
func (c GoldMinerConfig) Validate() error {
	var errs []error
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		errs = append(errs, errors.New("surface size must be positive"))
	}
	if c.Surface.GroundY < 0 || c.Surface.GroundY >= c.Surface.Height {
		errs = append(errs, errors.New("ground_y must lie inside the surface"))
	}
	if c.Hook.AngularSpeed <= 0 || c.Hook.DropSpeed <= 0 || c.Hook.ReturnSpeed <= 0 {
		errs = append(errs, errors.New("hook speeds must be positive"))
	}
	if c.Hook.MaxLength <= 0 {
		errs = append(errs, errors.New("hook max_length must be positive"))
	}
	if c.PowerUps.SpeedBoostFactor <= 0 {
		errs = append(errs, errors.New("speed_boost_factor must be positive"))
	}
	if c.Economy.LevelReward < 0 {
		errs = append(errs, errors.New("level_reward must not be negative"))
	}
	for id, price := range c.PowerUps.Prices {
		if price < 0 {
			errs = append(errs, fmt.Errorf("price for %s must not be negative", id))
		}
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".goldminer", "configs", filename)
}
