package config

// presetScale holds multipliers a preset applies on top of the loaded tuning.
type presetScale struct {
	swing  float64 // Angular speed multiplier; a faster swing is harder to aim
	reel   float64 // Drop and return speed multiplier
	reward float64 // Level reward multiplier
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {swing: 0.8, reel: 1.2, reward: 1.0},
	DifficultyNormal: {swing: 1.0, reel: 1.0, reward: 1.0},
	DifficultyHard:   {swing: 1.3, reel: 0.85, reward: 2.0},
}

// ApplyGoldMinerPreset modifies the config based on a difficulty preset.
// An empty or unknown preset leaves the config untouched.
func ApplyGoldMinerPreset(cfg *GoldMinerConfig, preset DifficultyPreset) {
	scale, ok := presetScales[preset]
	if !ok {
		return
	}

	cfg.Hook.AngularSpeed *= scale.swing
	cfg.Hook.DropSpeed *= scale.reel
	cfg.Hook.ReturnSpeed *= scale.reel
	cfg.Economy.LevelReward = int(float64(cfg.Economy.LevelReward) * scale.reward)
}
