package goldminer

import "math"

// TimeLimit returns the countdown for a level in seconds.
//
//	1-3:  60
//	4-6:  60 - (level-3)*5   (55, 50, 45)
//	7-10: 45 - (level-6)*3   (42, 39, 36, 33)
//	11+:  27 - (level-10), never below 20
func TimeLimit(level int) float64 {
	switch {
	case level <= 3:
		return 60
	case level <= 6:
		return float64(60 - (level-3)*5)
	case level <= 10:
		return float64(45 - (level-6)*3)
	default:
		return float64(max(20, 27-(level-10)))
	}
}

// TargetScore returns the score needed to clear a level: 1000 at level 1, then
// compounding x1.5 per level with a linear 5% per-level bonus on top.
// Saturates at math.MaxInt for levels whose target no longer fits.
func TargetScore(level int) int {
	if level <= 1 {
		return 1000
	}
	n := float64(level - 1)
	target := math.Floor(1000 * math.Pow(1.5, n) * (1 + n*0.05))
	if target >= math.MaxInt {
		return math.MaxInt
	}
	return int(target)
}
