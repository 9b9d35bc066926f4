package goldminer

import (
	"math"
)

// Autopilot plays a session without a player. Each Step looks at one
// snapshot and issues at most one command, so it can be driven from any
// loop alongside the engine's own.
type Autopilot struct {
	// Tolerance is how close in radians the swing must be to the target
	// before the hook drops.
	Tolerance float64
}

// DefaultAutopilot returns an autopilot with a tolerance that suits the
// default swing speed at a 10 Hz polling rate.
func DefaultAutopilot() Autopilot {
	return Autopilot{Tolerance: 0.06}
}

// Step inspects the engine and acts once. It reports whether a command was
// issued.
func (a Autopilot) Step(e *Engine) bool {
	st := e.State()
	if st.Paused {
		return false
	}

	switch st.Status {
	case StatusLevelComplete, StatusLevelFailed:
		e.DropHook()
		return true
	case StatusPlaying:
	default:
		return false
	}

	if !st.Idle() {
		// Stones reel slowly; speed up if we can.
		if st.CaughtItem != nil && st.CaughtItem.Type == Stone && !st.Active.Has(PowerUpSpeedBoost) {
			return e.UsePowerUp(PowerUpSpeedBoost)
		}
		return false
	}

	if st.TimeLeft < 10 && e.UsePowerUp(PowerUpTimeExtend) {
		return true
	}

	geo := e.Geometry()
	target, ok := a.Target(st, geo)
	if !ok {
		return false
	}
	if math.Abs(target-st.HookAngle) <= a.Tolerance {
		e.DropHook()
		return true
	}
	return false
}

// Target returns the hook angle of the item worth the most per unit of
// reel time, among items within reach.
func (a Autopilot) Target(st State, geo Geometry) (float64, bool) {
	best, bestAngle := 0.0, 0.0
	found := false

	for _, item := range st.Items {
		if item.Caught {
			continue
		}
		dx, dy := item.X-geo.Pivot.X, item.Y-geo.Pivot.Y
		dist := math.Hypot(dx, dy)
		if dist-item.Size > geo.MaxHookLength || dy <= 0 {
			continue
		}

		worth := float64(item.Value) / (dist * (1 + item.Weight*0.1))
		if !found || worth > best {
			best, bestAngle, found = worth, math.Atan2(dy, dx), true
		}
	}
	return bestAngle, found
}
