package goldminer

import (
	"time"

	"github.com/vovakirdan/goldminer/internal/core"
)

// Status is the level-attempt state machine.
type Status int

const (
	StatusPlaying Status = iota
	StatusLevelComplete
	StatusLevelFailed
	StatusGameOver
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "PLAYING"
	case StatusLevelComplete:
		return "LEVEL_COMPLETE"
	case StatusLevelFailed:
		return "LEVEL_FAILED"
	case StatusGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// State is the full session state. The Engine owns the live copy; everything
// handed out by Engine.State is a deep copy.
type State struct {
	Score       int
	Coins       int
	Level       int
	TargetScore int
	TimeLeft    float64 // Seconds

	// Hook kinematics. Angle 0 points right, π/2 down, π left.
	HookAngle     float64
	HookDirection int // +1 or -1 while swinging
	HookLength    float64
	HookSpeed     float64
	Hooking       bool // Extending
	Returning     bool // Retracting

	CaughtItem *Item
	Items      []Item
	Status     Status

	PowerUps Inventory
	Active   ActiveEffects

	Paused    bool
	UpdatedAt time.Time // Clock reading the snapshot was taken at
}

// Idle reports whether the hook is swinging freely.
func (s State) Idle() bool {
	return !s.Hooking && !s.Returning
}

// Tip returns the hook tip position for the given pivot.
func (s State) Tip(pivot core.Vec2) core.Vec2 {
	return core.Polar(pivot, s.HookAngle, s.HookLength)
}

// Remaining returns how long a timed effect has left as of the snapshot.
func (s State) Remaining(t PowerUpType) time.Duration {
	if !s.Active.Has(t) {
		return 0
	}
	return s.Active[t].Remaining(s.UpdatedAt)
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Items = make([]Item, len(s.Items))
	copy(out.Items, s.Items)
	if s.CaughtItem != nil {
		item := *s.CaughtItem
		out.CaughtItem = &item
	}
	out.Active = s.Active.clone()
	return out
}
