package goldminer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutopilotTargetPrefersValueForDistance(t *testing.T) {
	e, _ := newTestEngine(t)
	geo := e.Geometry()
	st := e.State()

	below := Item{Type: LargeGold, X: geo.Pivot.X, Y: geo.Pivot.Y + 100, Value: 500, Weight: 5, Size: 20}
	far := Item{Type: SmallGold, X: geo.Pivot.X + 100, Y: geo.Pivot.Y + 100, Value: 50, Weight: 1, Size: 8}
	st.Items = []Item{far, below}

	angle, ok := DefaultAutopilot().Target(st, geo)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, angle, 1e-9)
}

func TestAutopilotTargetSkipsOutOfReach(t *testing.T) {
	e, _ := newTestEngine(t)
	geo := e.Geometry()
	st := e.State()

	st.Items = []Item{
		{Type: Diamond, X: geo.Pivot.X, Y: geo.Pivot.Y + geo.MaxHookLength + 100, Value: 600, Size: 10},
		{Type: Stone, X: geo.Pivot.X, Y: geo.Pivot.Y + 50, Value: 20, Size: 30, Caught: true},
	}

	_, ok := DefaultAutopilot().Target(st, geo)
	assert.False(t, ok)
}

func TestAutopilotDropsWhenAligned(t *testing.T) {
	e, _ := newTestEngine(t)
	geo := e.Geometry()
	aimDown(e, Item{Type: MediumGold, X: geo.Pivot.X, Y: geo.Pivot.Y + 120, Value: 200, Weight: 3, Size: 15})

	require.True(t, DefaultAutopilot().Step(e))
	assert.True(t, e.State().Hooking)

	// Hook is busy; nothing more to do.
	assert.False(t, DefaultAutopilot().Step(e))
}

func TestAutopilotWaitsForSwing(t *testing.T) {
	e, _ := newTestEngine(t)
	geo := e.Geometry()
	aimDown(e, Item{Type: MediumGold, X: geo.Pivot.X, Y: geo.Pivot.Y + 120, Value: 200, Weight: 3, Size: 15})
	e.mu.Lock()
	e.st.HookAngle = math.Pi / 4
	e.mu.Unlock()

	assert.False(t, DefaultAutopilot().Step(e))
	st := e.State()
	assert.True(t, st.Idle())
}

func TestAutopilotContinuesAfterLevelEnds(t *testing.T) {
	e, _ := newTestEngine(t)
	e.mu.Lock()
	e.st.Status = StatusLevelComplete
	e.mu.Unlock()

	require.True(t, DefaultAutopilot().Step(e))
	st := e.State()
	assert.Equal(t, 2, st.Level)
	assert.Equal(t, StatusPlaying, st.Status)
}

func TestAutopilotIdleWhenStopped(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Stop()
	assert.False(t, DefaultAutopilot().Step(e))
}
