package goldminer

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/goldminer/internal/core"
)

func testGeometry() Geometry {
	return Geometry{
		Width:         800,
		Height:        600,
		GroundY:       110,
		Pivot:         core.Vec2{X: 400, Y: 100},
		MaxHookLength: 500,
	}
}

func testState() State {
	return State{
		Level:         1,
		TargetScore:   1000,
		TimeLeft:      60,
		HookDirection: 1,
		HookAngle:     math.Pi / 2,
		Items: []Item{
			{ID: 1, Type: Diamond, X: 100, Y: 400, Size: 20},
			{ID: 2, Type: Bag, X: 700, Y: 500, Size: 28, Caught: true},
		},
	}
}

func TestRenderScene(t *testing.T) {
	screen := core.NewScreen(80, 24)
	Render(screen, testState(), testGeometry())
	out := screen.String()

	if !strings.Contains(screen.Row(0), "Lv 1") {
		t.Errorf("HUD row missing level: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Time 60s") {
		t.Errorf("HUD row missing timer: %q", screen.Row(0))
	}
	if !strings.ContainsRune(out, PivotChar) {
		t.Error("pivot not drawn")
	}
	if !strings.ContainsRune(out, '◆') {
		t.Error("diamond not drawn")
	}
	if strings.ContainsRune(out, '$') {
		t.Error("caught item drawn in the field")
	}
	if !strings.ContainsRune(out, AimChar) {
		t.Error("aim line not drawn while idle")
	}
	if !strings.ContainsRune(out, GroundChar) {
		t.Error("ground strip not drawn")
	}
}

func TestRenderHookWithCaughtItem(t *testing.T) {
	st := testState()
	st.Returning = true
	st.HookLength = 200
	st.CaughtItem = &Item{ID: 2, Type: Bag}

	screen := core.NewScreen(80, 24)
	Render(screen, st, testGeometry())
	out := screen.String()

	if !strings.ContainsRune(out, '│') {
		t.Error("vertical arm not drawn")
	}
	if !strings.ContainsRune(out, '$') {
		t.Error("caught item not drawn at the tip")
	}
	if strings.ContainsRune(out, AimChar) {
		t.Error("aim line drawn while the hook is moving")
	}
}

func TestRenderOverlay(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*State)
		expected string
	}{
		{"complete", func(s *State) { s.Status = StatusLevelComplete }, "LEVEL 1 COMPLETE"},
		{"failed", func(s *State) { s.Status = StatusLevelFailed }, "LEVEL 1 FAILED"},
		{"game over", func(s *State) { s.Status = StatusGameOver }, "GAME OVER"},
		{"paused", func(s *State) { s.Paused = true }, "PAUSED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState()
			tt.mutate(&st)
			screen := core.NewScreen(80, 24)
			Render(screen, st, testGeometry())
			if !strings.Contains(screen.String(), tt.expected) {
				t.Errorf("overlay missing %q", tt.expected)
			}
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	screen := core.NewScreen(20, 5)
	Render(screen, testState(), testGeometry())
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected size warning, got:\n%s", screen.String())
	}
}

func TestRenderDoesNotMutateState(t *testing.T) {
	st := testState()
	before := st.Clone()
	Render(core.NewScreen(80, 24), st, testGeometry())

	for i := range st.Items {
		if st.Items[i] != before.Items[i] {
			t.Errorf("item %d changed: %+v -> %+v", i, before.Items[i], st.Items[i])
		}
	}
}

func TestAngleDial(t *testing.T) {
	tests := []struct {
		angle    float64
		marker   int
		expected string
	}{
		{0, 11, "  0°"},
		{math.Pi / 2, 6, " 90°"},
		{math.Pi, 1, "180°"},
	}

	for _, tt := range tests {
		dial := []rune(angleDial(tt.angle))
		if dial[tt.marker] != '●' {
			t.Errorf("angleDial(%v) = %q, marker expected at %d", tt.angle, string(dial), tt.marker)
		}
		if !strings.HasSuffix(string(dial), tt.expected) {
			t.Errorf("angleDial(%v) = %q, expected suffix %q", tt.angle, string(dial), tt.expected)
		}
	}
}
