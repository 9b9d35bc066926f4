package goldminer

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vovakirdan/goldminer/internal/config"
	"github.com/vovakirdan/goldminer/internal/core"
)

// ErrNoSurface is returned by New when the drawing surface cannot be drawn on.
var ErrNoSurface = errors.New("goldminer: surface has no drawable area")

// maxStep bounds a single physics substep so a slow frame cannot tunnel the
// hook through an item.
const maxStep = 1.0 / 60

// Geometry is the fixed world layout the engine simulates in.
type Geometry struct {
	Width, Height float64
	GroundY       float64
	Pivot         core.Vec2
	MaxHookLength float64
}

// Engine owns one play session. All mutation goes through its methods; it is
// safe to call from the optional loop goroutine and the host concurrently.
type Engine struct {
	mu sync.Mutex
	st State

	cfg     config.GoldMinerConfig
	geo     Geometry
	surface *core.Screen
	clock   core.Clock
	rng     *rand.Rand
	seed    uint64
	seeded  bool

	fps     int
	onFrame func(State)

	lastFrame time.Time
	pausedAt  time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default tuning.
func WithConfig(cfg config.GoldMinerConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithClock sets the time source for frame deltas and effect expiry.
func WithClock(c core.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSeed makes item placement deterministic.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// WithFrameRate sets how often the Start loop ticks.
func WithFrameRate(fps int) Option {
	return func(e *Engine) {
		if fps > 0 {
			e.fps = fps
		}
	}
}

// WithFrameHook registers a callback the Start loop invokes with a snapshot
// after every frame.
func WithFrameHook(fn func(State)) Option {
	return func(e *Engine) { e.onFrame = fn }
}

// New creates an engine at level 1 with the given coin balance.
func New(surface *core.Screen, initialCoins int, opts ...Option) (*Engine, error) {
	if surface == nil || surface.Width() <= 0 || surface.Height() <= 0 {
		return nil, ErrNoSurface
	}

	e := &Engine{
		cfg:     config.DefaultGoldMinerConfig(),
		surface: surface,
		clock:   core.SystemClock{},
		fps:     60,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if !e.seeded {
		e.seed = uint64(e.clock.Now().UnixNano())
	}
	e.rng = rand.New(rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15))

	e.geo = Geometry{
		Width:         e.cfg.Surface.Width,
		Height:        e.cfg.Surface.Height,
		GroundY:       e.cfg.Surface.GroundY,
		Pivot:         core.Vec2{X: e.cfg.Hook.PivotX, Y: e.cfg.Hook.PivotY},
		MaxHookLength: e.cfg.Hook.MaxLength,
	}

	e.st = State{
		Coins: max(0, initialCoins),
		Level: 1,
	}
	e.initLevel()
	e.lastFrame = e.clock.Now()
	return e, nil
}

// Geometry returns the world layout.
func (e *Engine) Geometry() Geometry {
	return e.geo
}

// Start runs the self-driving loop until ctx is done or Stop is called.
// Calling Start on a running engine does nothing.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.done != nil {
		e.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	e.cancel = cancel
	e.done = done
	e.lastFrame = e.clock.Now()
	e.mu.Unlock()

	go e.run(ctx, done)
}

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(time.Second / time.Duration(e.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick()
			e.Draw()
			if e.onFrame != nil {
				e.onFrame(e.State())
			}
		}
	}
}

// Stop ends the session: the loop (if running) exits and the status becomes
// GAME_OVER. Further ticks and drops are ignored.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.st.Status = StatusGameOver
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Pause freezes the simulation. Rendering keeps working.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Paused {
		return
	}
	e.st.Paused = true
	e.pausedAt = e.clock.Now()
}

// Resume continues a paused simulation without charging the paused span to
// the level timer or to running effects.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.st.Paused {
		return
	}
	now := e.clock.Now()
	span := now.Sub(e.pausedAt)
	for _, eff := range e.st.Active {
		if eff != nil && !eff.Flag {
			eff.Start = eff.Start.Add(span)
		}
	}
	e.st.Paused = false
	e.lastFrame = now
}

// DropHook is the single player action. While playing it starts a drop unless
// the hook is already moving; after a level ends it continues (advance or retry).
func (e *Engine) DropHook() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Paused {
		return
	}

	switch e.st.Status {
	case StatusLevelComplete:
		e.advanceLevel()
	case StatusLevelFailed:
		e.restartLevel()
	case StatusPlaying:
		if !e.st.Idle() {
			return
		}
		e.st.Hooking = true
		e.st.HookLength = 0
		e.st.HookSpeed = e.cfg.Hook.DropSpeed * e.boost(e.clock.Now())
	}
}

// AddPowerUp grants count units of a power-up. Invalid types and
// non-positive counts are ignored.
func (e *Engine) AddPowerUp(t PowerUpType, count int) {
	if !t.Valid() || count <= 0 {
		return
	}
	e.mu.Lock()
	e.st.PowerUps[t] += count
	e.mu.Unlock()
}

// PowerUpCount returns the owned units of a power-up.
func (e *Engine) PowerUpCount(t PowerUpType) int {
	if !t.Valid() {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.PowerUps[t]
}

// UsePowerUp consumes one unit and applies its effect.
// It returns false when none are owned.
func (e *Engine) UsePowerUp(t PowerUpType) bool {
	if !t.Valid() {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.PowerUps[t] <= 0 {
		return false
	}
	e.st.PowerUps[t]--

	now := e.clock.Now()
	if e.st.Paused {
		// Resume shifts effect starts by the paused span.
		now = e.pausedAt
	}
	pu := e.cfg.PowerUps

	switch t {
	case PowerUpBomb:
		kept := e.st.Items[:0]
		for _, item := range e.st.Items {
			if item.Type != Stone {
				kept = append(kept, item)
			}
		}
		e.st.Items = kept
	case PowerUpMagnet:
		e.st.Active[t] = &Effect{Start: now, Duration: pu.MagnetDuration}
	case PowerUpTimeExtend:
		e.st.TimeLeft += pu.TimeExtendSeconds
	case PowerUpDoubleCoins:
		e.st.Active[t] = &Effect{Flag: true}
	case PowerUpSpeedBoost:
		e.st.Active[t] = &Effect{Start: now, Duration: pu.SpeedBoostDuration, Multiplier: pu.SpeedBoostFactor}
	}
	return true
}

// SetCoins overrides the coin balance with the host's authoritative value.
func (e *Engine) SetCoins(coins int) {
	e.mu.Lock()
	e.st.Coins = max(0, coins)
	e.mu.Unlock()
}

// State returns a deep copy of the session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.st.Clone()
	st.UpdatedAt = e.clock.Now()
	if st.Paused {
		st.UpdatedAt = e.pausedAt
	}
	return st
}

// Draw renders the current state onto the engine's surface.
func (e *Engine) Draw() {
	st := e.State()
	e.mu.Lock()
	defer e.mu.Unlock()
	Render(e.surface, st, e.geo)
}

// Tick advances the simulation by the clock time elapsed since the previous tick.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	dt := now.Sub(e.lastFrame).Seconds()
	e.lastFrame = now

	if e.st.Paused || e.st.Status != StatusPlaying || dt <= 0 {
		return
	}
	e.update(now, dt)
}

// update runs one frame: effects, timer, then hook physics in substeps.
func (e *Engine) update(now time.Time, dt float64) {
	e.updateEffects(now, dt)

	e.st.TimeLeft -= dt
	if e.st.TimeLeft <= 0 {
		e.st.TimeLeft = 0
		if e.st.Score >= e.st.TargetScore {
			e.st.Status = StatusLevelComplete
		} else {
			e.st.Status = StatusLevelFailed
		}
		return
	}

	steps := int(math.Ceil(dt / maxStep))
	h := dt / float64(steps)
	for range steps {
		switch {
		case e.st.Hooking:
			e.stepDrop(now, h)
		case e.st.Returning:
			e.stepReturn(h)
		default:
			e.stepSwing(h)
		}
	}
}

// updateEffects drops expired timed effects and applies the magnet pull.
func (e *Engine) updateEffects(now time.Time, dt float64) {
	for t, eff := range e.st.Active {
		if eff != nil && eff.Expired(now) {
			e.st.Active[t] = nil
		}
	}

	if !e.st.Active.Has(PowerUpMagnet) {
		return
	}
	tip := e.st.Tip(e.geo.Pivot)
	radius := e.cfg.PowerUps.MagnetRadius
	pull := e.cfg.PowerUps.MagnetPull * dt
	for i := range e.st.Items {
		item := &e.st.Items[i]
		if item.Caught {
			continue
		}
		pos := core.Vec2{X: item.X, Y: item.Y}
		if pos.Dist(tip) > radius {
			continue
		}
		pos = pos.Lerp(tip, pull)
		item.X, item.Y = pos.X, pos.Y
	}
}

func (e *Engine) stepSwing(dt float64) {
	e.st.HookAngle += e.cfg.Hook.AngularSpeed * float64(e.st.HookDirection) * dt
	if e.st.HookAngle <= 0 {
		e.st.HookAngle = 0
		e.st.HookDirection = 1
	} else if e.st.HookAngle >= math.Pi {
		e.st.HookAngle = math.Pi
		e.st.HookDirection = -1
	}
}

func (e *Engine) stepDrop(now time.Time, dt float64) {
	e.st.HookLength = math.Min(e.st.HookLength+e.st.HookSpeed*dt, e.geo.MaxHookLength)
	tip := e.st.Tip(e.geo.Pivot)

	for i := range e.st.Items {
		item := &e.st.Items[i]
		if item.Caught {
			continue
		}
		if tip.Dist(core.Vec2{X: item.X, Y: item.Y}) < item.Size {
			item.Caught = true
			caught := *item
			e.st.CaughtItem = &caught
			e.st.Hooking = false
			e.st.Returning = true
			e.st.HookSpeed = e.cfg.Hook.ReturnSpeed / (1 + item.Weight*0.1) * e.boost(now)
			return
		}
	}

	if e.st.HookLength >= e.geo.MaxHookLength || tip.Y >= e.geo.Height-e.cfg.Hook.BottomMargin {
		e.st.Hooking = false
		e.st.Returning = true
		e.st.HookSpeed = e.cfg.Hook.ReturnSpeed * e.boost(now)
	}
}

func (e *Engine) stepReturn(dt float64) {
	e.st.HookLength -= e.st.HookSpeed * dt
	if e.st.HookLength > 0 {
		return
	}
	e.st.HookLength = 0
	e.st.Returning = false
	if e.st.CaughtItem != nil {
		e.st.Score += e.st.CaughtItem.Value
		e.st.CaughtItem = nil
	}
}

// boost returns the active speed multiplier, 1 when no boost is running.
func (e *Engine) boost(now time.Time) float64 {
	eff := e.st.Active[PowerUpSpeedBoost]
	if eff == nil || eff.Expired(now) {
		return 1
	}
	return eff.Multiplier
}

// initLevel regenerates the level for the current level number.
// Score and coins are left alone.
func (e *Engine) initLevel() {
	e.st.Items = GenerateItems(e.rng, e.st.Level, e.geo.Width, e.geo.Height, e.geo.GroundY)
	e.st.HookAngle = 0
	e.st.HookDirection = 1
	e.st.HookLength = 0
	e.st.HookSpeed = 0
	e.st.Hooking = false
	e.st.Returning = false
	e.st.CaughtItem = nil
	e.st.TimeLeft = TimeLimit(e.st.Level)
	e.st.TargetScore = TargetScore(e.st.Level)
	e.st.Status = StatusPlaying
}

func (e *Engine) restartLevel() {
	e.st.Score = 0
	e.initLevel()
}

func (e *Engine) advanceLevel() {
	reward := e.cfg.Economy.LevelReward
	if e.st.Active.Has(PowerUpDoubleCoins) {
		reward *= 2
		e.st.Active[PowerUpDoubleCoins] = nil
	}
	if e.st.Coins > math.MaxInt-reward {
		e.st.Coins = math.MaxInt
	} else {
		e.st.Coins += reward
	}
	e.st.Level++
	e.initLevel()
}
