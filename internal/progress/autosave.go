// Package progress persists a running session's score, coins, level and
// inventory on a fixed interval.
package progress

import (
	"maps"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/goldminer/internal/games/goldminer"
	"github.com/vovakirdan/goldminer/internal/storage"
)

// Source is what the autosaver polls. *goldminer.Engine satisfies it.
type Source interface {
	State() goldminer.State
}

// Sink persists progress. *storage.Store satisfies it.
type Sink interface {
	SaveProgress(player string, p storage.Progress) error
}

// Snapshot converts a session state into the persisted progress record.
func Snapshot(st goldminer.State) storage.Progress {
	inv := make(map[string]int, goldminer.PowerUpTypeCount)
	for t, count := range st.PowerUps {
		inv[goldminer.PowerUpType(t).ID()] = count
	}
	return storage.Progress{
		Score:     st.Score,
		Coins:     st.Coins,
		Level:     st.Level,
		Inventory: inv,
	}
}

// Autosaver polls a Source and writes to a Sink. Saves are best effort:
// failures are logged and retried on the next poll.
type Autosaver struct {
	mu       sync.Mutex
	player   string
	src      Source
	sink     Sink
	interval time.Duration
	logger   *log.Logger

	last    storage.Progress
	saved   bool
	stop    chan struct{}
	stopped chan struct{}
}

// New creates an autosaver. A nil logger uses the package default.
func New(player string, src Source, sink Sink, interval time.Duration, logger *log.Logger) *Autosaver {
	if logger == nil {
		logger = log.Default()
	}
	return &Autosaver{
		player:   player,
		src:      src,
		sink:     sink,
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the poll interval.
func (a *Autosaver) Interval() time.Duration {
	return a.interval
}

// Start polls in the background until Stop. Hosts that have their own
// timer (the TUI) call Flush instead.
func (a *Autosaver) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil || a.interval <= 0 {
		return
	}
	a.stop = make(chan struct{})
	a.stopped = make(chan struct{})
	go a.loop(a.stop, a.stopped)
}

func (a *Autosaver) loop(stop, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Flush()
		case <-stop:
			return
		}
	}
}

// Stop ends background polling and performs a final flush.
func (a *Autosaver) Stop() error {
	a.mu.Lock()
	stop, stopped := a.stop, a.stopped
	a.stop, a.stopped = nil, nil
	a.mu.Unlock()

	if stop != nil {
		close(stop)
		<-stopped
	}
	return a.Flush()
}

// Flush saves the current state now. Unchanged progress is not rewritten.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushLocked()
}

func (a *Autosaver) flushLocked() error {
	p := Snapshot(a.src.State())
	if a.saved && sameProgress(p, a.last) {
		return nil
	}

	if err := a.sink.SaveProgress(a.player, p); err != nil {
		a.logger.Warn("Autosave failed", "player", a.player, "error", err)
		return err
	}
	a.last = p
	a.saved = true
	a.logger.Debug("Progress saved", "player", a.player, "level", p.Level, "score", p.Score, "coins", p.Coins)
	return nil
}

// Exclusive flushes and then runs fn with saves held off, so fn can change
// stored and live state together without an autosave interleaving.
func (a *Autosaver) Exclusive(fn func() error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.flushLocked(); err != nil {
		return err
	}
	return fn()
}

func sameProgress(a, b storage.Progress) bool {
	return a.Score == b.Score && a.Coins == b.Coins && a.Level == b.Level &&
		maps.Equal(a.Inventory, b.Inventory)
}
