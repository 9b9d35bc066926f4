package progress

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/goldminer/internal/config"
	"github.com/vovakirdan/goldminer/internal/core"
	"github.com/vovakirdan/goldminer/internal/games/goldminer"
	"github.com/vovakirdan/goldminer/internal/storage"
)

// Session is one player's play session: the engine seeded from the stored
// profile, its session row and the autosaver that keeps the profile current.
type Session struct {
	ID     string // Empty when playing without storage
	Player string
	Engine *goldminer.Engine
	Saver  *Autosaver // Nil when playing without storage

	store  *storage.Store
	logger *log.Logger

	closeOnce sync.Once
	closeErr  error
}

// Open starts a session. The engine gets the stored coin balance and
// inventory. A nil store plays without persistence.
func Open(store *storage.Store, player string, surface *core.Screen, cfg config.GoldMinerConfig, logger *log.Logger, opts ...goldminer.Option) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}

	var profile storage.Profile
	if store != nil {
		var err error
		profile, err = store.LoadProfile(player)
		if err != nil {
			return nil, err
		}
	}

	opts = append([]goldminer.Option{goldminer.WithConfig(cfg)}, opts...)
	eng, err := goldminer.New(surface, profile.Coins, opts...)
	if err != nil {
		return nil, err
	}
	for id, count := range profile.Inventory {
		t, err := goldminer.ParsePowerUp(id)
		if err != nil {
			logger.Warn("Ignoring stored item", "player", player, "item", id)
			continue
		}
		eng.AddPowerUp(t, count)
	}

	s := &Session{
		Player: player,
		Engine: eng,
		store:  store,
		logger: logger,
	}
	if store == nil {
		return s, nil
	}

	s.ID, err = store.StartSession(player)
	if err != nil {
		return nil, err
	}
	s.Saver = New(player, eng, store, cfg.Autosave.Interval, logger)
	logger.Info("Session started", "player", player, "session", s.ID, "coins", profile.Coins)
	return s, nil
}

// Close ends the game, flushes progress and records the final score.
// Safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.Engine.Stop()
		st := s.Engine.State()
		if s.store == nil {
			return
		}

		var errs []error
		if err := s.Saver.Stop(); err != nil {
			errs = append(errs, err)
		}
		if st.Score > 0 {
			if _, err := s.store.SaveScore(s.Player, st.Score, st.Level); err != nil {
				errs = append(errs, err)
			}
		}
		if err := s.store.EndSession(s.ID, st.Score, st.Level); err != nil {
			errs = append(errs, err)
		}
		s.closeErr = errors.Join(errs...)

		s.logger.Info("Session ended", "player", s.Player, "session", s.ID, "score", st.Score, "level", st.Level)
	})
	return s.closeErr
}
