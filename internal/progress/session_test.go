package progress

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/goldminer/internal/config"
	"github.com/vovakirdan/goldminer/internal/core"
	"github.com/vovakirdan/goldminer/internal/games/goldminer"
	"github.com/vovakirdan/goldminer/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionLoadsProfile(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveProgress("ana", storage.Progress{
		Coins:     120,
		Level:     4,
		Inventory: map[string]int{"bomb": 2, "relic": 1},
	}))

	s, err := Open(store, "ana", core.NewScreen(80, 24), config.DefaultGoldMinerConfig(), quietLogger(),
		goldminer.WithSeed(9),
		goldminer.WithClock(core.NewManualClock(time.Unix(0, 0))),
	)
	require.NoError(t, err)
	defer s.Close()

	st := s.Engine.State()
	assert.Equal(t, 120, st.Coins)
	assert.Equal(t, 1, st.Level, "sessions always start at level 1")
	assert.Equal(t, 2, s.Engine.PowerUpCount(goldminer.PowerUpBomb))
	assert.Len(t, s.ID, 36)
	require.NotNil(t, s.Saver)
}

func TestSessionCloseRecordsScore(t *testing.T) {
	store := openStore(t)
	clock := core.NewManualClock(time.Unix(0, 0))

	s, err := Open(store, "bo", core.NewScreen(80, 24), config.DefaultGoldMinerConfig(), quietLogger(),
		goldminer.WithSeed(9),
		goldminer.WithClock(clock),
	)
	require.NoError(t, err)

	s.Engine.SetCoins(35)
	s.Engine.AddPowerUp(goldminer.PowerUpMagnet, 1)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "second Close is a no-op")

	assert.Equal(t, goldminer.StatusGameOver, s.Engine.State().Status)

	p, err := store.LoadProfile("bo")
	require.NoError(t, err)
	assert.Equal(t, 35, p.Coins)
	assert.Equal(t, 1, p.Inventory["magnet"])

	sessions, err := store.RecentSessions("bo", 5)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, s.ID, sessions[0].ID)
	assert.False(t, sessions[0].EndedAt.IsZero())

	// Zero scores are not worth a scoreboard row.
	scores, err := store.TopScores(10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestSessionWithoutStore(t *testing.T) {
	s, err := Open(nil, "guest", core.NewScreen(80, 24), config.DefaultGoldMinerConfig(), quietLogger())
	require.NoError(t, err)

	assert.Empty(t, s.ID)
	assert.Nil(t, s.Saver)
	assert.Equal(t, 0, s.Engine.State().Coins)
	require.NoError(t, s.Close())
}

func TestSessionRejectsBadSurface(t *testing.T) {
	_, err := Open(nil, "guest", nil, config.DefaultGoldMinerConfig(), quietLogger())
	require.ErrorIs(t, err, goldminer.ErrNoSurface)
}
