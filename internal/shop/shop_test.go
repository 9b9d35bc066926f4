package shop

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/goldminer/internal/core"
	"github.com/vovakirdan/goldminer/internal/games/goldminer"
	"github.com/vovakirdan/goldminer/internal/progress"
	"github.com/vovakirdan/goldminer/internal/storage"
)

func setup(t *testing.T) (*Shop, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, map[string]int{"bomb": 25}, log.New(io.Discard)), store
}

func TestList(t *testing.T) {
	s, _ := setup(t)
	items := s.List()
	require.Len(t, items, int(goldminer.PowerUpTypeCount))
	assert.Equal(t, "bomb", items[0].ID)
	assert.Equal(t, 25, items[0].Price)

	items[0].Price = 0
	assert.Equal(t, 25, s.List()[0].Price, "List must return a copy")
}

func TestItemUnknown(t *testing.T) {
	s, _ := setup(t)
	_, err := s.Item("rocket")
	require.ErrorIs(t, err, ErrUnknownItem)

	_, err = s.Buy("ana", "rocket", 1)
	require.ErrorIs(t, err, ErrUnknownItem)
}

func TestBuy(t *testing.T) {
	s, store := setup(t)
	require.NoError(t, store.SaveProgress("ana", storage.Progress{Coins: 100, Level: 1}))

	r, err := s.Buy("ana", "bomb", 3)
	require.NoError(t, err)
	assert.Equal(t, 75, r.Cost)
	assert.Equal(t, 25, r.Balance)
	assert.Equal(t, goldminer.PowerUpBomb, r.Item.Type)

	_, err = s.Buy("ana", "bomb", 2)
	require.ErrorIs(t, err, storage.ErrInsufficientCoins)

	inv, err := store.Inventory("ana")
	require.NoError(t, err)
	assert.Equal(t, 3, inv["bomb"])
}

func TestBuyLive(t *testing.T) {
	s, store := setup(t)

	eng, err := goldminer.New(core.NewScreen(80, 24), 200,
		goldminer.WithSeed(3),
		goldminer.WithClock(core.NewManualClock(time.Unix(0, 0))),
	)
	require.NoError(t, err)
	saver := progress.New("ana", eng, store, time.Minute, log.New(io.Discard))

	// Live coins reach storage through the flush before the purchase.
	r, err := s.BuyLive("ana", "magnet", 2, eng, saver)
	require.NoError(t, err)
	assert.Equal(t, 40, r.Balance)

	st := eng.State()
	assert.Equal(t, 40, st.Coins)
	assert.Equal(t, 2, eng.PowerUpCount(goldminer.PowerUpMagnet))

	require.NoError(t, saver.Flush())
	p, err := store.LoadProfile("ana")
	require.NoError(t, err)
	assert.Equal(t, 40, p.Coins)
	assert.Equal(t, 2, p.Inventory["magnet"])

	_, err = s.BuyLive("ana", "double_coins", 1, eng, saver)
	require.ErrorIs(t, err, storage.ErrInsufficientCoins)
	assert.Equal(t, 40, eng.State().Coins)
	assert.Zero(t, eng.PowerUpCount(goldminer.PowerUpDoubleCoins))
}
