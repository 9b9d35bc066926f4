// Package shop sells power-ups for coins against the player's stored balance.
package shop

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/goldminer/internal/games/goldminer"
)

// ErrUnknownItem is returned for ids that are not in the catalog.
var ErrUnknownItem = errors.New("shop: unknown item")

// Purchaser runs the stored purchase. *storage.Store satisfies it.
type Purchaser interface {
	PurchasePowerUp(player, itemID string, price, count int) (int, error)
}

// LiveSession is the running engine a purchase is applied to.
type LiveSession interface {
	SetCoins(coins int)
	AddPowerUp(t goldminer.PowerUpType, count int)
}

// Syncer serializes a purchase against progress saves.
// *progress.Autosaver satisfies it.
type Syncer interface {
	Exclusive(fn func() error) error
}

// Receipt describes a completed purchase.
type Receipt struct {
	Item    goldminer.PowerUpInfo
	Count   int
	Cost    int
	Balance int
}

// Shop lists and sells catalog items at configured prices.
type Shop struct {
	store  Purchaser
	items  []goldminer.PowerUpInfo
	logger *log.Logger
}

// New creates a shop. Prices are keyed by power-up id and override the catalog.
func New(store Purchaser, prices map[string]int, logger *log.Logger) *Shop {
	if logger == nil {
		logger = log.Default()
	}
	return &Shop{
		store:  store,
		items:  goldminer.Catalog(prices),
		logger: logger,
	}
}

// List returns the items for sale in catalog order.
func (s *Shop) List() []goldminer.PowerUpInfo {
	out := make([]goldminer.PowerUpInfo, len(s.items))
	copy(out, s.items)
	return out
}

// Item looks up a catalog entry by id.
func (s *Shop) Item(id string) (goldminer.PowerUpInfo, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return goldminer.PowerUpInfo{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
}

// Buy purchases count units against the stored balance only.
func (s *Shop) Buy(player, id string, count int) (Receipt, error) {
	item, err := s.Item(id)
	if err != nil {
		return Receipt{}, err
	}

	balance, err := s.store.PurchasePowerUp(player, item.ID, item.Price, count)
	if err != nil {
		return Receipt{}, fmt.Errorf("shop: buy %s: %w", item.ID, err)
	}

	r := Receipt{Item: item, Count: count, Cost: item.Price * count, Balance: balance}
	s.logger.Info("Purchase", "player", player, "item", item.ID, "count", count, "cost", r.Cost, "balance", balance)
	return r, nil
}

// BuyLive purchases for a player with a session in progress. The live
// progress is flushed first so the stored balance is current, then the new
// balance and the units are applied to the session.
func (s *Shop) BuyLive(player, id string, count int, live LiveSession, sync Syncer) (Receipt, error) {
	var r Receipt
	err := sync.Exclusive(func() error {
		var err error
		r, err = s.Buy(player, id, count)
		if err != nil {
			return err
		}
		live.SetCoins(r.Balance)
		live.AddPowerUp(r.Item.Type, count)
		return nil
	})
	return r, err
}
