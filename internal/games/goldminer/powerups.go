package goldminer

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPowerUp is returned when a power-up id does not name a catalog entry.
var ErrUnknownPowerUp = errors.New("goldminer: unknown power-up")

// PowerUpType is the closed set of purchasable effects.
type PowerUpType int

const (
	PowerUpBomb PowerUpType = iota
	PowerUpMagnet
	PowerUpTimeExtend
	PowerUpDoubleCoins
	PowerUpSpeedBoost
	PowerUpTypeCount // Sentinel for counting types
)

var powerUpIDs = [PowerUpTypeCount]string{
	PowerUpBomb:        "bomb",
	PowerUpMagnet:      "magnet",
	PowerUpTimeExtend:  "time_extend",
	PowerUpDoubleCoins: "double_coins",
	PowerUpSpeedBoost:  "speed_boost",
}

// Valid reports whether t is a known power-up type.
func (t PowerUpType) Valid() bool {
	return t >= 0 && t < PowerUpTypeCount
}

// ID returns the stable identifier used in storage and config.
func (t PowerUpType) ID() string {
	if !t.Valid() {
		return "unknown"
	}
	return powerUpIDs[t]
}

// String returns the display name.
func (t PowerUpType) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return catalog[t].Name
}

// ParsePowerUp resolves a stable id such as "magnet".
func ParsePowerUp(id string) (PowerUpType, error) {
	for t, known := range powerUpIDs {
		if known == id {
			return PowerUpType(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPowerUp, id)
}

// PowerUpInfo is a read-only catalog entry.
type PowerUpInfo struct {
	Type        PowerUpType
	ID          string
	Name        string
	Description string
	Price       int
	Icon        rune
}

var catalog = [PowerUpTypeCount]PowerUpInfo{
	PowerUpBomb: {
		Type: PowerUpBomb, ID: "bomb", Name: "Bomb", Price: 50, Icon: '✸',
		Description: "Blows up every stone in the current level",
	},
	PowerUpMagnet: {
		Type: PowerUpMagnet, ID: "magnet", Name: "Magnet", Price: 80, Icon: 'Ʊ',
		Description: "Pulls nearby items toward the hook for 10 seconds",
	},
	PowerUpTimeExtend: {
		Type: PowerUpTimeExtend, ID: "time_extend", Name: "Time Extend", Price: 60, Icon: '⧗',
		Description: "Adds 30 seconds to the level timer",
	},
	PowerUpDoubleCoins: {
		Type: PowerUpDoubleCoins, ID: "double_coins", Name: "Double Coins", Price: 100, Icon: '¢',
		Description: "Doubles the coin reward for the next completed level",
	},
	PowerUpSpeedBoost: {
		Type: PowerUpSpeedBoost, ID: "speed_boost", Name: "Speed Boost", Price: 70, Icon: '»',
		Description: "Hook moves 1.5x faster for 15 seconds",
	},
}

// Catalog returns the five catalog entries in type order.
// Prices found in the overrides map (keyed by id) replace the built-in prices.
func Catalog(priceOverrides map[string]int) []PowerUpInfo {
	out := make([]PowerUpInfo, 0, PowerUpTypeCount)
	for _, info := range catalog {
		if price, ok := priceOverrides[info.ID]; ok {
			info.Price = price
		}
		out = append(out, info)
	}
	return out
}

// Inventory counts owned power-ups by type. Counts never go negative.
type Inventory [PowerUpTypeCount]int

// Effect is an active power-up record. Timed effects carry a start and a
// duration; flag effects stay until something consumes them.
type Effect struct {
	Start      time.Time
	Duration   time.Duration
	Multiplier float64
	Flag       bool
}

// Expired reports whether a timed effect has run out at now. Flags never expire.
func (e *Effect) Expired(now time.Time) bool {
	if e.Flag {
		return false
	}
	return now.Sub(e.Start) >= e.Duration
}

// Remaining returns the time left on a timed effect, or 0 for flags.
func (e *Effect) Remaining(now time.Time) time.Duration {
	if e.Flag {
		return 0
	}
	left := e.Duration - now.Sub(e.Start)
	if left < 0 {
		return 0
	}
	return left
}

// ActiveEffects holds at most one effect per type; nil means not active.
type ActiveEffects [PowerUpTypeCount]*Effect

// Has reports whether an effect of type t is present.
func (a ActiveEffects) Has(t PowerUpType) bool {
	return t.Valid() && a[t] != nil
}

// clone deep-copies the effect records.
func (a ActiveEffects) clone() ActiveEffects {
	var out ActiveEffects
	for t, e := range a {
		if e != nil {
			cp := *e
			out[t] = &cp
		}
	}
	return out
}
