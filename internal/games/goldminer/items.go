// Package goldminer implements the Gold Miner engine: a swinging hook that drops
// into a field of procedurally placed items under a level countdown.
package goldminer

import (
	"math"
	"math/rand/v2"
)

// ItemType identifies what an item is worth and how it behaves on the hook.
type ItemType int

const (
	SmallGold ItemType = iota
	MediumGold
	LargeGold
	Diamond
	Stone
	Bag
	itemTypeCount // Sentinel for counting types
)

// String returns the name of the item type.
func (t ItemType) String() string {
	switch t {
	case SmallGold:
		return "small gold"
	case MediumGold:
		return "medium gold"
	case LargeGold:
		return "large gold"
	case Diamond:
		return "diamond"
	case Stone:
		return "stone"
	case Bag:
		return "bag"
	default:
		return "?"
	}
}

// ItemSpec holds the fixed per-type constants.
type ItemSpec struct {
	Value  int
	Weight float64
	Size   float64
}

var itemSpecs = [itemTypeCount]ItemSpec{
	SmallGold:  {Value: 50, Weight: 1, Size: 15},
	MediumGold: {Value: 100, Weight: 2, Size: 25},
	LargeGold:  {Value: 200, Weight: 3, Size: 35},
	Diamond:    {Value: 500, Weight: 1, Size: 20},
	Stone:      {Value: 0, Weight: 5, Size: 30},
	Bag:        {Value: 300, Weight: 2, Size: 28},
}

// Spec returns the constants for an item type.
func (t ItemType) Spec() ItemSpec {
	if t < 0 || t >= itemTypeCount {
		return ItemSpec{}
	}
	return itemSpecs[t]
}

// Item is a collectible placed in the level.
type Item struct {
	ID     int
	Type   ItemType
	X, Y   float64 // Center in world units
	Value  int     // Score awarded when reeled in
	Weight float64 // Slows retraction
	Size   float64 // Catch radius
	Caught bool
}

// DifficultyParams is the content-generation policy for one level.
type DifficultyParams struct {
	ItemCount int
	// Probabilities is indexed by ItemType and sums to 1.
	Probabilities [itemTypeCount]float64
	// SpreadFactor scales the area items are scattered over.
	SpreadFactor float64
}

// Probability tables per level band: small, medium, large, diamond, stone, bag.
var bandProbabilities = [4][itemTypeCount]float64{
	{0.30, 0.25, 0.15, 0.10, 0.10, 0.10}, // levels 1-3
	{0.28, 0.24, 0.13, 0.08, 0.17, 0.10}, // levels 4-6
	{0.26, 0.22, 0.12, 0.06, 0.24, 0.10}, // levels 7-10
	{0.24, 0.20, 0.10, 0.05, 0.31, 0.10}, // levels 11+
}

var bandSpread = [4]float64{0.6, 0.8, 1.0, 1.2}

const maxSpreadFactor = 1.2

// levelBand maps a level to its difficulty band index.
func levelBand(level int) int {
	switch {
	case level <= 3:
		return 0
	case level <= 6:
		return 1
	case level <= 10:
		return 2
	default:
		return 3
	}
}

// Difficulty returns the content-generation policy for a level.
// Levels below 1 are treated as level 1.
func Difficulty(level int) DifficultyParams {
	if level < 1 {
		level = 1
	}

	var count int
	switch levelBand(level) {
	case 0:
		count = 12 + level*2
	case 1:
		count = 18 + (level-3)*3
	case 2:
		count = 25 + (level-6)*2
	default:
		count = 30 + min(level-10, 10)
	}

	band := levelBand(level)
	return DifficultyParams{
		ItemCount:     count,
		Probabilities: bandProbabilities[band],
		SpreadFactor:  bandSpread[band],
	}
}

// pickType samples an item type from the cumulative distribution with one draw.
func (p DifficultyParams) pickType(roll float64) ItemType {
	cumulative := 0.0
	for t, prob := range p.Probabilities {
		cumulative += prob
		if roll < cumulative {
			return ItemType(t)
		}
	}
	// Rounding can leave the last bucket a hair short of 1.0
	return itemTypeCount - 1
}

// largestItemSize is the biggest catch radius of any item type.
var largestItemSize = func() float64 {
	largest := 0.0
	for _, spec := range itemSpecs {
		largest = math.Max(largest, spec.Size)
	}
	return largest
}()

// GenerateItems places the items for a level on a width x height surface
// whose ground strip starts at groundY. Items are scattered uniformly inside
// a rectangle centered horizontally. It starts 30% down the surface or one
// item size below the ground line, whichever is deeper; higher spread
// factors widen and deepen it.
func GenerateItems(rng *rand.Rand, level int, width, height, groundY float64) []Item {
	params := Difficulty(level)

	marginX := math.Min(40, width/10)
	marginY := math.Min(40, height/10)
	spread := params.SpreadFactor / maxSpreadFactor

	halfW := (width/2 - marginX) * spread
	centerX := width / 2
	top := math.Min(math.Max(height*0.3, groundY+largestItemSize), height)
	areaH := math.Max(0, (height-marginY-top)*(0.5+0.5*spread))

	items := make([]Item, 0, params.ItemCount)
	for i := 0; i < params.ItemCount; i++ {
		t := params.pickType(rng.Float64())
		spec := t.Spec()
		items = append(items, Item{
			ID:     i + 1,
			Type:   t,
			X:      centerX + (rng.Float64()*2-1)*halfW,
			Y:      top + rng.Float64()*areaH,
			Value:  spec.Value,
			Weight: spec.Weight,
			Size:   spec.Size,
		})
	}
	return items
}
