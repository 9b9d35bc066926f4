package core

// Color is a scene palette entry. Hosts map each entry to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota

	// Ore and loot
	ColorYellow
	ColorBrightYellow
	ColorBrightCyan
	ColorMagenta

	// Ground and dirt bands, shallow to deep
	ColorGreen
	ColorOrange
	ColorBrown
	ColorGray

	// Rig and HUD
	ColorWhite
	ColorBrightWhite
	ColorBrightGreen
	ColorBrightRed
	ColorCyan
	ColorBrightMagenta

	// ColorCount is the number of palette entries.
	ColorCount
)
