package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionDrop            // Space, Down, Enter - drop the hook / continue / retry
	ActionPause           // P - pause/unpause
	ActionShop            // S - open the shop overlay
	ActionBack            // B, Escape - close overlay
	ActionQuit            // Q, Ctrl+C - end session
	ActionPowerUp1        // 1..5 - use power-up slot
	ActionPowerUp2
	ActionPowerUp3
	ActionPowerUp4
	ActionPowerUp5
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionDrop:
		return "Drop"
	case ActionPause:
		return "Pause"
	case ActionShop:
		return "Shop"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPowerUp1, ActionPowerUp2, ActionPowerUp3, ActionPowerUp4, ActionPowerUp5:
		return "PowerUp"
	default:
		return "Unknown"
	}
}

// PowerUpSlot returns the zero-based power-up slot for ActionPowerUpN actions.
// The second result is false for any other action.
func (a Action) PowerUpSlot() (int, bool) {
	if a < ActionPowerUp1 || a > ActionPowerUp5 {
		return 0, false
	}
	return int(a - ActionPowerUp1), true
}
