package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/goldminer/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlayKeyMapAction(t *testing.T) {
	keys := DefaultPlayKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space drops", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionDrop},
		{"enter drops", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionDrop},
		{"down drops", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDrop},
		{"j drops", runeKey("j"), core.ActionDrop},
		{"p pauses", runeKey("p"), core.ActionPause},
		{"s opens shop", runeKey("s"), core.ActionShop},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"q quits", runeKey("q"), core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"1 is bomb", runeKey("1"), core.ActionPowerUp1},
		{"3 is time extend", runeKey("3"), core.ActionPowerUp3},
		{"5 is speed boost", runeKey("5"), core.ActionPowerUp5},
		{"unbound key", runeKey("x"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Action(tt.msg))
		})
	}
}

func TestPowerUpSlotsFollowCatalogOrder(t *testing.T) {
	keys := DefaultPlayKeyMap()
	for i := range keys.PowerUps {
		action := keys.Action(runeKey(string(rune('1' + i))))
		slot, ok := action.PowerUpSlot()
		assert.True(t, ok)
		assert.Equal(t, i, slot)
	}

	_, ok := core.ActionDrop.PowerUpSlot()
	assert.False(t, ok)
}
