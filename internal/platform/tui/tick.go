// Package tui provides the Bubble Tea front end for Gold Miner.
// It handles the terminal UI loop, input mapping, the shop overlay and the
// scoreboard, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// AutosaveMsg is sent when it is time to persist progress.
type AutosaveMsg time.Time

// savedMsg reports the outcome of a background save.
type savedMsg struct{ err error }

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// autosaveCmd schedules the next autosave poll.
func autosaveCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return AutosaveMsg(t)
	})
}
