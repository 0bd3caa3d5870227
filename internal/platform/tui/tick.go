// Package tui runs the game in a terminal: the Bubble Tea loop, key mapping,
// menus, the scoreboard and the Wish SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one game step of the named session.
type TickMsg struct {
	Time    time.Time
	Session string
}

// tickCmd schedules the next tick at the given rate.
func tickCmd(session string, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Session: session}
	})
}
