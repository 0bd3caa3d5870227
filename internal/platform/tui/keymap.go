package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/b2048/internal/core"
)

// gameKeys maps key names to game actions. Arrows, WASD and vim keys all move.
var gameKeys = map[string]core.Action{
	"up":    core.ActionUp,
	"w":     core.ActionUp,
	"k":     core.ActionUp,
	"down":  core.ActionDown,
	"s":     core.ActionDown,
	"j":     core.ActionDown,
	"left":  core.ActionLeft,
	"a":     core.ActionLeft,
	"h":     core.ActionLeft,
	"right": core.ActionRight,
	"d":     core.ActionRight,
	"l":     core.ActionRight,
	"enter": core.ActionConfirm,
	"p":     core.ActionPause,
	"esc":   core.ActionPause,
	"r":     core.ActionRestart,
	"b":     core.ActionBack,
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Unbound keys map to ActionAny so they can dismiss overlays.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if a, ok := gameKeys[key]; ok {
		return a, false
	}
	return core.ActionAny, false
}

// MapKeyToFrame records the key in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
