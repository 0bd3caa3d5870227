package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/b2048/internal/core"
	"github.com/vovakirdan/b2048/internal/games/t2048"
	"github.com/vovakirdan/b2048/internal/storage"
)

// MenuChoice is what the user picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

type menuItem struct {
	label  string
	choice MenuChoice
}

var menuItems = []menuItem{
	{"New Game", ChoicePlay},
	{"High Scores", ChoiceScores},
	{"Quit", ChoiceQuit},
}

// MenuModel is the main menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	best      int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates the main menu. The best score is read from store
// when one is available.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if best, err := store.HighScore(t2048.ID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = ChoiceQuit
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = (m.cursor + len(menuItems) - 1) % len(menuItems)
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(menuItems)
	case MenuActionScoreboard:
		m.choice = ChoiceScores
		return m, tea.Quit
	case MenuActionSelect:
		m.choice = menuItems[m.cursor].choice
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Best: %d", m.best)), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.label
		if i == m.cursor {
			line = activeStyle.Render("> " + item.label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the selected entry, or ChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring printable cells only.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu shows the main menu in the local terminal.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Choice(), Config: m.Config()}, nil
}
