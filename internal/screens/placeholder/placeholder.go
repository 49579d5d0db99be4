// Package placeholder shows a notice in place of a feature that cannot run
// yet, such as AI screens before a provider is configured.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// SetupMessage explains how to enable the AI features.
const SetupMessage = "Lingo needs an AI provider for this.\n\n" +
	"Set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY\n" +
	"or OPENROUTER_API_KEY and start Lingo again.\n" +
	"See lingo --help for the configuration file."

// PlaceholderScreen is a generic notice screen.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen with the given title and message.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

// NeedsProvider is the notice for AI features without a configured provider.
func NeedsProvider(title string) *PlaceholderScreen {
	return New(title, SetupMessage)
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("⚠ " + p.title)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(heading + "\n\n" + p.message)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
