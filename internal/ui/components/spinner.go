package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerTickMsg advances every Spinner on screen by one frame.
type SpinnerTickMsg time.Time

// Spinner is a loading indicator driven by SpinnerTickMsg.
type Spinner struct {
	frame int
}

// SpinnerTick schedules the next frame.
func SpinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Advance moves to the next frame.
func (s Spinner) Advance() Spinner {
	s.frame = (s.frame + 1) % len(spinnerFrames)
	return s
}

// View renders the current frame followed by label.
func (s Spinner) View(label string) string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame]) +
		" " + theme.Subtitle.Render(label)
}
