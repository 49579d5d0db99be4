// Package summary shows the result of a finished lesson.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// LessonSummary describes a completed lesson.
type LessonSummary struct {
	Topic     string
	XPAwarded int
	Info      progress.LevelInfo // level after the award

	// Saved is false when the award could not be written to disk.
	Saved bool
}

// SummaryScreen displays a LessonSummary.
type SummaryScreen struct {
	summary LessonSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary LessonSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Lesson Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := layout.ContentWidth(width)

	var b strings.Builder

	b.WriteString(components.Centered(theme.Title.Render("Lesson complete!"), cw))
	b.WriteString("\n")
	b.WriteString(components.Centered(theme.Subtitle.Render(sum.Topic), cw))
	b.WriteString("\n\n")

	b.WriteString(components.Centered(theme.XP.Render(fmt.Sprintf("+%d XP", sum.XPAwarded)), cw))
	b.WriteString("\n\n")

	info := sum.Info
	bar := components.NewProgressBar(fmt.Sprintf("Level %d", info.Level), info.Percent/100, true, cw)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(components.Centered(theme.Hint.Render(
		fmt.Sprintf("%d / %d XP to the next level", info.Experience, info.NextLevelXP)), cw))

	if !sum.Saved {
		b.WriteString("\n\n")
		b.WriteString(components.Centered(
			lipgloss.NewStyle().Foreground(theme.Error).Render("Progress could not be saved to disk."), cw))
	}

	return components.Frame(b.String(), width, height)
}
