// Package stats shows level, streak and weekly activity.
package stats

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

// Source provides the learner's progress.
type Source interface {
	Snapshot() progress.State
}

// StatsScreen implements screen.Screen for the statistics panel.
type StatsScreen struct {
	source Source
}

var _ screen.Screen = (*StatsScreen)(nil)

// New creates a StatsScreen.
func New(source Source) *StatsScreen {
	return &StatsScreen{source: source}
}

func (s *StatsScreen) Init() tea.Cmd { return nil }

func (s *StatsScreen) Title() string { return "Your Progress" }

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	st := s.source.Snapshot()
	info := progress.Info(st.Experience)
	cw := layout.ContentWidth(width)

	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("Level %d", info.Level)))
	b.WriteString("  ")
	b.WriteString(theme.Subtitle.Render(st.Language + " · " + st.Level))
	b.WriteString("\n")
	bar := components.NewProgressBar("", info.Percent/100, true, cw)
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d / %d XP", info.Experience, info.NextLevelXP)))
	b.WriteString("\n\n")

	tiles := []string{
		tile("Total XP", fmt.Sprint(st.Experience)),
		tile("Day streak", fmt.Sprint(st.Streak)),
		tile("Lessons", fmt.Sprint(len(st.CompletedLessons))),
		tile("Words", fmt.Sprint(len(st.MasteredVocabulary))),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Render("This week"))
	b.WriteString("  ")
	b.WriteString(theme.XP.Render(fmt.Sprintf("Weekly best %d XP", st.WeeklyBest())))
	b.WriteString("\n")
	bars := make([]components.Bar, len(st.ActivityHistory))
	for i, d := range st.ActivityHistory {
		bars[i] = components.Bar{Label: d.Day, Value: d.XP}
	}
	b.WriteString(components.Histogram(bars, cw))

	return components.Frame(b.String(), width, height)
}

func tile(label, value string) string {
	return theme.Card.Width(16).Render(
		theme.XP.Render(value) + "\n" + theme.Subtitle.Render(label))
}
