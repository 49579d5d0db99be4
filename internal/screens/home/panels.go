package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/identity"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// greeting addresses the learner by first name when signed in.
func greeting(u identity.User, signedIn bool) string {
	if !signedIn || u.IsGuest() || u.Name == "" {
		return "Welcome back!"
	}
	first, _, _ := strings.Cut(u.Name, " ")
	return fmt.Sprintf("¡Hola, %s!", first)
}

// renderHero renders the mascot beside the greeting and level progress.
func renderHero(title string, variant MascotVariant, st progress.State, cw int, compact bool) string {
	info := progress.Info(st.Experience)

	var b strings.Builder
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Learning %s · %s", st.Language, st.Level)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Level %d", info.Level)))
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d / %d XP", info.Experience, info.NextLevelXP)))
	b.WriteString("\n")

	if compact {
		b.WriteString(components.NewProgressBar("", info.Percent/100, true, cw).View())
		return b.String()
	}

	mascot := RenderMascot(variant)
	textWidth := cw - lipgloss.Width(mascot) - 4
	if textWidth < 20 {
		textWidth = 20
	}
	b.WriteString(components.NewProgressBar("", info.Percent/100, true, textWidth).View())
	return lipgloss.JoinHorizontal(lipgloss.Center, mascot, "    ", b.String())
}

// renderStatsBar renders the streak and counters in a bordered strip.
func renderStatsBar(st progress.State, cw int) string {
	stats := fmt.Sprintf("%s  %s  %s",
		theme.XP.Render(fmt.Sprintf("🔥 %d day streak", st.Streak)),
		theme.Body.Render(fmt.Sprintf("📚 %d lessons", len(st.CompletedLessons))),
		theme.Body.Render(fmt.Sprintf("✦ %d words", len(st.MasteredVocabulary))),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderLLMBanner renders a warning when no AI provider is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an AI provider key to unlock lessons and chat (see lingo --help)")
}
