package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default indigo
	MascotCelebrating                      // Amber, star eyes: streak of 3+ days
	MascotAlert                            // Red, exclamation: no AI provider
)

const mascotIdle = `╭─────╮
│ ◉ ◉ │
│  ◡  │
│ A·あ │
╰─────╯`

const mascotCelebrating = `╭─────╮
│ ★ ★ │
│  ◡  │
│ A·あ │
╰─╥═╥─╯
  ╚═╝`

const mascotAlert = `╭─────╮
│ ◉ ◉ │ !
│  ︵  │
│ A·あ │
╰─────╯`

// MascotFor picks the variant for the learner's situation.
func MascotFor(streak int, aiReady bool) MascotVariant {
	switch {
	case !aiReady:
		return MascotAlert
	case streak >= 3:
		return MascotCelebrating
	}
	return MascotIdle
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Accent
	case MascotAlert:
		art = mascotAlert
		fg = theme.Error
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
