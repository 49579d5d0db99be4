// Package home is the dashboard: learning path, practice tools and
// settings.
package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	ctl "github.com/abhisek/lingo/internal/lesson"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/challenge"
	"github.com/abhisek/lingo/internal/screens/language"
	lessonscreen "github.com/abhisek/lingo/internal/screens/lesson"
	"github.com/abhisek/lingo/internal/screens/placeholder"
	"github.com/abhisek/lingo/internal/screens/stats"
	tutorscreen "github.com/abhisek/lingo/internal/screens/tutor"
	"github.com/abhisek/lingo/internal/screens/vocabulary"
	"github.com/abhisek/lingo/internal/tutor"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
	"github.com/abhisek/lingo/internal/vocab"
)

// Deps are the shared services the home screen hands to the screens it
// opens.
type Deps struct {
	Progress   *progress.Store
	Lessons    *ctl.Controller
	Tutor      *tutor.Session
	Vocab      *vocab.Browser
	Challenges challenge.Generator

	// AIReady reports whether an AI provider is configured. Without one the
	// AI screens are replaced by a setup notice.
	AIReady bool

	// Welcome builds the screen shown after signing out.
	Welcome func() screen.Screen
}

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	topics int
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, topics: len(ctl.Topics)}

	var items []components.MenuItem
	for _, t := range ctl.Topics {
		topic := t.Name
		items = append(items, components.MenuItem{
			Label:  topic,
			Detail: fmt.Sprintf("%s · %d XP", t.Duration, t.XP),
			Action: h.aiAction(topic, func() screen.Screen {
				return lessonscreen.New(deps.Lessons, deps.Progress, topic)
			}),
		})
	}

	items = append(items,
		components.MenuItem{Label: "Chat with Tutor", Detail: fmt.Sprintf("+%d XP per reply", progress.ChatMessageXP),
			Action: h.aiAction("Chat with Tutor", func() screen.Screen {
				return tutorscreen.New(deps.Tutor, deps.Progress.Language())
			})},
		components.MenuItem{Label: "Vocabulary", Detail: fmt.Sprintf("+%d XP per word", progress.MasterWordXP),
			Action: h.aiAction("Vocabulary", func() screen.Screen {
				return vocabulary.New(deps.Vocab, deps.Progress)
			})},
		components.MenuItem{Label: "Daily Challenge",
			Action: h.aiAction("Daily Challenge", func() screen.Screen {
				return challenge.New(deps.Challenges, deps.Progress)
			})},
		components.MenuItem{Label: "Your Progress", Action: push(func() screen.Screen {
			return stats.New(deps.Progress)
		})},
		components.MenuItem{Label: "Language & Level", Action: push(func() screen.Screen {
			return language.New(deps.Progress, deps.Vocab)
		})},
		components.MenuItem{Label: "Sign out", Disabled: deps.Welcome == nil, Action: h.signOut},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	h.menu = components.NewMenu(items)
	return h
}

func push(factory func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := factory()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

// aiAction opens the screen from factory, or the setup notice when no AI
// provider is configured.
func (h *HomeScreen) aiAction(title string, factory func() screen.Screen) func() tea.Cmd {
	if !h.deps.AIReady {
		return push(func() screen.Screen { return placeholder.NeedsProvider(title) })
	}
	return push(factory)
}

// signOut forgets the signed-in user and returns to the welcome screen.
// Progress is kept.
func (h *HomeScreen) signOut() tea.Cmd {
	p, welcome := h.deps.Progress, h.deps.Welcome
	return func() tea.Msg {
		if err := p.ClearUser(context.Background()); err != nil {
			slog.Error("sign out failed", "error", err)
			return signOutFailedMsg{}
		}
		return router.ReplaceScreenMsg{Screen: welcome()}
	}
}

type signOutFailedMsg struct{}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(signOutFailedMsg); ok {
		h.errMsg = "Couldn't sign out. Try again."
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	compact := layout.IsCompactHeight(height + 8)
	cw := layout.ContentWidth(width)

	st := h.deps.Progress.Snapshot()
	user, signedIn := h.deps.Progress.User()

	var sections []string
	sections = append(sections, renderHero(greeting(user, signedIn), MascotFor(st.Streak, h.deps.AIReady), st, cw, compact))
	sections = append(sections, renderStatsBar(st, cw))
	if !h.deps.AIReady {
		sections = append(sections, renderLLMBanner(cw))
	}

	menu := strings.Split(strings.TrimRight(h.menu.View(), "\n"), "\n")
	path := theme.Subtitle.Render("Learning path") + "\n" + strings.Join(menu[:h.topics], "\n")
	more := theme.Subtitle.Render("Practice & settings") + "\n" + strings.Join(menu[h.topics:], "\n")
	sections = append(sections, path, more)

	if h.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(h.errMsg))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
