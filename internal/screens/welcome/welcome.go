// Package welcome is the splash and sign-in gate shown before home.
package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/identity"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const bubbleArt = `  ╭─────────────╮
  │  ¡Hola!     │
  │    Bonjour  │
  │  こんにちは │
  ╰──────┬──────╯
         ╰╴`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// resolvedMsg carries the settled identity.
type resolvedMsg struct {
	Result identity.Result
	Err    error // persisting the user failed
}

// Users persists the signed-in user. *progress.Store satisfies it.
type Users interface {
	SetUser(ctx context.Context, u identity.User) error
}

type stage int

const (
	stageSplash stage = iota
	stageMenu
	stageToken
)

// WelcomeScreen shows a splash animation, then lets the learner continue
// as a guest or sign in with an identity token.
type WelcomeScreen struct {
	users       Users
	cfg         identity.Config
	homeFactory func() screen.Screen

	stage        stage
	elapsed      time.Duration
	tickCount    int
	menu         components.Menu
	token        components.TextInput
	resolving    bool
	errMsg       string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen produced
// by homeFactory once an identity is settled.
func New(users Users, cfg identity.Config, homeFactory func() screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		users:       users,
		cfg:         cfg,
		homeFactory: homeFactory,
		token:       components.NewTextInput("Paste your identity token", 0),
	}
	w.menu = components.NewMenu([]components.MenuItem{
		{Label: "Continue as guest", Action: w.continueAsGuest},
		{Label: "Sign in", Detail: signInDetail(cfg), Disabled: !cfg.Enabled(), Action: w.startSignIn},
	})
	return w
}

func signInDetail(cfg identity.Config) string {
	if cfg.Enabled() {
		return "with an identity token"
	}
	return "not configured"
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	switch w.stage {
	case stageMenu:
		return []layout.KeyHint{{Key: "↑↓", Description: "Choose"}, {Key: "Enter", Description: "Select"}}
	case stageToken:
		return []layout.KeyHint{{Key: "Enter", Description: "Sign in"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case resolvedMsg:
		w.resolving = false
		switch {
		case msg.Err != nil:
			w.errMsg = "Couldn't save your sign-in. Try again."
			return w, nil
		case msg.Result.Outcome == identity.OutcomeFailed:
			w.errMsg = "That token couldn't be read. Check it or continue as a guest."
			return w, nil
		}
		return w, w.transition()

	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}

	if w.stage == stageToken {
		var cmd tea.Cmd
		w.token, cmd = w.token.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if w.resolving || w.transitioned {
		return w, nil
	}

	switch w.stage {
	case stageSplash:
		// Any key skips the rest of the animation.
		w.elapsed = totalDur
		w.stage = stageMenu
		return w, nil

	case stageMenu:
		var cmd tea.Cmd
		w.menu, cmd = w.menu.Update(msg)
		return w, cmd

	case stageToken:
		switch msg.String() {
		case "esc":
			w.stage = stageMenu
			w.errMsg = ""
			w.token.Reset()
			return w, nil
		case "enter":
			if strings.TrimSpace(w.token.Value()) == "" {
				return w, nil
			}
			return w, w.resolve(w.token.Value())
		}
		var cmd tea.Cmd
		w.token, cmd = w.token.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) continueAsGuest() tea.Cmd {
	return w.resolve("")
}

func (w *WelcomeScreen) startSignIn() tea.Cmd {
	w.stage = stageToken
	w.errMsg = ""
	return w.token.Init()
}

// resolve settles the identity for token and persists the user. A token
// that cannot be decoded leaves nothing persisted.
func (w *WelcomeScreen) resolve(token string) tea.Cmd {
	w.resolving = true
	w.errMsg = ""
	users, cfg := w.users, w.cfg
	return func() tea.Msg {
		ctx := context.Background()
		res := identity.Resolve(ctx, cfg, token)
		if res.Outcome == identity.OutcomeFailed {
			return resolvedMsg{Result: res}
		}
		return resolvedMsg{Result: res, Err: users.SetUser(ctx, res.User)}
	}
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(bubbleArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End || w.stage != stageSplash {
		sections = append(sections, "", RenderBanner(width), "")
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Your AI language tutor")
		sections = append(sections, tagline, "")
	}

	switch {
	case w.resolving:
		sections = append(sections, theme.Hint.Render("Signing in..."))
	case w.stage == stageMenu:
		sections = append(sections, w.menu.View())
	case w.stage == stageToken:
		sections = append(sections, theme.Subtitle.Render("Identity token"), w.token.View())
	case w.elapsed >= phase2End:
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	if w.errMsg != "" {
		sections = append(sections, "", theme.Incorrect.Render(w.errMsg))
	}

	return components.Frame(strings.Join(sections, "\n"), width, height)
}
