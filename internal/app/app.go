// Package app hosts the root Bubble Tea model and its screen stack.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/identity"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/home"
	"github.com/abhisek/lingo/internal/screens/welcome"
	"github.com/abhisek/lingo/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Home     home.Deps
	Identity identity.Config
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	progress *progress.Store
	width    int
	height   int
}

// newAppModel creates the model. Learners who signed in or chose guest
// mode before start on home; everyone else starts on welcome.
func newAppModel(opts Options) AppModel {
	var newHome, newWelcome func() screen.Screen
	newWelcome = func() screen.Screen {
		return welcome.New(opts.Home.Progress, opts.Identity, newHome)
	}
	newHome = func() screen.Screen {
		deps := opts.Home
		deps.Welcome = newWelcome
		return home.New(deps)
	}

	initial := newWelcome
	if _, ok := opts.Home.Progress.User(); ok {
		initial = newHome
	}

	return AppModel{
		router:   router.New(initial()),
		progress: opts.Home.Progress,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				if h, ok := m.router.Active().(screen.BackHandler); ok {
					h.OnBack()
				}
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerStats() layout.HeaderStats {
	if m.progress == nil {
		return layout.HeaderStats{}
	}
	st := m.progress.Snapshot()
	stats := layout.HeaderStats{
		Language:   st.Language,
		Experience: st.Experience,
		Streak:     st.Streak,
	}
	if l, ok := progress.LookupLanguage(st.Language); ok {
		stats.Flag = l.Flag
	}
	return stats
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStats(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
