package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/identity"
	ctl "github.com/abhisek/lingo/internal/lesson"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/home"
	"github.com/abhisek/lingo/internal/screens/welcome"
	"github.com/abhisek/lingo/internal/store"
	"github.com/abhisek/lingo/internal/tutor"
	"github.com/abhisek/lingo/internal/vocab"
)

func newOptions(t *testing.T) Options {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	p, err := progress.Load(context.Background(), s.StateRepo())
	require.NoError(t, err)

	gw := gateway.New(llm.NewMockProvider(), gateway.DefaultConfig())
	return Options{
		Home: home.Deps{
			Progress:   p,
			Lessons:    ctl.NewController(gw, p),
			Tutor:      tutor.NewSession(gw, p),
			Vocab:      vocab.NewBrowser(gw, p, 0),
			Challenges: gw,
			AIReady:    true,
		},
	}
}

type backScreen struct {
	backed bool
}

func (s *backScreen) Init() tea.Cmd                          { return nil }
func (s *backScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *backScreen) View(int, int) string                   { return "child" }
func (s *backScreen) Title() string                          { return "Child" }
func (s *backScreen) OnBack()                                { s.backed = true }

func TestNewAppModel_StartsOnWelcome(t *testing.T) {
	m := newAppModel(newOptions(t))
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
}

func TestNewAppModel_ReturningUserStartsOnHome(t *testing.T) {
	opts := newOptions(t)
	require.NoError(t, opts.Home.Progress.SetUser(context.Background(), identity.Guest()))

	m := newAppModel(opts)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestAppModel_EscCallsBackHandler(t *testing.T) {
	opts := newOptions(t)
	require.NoError(t, opts.Home.Progress.SetUser(context.Background(), identity.Guest()))
	m := newAppModel(opts)

	child := &backScreen{}
	m.router.Push(child)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.True(t, child.backed)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestAppModel_EscAtRootIsForwarded(t *testing.T) {
	m := newAppModel(newOptions(t))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestAppModel_ViewShowsHeaderStats(t *testing.T) {
	opts := newOptions(t)
	require.NoError(t, opts.Home.Progress.SetUser(context.Background(), identity.Guest()))
	model, _ := newAppModel(opts).Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	content := model.(AppModel).View().Content
	assert.Contains(t, content, "Lingo")
	assert.Contains(t, content, "Spanish")
	assert.Contains(t, content, "450 XP")
	assert.Contains(t, content, "Navigate")
}

func TestAppModel_TooSmall(t *testing.T) {
	model, _ := newAppModel(newOptions(t)).Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	content := model.(AppModel).View().Content
	assert.NotContains(t, content, "450 XP")
}
