package home

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
	"github.com/abhisek/lingo/internal/screens/challenge"
	"github.com/abhisek/lingo/internal/screens/language"
	lessonscreen "github.com/abhisek/lingo/internal/screens/lesson"
	"github.com/abhisek/lingo/internal/screens/placeholder"
	"github.com/abhisek/lingo/internal/screens/stats"
	tutorscreen "github.com/abhisek/lingo/internal/screens/tutor"
	"github.com/abhisek/lingo/internal/screens/vocabulary"
	"github.com/abhisek/lingo/internal/store"
	"github.com/abhisek/lingo/internal/tutor"
	"github.com/abhisek/lingo/internal/vocab"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "welcome" }
func (s *stubScreen) Title() string                          { return "" }

func newDeps(t *testing.T, aiReady bool) Deps {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	p, err := progress.Load(context.Background(), s.StateRepo())
	require.NoError(t, err)

	gw := gateway.New(llm.NewMockProvider(), gateway.DefaultConfig())
	return Deps{
		Progress:   p,
		Lessons:    ctl.NewController(gw, p),
		Tutor:      tutor.NewSession(gw, p),
		Vocab:      vocab.NewBrowser(gw, p, 0),
		Challenges: gw,
		AIReady:    aiReady,
		Welcome:    func() screen.Screen { return &stubScreen{} },
	}
}

// open selects the menu item labeled label and returns the pushed screen.
func open(t *testing.T, h *HomeScreen, label string) screen.Screen {
	t.Helper()
	idx := -1
	for i, item := range h.menu.Items {
		if item.Label == label {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0, "no menu item %q", label)
	h.menu.Selected = idx

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	return msg.Screen
}

func TestHome_View(t *testing.T) {
	h := New(newDeps(t, true))
	view := h.View(100, 40)

	for _, want := range []string{
		"Welcome back!", "Learning Spanish · Beginner", "Level 1", "450 / 1000 XP",
		"3 day streak", "Learning path", "Grammar Basics", "10-15 mins · 100 XP",
		"Chat with Tutor", "Language & Level",
	} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "Set an AI provider")
}

func TestHome_GreetsSignedInUser(t *testing.T) {
	deps := newDeps(t, true)
	require.NoError(t, deps.Progress.SetUser(context.Background(), identity.User{ID: "1078", Name: "Ana García"}))

	assert.Contains(t, New(deps).View(100, 40), "¡Hola, Ana!")
}

func TestHome_OpensScreens(t *testing.T) {
	h := New(newDeps(t, true))

	assert.IsType(t, &lessonscreen.LessonScreen{}, open(t, h, "Ordering Food"))
	assert.IsType(t, &tutorscreen.TutorScreen{}, open(t, h, "Chat with Tutor"))
	assert.IsType(t, &vocabulary.VocabularyScreen{}, open(t, h, "Vocabulary"))
	assert.IsType(t, &challenge.ChallengeScreen{}, open(t, h, "Daily Challenge"))
	assert.IsType(t, &stats.StatsScreen{}, open(t, h, "Your Progress"))
	assert.IsType(t, &language.LanguageScreen{}, open(t, h, "Language & Level"))
}

func TestHome_WithoutProvider(t *testing.T) {
	h := New(newDeps(t, false))

	assert.Contains(t, h.View(100, 40), "Set an AI provider")
	for _, label := range []string{"Grammar Basics", "Chat with Tutor", "Vocabulary", "Daily Challenge"} {
		assert.IsType(t, &placeholder.PlaceholderScreen{}, open(t, h, label), label)
	}
	assert.IsType(t, &stats.StatsScreen{}, open(t, h, "Your Progress"))
}

func TestHome_SignOut(t *testing.T) {
	deps := newDeps(t, true)
	ctx := context.Background()
	require.NoError(t, deps.Progress.SetUser(ctx, identity.User{ID: "1078", Name: "Ana"}))
	require.NoError(t, deps.Progress.GrantExperience(ctx, 50))

	h := New(deps)
	for i, item := range h.menu.Items {
		if item.Label == "Sign out" {
			h.menu.Selected = i
		}
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &stubScreen{}, msg.Screen)

	_, signedIn := deps.Progress.User()
	assert.False(t, signedIn)
	assert.Equal(t, 500, deps.Progress.Snapshot().Experience)
}

func TestMascotFor(t *testing.T) {
	assert.Equal(t, MascotAlert, MascotFor(10, false))
	assert.Equal(t, MascotCelebrating, MascotFor(3, true))
	assert.Equal(t, MascotIdle, MascotFor(1, true))
}
