package challenge

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/router"
)

type stubGenerator struct {
	challenges []gateway.Challenge
	err        error
	calls      int
	language   string
}

func (g *stubGenerator) GenerateChallenge(_ context.Context, language, _ string) (gateway.Challenge, error) {
	g.calls++
	g.language = language
	if g.err != nil {
		return gateway.Challenge{}, g.err
	}
	ch := g.challenges[0]
	if len(g.challenges) > 1 {
		g.challenges = g.challenges[1:]
	}
	return ch, nil
}

type learner struct{}

func (learner) Language() string { return "Spanish" }
func (learner) Level() string    { return "Beginner" }

var station = gateway.Challenge{English: "Where is the station?", Correct: "¿Dónde está la estación?"}

// load runs the fetch command directly, skipping the spinner.
func load(t *testing.T, s *ChallengeScreen) {
	t.Helper()
	s.Update(s.fetch()())
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func TestCheck(t *testing.T) {
	assert.True(t, Check("  ¿dónde está la estación? ", station.Correct))
	assert.False(t, Check("Dónde está la estación", station.Correct))
}

func TestChallengeScreen_CorrectAnswer(t *testing.T) {
	gen := &stubGenerator{challenges: []gateway.Challenge{station}}
	s := New(gen, learner{})
	assert.Contains(t, s.View(100, 30), "Preparing")

	load(t, s)
	assert.Equal(t, "Spanish", gen.language)
	assert.Contains(t, s.View(100, 30), "Where is the station?")

	s.input.SetValue("¿dónde está la estación?")
	s.Update(enter())
	assert.Contains(t, s.View(100, 30), "Correct!")

	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestChallengeScreen_WrongAnswerRevealsTranslation(t *testing.T) {
	gen := &stubGenerator{challenges: []gateway.Challenge{station, {English: "Good morning", Correct: "Buenos días"}}}
	s := New(gen, learner{})
	load(t, s)

	s.input.SetValue("la estación")
	s.Update(enter())
	view := s.View(100, 30)
	assert.Contains(t, view, "Not quite.")
	assert.Contains(t, view, station.Correct)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	require.NotNil(t, cmd)
	load(t, s)
	assert.Contains(t, s.View(100, 30), "Good morning")
	assert.Equal(t, 3, gen.calls)
}

func TestChallengeScreen_BlankAnswerIgnored(t *testing.T) {
	s := New(&stubGenerator{challenges: []gateway.Challenge{station}}, learner{})
	load(t, s)

	s.Update(enter())
	assert.False(t, s.checked)
}

func TestChallengeScreen_Failures(t *testing.T) {
	tests := []struct {
		name string
		gen  *stubGenerator
		want string
	}{
		{"transport error", &stubGenerator{err: errors.New("boom")}, "couldn't come up with a challenge"},
		{"empty challenge", &stubGenerator{challenges: []gateway.Challenge{{}}}, "came back empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.gen, learner{})
			load(t, s)
			assert.Contains(t, s.View(100, 30), tt.want)
		})
	}
}

func TestChallengeScreen_CanceledIsSilent(t *testing.T) {
	s := New(&stubGenerator{err: context.Canceled}, learner{})
	s.OnBack()
	load(t, s)
	assert.Empty(t, s.errMsg)
}
