// Package challenge is the daily translation challenge screen.
package challenge

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// Generator produces translation challenges. *gateway.Client satisfies it.
type Generator interface {
	GenerateChallenge(ctx context.Context, language, level string) (gateway.Challenge, error)
}

// Learner supplies the language and level to practice.
type Learner interface {
	Language() string
	Level() string
}

type challengeMsg struct {
	Challenge gateway.Challenge
	Err       error
}

// ChallengeScreen implements screen.Screen for a single challenge.
type ChallengeScreen struct {
	gen     Generator
	learner Learner

	ctx    context.Context
	cancel context.CancelFunc

	loading   bool
	challenge gateway.Challenge
	input     components.TextInput
	spinner   components.Spinner
	checked   bool
	correct   bool
	errMsg    string
}

var _ screen.Screen = (*ChallengeScreen)(nil)
var _ screen.BackHandler = (*ChallengeScreen)(nil)

// New creates a ChallengeScreen.
func New(gen Generator, learner Learner) *ChallengeScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChallengeScreen{
		gen:     gen,
		learner: learner,
		ctx:     ctx,
		cancel:  cancel,
		input:   components.NewTextInput("Type your translation", 200),
	}
}

func (s *ChallengeScreen) Init() tea.Cmd {
	return tea.Batch(s.fetch(), components.SpinnerTick())
}

func (s *ChallengeScreen) Title() string { return "Daily Challenge" }

func (s *ChallengeScreen) OnBack() { s.cancel() }

func (s *ChallengeScreen) KeyHints() []layout.KeyHint {
	if s.checked {
		return []layout.KeyHint{{Key: "n", Description: "Next"}, {Key: "Enter", Description: "Done"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Check"}, {Key: "Esc", Description: "Back"}}
}

func (s *ChallengeScreen) fetch() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	s.checked = false
	s.input.Reset()
	ctx, gen := s.ctx, s.gen
	language, level := s.learner.Language(), s.learner.Level()
	return func() tea.Msg {
		ch, err := gen.GenerateChallenge(ctx, language, level)
		return challengeMsg{Challenge: ch, Err: err}
	}
}

func (s *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.spinner = s.spinner.Advance()
		return s, components.SpinnerTick()

	case challengeMsg:
		s.loading = false
		switch {
		case errors.Is(msg.Err, context.Canceled):
		case msg.Err != nil:
			s.errMsg = "Lingo couldn't come up with a challenge. Press r to try again."
		case msg.Challenge.English == "":
			s.errMsg = "That challenge came back empty. Press r to try again."
		default:
			s.challenge = msg.Challenge
			return s, s.input.Init()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ChallengeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.loading {
		return s, nil
	}
	if s.errMsg != "" {
		if msg.String() == "r" {
			return s, tea.Batch(s.fetch(), components.SpinnerTick())
		}
		return s, nil
	}
	if s.checked {
		switch msg.String() {
		case "n":
			return s, tea.Batch(s.fetch(), components.SpinnerTick())
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}
	if msg.String() == "enter" {
		if strings.TrimSpace(s.input.Value()) == "" {
			return s, nil
		}
		s.checked = true
		s.correct = Check(s.input.Value(), s.challenge.Correct)
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// Check compares an answer with the expected translation, ignoring case and
// surrounding whitespace.
func Check(answer, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(correct))
}

func (s *ChallengeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	if s.loading {
		return components.Frame(s.spinner.View("Preparing a challenge..."), width, height)
	}
	if s.errMsg != "" {
		return components.Frame(theme.Incorrect.Render(s.errMsg), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Translate into " + s.learner.Language()))
	b.WriteString("\n\n")
	b.WriteString(components.Card("", theme.Body.Render(s.challenge.English), cw))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())

	if s.checked {
		b.WriteString("\n\n")
		if s.correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite."))
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("Answer: ") + theme.Body.Render(s.challenge.Correct))
		}
	}
	return components.Frame(b.String(), width, height)
}
