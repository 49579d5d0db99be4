// Package lesson is the screen that walks the learner through one
// generated lesson.
package lesson

import (
	"context"
	"errors"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/gateway"
	ctl "github.com/abhisek/lingo/internal/lesson"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/screens/summary"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
)

// LessonScreen implements screen.Screen for an active lesson.
type LessonScreen struct {
	ctrl     *ctl.Controller
	progress *progress.Store
	topic    string

	ctx    context.Context
	cancel context.CancelFunc

	input   components.TextInput
	choice  components.MultiChoice
	spinner components.Spinner

	// step is the index the input widgets were prepared for.
	step       int
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.BackHandler = (*LessonScreen)(nil)

// New creates a LessonScreen that starts a lesson on topic.
func New(ctrl *ctl.Controller, p *progress.Store, topic string) *LessonScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &LessonScreen{
		ctrl:     ctrl,
		progress: p,
		topic:    topic,
		ctx:      ctx,
		cancel:   cancel,
		input:    components.NewTextInput("Type your answer...", 120),
		step:     -1,
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	return tea.Batch(s.startLesson(), components.SpinnerTick())
}

func (s *LessonScreen) Title() string {
	return s.topic
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
	}
	v := s.ctrl.View()
	if v.Phase != ctl.InStep {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	step, _ := v.CurrentStep()
	hints := []layout.KeyHint{{Key: "Enter", Description: "Check"}}
	switch step.Type {
	case gateway.StepExplanation:
		hints[0].Description = "Continue"
	case gateway.StepQuiz:
		hints = append([]layout.KeyHint{{Key: "↑↓", Description: "Choose"}}, hints...)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit lesson"})
}

// OnBack abandons the lesson without touching progress.
func (s *LessonScreen) OnBack() {
	s.cancel()
	if s.ctrl.Cancel() {
		slog.Info("lesson abandoned", "topic", s.topic)
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonReadyMsg:
		return s.handleReady(msg)

	case submittedMsg:
		return s.handleSubmitted(msg)

	case components.SpinnerTickMsg:
		if s.ctrl.Phase() == ctl.Loading {
			s.spinner = s.spinner.Advance()
			return s, components.SpinnerTick()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.currentStepType() == gateway.StepPractice {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	v := s.ctrl.View()
	if v.Phase != ctl.InStep {
		return renderLoading(width, height, s.spinner, s.topic)
	}
	return s.renderStep(v, width, height)
}

func (s *LessonScreen) startLesson() tea.Cmd {
	ctx, topic := s.ctx, s.topic
	return func() tea.Msg {
		return lessonReadyMsg{Err: s.ctrl.Start(ctx, topic)}
	}
}

func (s *LessonScreen) handleReady(msg lessonReadyMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, ctl.ErrCanceled) {
		return s, nil
	}
	if msg.Err != nil {
		s.errMsg = "Lingo couldn't prepare this lesson. Check your connection and try again."
		return s, nil
	}
	return s, s.prepareStep()
}

// prepareStep resets the answer widgets for the controller's current step.
func (s *LessonScreen) prepareStep() tea.Cmd {
	v := s.ctrl.View()
	step, ok := v.CurrentStep()
	if !ok || v.Step == s.step {
		return nil
	}
	s.step = v.Step
	s.input.Reset()
	s.choice = components.NewMultiChoice(step.Options)
	if step.Type == gateway.StepQuiz {
		s.ctrl.SetAnswer(s.choice.Value())
	}
	if step.Type == gateway.StepPractice {
		return s.input.Init()
	}
	return nil
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		if msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}
	if s.ctrl.Phase() != ctl.InStep || s.submitting {
		return s, nil
	}

	switch s.currentStepType() {
	case gateway.StepQuiz:
		if msg.String() == "enter" {
			return s, s.submit()
		}
		var changed bool
		s.choice, changed = s.choice.Update(msg)
		if changed {
			s.ctrl.SetAnswer(s.choice.Value())
		}
		return s, nil

	case gateway.StepPractice:
		if msg.String() == "enter" {
			s.ctrl.SetAnswer(s.input.Value())
			return s, s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	default:
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}
	return s, nil
}

func (s *LessonScreen) submit() tea.Cmd {
	s.submitting = true
	ctx := s.ctx
	return func() tea.Msg {
		out, err := s.ctrl.Continue(ctx)
		return submittedMsg{Outcome: out, Err: err}
	}
}

func (s *LessonScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	out := msg.Outcome

	if out.Completed {
		if msg.Err != nil {
			slog.Error("lesson progress not saved", "lesson_id", out.LessonID, "error", msg.Err)
		}
		sum := summary.LessonSummary{
			Topic:     s.topic,
			XPAwarded: out.XPAwarded,
			Info:      s.progress.Info(),
			Saved:     msg.Err == nil,
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(sum)}
		}
	}
	if msg.Err != nil {
		s.errMsg = "Something went wrong with this lesson."
		return s, nil
	}
	if out.Advanced {
		return s, s.prepareStep()
	}
	return s, nil
}

func (s *LessonScreen) currentStepType() gateway.StepType {
	step, ok := s.ctrl.View().CurrentStep()
	if !ok {
		return ""
	}
	return step.Type
}
