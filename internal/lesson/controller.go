// Package lesson drives a single generated lesson through its steps.
//
// The controller moves through Idle → Loading → InStep(i) → Completed and
// back to Idle. Only the completion of the last step touches progress.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/progress"
)

// CompletionXP is awarded once per completed lesson, whatever its length.
const CompletionXP = progress.LessonCompleteXP

// RetryFeedback is shown after a wrong answer.
const RetryFeedback = "Not quite! Try again."

var (
	// ErrNotIdle is returned by Start while a lesson is loading or active.
	ErrNotIdle = errors.New("a lesson is already in progress")
	// ErrNoActiveLesson is returned when no step is being shown.
	ErrNoActiveLesson = errors.New("no active lesson")
	// ErrEmptyLesson is returned when generation produced no steps.
	ErrEmptyLesson = errors.New("lesson generation returned no steps")
	// ErrCanceled is returned by Start when Cancel ran while loading.
	ErrCanceled = errors.New("lesson canceled")
)

// Phase is the controller state.
type Phase int

const (
	Idle Phase = iota
	Loading
	InStep
	Completed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case InStep:
		return "in-step"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// Generator produces lessons. *gateway.Client satisfies it.
type Generator interface {
	GenerateLesson(ctx context.Context, language, level, topic string) (gateway.Lesson, error)
}

// Progress is the slice of the progress store the controller needs.
type Progress interface {
	Language() string
	Level() string
	GrantExperience(ctx context.Context, amount int) error
	CompleteLesson(ctx context.Context, id string) error
}

// Outcome describes the effect of a Submit.
type Outcome struct {
	Advanced  bool
	Completed bool
	Feedback  string
	LessonID  string
	XPAwarded int
}

// View is a read-only snapshot of the controller for rendering.
type View struct {
	Phase    Phase
	Topic    string
	Lesson   gateway.Lesson
	Step     int
	Answer   string
	Feedback string
}

// CurrentStep returns the step being shown.
func (v View) CurrentStep() (gateway.LessonStep, bool) {
	if v.Phase != InStep || v.Step >= len(v.Lesson.Steps) {
		return gateway.LessonStep{}, false
	}
	return v.Lesson.Steps[v.Step], true
}

// IsLastStep reports whether the current step finishes the lesson.
func (v View) IsLastStep() bool {
	return v.Phase == InStep && v.Step == len(v.Lesson.Steps)-1
}

// Controller is the lesson state machine.
type Controller struct {
	gen      Generator
	progress Progress

	mu       sync.Mutex
	seq      uint64
	phase    Phase
	topic    string
	lesson   *gateway.Lesson
	step     int
	answer   string
	feedback string
}

// NewController creates an idle controller.
func NewController(gen Generator, p Progress) *Controller {
	return &Controller{gen: gen, progress: p}
}

// Start generates a lesson on topic for the learner's current language and
// level. On success the controller shows step 0. On failure it is Idle
// again and the error is returned.
func (c *Controller) Start(ctx context.Context, topic string) error {
	c.mu.Lock()
	if c.phase != Idle {
		c.mu.Unlock()
		return ErrNotIdle
	}
	c.seq++
	seq := c.seq
	c.phase = Loading
	c.topic = topic
	c.mu.Unlock()

	lesson, err := c.gen.GenerateLesson(ctx, c.progress.Language(), c.progress.Level(), topic)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A Cancel, or a later Start after one, owns the controller now.
	if c.seq != seq || c.phase != Loading {
		return ErrCanceled
	}
	if err == nil && len(lesson.Steps) == 0 {
		err = ErrEmptyLesson
	}
	if err != nil {
		c.reset()
		slog.WarnContext(ctx, "lesson start failed", "topic", topic, "error", err)
		return fmt.Errorf("start lesson %q: %w", topic, err)
	}

	c.lesson = &lesson
	c.phase = InStep
	c.step = 0
	c.answer = ""
	c.feedback = ""
	slog.InfoContext(ctx, "lesson started", "lesson_id", lesson.ID, "topic", topic, "steps", len(lesson.Steps))
	return nil
}

// SetAnswer replaces the pending answer of the current step.
func (c *Controller) SetAnswer(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == InStep {
		c.answer = text
	}
}

// Answer returns the pending answer.
func (c *Controller) Answer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answer
}

// Continue submits the pending answer.
func (c *Controller) Continue(ctx context.Context) (Outcome, error) {
	return c.Submit(ctx, c.Answer())
}

// Submit checks answer against the current step. Practice and quiz steps
// accept a case-insensitive match after trimming whitespace; a mismatch
// keeps the step and the answer and sets RetryFeedback. Explanation steps
// always advance. Finishing the last step awards CompletionXP, records the
// lesson and returns the controller to Idle.
func (c *Controller) Submit(ctx context.Context, answer string) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != InStep || c.lesson == nil {
		return Outcome{}, ErrNoActiveLesson
	}

	c.answer = answer
	step := c.lesson.Steps[c.step]
	if step.Type.Validated() && !matches(answer, step.CorrectAnswer) {
		c.feedback = RetryFeedback
		return Outcome{Feedback: RetryFeedback}, nil
	}

	if c.step < len(c.lesson.Steps)-1 {
		c.step++
		c.answer = ""
		c.feedback = ""
		return Outcome{Advanced: true}, nil
	}

	return c.complete(ctx)
}

// complete finishes the active lesson. Callers hold mu.
func (c *Controller) complete(ctx context.Context) (Outcome, error) {
	id := c.lesson.ID
	c.phase = Completed

	err := errors.Join(
		c.progress.GrantExperience(ctx, CompletionXP),
		c.progress.CompleteLesson(ctx, id),
	)
	c.reset()

	slog.InfoContext(ctx, "lesson completed", "lesson_id", id, "xp", CompletionXP)
	out := Outcome{Advanced: true, Completed: true, LessonID: id, XPAwarded: CompletionXP}
	if err != nil {
		return out, fmt.Errorf("record lesson %s: %w", id, err)
	}
	return out, nil
}

// Cancel discards the loading or active lesson without touching progress.
// It reports whether there was anything to cancel.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == Idle {
		return false
	}
	c.seq++
	c.reset()
	return true
}

// Phase returns the current state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// View returns a snapshot for rendering.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Phase:    c.phase,
		Topic:    c.topic,
		Step:     c.step,
		Answer:   c.answer,
		Feedback: c.feedback,
	}
	if c.lesson != nil {
		v.Lesson = *c.lesson
		v.Lesson.Steps = append([]gateway.LessonStep(nil), c.lesson.Steps...)
	}
	return v
}

func (c *Controller) reset() {
	c.phase = Idle
	c.topic = ""
	c.lesson = nil
	c.step = 0
	c.answer = ""
	c.feedback = ""
}

func matches(answer, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected))
}
