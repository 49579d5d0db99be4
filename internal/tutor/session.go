// Package tutor runs the chat tutor: each learner message is answered by a
// conversational reply and a grammar critique requested in parallel.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/progress"
)

// NoCorrectionMarker in a critique means the message needs no correction.
const NoCorrectionMarker = "Excellent"

// ReplyXP is awarded for every answered message.
const ReplyXP = progress.ChatMessageXP

var (
	// ErrEmptyMessage is returned for blank messages.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy is returned while a previous message is still being answered.
	ErrBusy = errors.New("tutor is still replying")
)

// Message is one transcript entry.
type Message struct {
	Role              gateway.Role
	Text              string
	Timestamp         time.Time
	GrammarCorrection string
}

// Gateway is the slice of the AI gateway the tutor needs.
type Gateway interface {
	ChatReply(ctx context.Context, history []gateway.Turn, message, language, level string) (string, error)
	Critique(ctx context.Context, message, language string) (string, error)
}

// Progress is the slice of the progress store the tutor needs.
type Progress interface {
	Language() string
	Level() string
	GrantExperience(ctx context.Context, amount int) error
}

// Session holds one chat transcript. Entries are only ever appended.
type Session struct {
	gw       Gateway
	progress Progress
	now      func() time.Time

	mu         sync.Mutex
	transcript []Message
	busy       bool
}

// NewSession creates an empty chat session.
func NewSession(gw Gateway, p Progress) *Session {
	return &Session{gw: gw, progress: p, now: time.Now}
}

// Send appends text as a learner message, then waits for both the reply
// and the critique. If either fails nothing more is appended and the
// error is returned; the learner may retry. On success the tutor message
// is appended and ReplyXP granted.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Message{}, ErrBusy
	}
	s.busy = true
	history := turns(s.transcript)
	s.transcript = append(s.transcript, Message{Role: gateway.RoleUser, Text: text, Timestamp: s.now()})
	s.mu.Unlock()

	language, level := s.progress.Language(), s.progress.Level()

	var reply, critique string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reply, err = s.gw.ChatReply(gctx, history, text, language, level)
		return err
	})
	g.Go(func() error {
		var err error
		critique, err = s.gw.Critique(gctx, text, language)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	s.busy = false
	if err != nil {
		s.mu.Unlock()
		slog.ErrorContext(ctx, "tutor reply failed", "error", err)
		return Message{}, fmt.Errorf("tutor reply: %w", err)
	}
	msg := Message{
		Role:              gateway.RoleTutor,
		Text:              reply,
		Timestamp:         s.now(),
		GrammarCorrection: Annotation(critique),
	}
	s.transcript = append(s.transcript, msg)
	s.mu.Unlock()

	if err := s.progress.GrantExperience(ctx, ReplyXP); err != nil {
		slog.WarnContext(ctx, "could not record chat XP", "error", err)
	}
	return msg, nil
}

// Annotation returns the grammar correction to attach for a critique, or
// "" when the critique says none is needed.
func Annotation(critique string) string {
	if strings.Contains(critique, NoCorrectionMarker) {
		return ""
	}
	return strings.TrimSpace(critique)
}

// Transcript returns a copy of the messages so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.transcript...)
}

// Busy reports whether a message is being answered.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func turns(msgs []Message) []gateway.Turn {
	out := make([]gateway.Turn, len(msgs))
	for i, m := range msgs {
		out[i] = gateway.Turn{Role: m.Role, Text: m.Text}
	}
	return out
}
