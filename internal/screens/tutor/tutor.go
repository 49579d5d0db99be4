// Package tutor is the chat screen for conversation practice with Lingo.
package tutor

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/screen"
	chat "github.com/abhisek/lingo/internal/tutor"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// replyMsg is sent when the tutor answered or the attempt failed.
type replyMsg struct {
	Message chat.Message
	Err     error
}

// TutorScreen implements screen.Screen for the chat tutor.
type TutorScreen struct {
	session  *chat.Session
	language string

	ctx    context.Context
	cancel context.CancelFunc

	input   components.TextInput
	spinner components.Spinner
	pending bool
	errMsg  string
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)
var _ screen.BackHandler = (*TutorScreen)(nil)

// New creates a TutorScreen over a chat session that outlives the screen.
func New(session *chat.Session, language string) *TutorScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &TutorScreen{
		session:  session,
		language: language,
		ctx:      ctx,
		cancel:   cancel,
		input:    components.NewTextInput("Write in "+language+"...", 500),
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TutorScreen) Title() string {
	return "Chat with Lingo"
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

// OnBack abandons an unanswered message.
func (s *TutorScreen) OnBack() {
	s.cancel()
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.pending = false
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			s.errMsg = "Lingo couldn't reply. Try sending that again."
		}
		return s, nil

	case components.SpinnerTickMsg:
		if s.pending {
			s.spinner = s.spinner.Advance()
			return s, components.SpinnerTick()
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TutorScreen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.pending {
		return nil
	}
	s.input.Reset()
	s.pending = true
	s.errMsg = ""

	ctx, session := s.ctx, s.session
	return tea.Batch(func() tea.Msg {
		m, err := session.Send(ctx, text)
		return replyMsg{Message: m, Err: err}
	}, components.SpinnerTick())
}

func (s *TutorScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var lines []string
	transcript := s.session.Transcript()
	if len(transcript) == 0 {
		lines = append(lines, renderBubble(chat.Message{
			Role: gateway.RoleTutor,
			Text: "¡Hola! I'm Lingo. Let's practice " + s.language + " together. Say anything!",
		}, cw)...)
	}
	for _, m := range transcript {
		lines = append(lines, renderBubble(m, cw)...)
	}

	var footer []string
	if s.pending {
		footer = append(footer, s.spinner.View("Lingo is typing..."))
	}
	if s.errMsg != "" {
		footer = append(footer, theme.Incorrect.Render(s.errMsg))
	}
	footer = append(footer, "", s.input.View())

	// Keep the newest messages in view.
	avail := height - len(footer) - 1
	if avail < 1 {
		avail = 1
	}
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}

	body := strings.Join(lines, "\n") + "\n" + strings.Join(footer, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(body))
}

// renderBubble renders one message as lines; learner messages are right
// aligned and tutor corrections are shown beneath the reply.
func renderBubble(m chat.Message, cw int) []string {
	bubbleWidth := cw * 3 / 4

	style := lipgloss.NewStyle().
		Width(bubbleWidth).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	align := lipgloss.Left
	if m.Role == gateway.RoleUser {
		style = style.BorderForeground(theme.Primary).Foreground(theme.Text)
		align = lipgloss.Right
	} else {
		style = style.BorderForeground(theme.Border).Foreground(theme.Tutor)
	}

	content := m.Text
	if m.GrammarCorrection != "" {
		content += "\n" + theme.Correction.Render("✎ "+m.GrammarCorrection)
	}

	bubble := lipgloss.NewStyle().Width(cw).Align(align).Render(style.Render(content))
	return strings.Split(bubble, "\n")
}
