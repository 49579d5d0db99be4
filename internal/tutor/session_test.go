package tutor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/llm"
)

type fakeProgress struct {
	mu     sync.Mutex
	grants []int
}

func (p *fakeProgress) Language() string { return "Spanish" }
func (p *fakeProgress) Level() string    { return "Beginner" }

func (p *fakeProgress) GrantExperience(_ context.Context, amount int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grants = append(p.grants, amount)
	return nil
}

func (p *fakeProgress) total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	sum := 0
	for _, g := range p.grants {
		sum += g
	}
	return sum
}

func newSession(mock *llm.MockProvider) (*Session, *fakeProgress) {
	p := &fakeProgress{}
	return NewSession(gateway.New(mock, gateway.DefaultConfig()), p), p
}

func TestSend_MergesReplyAndCritique(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddPurposeResponse("chat", llm.MockText("¡Hola! ¿Cómo estás?"))
	mock.AddPurposeResponse("critique", llm.MockText("Use 'estoy' for temporary states."))
	s, p := newSession(mock)

	msg, err := s.Send(context.Background(), "Yo soy cansado")
	require.NoError(t, err)

	assert.Equal(t, gateway.RoleTutor, msg.Role)
	assert.Equal(t, "¡Hola! ¿Cómo estás?", msg.Text)
	assert.Equal(t, "Use 'estoy' for temporary states.", msg.GrammarCorrection)

	tr := s.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, gateway.RoleUser, tr[0].Role)
	assert.Equal(t, "Yo soy cansado", tr[0].Text)
	assert.Equal(t, msg, tr[1])
	assert.False(t, tr[0].Timestamp.After(tr[1].Timestamp))

	assert.Equal(t, 10, p.total())
	assert.False(t, s.Busy())
}

func TestSend_ExcellentDropsAnnotation(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddPurposeResponse("chat", llm.MockText("¡Perfecto!"))
	mock.AddPurposeResponse("critique", llm.MockText("Excellent grammar!"))
	s, _ := newSession(mock)

	msg, err := s.Send(context.Background(), "Estoy muy bien")
	require.NoError(t, err)
	assert.Empty(t, msg.GrammarCorrection)
}

func TestAnnotation(t *testing.T) {
	tests := []struct {
		critique string
		want     string
	}{
		{"Excellent grammar!", ""},
		{"Excellent, but add an accent on 'está'.", ""},
		{"excellent grammar!", "excellent grammar!"},
		{"Missing article before 'casa'.", "Missing article before 'casa'."},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Annotation(tt.critique), "critique %q", tt.critique)
	}
}

func TestSend_SendsPriorHistory(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddPurposeResponse("chat", llm.MockText("¡Hola!"))
	mock.AddPurposeResponse("critique", llm.MockText("Excellent grammar!"))
	mock.AddPurposeResponse("chat", llm.MockText("¡Qué bien!"))
	mock.AddPurposeResponse("critique", llm.MockText("Excellent grammar!"))
	s, _ := newSession(mock)
	ctx := context.Background()

	_, err := s.Send(ctx, "Hola")
	require.NoError(t, err)
	_, err = s.Send(ctx, "Me gusta el café")
	require.NoError(t, err)

	var chatReqs []llm.Request
	for _, r := range mock.Requests() {
		if r.System != "" {
			chatReqs = append(chatReqs, r)
		}
	}
	require.Len(t, chatReqs, 2)
	require.Len(t, chatReqs[1].Messages, 3)
	assert.Equal(t, "Hola", chatReqs[1].Messages[0].Content)
	assert.Equal(t, llm.RoleAssistant, chatReqs[1].Messages[1].Role)
	assert.Equal(t, "Me gusta el café", chatReqs[1].Messages[2].Content)
}

func TestSend_FailureAbortsWholeSend(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*llm.MockProvider)
	}{
		{"reply fails", func(m *llm.MockProvider) {
			m.AddPurposeResponse("chat", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
			m.AddPurposeResponse("critique", llm.MockText("Excellent grammar!"))
		}},
		{"critique fails", func(m *llm.MockProvider) {
			m.AddPurposeResponse("chat", llm.MockText("¡Hola!"))
			m.AddPurposeResponse("critique", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider()
			tt.setup(mock)
			s, p := newSession(mock)

			_, err := s.Send(context.Background(), "Hola")
			require.Error(t, err)

			tr := s.Transcript()
			require.Len(t, tr, 1, "only the learner message stays")
			assert.Equal(t, gateway.RoleUser, tr[0].Role)
			assert.False(t, s.Busy())
			assert.Zero(t, p.total())
		})
	}
}

func TestSend_RejectsEmpty(t *testing.T) {
	mock := llm.NewMockProvider()
	s, _ := newSession(mock)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.Send(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Empty(t, s.Transcript())
	assert.Zero(t, mock.CallCount())
}

func TestSend_RejectsWhileBusy(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddPurposeResponse("chat", llm.MockResponse{Content: []byte("¡Hola!"), Delay: 200 * time.Millisecond})
	mock.AddPurposeResponse("critique", llm.MockText("Excellent grammar!"))
	s, _ := newSession(mock)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "Hola")
		done <- err
	}()

	require.Eventually(t, s.Busy, time.Second, time.Millisecond)

	_, err := s.Send(context.Background(), "¿Estás ahí?")
	assert.ErrorIs(t, err, ErrBusy)

	require.NoError(t, <-done)
	assert.Len(t, s.Transcript(), 2)
}

// rendezvousGateway makes each call wait until the other one has started.
type rendezvousGateway struct {
	chatEntered, critiqueEntered chan struct{}
}

func (g *rendezvousGateway) wait(ctx context.Context, self, other chan struct{}) error {
	close(self)
	select {
	case <-other:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		return errors.New("other call never started")
	}
}

func (g *rendezvousGateway) ChatReply(ctx context.Context, _ []gateway.Turn, _, _, _ string) (string, error) {
	if err := g.wait(ctx, g.chatEntered, g.critiqueEntered); err != nil {
		return "", err
	}
	return "¡Muy bien!", nil
}

func (g *rendezvousGateway) Critique(ctx context.Context, _, _ string) (string, error) {
	if err := g.wait(ctx, g.critiqueEntered, g.chatEntered); err != nil {
		return "", err
	}
	return "Say 'tengo hambre'.", nil
}

func TestSend_IssuesReplyAndCritiqueConcurrently(t *testing.T) {
	gw := &rendezvousGateway{
		chatEntered:     make(chan struct{}),
		critiqueEntered: make(chan struct{}),
	}
	s := NewSession(gw, &fakeProgress{})

	msg, err := s.Send(context.Background(), "Estoy hambre")
	require.NoError(t, err)
	assert.Equal(t, "¡Muy bien!", msg.Text)
	assert.Equal(t, "Say 'tengo hambre'.", msg.GrammarCorrection)
}
