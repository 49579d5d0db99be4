package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/lingo/internal/llm"
)

// Client issues the five gateway operations against an llm.Provider.
// It is constructed once at startup and handed to the components that
// need it.
type Client struct {
	provider llm.Provider
	cfg      Config
}

// New creates a gateway client.
func New(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, cfg: cfg}
}

type vocabularyOutput struct {
	Words []struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
		Example     string `json:"example"`
	} `json:"words"`
}

// GenerateVocabulary asks for count words in language. A malformed payload
// yields a nil slice; IDs are left for the caller to assign.
func (c *Client) GenerateVocabulary(ctx context.Context, language string, count int) ([]VocabularyWord, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeVocabulary)

	var out vocabularyOutput
	ok, err := c.generateJSON(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildVocabularyMessage(language, count)}},
		Schema:      VocabularySchema,
		MaxTokens:   c.cfg.VocabMaxTokens,
		Temperature: c.cfg.Temperature,
	}, &out)
	if err != nil || !ok {
		return nil, err
	}

	var words []VocabularyWord
	for _, w := range out.Words {
		word := strings.TrimSpace(w.Word)
		translation := strings.TrimSpace(w.Translation)
		if word == "" || translation == "" {
			continue
		}
		words = append(words, VocabularyWord{
			Word:        word,
			Translation: translation,
			Example:     strings.TrimSpace(w.Example),
		})
	}
	return words, nil
}

type challengeOutput struct {
	English string `json:"english"`
	Correct string `json:"correct"`
}

// GenerateChallenge asks for one translation challenge. A malformed
// payload yields the zero Challenge.
func (c *Client) GenerateChallenge(ctx context.Context, language, level string) (Challenge, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChallenge)

	var out challengeOutput
	ok, err := c.generateJSON(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildChallengeMessage(language, level)}},
		Schema:      ChallengeSchema,
		MaxTokens:   c.cfg.ChallengeMaxTokens,
		Temperature: c.cfg.Temperature,
	}, &out)
	if err != nil || !ok {
		return Challenge{}, err
	}

	ch := Challenge{
		English: strings.TrimSpace(out.English),
		Correct: strings.TrimSpace(out.Correct),
	}
	if ch.English == "" || ch.Correct == "" {
		return Challenge{}, nil
	}
	return ch, nil
}

type lessonOutput struct {
	Title string `json:"title"`
	Topic string `json:"topic"`
	Steps []struct {
		Type          string   `json:"type"`
		Content       string   `json:"content"`
		Question      string   `json:"question"`
		CorrectAnswer string   `json:"correctAnswer"`
		Options       []string `json:"options"`
	} `json:"steps"`
}

// GenerateLesson asks for a lesson on topic. The returned lesson carries a
// fresh "lesson-<uuid>" ID. A malformed payload yields the zero Lesson.
func (c *Client) GenerateLesson(ctx context.Context, language, level, topic string) (Lesson, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeLesson)

	var out lessonOutput
	ok, err := c.generateJSON(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildLessonMessage(language, level, topic)}},
		Schema:      LessonSchema,
		MaxTokens:   c.cfg.LessonMaxTokens,
		Temperature: c.cfg.Temperature,
	}, &out)
	if err != nil || !ok {
		return Lesson{}, err
	}

	lesson := Lesson{
		ID:    "lesson-" + uuid.NewString(),
		Title: out.Title,
		Topic: out.Topic,
	}
	if lesson.Topic == "" {
		lesson.Topic = topic
	}
	for _, s := range out.Steps {
		step := LessonStep{
			Type:    StepType(s.Type),
			Content: s.Content,
		}
		if step.Type.Validated() {
			step.Question = s.Question
			step.CorrectAnswer = s.CorrectAnswer
		}
		if step.Type == StepQuiz && len(s.Options) > 0 {
			step.Options = s.Options
		}
		lesson.Steps = append(lesson.Steps, step)
	}
	return lesson, nil
}

// ChatReply continues the conversation. history holds the turns before
// message, oldest first.
func (c *Client) ChatReply(ctx context.Context, history []Turn, message, language, level string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	msgs := make([]llm.Message, 0, len(history)+1)
	for _, t := range history {
		role := llm.RoleUser
		if t.Role == RoleTutor {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      tutorSystemPrompt(language, level),
		Messages:    msgs,
		MaxTokens:   c.cfg.ChatMaxTokens,
		Temperature: c.cfg.ChatTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat reply: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Critique asks for a short grammar analysis of message. A clean message
// comes back as "Excellent grammar!".
func (c *Client) Critique(ctx context.Context, message, language string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCritique)

	resp, err := c.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildCritiqueMessage(message, language)}},
		MaxTokens:   c.cfg.CritiqueMaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("critique: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// generateJSON runs a structured request and decodes the result into out.
// It reports false with a nil error when the payload was rejected, which
// callers turn into their empty result.
func (c *Client) generateJSON(ctx context.Context, req llm.Request, out any) (bool, error) {
	purpose := llm.PurposeFrom(ctx)

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		var invErr *llm.ErrInvalidResponse
		if errors.As(err, &invErr) {
			slog.WarnContext(ctx, "discarding malformed AI response", "purpose", purpose, "error", invErr.Err)
			return false, nil
		}
		return false, fmt.Errorf("%s generation: %w", purpose, err)
	}

	if err := json.Unmarshal(resp.Content, out); err != nil {
		slog.WarnContext(ctx, "discarding undecodable AI response", "purpose", purpose, "error", err)
		return false, nil
	}
	return true, nil
}
