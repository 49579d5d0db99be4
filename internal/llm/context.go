package llm

import (
	"context"
	"strings"
)

// Purposes label each AI request in the request log.
const (
	PurposeVocabulary = "vocabulary"
	PurposeLesson     = "lesson"
	PurposeChallenge  = "challenge"
	PurposeChat       = "chat"
	PurposeCritique   = "critique"
)

// Purposes lists every purpose label Lingo sends.
var Purposes = []string{PurposeVocabulary, PurposeLesson, PurposeChallenge, PurposeChat, PurposeCritique}

type contextKey string

const purposeKey contextKey = "lingo_llm_purpose"

// WithPurpose tags ctx with the feature a request serves.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose on ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// PurposeHelp joins Purposes for flag help text.
func PurposeHelp() string {
	return strings.Join(Purposes, ", ")
}
