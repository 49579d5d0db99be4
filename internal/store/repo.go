package store

import (
	"context"
	"errors"
	"time"
)

// StateKey is the local_state key holding the installation record. Bumping
// the version suffix orphans old records, which then load as defaults.
const StateKey = "lingo_state_v3"

// ErrCorruptState is returned when the stored record cannot be decoded.
var ErrCorruptState = errors.New("corrupt local state")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// StateData is the single durable record of an installation: the signed-in
// user (nil when signed out) and the learner's progress.
type StateData struct {
	User     *UserData     `json:"user,omitempty"`
	Progress *ProgressData `json:"progress,omitempty"`
}

// UserData is the persisted form of an identity.
type UserData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// ProgressData is the persisted form of the learner's progress.
type ProgressData struct {
	Language           string            `json:"language"`
	Level              string            `json:"level"`
	Experience         int               `json:"experience"`
	Streak             int               `json:"streak"`
	MasteredVocabulary []WordData        `json:"masteredVocabulary"`
	CompletedLessons   []string          `json:"completedLessons"`
	ActivityHistory    []ActivityDayData `json:"activityHistory"`
	LastStudyDate      string            `json:"lastStudyDate"`
}

// WordData is a persisted vocabulary entry.
type WordData struct {
	ID          string `json:"id"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Example     string `json:"example"`
}

// ActivityDayData is one histogram slot.
type ActivityDayData struct {
	Day string `json:"day"`
	XP  int    `json:"xp"`
}

// StateRepo persists the installation record.
type StateRepo interface {
	// Load returns the stored record, or nil if none exists.
	// A record that fails to decode yields an error wrapping ErrCorruptState.
	Load(ctx context.Context) (*StateData, error)

	// Save overwrites the stored record.
	Save(ctx context.Context, data *StateData) error

	// Clear removes the stored record.
	Clear(ctx context.Context) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID           int       `db:"id"`
	Timestamp    time.Time `db:"timestamp"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string `db:"purpose"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
}

// EventRepo provides append and query access to AI request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
