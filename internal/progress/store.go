package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/identity"
	"github.com/abhisek/lingo/internal/store"
)

// Experience awarded by the learning flows.
const (
	MasterWordXP     = 15
	LessonCompleteXP = 100
	ChatMessageXP    = 10
)

var (
	// ErrInvalidAmount is returned for non-positive experience grants.
	ErrInvalidAmount = errors.New("experience amount must be positive")
	// ErrUnknownLanguage is returned for unsupported target languages.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrUnknownLevel is returned for unsupported proficiency levels.
	ErrUnknownLevel = errors.New("unknown proficiency level")
)

// Repository persists the installation record. store.StateRepo satisfies it.
type Repository interface {
	Load(ctx context.Context) (*store.StateData, error)
	Save(ctx context.Context, data *store.StateData) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for the activity histogram.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns the learner's State and the signed-in user. Every mutation is
// written through to the Repository before it returns. A failed write is
// reported, but the in-memory change is kept.
type Store struct {
	repo Repository
	now  func() time.Time

	mu    sync.Mutex
	state State
	user  *identity.User
}

// Load reads the stored record. A missing or corrupt record yields the
// default state; only repository failures are returned.
func Load(ctx context.Context, repo Repository, opts ...Option) (*Store, error) {
	s := &Store{repo: repo, now: time.Now}
	for _, o := range opts {
		o(s)
	}

	data, err := repo.Load(ctx)
	switch {
	case errors.Is(err, store.ErrCorruptState):
		slog.WarnContext(ctx, "stored progress is corrupt, starting from defaults", "error", err)
		data = nil
	case err != nil:
		return nil, fmt.Errorf("load progress: %w", err)
	}

	s.state = DefaultState(s.now())
	if data != nil {
		if data.Progress != nil {
			s.state = stateFromData(data.Progress)
		}
		if data.User != nil {
			u := userFromData(data.User)
			s.user = &u
		}
	}
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Info returns the derived level view of the current experience.
func (s *Store) Info() LevelInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info(s.state.Experience)
}

// Language returns the current target language.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Language
}

// Level returns the current proficiency level.
func (s *Store) Level() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Level
}

// WeeklyBest returns the best single day of the activity histogram.
func (s *Store) WeeklyBest() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.WeeklyBest()
}

// GrantExperience adds amount to the experience total and to today's
// histogram slot. A day with no matching slot only updates the total.
func (s *Store) GrantExperience(ctx context.Context, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.mutate(ctx, func(st *State) {
		s.grant(st, amount)
	})
}

func (s *Store) grant(st *State, amount int) {
	st.Experience += amount
	today := s.now().Format("Mon")
	for i := range st.ActivityHistory {
		if st.ActivityHistory[i].Day == today {
			st.ActivityHistory[i].XP += amount
			return
		}
	}
}

// CompleteLesson appends id to the completed lessons. Repeats are kept.
func (s *Store) CompleteLesson(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *State) {
		st.CompletedLessons = append(st.CompletedLessons, id)
	})
}

// MasterWord appends w to the mastered vocabulary and grants MasterWordXP.
// Repeats are kept.
func (s *Store) MasterWord(ctx context.Context, w gateway.VocabularyWord) error {
	return s.mutate(ctx, func(st *State) {
		st.MasteredVocabulary = append(st.MasteredVocabulary, w)
		s.grant(st, MasterWordXP)
	})
}

// SetLanguage switches the target language.
func (s *Store) SetLanguage(ctx context.Context, name string) error {
	lang, ok := LookupLanguage(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return s.mutate(ctx, func(st *State) {
		st.Language = lang.Name
	})
}

// SetLevel switches the proficiency level.
func (s *Store) SetLevel(ctx context.Context, name string) error {
	level, ok := LookupLevel(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return s.mutate(ctx, func(st *State) {
		st.Level = level
	})
}

// Reset overwrites the state with defaults. The signed-in user is kept.
func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(ctx, func(st *State) {
		*st = DefaultState(s.now())
	})
}

// User returns the signed-in user, if any.
func (s *Store) User() (identity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return identity.User{}, false
	}
	return *s.user, true
}

// SetUser records u as the signed-in user.
func (s *Store) SetUser(ctx context.Context, u identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	return s.persist(ctx)
}

// ClearUser signs the user out. Progress is kept.
func (s *Store) ClearUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return s.persist(ctx)
}

func (s *Store) mutate(ctx context.Context, fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	return s.persist(ctx)
}

// persist writes the full record. Callers hold mu.
func (s *Store) persist(ctx context.Context) error {
	data := &store.StateData{Progress: stateToData(s.state)}
	if s.user != nil {
		data.User = userToData(*s.user)
	}
	if err := s.repo.Save(ctx, data); err != nil {
		slog.ErrorContext(ctx, "failed to persist progress", "error", err)
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}
