package progress

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/identity"
	"github.com/abhisek/lingo/internal/store"
)

// wednesday is a fixed clock reading on a "Wed" histogram slot.
var wednesday = time.Date(2026, time.October, 21, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func openRepo(t *testing.T) store.StateRepo {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.StateRepo()
}

func newStore(t *testing.T) (*Store, store.StateRepo) {
	t.Helper()
	repo := openRepo(t)
	s, err := Load(context.Background(), repo, fixedClock(wednesday))
	require.NoError(t, err)
	return s, repo
}

func xpOn(st State, day string) int {
	for _, d := range st.ActivityHistory {
		if d.Day == day {
			return d.XP
		}
	}
	return -1
}

// failingRepo loads nothing and fails every save.
type failingRepo struct{ saves int }

func (r *failingRepo) Load(context.Context) (*store.StateData, error) { return nil, nil }

func (r *failingRepo) Save(context.Context, *store.StateData) error {
	r.saves++
	return errors.New("disk full")
}

func TestLoad_DefaultsOnFirstRun(t *testing.T) {
	s, _ := newStore(t)
	st := s.Snapshot()

	assert.Equal(t, "Spanish", st.Language)
	assert.Equal(t, LevelBeginner, st.Level)
	assert.Equal(t, 450, st.Experience)
	assert.Equal(t, 3, st.Streak)
	assert.Empty(t, st.MasteredVocabulary)
	assert.Empty(t, st.CompletedLessons)
	assert.Equal(t, "2026-10-21", st.LastStudyDate)
	require.Len(t, st.ActivityHistory, 7)
	assert.Equal(t, 210, xpOn(st, "Thu"))

	_, ok := s.User()
	assert.False(t, ok)
}

func TestScenarioA_DefaultLevel(t *testing.T) {
	s, _ := newStore(t)
	info := s.Info()

	assert.Equal(t, 450, info.Experience)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 45.0, info.Percent)
	assert.Equal(t, 1000, info.NextLevelXP)
}

func TestLevelProperties(t *testing.T) {
	for xp := 0; xp <= 5000; xp += 7 {
		assert.Equal(t, xp/1000+1, Level(xp), "level(%d)", xp)
		pct := LevelProgress(xp)
		assert.True(t, pct >= 0 && pct < 100, "progress(%d) = %v", xp, pct)
	}
	assert.Equal(t, 2, Level(1000))
	assert.Equal(t, 0.0, LevelProgress(1000))
	assert.Equal(t, 99.9, LevelProgress(1999))
}

func TestGrantExperience(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.GrantExperience(context.Background(), 25))

	st := s.Snapshot()
	assert.Equal(t, 475, st.Experience)
	assert.Equal(t, 115, xpOn(st, "Wed"))
	assert.Equal(t, 120, xpOn(st, "Tue"))
}

func TestGrantExperience_RejectsNonPositive(t *testing.T) {
	s, _ := newStore(t)

	for _, amount := range []int{0, -10} {
		err := s.GrantExperience(context.Background(), amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Equal(t, 450, s.Snapshot().Experience)
}

func TestGrantExperience_Commutative(t *testing.T) {
	a, _ := newStore(t)
	require.NoError(t, a.GrantExperience(context.Background(), 10))
	require.NoError(t, a.GrantExperience(context.Background(), 15))

	repo := &failingRepo{}
	b, err := Load(context.Background(), repo, fixedClock(wednesday))
	require.NoError(t, err)
	_ = b.GrantExperience(context.Background(), 15)
	_ = b.GrantExperience(context.Background(), 10)

	assert.Equal(t, a.Snapshot().Experience, b.Snapshot().Experience)
	assert.Equal(t, xpOn(a.Snapshot(), "Wed"), xpOn(b.Snapshot(), "Wed"))
}

func TestGrantExperience_NoMatchingSlot(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &store.StateData{Progress: &store.ProgressData{
		Language:        "French",
		Level:           LevelBeginner,
		Experience:      100,
		ActivityHistory: []store.ActivityDayData{{Day: "Lun", XP: 5}},
	}}))

	s, err := Load(ctx, repo, fixedClock(wednesday))
	require.NoError(t, err)
	require.NoError(t, s.GrantExperience(ctx, 10))

	st := s.Snapshot()
	assert.Equal(t, 110, st.Experience)
	assert.Equal(t, []ActivityDay{{Day: "Lun", XP: 5}}, st.ActivityHistory)
}

func TestCompleteLesson_KeepsDuplicates(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CompleteLesson(ctx, "lesson-1"))
	require.NoError(t, s.CompleteLesson(ctx, "lesson-1"))

	st := s.Snapshot()
	assert.Equal(t, []string{"lesson-1", "lesson-1"}, st.CompletedLessons)
	assert.Equal(t, 450, st.Experience)
}

func TestMasterWord(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	w := gateway.VocabularyWord{ID: "vocab-1-0", Word: "perro", Translation: "dog"}

	require.NoError(t, s.MasterWord(ctx, w))
	require.NoError(t, s.MasterWord(ctx, w))

	st := s.Snapshot()
	assert.Len(t, st.MasteredVocabulary, 2)
	assert.Equal(t, 480, st.Experience)
	assert.Equal(t, 120, xpOn(st, "Wed"))
}

func TestMutationsPersist(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLanguage(ctx, "german"))
	require.NoError(t, s.SetLevel(ctx, "advanced"))
	require.NoError(t, s.MasterWord(ctx, gateway.VocabularyWord{ID: "v1", Word: "Hund", Translation: "dog", Example: "Der Hund bellt."}))
	require.NoError(t, s.CompleteLesson(ctx, "lesson-abc"))
	require.NoError(t, s.SetUser(ctx, identity.User{ID: "42", Name: "Ana"}))

	reloaded, err := Load(ctx, repo, fixedClock(wednesday))
	require.NoError(t, err)

	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
	u, ok := reloaded.User()
	require.True(t, ok)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "German", reloaded.Language())
	assert.Equal(t, LevelAdvanced, reloaded.Level())
}

func TestLoad_CorruptRecordFallsBackToDefaults(t *testing.T) {
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.DB().Exec(`INSERT INTO local_state (key, value) VALUES (?, ?)`, store.StateKey, []byte(`{"progress": 12`))
	require.NoError(t, err)

	p, err := Load(context.Background(), s.StateRepo(), fixedClock(wednesday))
	require.NoError(t, err)
	assert.Equal(t, DefaultState(wednesday), p.Snapshot())
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	repo := &failingRepo{}
	s, err := Load(context.Background(), repo, fixedClock(wednesday))
	require.NoError(t, err)

	err = s.GrantExperience(context.Background(), 40)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 490, s.Snapshot().Experience)
	assert.Equal(t, 1, repo.saves)
}

func TestSetLanguage_Unknown(t *testing.T) {
	s, _ := newStore(t)

	err := s.SetLanguage(context.Background(), "Klingon")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Equal(t, "Spanish", s.Language())

	err = s.SetLevel(context.Background(), "Expert")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestReset_KeepsUser(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetUser(ctx, identity.Guest()))
	require.NoError(t, s.GrantExperience(ctx, 600))
	require.NoError(t, s.Reset(ctx))

	assert.Equal(t, DefaultState(wednesday), s.Snapshot())
	_, ok := s.User()
	assert.True(t, ok)

	require.NoError(t, s.ClearUser(ctx))
	_, ok = s.User()
	assert.False(t, ok)
	assert.Equal(t, 450, s.Snapshot().Experience)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s, _ := newStore(t)
	st := s.Snapshot()
	st.ActivityHistory[0].XP = 9999
	st.CompletedLessons = append(st.CompletedLessons, "x")

	fresh := s.Snapshot()
	assert.Equal(t, 40, fresh.ActivityHistory[0].XP)
	assert.Empty(t, fresh.CompletedLessons)
}

func TestWeeklyBestAndRecentlyMastered(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	assert.Equal(t, 210, s.WeeklyBest())

	for i := range 7 {
		w := gateway.VocabularyWord{ID: fmt.Sprintf("v%d", i), Word: fmt.Sprintf("w%d", i)}
		require.NoError(t, s.MasterWord(ctx, w))
	}

	recent := s.Snapshot().RecentlyMastered(5)
	require.Len(t, recent, 5)
	assert.Equal(t, "v6", recent[0].ID)
	assert.Equal(t, "v2", recent[4].ID)

	assert.Empty(t, DefaultState(wednesday).RecentlyMastered(5))
}
