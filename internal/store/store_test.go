package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"local_state", "llm_request_events"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestStateLoadMissing(t *testing.T) {
	s := openTestStore(t)

	data, err := s.StateRepo().Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Fatal("expected nil state when none saved")
	}
}

func TestStateSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	in := &StateData{
		User: &UserData{ID: "guest", Name: "Guest Learner"},
		Progress: &ProgressData{
			Language:         "Spanish",
			Level:            "Beginner",
			Experience:       450,
			Streak:           3,
			CompletedLessons: []string{"lesson-1"},
			MasteredVocabulary: []WordData{
				{ID: "vocab-1-0", Word: "hola", Translation: "hello", Example: "¡Hola, amigo!"},
			},
			ActivityHistory: []ActivityDayData{{Day: "Mon", XP: 40}},
		},
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out == nil || out.Progress == nil || out.User == nil {
		t.Fatal("expected full state")
	}
	if out.Progress.Experience != 450 {
		t.Errorf("experience = %d, want 450", out.Progress.Experience)
	}
	if out.User.Name != "Guest Learner" {
		t.Errorf("user name = %q, want %q", out.User.Name, "Guest Learner")
	}
	if len(out.Progress.MasteredVocabulary) != 1 || out.Progress.MasteredVocabulary[0].Word != "hola" {
		t.Errorf("mastered vocabulary = %+v", out.Progress.MasteredVocabulary)
	}
}

func TestStateSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	for _, xp := range []int{100, 200} {
		if err := repo.Save(ctx, &StateData{Progress: &ProgressData{Experience: xp}}); err != nil {
			t.Fatalf("save %d: %v", xp, err)
		}
	}

	var count int
	if err := s.DB().Get(&count, "SELECT COUNT(*) FROM local_state"); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Progress.Experience != 200 {
		t.Errorf("experience = %d, want 200", out.Progress.Experience)
	}
}

func TestStateLoadCorrupt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(`INSERT INTO local_state (key, value) VALUES (?, ?)`, StateKey, []byte("{not json"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err = s.StateRepo().Load(ctx)
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestStateClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &StateData{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Error("expected nil state after clear")
	}
}

func TestLLMEventsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	purposes := []string{"lesson", "chat", "critique", "chat"}
	for i, p := range purposes {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-2.0-flash",
			Purpose:      p,
			InputTokens:  10 * (i + 1),
			OutputTokens: 5,
			LatencyMs:    100,
			Success:      true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("events = %d, want 4", len(all))
	}
	if all[0].Purpose != "chat" || all[0].InputTokens != 40 {
		t.Errorf("expected newest first, got %+v", all[0])
	}

	chats, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "chat", Limit: 1})
	if err != nil {
		t.Fatalf("query chat: %v", err)
	}
	if len(chats) != 1 {
		t.Errorf("chat events = %d, want 1", len(chats))
	}

	recent, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("query recent: %v", err)
	}
	if len(recent) != 4 {
		t.Errorf("recent events = %d, want 4", len(recent))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "vocabulary",
		Success:      false,
		ErrorMessage: "LLM provider unavailable",
		RequestBody:  "[user]\nhello",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil || len(events) != 1 {
		t.Fatalf("query: %v (%d events)", err, len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.Success {
		t.Error("expected failed event")
	}
	if e.RequestBody != "[user]\nhello" {
		t.Errorf("request body = %q", e.RequestBody)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gemini-2.0-flash", Purpose: "chat", InputTokens: 100, OutputTokens: 20, LatencyMs: 200, Success: true},
		{Model: "gemini-2.0-flash", Purpose: "chat", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Model: "gpt-4o-mini", Purpose: "lesson", InputTokens: 300, OutputTokens: 400, LatencyMs: 900, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	chat := byPurpose[0]
	if chat.Purpose != "chat" || chat.Calls != 2 || chat.InputTokens != 150 || chat.AvgLatencyMs != 150 {
		t.Errorf("chat usage = %+v", chat)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "lingo.db")
	if err := EnsureDir(p); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(p)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}
