// Package vocab implements the vocabulary browser: a pool of freshly
// generated words the learner can mark as mastered.
package vocab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/progress"
)

// DefaultBatchSize is the number of words fetched per batch.
const DefaultBatchSize = 3

// RecentLimit is the number of words shown in the recently mastered strip.
const RecentLimit = 5

// ErrEmptyBatch is returned when generation produced no usable words.
var ErrEmptyBatch = errors.New("vocabulary batch is empty")

// Generator produces vocabulary. *gateway.Client satisfies it.
type Generator interface {
	GenerateVocabulary(ctx context.Context, language string, count int) ([]gateway.VocabularyWord, error)
}

// Progress is the slice of the progress store the browser needs.
type Progress interface {
	Language() string
	MasterWord(ctx context.Context, w gateway.VocabularyWord) error
	Snapshot() progress.State
}

// Browser holds the discovered words. A word leaves the pool exactly once,
// when it is handed to the progress store as mastered.
type Browser struct {
	gen       Generator
	progress  Progress
	batchSize int
	now       func() time.Time

	mu         sync.Mutex
	discovered []gateway.VocabularyWord
	language   string // language of the last applied batch
	seq        int    // id of the latest fetch; older results are dropped
	inflight   int
}

// NewBrowser creates an empty browser. A non-positive batchSize uses
// DefaultBatchSize.
func NewBrowser(gen Generator, p Progress, batchSize int) *Browser {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Browser{gen: gen, progress: p, batchSize: batchSize, now: time.Now}
}

// Refresh fetches a new batch of the configured size.
func (b *Browser) Refresh(ctx context.Context) error {
	return b.FetchBatch(ctx, b.batchSize)
}

// FetchBatch replaces the discovered words with count new words for the
// learner's current language. On failure, or when no words came back, the
// discovered words are left as they were.
func (b *Browser) FetchBatch(ctx context.Context, count int) error {
	if count <= 0 {
		count = b.batchSize
	}
	language := b.progress.Language()

	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.inflight++
	b.mu.Unlock()

	words, err := b.gen.GenerateVocabulary(ctx, language, count)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inflight--

	if err == nil && len(words) == 0 {
		err = ErrEmptyBatch
	}
	if err != nil {
		slog.WarnContext(ctx, "vocabulary fetch failed", "language", language, "error", err)
		return fmt.Errorf("fetch vocabulary: %w", err)
	}
	if seq != b.seq {
		slog.DebugContext(ctx, "dropping superseded vocabulary batch", "language", language)
		return nil
	}

	words = words[:min(len(words), count)]
	stamp := b.now().UnixMilli()
	batch := make([]gateway.VocabularyWord, len(words))
	for i, w := range words {
		w.ID = fmt.Sprintf("vocab-%d-%d", stamp, i)
		batch[i] = w
	}
	b.discovered = batch
	b.language = language
	return nil
}

// OnLanguageChange fetches a fresh batch when language differs from the
// language of the words on display.
func (b *Browser) OnLanguageChange(ctx context.Context, language string) error {
	b.mu.Lock()
	same := b.language == language && len(b.discovered) > 0
	b.mu.Unlock()
	if same {
		return nil
	}
	return b.Refresh(ctx)
}

// Master moves the discovered word with id into the progress store. It
// reports false, with no effect, when no such word is discovered.
func (b *Browser) Master(ctx context.Context, id string) (bool, error) {
	b.mu.Lock()
	idx := -1
	for i, w := range b.discovered {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return false, nil
	}
	word := b.discovered[idx]
	b.discovered = append(b.discovered[:idx:idx], b.discovered[idx+1:]...)
	b.mu.Unlock()

	if err := b.progress.MasterWord(ctx, word); err != nil {
		return true, fmt.Errorf("master %q: %w", word.Word, err)
	}
	return true, nil
}

// Discovered returns a copy of the words on display.
func (b *Browser) Discovered() []gateway.VocabularyWord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]gateway.VocabularyWord(nil), b.discovered...)
}

// Loading reports whether a fetch is in flight.
func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inflight > 0
}

// Mastered returns the total number of mastered words and the most recent
// ones, newest first.
func (b *Browser) Mastered() (int, []gateway.VocabularyWord) {
	st := b.progress.Snapshot()
	return len(st.MasteredVocabulary), st.RecentlyMastered(RecentLimit)
}
