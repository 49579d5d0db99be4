package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/store"
	"github.com/abhisek/lingo/internal/vocab"
)

func wordBatch(t *testing.T, words ...string) llm.MockResponse {
	t.Helper()
	type word struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
		Example     string `json:"example"`
	}
	out := struct {
		Words []word `json:"words"`
	}{}
	for _, w := range words {
		out.Words = append(out.Words, word{Word: w, Translation: "tr-" + w, Example: w + "!"})
	}
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	return llm.MockResponse{Content: raw}
}

func newTestScreen(t *testing.T, mock *llm.MockProvider) (*VocabularyScreen, *progress.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	p, err := progress.Load(context.Background(), st.StateRepo())
	require.NoError(t, err)

	b := vocab.NewBrowser(gateway.New(mock, gateway.DefaultConfig()), p, 0)
	return New(b, p), p
}

func deliver(s *VocabularyScreen, cmd tea.Cmd) {
	if cmd != nil {
		s.Update(cmd())
	}
}

func TestVocabularyScreen_FetchAndMaster(t *testing.T) {
	s, p := newTestScreen(t, llm.NewMockProvider(wordBatch(t, "pomme", "chat", "livre")))
	startXP := p.Snapshot().Experience

	deliver(s, s.fetch(s.browser.Refresh))
	view := s.View(100, 40)
	for _, w := range []string{"pomme", "chat", "livre"} {
		assert.Contains(t, view, w)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	deliver(s, cmd)

	assert.Len(t, s.browser.Discovered(), 2)
	st := p.Snapshot()
	require.Len(t, st.MasteredVocabulary, 1)
	assert.Equal(t, "chat", st.MasteredVocabulary[0].Word)
	assert.Equal(t, startXP+progress.MasterWordXP, st.Experience)

	view = s.View(100, 40)
	assert.Contains(t, view, `Mastered "chat"`)
	assert.Contains(t, view, "Recently mastered (1 total)")
}

func TestVocabularyScreen_CursorClampsAfterMastering(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(wordBatch(t, "uno", "dos")))
	deliver(s, s.fetch(s.browser.Refresh))

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	deliver(s, cmd)

	assert.Equal(t, 0, s.cursor)
}

func TestVocabularyScreen_FetchFailure(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}))

	deliver(s, s.fetch(s.browser.Refresh))

	view := s.View(100, 40)
	assert.Contains(t, view, "Couldn't load new words")
	assert.Contains(t, view, "No new words right now")
}

func TestVocabularyScreen_EmptyState(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider())
	assert.Contains(t, s.View(100, 40), "Nothing yet")
	assert.Equal(t, "Vocabulary", s.Title())
}
