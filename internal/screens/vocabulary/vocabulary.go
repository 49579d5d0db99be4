// Package vocabulary is the word discovery screen.
package vocabulary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
	"github.com/abhisek/lingo/internal/vocab"
)

// fetchedMsg is sent when a batch fetch finishes.
type fetchedMsg struct {
	Err error
}

// masteredMsg is sent when a word was handed to the progress store.
type masteredMsg struct {
	Word gateway.VocabularyWord
	Err  error
}

// Learner is the slice of the progress store the screen reads.
type Learner interface {
	Language() string
}

// VocabularyScreen implements screen.Screen for the vocabulary browser.
type VocabularyScreen struct {
	browser *vocab.Browser
	learner Learner

	cursor  int
	spinner components.Spinner
	notice  string
	errMsg  string
}

var _ screen.Screen = (*VocabularyScreen)(nil)
var _ screen.KeyHintProvider = (*VocabularyScreen)(nil)

// New creates a VocabularyScreen.
func New(browser *vocab.Browser, learner Learner) *VocabularyScreen {
	return &VocabularyScreen{browser: browser, learner: learner}
}

// Init fetches words for the learner's language unless they are already
// on display.
func (s *VocabularyScreen) Init() tea.Cmd {
	language := s.learner.Language()
	return tea.Batch(s.fetch(func(ctx context.Context) error {
		return s.browser.OnLanguageChange(ctx, language)
	}), components.SpinnerTick())
}

func (s *VocabularyScreen) Title() string {
	return "Vocabulary"
}

func (s *VocabularyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Mark mastered"},
		{Key: "R", Description: "New words"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VocabularyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		s.cursor = 0
		if msg.Err != nil {
			s.errMsg = "Couldn't load new words. Press R to try again."
		}
		return s, nil

	case masteredMsg:
		s.notice = fmt.Sprintf("Mastered %q! +%d XP", msg.Word.Word, progress.MasterWordXP)
		if msg.Err != nil {
			s.errMsg = "Progress could not be saved to disk."
		}
		if n := len(s.browser.Discovered()); s.cursor >= n && n > 0 {
			s.cursor = n - 1
		}
		return s, nil

	case components.SpinnerTickMsg:
		if s.browser.Loading() {
			s.spinner = s.spinner.Advance()
			return s, components.SpinnerTick()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *VocabularyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	words := s.browser.Discovered()
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(words)-1 {
			s.cursor++
		}
	case "r", "R":
		if s.browser.Loading() {
			return s, nil
		}
		s.notice = ""
		return s, tea.Batch(s.fetch(s.browser.Refresh), components.SpinnerTick())
	case "enter", "m":
		if s.cursor < len(words) {
			return s, s.master(words[s.cursor])
		}
	}
	return s, nil
}

func (s *VocabularyScreen) fetch(fn func(context.Context) error) tea.Cmd {
	s.errMsg = ""
	return func() tea.Msg {
		return fetchedMsg{Err: fn(context.Background())}
	}
}

func (s *VocabularyScreen) master(w gateway.VocabularyWord) tea.Cmd {
	browser := s.browser
	return func() tea.Msg {
		_, err := browser.Master(context.Background(), w.ID)
		return masteredMsg{Word: w, Err: err}
	}
}

func (s *VocabularyScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render(s.learner.Language() + " vocabulary"))
	b.WriteString("\n\n")

	words := s.browser.Discovered()
	switch {
	case s.browser.Loading():
		b.WriteString(s.spinner.View("Finding new words..."))
		b.WriteString("\n")
	case len(words) == 0:
		b.WriteString(theme.Hint.Render("No new words right now. Press R to discover more."))
		b.WriteString("\n")
	default:
		for i, w := range words {
			b.WriteString(renderWord(w, i == s.cursor, cw))
			b.WriteString("\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg) + "\n")
	}
	if s.notice != "" {
		b.WriteString("\n" + theme.Correct.Render(s.notice) + "\n")
	}

	count, recent := s.browser.Mastered()
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Recently mastered (%d total)", count)))
	b.WriteString("\n")
	if len(recent) == 0 {
		b.WriteString(theme.Hint.Render("Nothing yet"))
	} else {
		names := make([]string, len(recent))
		for i, w := range recent {
			names[i] = w.Word
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(names, " · ")))
	}

	return components.Frame(b.String(), width, height)
}

func renderWord(w gateway.VocabularyWord, selected bool, cw int) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(w.Word) +
		theme.Subtitle.Render("  "+w.Translation)
	body := head
	if w.Example != "" {
		body += "\n" + theme.Hint.Render(w.Example)
	}
	card := theme.Card.Width(cw)
	if selected {
		card = card.BorderForeground(theme.Primary)
	}
	return card.Render(body)
}
