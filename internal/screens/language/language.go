// Package language is the picker for target language and proficiency.
package language

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/router"
	"github.com/abhisek/lingo/internal/screen"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

// Settings is the part of the progress store the picker changes.
type Settings interface {
	Language() string
	Level() string
	SetLanguage(ctx context.Context, name string) error
	SetLevel(ctx context.Context, name string) error
}

// Watcher is notified after the language changed. *vocab.Browser
// satisfies it.
type Watcher interface {
	OnLanguageChange(ctx context.Context, language string) error
}

type column int

const (
	columnLanguage column = iota
	columnLevel
)

// savedMsg is sent once the selection has been persisted.
type savedMsg struct {
	Err error
}

// LanguageScreen implements screen.Screen for the language picker.
type LanguageScreen struct {
	settings Settings
	watcher  Watcher

	focus    column
	language int
	level    int
	errMsg   string
}

var _ screen.Screen = (*LanguageScreen)(nil)
var _ screen.KeyHintProvider = (*LanguageScreen)(nil)

// New creates a picker preselecting the current settings. watcher may be
// nil.
func New(settings Settings, watcher Watcher) *LanguageScreen {
	s := &LanguageScreen{settings: settings, watcher: watcher}
	for i, l := range progress.Languages {
		if l.Name == settings.Language() {
			s.language = i
		}
	}
	for i, l := range progress.Levels {
		if l == settings.Level() {
			s.level = i
		}
	}
	return s
}

func (s *LanguageScreen) Init() tea.Cmd { return nil }

func (s *LanguageScreen) Title() string { return "Language & Level" }

func (s *LanguageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Tab", Description: "Switch column"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LanguageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.errMsg = "Couldn't save your choice."
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "left", "right", "h", "l":
			if s.focus == columnLanguage {
				s.focus = columnLevel
			} else {
				s.focus = columnLanguage
			}
		case "up", "k":
			s.move(-1)
		case "down", "j":
			s.move(1)
		case "enter":
			return s, s.save()
		}
	}
	return s, nil
}

func (s *LanguageScreen) move(delta int) {
	if s.focus == columnLanguage {
		s.language = clamp(s.language+delta, len(progress.Languages))
	} else {
		s.level = clamp(s.level+delta, len(progress.Levels))
	}
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// save persists the selection and, when the language changed, refreshes
// vocabulary in the background.
func (s *LanguageScreen) save() tea.Cmd {
	language := progress.Languages[s.language].Name
	level := progress.Levels[s.level]
	changed := language != s.settings.Language()
	settings, watcher := s.settings, s.watcher

	return func() tea.Msg {
		ctx := context.Background()
		if err := settings.SetLanguage(ctx, language); err != nil {
			return savedMsg{Err: err}
		}
		if err := settings.SetLevel(ctx, level); err != nil {
			return savedMsg{Err: err}
		}
		if changed && watcher != nil {
			go func() {
				if err := watcher.OnLanguageChange(context.Background(), language); err != nil {
					slog.Warn("vocabulary refresh after language change failed", "language", language, "error", err)
				}
			}()
		}
		return savedMsg{}
	}
}

func (s *LanguageScreen) View(width, height int) string {
	langs := make([]string, len(progress.Languages))
	for i, l := range progress.Languages {
		langs[i] = l.Flag + "  " + l.Name + "  " + theme.Subtitle.Render(l.Native)
	}

	left := renderColumn("Language", langs, s.language, s.focus == columnLanguage)
	right := renderColumn("Level", progress.Levels, s.level, s.focus == columnLevel)

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	if s.errMsg != "" {
		content += "\n\n" + theme.Incorrect.Render(s.errMsg)
	}
	return components.Frame(content, width, height)
}

func renderColumn(title string, items []string, selected int, focused bool) string {
	var b strings.Builder
	head := theme.Subtitle
	if focused {
		head = theme.Title
	}
	b.WriteString(head.Render(title))
	b.WriteString("\n\n")
	for i, item := range items {
		if i == selected {
			marker := "  "
			if focused {
				marker = "▸ "
			}
			b.WriteString(theme.Selected.Render(marker) + item)
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	return b.String()
}
