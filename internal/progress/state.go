// Package progress holds the learner's progression state and mirrors it to
// durable local storage on every change.
package progress

import (
	"strings"
	"time"

	"github.com/abhisek/lingo/internal/gateway"
)

// Language is a target language offered by Lingo.
type Language struct {
	Name   string
	Flag   string
	Native string
}

// Languages lists the supported target languages in display order.
var Languages = []Language{
	{Name: "Spanish", Flag: "🇪🇸", Native: "Español"},
	{Name: "French", Flag: "🇫🇷", Native: "Français"},
	{Name: "German", Flag: "🇩🇪", Native: "Deutsch"},
	{Name: "Japanese", Flag: "🇯🇵", Native: "日本語"},
	{Name: "Chinese", Flag: "🇨🇳", Native: "中文"},
}

// LookupLanguage finds a supported language by name (case-insensitive).
func LookupLanguage(name string) (Language, bool) {
	for _, l := range Languages {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Language{}, false
}

// Proficiency levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Levels lists the proficiency levels in ascending order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// LookupLevel finds a proficiency level by name (case-insensitive).
func LookupLevel(name string) (string, bool) {
	for _, l := range Levels {
		if strings.EqualFold(l, name) {
			return l, true
		}
	}
	return "", false
}

// WeekDays are the histogram slot keys, Monday first.
var WeekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ActivityDay is one histogram slot: XP earned on a weekday.
type ActivityDay struct {
	Day string
	XP  int
}

// State is the learner's progression.
type State struct {
	Language           string
	Level              string
	Experience         int
	Streak             int
	MasteredVocabulary []gateway.VocabularyWord
	CompletedLessons   []string
	ActivityHistory    []ActivityDay
	LastStudyDate      string
}

// DateLayout formats LastStudyDate.
const DateLayout = "2006-01-02"

// DefaultState is the state of a new installation, also used after a reset
// or when the stored record cannot be read.
func DefaultState(now time.Time) State {
	return State{
		Language:   "Spanish",
		Level:      LevelBeginner,
		Experience: 450,
		Streak:     3,
		ActivityHistory: []ActivityDay{
			{Day: "Mon", XP: 40},
			{Day: "Tue", XP: 120},
			{Day: "Wed", XP: 90},
			{Day: "Thu", XP: 210},
			{Day: "Fri", XP: 150},
			{Day: "Sat", XP: 0},
			{Day: "Sun", XP: 0},
		},
		LastStudyDate: now.Format(DateLayout),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.MasteredVocabulary = append([]gateway.VocabularyWord(nil), s.MasteredVocabulary...)
	out.CompletedLessons = append([]string(nil), s.CompletedLessons...)
	out.ActivityHistory = append([]ActivityDay(nil), s.ActivityHistory...)
	return out
}

// WeeklyBest returns the highest XP total of any histogram slot.
func (s State) WeeklyBest() int {
	best := 0
	for _, d := range s.ActivityHistory {
		if d.XP > best {
			best = d.XP
		}
	}
	return best
}

// RecentlyMastered returns up to n mastered words, newest first.
func (s State) RecentlyMastered(n int) []gateway.VocabularyWord {
	words := s.MasteredVocabulary
	if n > len(words) {
		n = len(words)
	}
	out := make([]gateway.VocabularyWord, 0, n)
	for i := len(words) - 1; i >= len(words)-n; i-- {
		out = append(out, words[i])
	}
	return out
}
