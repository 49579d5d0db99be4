package progress

import (
	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/identity"
	"github.com/abhisek/lingo/internal/store"
)

func stateToData(s State) *store.ProgressData {
	d := &store.ProgressData{
		Language:         s.Language,
		Level:            s.Level,
		Experience:       s.Experience,
		Streak:           s.Streak,
		CompletedLessons: append([]string{}, s.CompletedLessons...),
		LastStudyDate:    s.LastStudyDate,
	}
	d.MasteredVocabulary = make([]store.WordData, len(s.MasteredVocabulary))
	for i, w := range s.MasteredVocabulary {
		d.MasteredVocabulary[i] = store.WordData{
			ID:          w.ID,
			Word:        w.Word,
			Translation: w.Translation,
			Example:     w.Example,
		}
	}
	d.ActivityHistory = make([]store.ActivityDayData, len(s.ActivityHistory))
	for i, a := range s.ActivityHistory {
		d.ActivityHistory[i] = store.ActivityDayData{Day: a.Day, XP: a.XP}
	}
	return d
}

func stateFromData(d *store.ProgressData) State {
	s := State{
		Language:         d.Language,
		Level:            d.Level,
		Experience:       d.Experience,
		Streak:           d.Streak,
		CompletedLessons: append([]string(nil), d.CompletedLessons...),
		LastStudyDate:    d.LastStudyDate,
	}
	for _, w := range d.MasteredVocabulary {
		s.MasteredVocabulary = append(s.MasteredVocabulary, gateway.VocabularyWord{
			ID:          w.ID,
			Word:        w.Word,
			Translation: w.Translation,
			Example:     w.Example,
		})
	}
	for _, a := range d.ActivityHistory {
		s.ActivityHistory = append(s.ActivityHistory, ActivityDay{Day: a.Day, XP: a.XP})
	}
	return s
}

func userToData(u identity.User) *store.UserData {
	return &store.UserData{ID: u.ID, Name: u.Name, Email: u.Email, Picture: u.Picture}
}

func userFromData(d *store.UserData) identity.User {
	return identity.User{ID: d.ID, Name: d.Name, Email: d.Email, Picture: d.Picture}
}
