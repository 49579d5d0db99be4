package lesson

import ctl "github.com/abhisek/lingo/internal/lesson"

// lessonReadyMsg is sent when lesson generation finishes.
type lessonReadyMsg struct {
	Err error
}

// submittedMsg carries the result of checking the current step.
type submittedMsg struct {
	Outcome ctl.Outcome
	Err     error
}
