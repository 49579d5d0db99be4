// Package gateway is the boundary between Lingo and the generative AI
// backend. It owns the prompts and response schemas, and converts
// malformed payloads into typed empty results.
package gateway

// VocabularyWord is a word card produced by the vocabulary generator.
// ID is assigned by the caller; the backend only supplies content.
type VocabularyWord struct {
	ID          string
	Word        string
	Translation string
	Example     string
}

// StepType tags a lesson step.
type StepType string

const (
	StepExplanation StepType = "explanation"
	StepPractice    StepType = "practice"
	StepQuiz        StepType = "quiz"
)

// Validated reports whether answers to this step are checked.
func (t StepType) Validated() bool {
	return t == StepPractice || t == StepQuiz
}

// LessonStep is one screen of a lesson. Question and CorrectAnswer are set
// for practice and quiz steps; Options holds the fixed choices of a quiz.
type LessonStep struct {
	Type          StepType
	Content       string
	Question      string
	CorrectAnswer string
	Options       []string
}

// Lesson is a generated lesson. It lives only while a session is active.
type Lesson struct {
	ID    string
	Title string
	Topic string
	Steps []LessonStep
}

// Empty reports whether the lesson is the zero result of a rejected payload.
func (l Lesson) Empty() bool {
	return l.ID == "" && len(l.Steps) == 0
}

// Challenge is a single translation exercise.
type Challenge struct {
	English string
	Correct string
}

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleTutor Role = "tutor"
)

// Turn is one entry of the chat history sent with a reply request.
type Turn struct {
	Role Role
	Text string
}
