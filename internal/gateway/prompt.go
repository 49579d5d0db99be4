package gateway

import (
	"fmt"
	"strings"
)

func tutorSystemPrompt(language, level string) string {
	return fmt.Sprintf(`You are a friendly language tutor named Lingo. Your goal is to help a %s student practice %s.
1. Respond in %s most of the time.
2. If the user makes a grammatical mistake, gently correct them in English.
3. Keep the conversation natural and encouraging.`, level, language, language)
}

func buildVocabularyMessage(language string, count int) string {
	return fmt.Sprintf(`Generate %d essential vocabulary words for a %s learner.
Return a JSON object: { "words": [{ "word": "...", "translation": "...", "example": "..." }] }`, count, language)
}

func buildChallengeMessage(language, level string) string {
	return fmt.Sprintf(`Generate a translation challenge for a %s student learning %s.
Return JSON: { "english": "...", "correct": "..." }`, level, language)
}

func buildLessonMessage(language, level, topic string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create a structured language lesson for %s (%s level) about %q.\n", language, level, topic))
	b.WriteString(`Return a JSON object with:
- title: A catchy title.
- topic: The core concept.
- steps: An array of 3 objects, each with 'type' (explanation, practice, quiz), 'content' (the text/info), 'question' (if quiz or practice), 'correctAnswer' (if quiz/practice), 'options' (if quiz, array of 3 strings).
For fields that do not apply to a step, return an empty string or an empty array.
Ensure the content is actually educational and challenging.`)

	return b.String()
}

func buildCritiqueMessage(message, language string) string {
	return fmt.Sprintf(`Analyze this message from a %s learner: %q.
Briefly explain mistakes in English or say "Excellent grammar!". Max 20 words.`, language, message)
}
