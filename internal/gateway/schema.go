package gateway

import "github.com/abhisek/lingo/internal/llm"

// VocabularySchema defines the JSON schema for a batch of vocabulary words.
// Providers with strict structured output need an object at the root, so
// the list is wrapped in "words".
var VocabularySchema = &llm.Schema{
	Name:        "vocabulary-batch",
	Description: "Essential vocabulary words for a language learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word": map[string]any{
							"type":        "string",
							"description": "The word in the target language",
						},
						"translation": map[string]any{
							"type":        "string",
							"description": "English translation",
						},
						"example": map[string]any{
							"type":        "string",
							"description": "A short example sentence using the word",
						},
					},
					"required":             []any{"word", "translation", "example"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"words"},
		"additionalProperties": false,
	},
}

// ChallengeSchema defines the JSON schema for a translation challenge.
var ChallengeSchema = &llm.Schema{
	Name:        "translation-challenge",
	Description: "An English sentence and its correct translation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"english": map[string]any{
				"type":        "string",
				"description": "The English sentence to translate",
			},
			"correct": map[string]any{
				"type":        "string",
				"description": "The correct translation in the target language",
			},
		},
		"required":             []any{"english", "correct"},
		"additionalProperties": false,
	},
}

// LessonSchema defines the JSON schema for a structured lesson. Step fields
// that do not apply to a step type are returned as empty values.
var LessonSchema = &llm.Schema{
	Name:        "structured-lesson",
	Description: "A short language lesson made of explanation, practice and quiz steps",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A catchy title",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The core concept",
			},
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []any{"explanation", "practice", "quiz"},
						},
						"content": map[string]any{
							"type":        "string",
							"description": "The text or information shown for this step",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question for practice and quiz steps, empty otherwise",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "The expected answer for practice and quiz steps, empty otherwise",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly 3 answer choices for quiz steps, empty otherwise",
							"items":       map[string]any{"type": "string"},
						},
					},
					"required":             []any{"type", "content", "question", "correctAnswer", "options"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "topic", "steps"},
		"additionalProperties": false,
	},
}
