package gateway

// Config holds generation settings for each gateway operation.
type Config struct {
	VocabMaxTokens     int     `mapstructure:"vocab_max_tokens" validate:"gt=0"`
	LessonMaxTokens    int     `mapstructure:"lesson_max_tokens" validate:"gt=0"`
	ChallengeMaxTokens int     `mapstructure:"challenge_max_tokens" validate:"gt=0"`
	ChatMaxTokens      int     `mapstructure:"chat_max_tokens" validate:"gt=0"`
	CritiqueMaxTokens  int     `mapstructure:"critique_max_tokens" validate:"gt=0"`
	Temperature        float64 `mapstructure:"temperature" validate:"gte=0,lte=1"`
	ChatTemperature    float64 `mapstructure:"chat_temperature" validate:"gte=0,lte=1"`
}

// DefaultConfig returns sensible defaults for the gateway.
func DefaultConfig() Config {
	return Config{
		VocabMaxTokens:     1024,
		LessonMaxTokens:    2048,
		ChallengeMaxTokens: 256,
		ChatMaxTokens:      512,
		CritiqueMaxTokens:  128,
		Temperature:        0.7,
		ChatTemperature:    0.8,
	}
}
