// Package config loads application settings from config.yaml, .env files
// and LINGO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/lingo/internal/gateway"
	"github.com/abhisek/lingo/internal/identity"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/store"
	"github.com/abhisek/lingo/internal/vocab"
)

// EnvPrefix prefixes every environment override, e.g. LINGO_LLM_PROVIDER.
const EnvPrefix = "LINGO"

type Config struct {
	DB         string           `mapstructure:"db"`
	LLM        llm.Config       `mapstructure:"llm"`
	Gateway    gateway.Config   `mapstructure:"gateway"`
	Identity   identity.Config  `mapstructure:"identity"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Log        LogConfig        `mapstructure:"log"`

	// AIReady is set by Load when a provider key was found.
	AIReady bool `mapstructure:"-"`
}

type VocabularyConfig struct {
	BatchSize int `mapstructure:"batch_size" validate:"gte=1,lte=20"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"` // Default: lingo.log next to the database
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:        llm.DefaultConfig(),
		Gateway:    gateway.DefaultConfig(),
		Vocabulary: VocabularyConfig{BatchSize: vocab.DefaultBatchSize},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads configFile, or config.yaml from ./ and $HOME/.config/lingo when
// configFile is empty. envFiles are loaded into the environment first;
// missing ones are skipped and variables already set win.
func Load(configFile string, envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lingo")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.LLM, cfg.AIReady = llm.Discover(cfg.LLM)
	return &cfg, nil
}

// Validate checks field constraints and reports them in plain English.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return translateErrors(err, trans)
	}
	return nil
}

// DBPath resolves the database file, creating its directory.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, store.EnsureDir(c.DB)
	}
	return store.DefaultDBPath()
}

// LogPath is the log file location for a database at dbPath.
func (c *Config) LogPath(dbPath string) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(dbPath), "lingo.log")
}

func loadDotEnv(files []string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db", d.DB)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.LLM.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", d.LLM.OpenAI.BaseURL)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.LLM.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", d.LLM.OpenRouter.BaseURL)
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)

	v.SetDefault("gateway.vocab_max_tokens", d.Gateway.VocabMaxTokens)
	v.SetDefault("gateway.lesson_max_tokens", d.Gateway.LessonMaxTokens)
	v.SetDefault("gateway.challenge_max_tokens", d.Gateway.ChallengeMaxTokens)
	v.SetDefault("gateway.chat_max_tokens", d.Gateway.ChatMaxTokens)
	v.SetDefault("gateway.critique_max_tokens", d.Gateway.CritiqueMaxTokens)
	v.SetDefault("gateway.temperature", d.Gateway.Temperature)
	v.SetDefault("gateway.chat_temperature", d.Gateway.ChatTemperature)

	v.SetDefault("identity.client_id", d.Identity.ClientID)
	v.SetDefault("vocabulary.batch_size", d.Vocabulary.BatchSize)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}
