package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the search paths at an empty directory and clears every
// variable Load consults.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"LINGO_DB", "LINGO_LLM_PROVIDER", "LINGO_LLM_GEMINI_API_KEY", "LINGO_LLM_OPENAI_API_KEY",
		"LINGO_LLM_TIMEOUT", "LINGO_IDENTITY_CLIENT_ID", "LINGO_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 2048, cfg.Gateway.LessonMaxTokens)
	assert.Equal(t, 3, cfg.Vocabulary.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Identity.Enabled())
	assert.False(t, cfg.AIReady)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "lingo.yaml", `db: /tmp/lingo-test.db
llm:
  provider: openai
  timeout: 45s
  openai:
    api_key: sk-file
    model: gpt-4o
gateway:
  chat_temperature: 0.5
identity:
  client_id: web-client
vocabulary:
  batch_size: 5
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lingo-test.db", cfg.DB)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 0.5, cfg.Gateway.ChatTemperature)
	assert.Equal(t, 0.7, cfg.Gateway.Temperature)
	assert.True(t, cfg.Identity.Enabled())
	assert.Equal(t, 5, cfg.Vocabulary.BatchSize)
	assert.True(t, cfg.AIReady)
}

func TestLoad_SearchPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "config.yaml", "llm:\n  provider: mock\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.True(t, cfg.AIReady)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "lingo.yaml", "llm:\n  provider: openai\n")
	t.Setenv("LINGO_LLM_PROVIDER", "anthropic")
	t.Setenv("LINGO_LLM_TIMEOUT", "5s")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-vendor")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-vendor", cfg.LLM.OpenAI.APIKey)
	assert.True(t, cfg.AIReady)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	env := writeFile(t, dir, ".env", "LINGO_LLM_PROVIDER=mock\nLINGO_IDENTITY_CLIENT_ID=dotenv-client\n")

	cfg, err := Load("", env, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "dotenv-client", cfg.Identity.ClientID)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := isolate(t)
	env := writeFile(t, dir, ".env", "LINGO_LLM_PROVIDER=mock\n")
	t.Setenv("LINGO_LLM_PROVIDER", "openrouter")

	cfg, err := Load("", env)
	require.NoError(t, err)
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr []string
	}{
		{
			name:    "unknown provider",
			content: "llm:\n  provider: palm\n",
			wantErr: []string{"invalid configuration", "llm.provider"},
		},
		{
			name:    "batch size out of range",
			content: "vocabulary:\n  batch_size: 50\n",
			wantErr: []string{"vocabulary.batch_size"},
		},
		{
			name:    "bad log level",
			content: "log:\n  level: loud\n",
			wantErr: []string{"log.level"},
		},
		{
			name:    "malformed yaml",
			content: "llm:\n  provider: [[[\n",
			wantErr: []string{"could not be read"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			p := writeFile(t, dir, "lingo.yaml", tt.content)

			_, err := Load(p)
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestDBAndLogPath(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.DB = filepath.Join(dir, "data", "lingo.db")
	p, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, cfg.DB, p)
	assert.DirExists(t, filepath.Join(dir, "data"))
	assert.Equal(t, filepath.Join(dir, "data", "lingo.log"), cfg.LogPath(p))

	cfg.Log.File = filepath.Join(dir, "custom.log")
	assert.Equal(t, cfg.Log.File, cfg.LogPath(p))

	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg"))
	cfg.DB = ""
	p, err = cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "xdg", "lingo", "lingo.db"), p)
}
