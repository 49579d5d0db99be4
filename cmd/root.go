package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/config"
	"github.com/abhisek/lingo/internal/logging"
	"github.com/abhisek/lingo/internal/progress"
	"github.com/abhisek/lingo/internal/store"
)

var (
	cfg       *config.Config
	dbPath    string
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "lingo",
	Short: "AI language tutor in your terminal",
	Long: `Lingo helps you learn Spanish, French, German, Japanese or Chinese with AI-generated
lessons, a chat tutor, vocabulary cards and daily challenges.

AI features need a provider key. Lingo picks up GEMINI_API_KEY, OPENAI_API_KEY,
ANTHROPIC_API_KEY or OPENROUTER_API_KEY from the environment, or LINGO_LLM_*
settings from config.yaml (./ or ~/.config/lingo) and .env.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./config.yaml or ~/.config/lingo/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGO_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, resolves the database path and starts
// file logging. The TUI owns the terminal, so logs never go to stderr.
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == versionCmd.Name() {
		return nil
	}

	configFile, _ := cmd.Flags().GetString("config")
	c, err := config.Load(configFile, ".env")
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DB = p
	}

	path, err := c.DBPath()
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	closer, err := logging.Setup(c.LogPath(path), c.Log.Level, verbose)
	if err != nil {
		return err
	}

	cfg, dbPath, logCloser = c, path, closer
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// openProgress opens the store and loads the learner's progress. Close the
// returned store when done.
func openProgress(cmd *cobra.Command) (*store.Store, *progress.Store, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	p, err := progress.Load(cmd.Context(), st.StateRepo())
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load progress: %w", err)
	}
	return st, p, nil
}
