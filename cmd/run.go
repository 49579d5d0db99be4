package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/app"
	"github.com/abhisek/lingo/internal/gateway"
	ctl "github.com/abhisek/lingo/internal/lesson"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/screens/home"
	"github.com/abhisek/lingo/internal/store"
	"github.com/abhisek/lingo/internal/tutor"
	"github.com/abhisek/lingo/internal/vocab"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, p, err := openProgress(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := app.Options{
		Identity: cfg.Identity,
		Home: home.Deps{
			Progress: p,
			AIReady:  cfg.AIReady,
		},
	}

	provider, err := newProvider(cmd, st)
	if err != nil {
		slog.Warn("AI provider unavailable", "error", err)
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		opts.Home.AIReady = false
		provider = llm.NewMockProvider()
	}

	gw := gateway.New(provider, cfg.Gateway)
	opts.Home.Lessons = ctl.NewController(gw, p)
	opts.Home.Tutor = tutor.NewSession(gw, p)
	opts.Home.Vocab = vocab.NewBrowser(gw, p, cfg.Vocabulary.BatchSize)
	opts.Home.Challenges = gw

	slog.Info("starting lingo", "db", dbPath, "provider", cfg.LLM.Provider, "ai_ready", opts.Home.AIReady)
	return app.Run(opts)
}

// newProvider builds the configured provider with event logging into the
// store at dbPath. It fails when no provider key was found.
func newProvider(cmd *cobra.Command, st *store.Store) (llm.Provider, error) {
	if !cfg.AIReady {
		return nil, cfg.LLM.Validate()
	}
	return llm.NewProvider(cmd.Context(), cfg.LLM, st.EventRepo())
}
