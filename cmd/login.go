package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/identity"
)

var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Sign in with an identity token",
	Long: `Sign in with an identity token (a JWT issued for the configured client id).
The token is read from stdin when not given as an argument. Progress on this
machine is kept and attributed to the signed-in learner.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Identity.Enabled() {
			return errors.New("sign-in is not configured: set LINGO_IDENTITY_CLIENT_ID or identity.client_id")
		}

		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Fprint(os.Stderr, "Token: ")
			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			if scanner.Scan() {
				token = strings.TrimSpace(scanner.Text())
			}
		}

		res := identity.Resolve(cmd.Context(), cfg.Identity, token)
		switch res.Outcome {
		case identity.OutcomeFailed:
			return fmt.Errorf("sign in: %w", res.Err)
		case identity.OutcomeGuest:
			return errors.New("no token given")
		}

		st, p, err := openProgress(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := p.SetUser(cmd.Context(), res.User); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		name := res.User.Name
		if name == "" {
			name = res.User.Email
		}
		color.Green("Signed in as %s", name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out, keeping local progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, p, err := openProgress(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if _, ok := p.User(); !ok {
			fmt.Println("Not signed in.")
			return nil
		}
		if err := p.ClearUser(cmd.Context()); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
		fmt.Println("Signed out. Your progress stays on this machine.")
		return nil
	},
}
