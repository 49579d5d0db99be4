package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/export"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Work with mastered vocabulary",
}

var vocabExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export mastered words to an Excel (.xlsx) or CSV (.csv) file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, p, err := openProgress(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snap := p.Snapshot()
		if err := export.Vocabulary(args[0], snap.Language, snap.MasteredVocabulary); err != nil {
			return err
		}
		fmt.Printf("Exported %d words to %s\n", len(snap.MasteredVocabulary), args[0])
		return nil
	},
}

func init() {
	vocabCmd.AddCommand(vocabExportCmd)
}
