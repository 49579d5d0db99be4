package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, p, err := openProgress(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		printStats(p.Snapshot())
		return nil
	},
}

func printStats(s progress.State) {
	bold := color.New(color.Bold)
	accent := color.New(color.FgYellow, color.Bold)
	dim := color.New(color.Faint)

	info := progress.Info(s.Experience)
	flag := ""
	if l, ok := progress.LookupLanguage(s.Language); ok {
		flag = l.Flag + " "
	}

	bold.Printf("%s%s · %s\n", flag, s.Language, s.Level)
	fmt.Printf("Level %d  %s\n", info.Level, dim.Sprintf("%d / %d XP", info.Experience, info.NextLevelXP))
	fmt.Printf("Streak    %s\n", accent.Sprintf("🔥 %d days", s.Streak))
	fmt.Printf("Lessons   %d\n", len(s.CompletedLessons))
	fmt.Printf("Words     %d\n", len(s.MasteredVocabulary))
	fmt.Println()

	bold.Println("This week")
	best := s.WeeklyBest()
	for _, d := range s.ActivityHistory {
		n := 0
		if best > 0 {
			n = d.XP * 30 / best
		}
		bar := strings.Repeat("█", n)
		if d.XP == best && best > 0 {
			bar = accent.Sprint(bar)
		}
		fmt.Printf("%-4s %s %s\n", d.Day, bar, dim.Sprintf("%d", d.XP))
	}

	if recent := s.RecentlyMastered(5); len(recent) > 0 {
		fmt.Println()
		bold.Println("Recently mastered")
		for _, w := range recent {
			fmt.Printf("  %s %s\n", w.Word, dim.Sprint("· "+w.Translation))
		}
	}
}
