package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingo/internal/gateway"
	ctl "github.com/abhisek/lingo/internal/lesson"
	"github.com/abhisek/lingo/internal/llm"
	"github.com/abhisek/lingo/internal/progress"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Work with generated lessons",
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate a lesson and walk through it in the terminal (no progress saved)",
	Long: `Generate a lesson and answer its steps on the command line.

This is a stateless developer tool: progress and the AI event log are left
untouched. Useful for evaluating lesson quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", ctl.Topics[0].Name, "Lesson topic")
	previewCmd.Flags().String("language", "Spanish", "Target language")
	previewCmd.Flags().String("level", progress.LevelBeginner, "Proficiency level: Beginner, Intermediate or Advanced")

	lessonCmd.AddCommand(previewCmd)
}

// previewLearner satisfies lesson.Progress without persisting anything.
type previewLearner struct {
	language, level string
	xp              int
}

func (p *previewLearner) Language() string { return p.language }
func (p *previewLearner) Level() string    { return p.level }

func (p *previewLearner) GrantExperience(_ context.Context, amount int) error {
	p.xp += amount
	return nil
}

func (p *previewLearner) CompleteLesson(context.Context, string) error { return nil }

func runPreview(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	langVal, _ := cmd.Flags().GetString("language")
	levelVal, _ := cmd.Flags().GetString("level")

	lang, ok := progress.LookupLanguage(langVal)
	if !ok {
		return fmt.Errorf("unsupported language %q", langVal)
	}
	level, ok := progress.LookupLevel(levelVal)
	if !ok {
		return fmt.Errorf("invalid level %q: must be Beginner, Intermediate or Advanced", levelVal)
	}
	if !cfg.AIReady {
		return fmt.Errorf("LLM provider: %w", cfg.LLM.Validate())
	}

	// No EventRepo: logging skipped.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	learner := &previewLearner{language: lang.Name, level: level}
	c := ctl.NewController(gateway.New(provider, cfg.Gateway), learner)

	fmt.Printf("Generating a %s %s lesson on %q...\n\n", level, lang.Name, topic)
	if err := c.Start(ctx, topic); err != nil {
		return err
	}

	v := c.View()
	color.New(color.Bold).Printf("%s %s\n\n", lang.Flag, v.Lesson.Title)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		v = c.View()
		step, ok := v.CurrentStep()
		if !ok {
			break
		}
		printStep(v.Step+1, len(v.Lesson.Steps), step)

		answer := ""
		if step.Type.Validated() {
			fmt.Print("\nYour answer: ")
			if !scanner.Scan() {
				fmt.Println("\n(input closed)")
				c.Cancel()
				return nil
			}
			answer = choose(strings.TrimSpace(scanner.Text()), step.Options)
		} else {
			fmt.Print("\n(press Enter to continue)")
			if !scanner.Scan() {
				c.Cancel()
				return nil
			}
		}

		out, err := c.Submit(ctx, answer)
		if err != nil {
			return err
		}
		switch {
		case out.Feedback != "":
			color.Red("✗ %s (answer: %s)", out.Feedback, step.CorrectAnswer)
		case step.Type.Validated():
			color.Green("✓ Correct!")
		}
		fmt.Println()
		if out.Completed {
			break
		}
	}

	color.New(color.FgYellow, color.Bold).Printf("── Lesson complete: +%d XP (not saved) ──\n", learner.xp)
	return nil
}

func printStep(n, total int, step gateway.LessonStep) {
	fmt.Printf("── Step %d/%d · %s ──\n", n, total, step.Type)
	fmt.Println(step.Content)
	if step.Question != "" {
		fmt.Println()
		fmt.Println(step.Question)
	}
	for j, o := range step.Options {
		fmt.Printf("  %d) %s\n", j+1, o)
	}
}

// choose maps a numeric reply to the matching quiz option.
func choose(answer string, options []string) string {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return answer
}
