package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingo/internal/gateway"
	ctl "github.com/abhisek/lingo/internal/lesson"
	"github.com/abhisek/lingo/internal/ui/components"
	"github.com/abhisek/lingo/internal/ui/layout"
	"github.com/abhisek/lingo/internal/ui/theme"
)

func (s *LessonScreen) renderStep(v ctl.View, width, height int) string {
	step, _ := v.CurrentStep()
	cw := layout.ContentWidth(width)
	total := len(v.Lesson.Steps)

	var b strings.Builder

	b.WriteString(theme.Title.Render(v.Lesson.Title))
	b.WriteString("\n")
	bar := components.NewProgressBar(
		fmt.Sprintf("Step %d of %d", v.Step+1, total),
		float64(v.Step)/float64(total), false, cw)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(strings.ToUpper(string(step.Type))))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(step.Content))
	b.WriteString("\n\n")

	if step.Type.Validated() && step.Question != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(step.Question))
		b.WriteString("\n\n")
	}

	switch step.Type {
	case gateway.StepQuiz:
		b.WriteString(s.choice.View())
	case gateway.StepPractice:
		b.WriteString(s.input.View())
		b.WriteString("\n")
	}

	if v.Feedback != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(v.Feedback))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	label := "Check"
	if step.Type == gateway.StepExplanation {
		label = "Continue"
	}
	if v.IsLastStep() {
		label = "Finish lesson"
	}
	b.WriteString(components.NewButton(label, !s.submitting, nil).View())

	return components.Frame(b.String(), width, height)
}

func renderLoading(width, height int, sp components.Spinner, topic string) string {
	return components.Frame(sp.View(fmt.Sprintf("Preparing your lesson on %s...", topic)), width, height)
}

func renderError(width, height int, msg string) string {
	content := theme.Incorrect.Render(msg) + "\n\n" + theme.Hint.Render("Press Enter to go back")
	return components.Frame(content, width, height)
}
