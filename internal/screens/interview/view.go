package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	iv "github.com/abhisek/interviewbot/internal/interview"
	"github.com/abhisek/interviewbot/internal/ui/components"
	"github.com/abhisek/interviewbot/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *InterviewScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	if s.snap.Completed() {
		return s.renderCompleted(width)
	}
	return s.renderRound(width)
}

// renderRound renders the skill line, the question and the answer box.
func (s *InterviewScreen) renderRound(width int) string {
	var b strings.Builder

	info := theme.Label.Render(fmt.Sprintf("  Skill: %s", s.snap.Skill)) +
		theme.Hint.Render(fmt.Sprintf("  (%s)", s.snap.Description))
	b.WriteString(info)
	b.WriteString("\n  ")
	b.WriteString(components.NewProgressBar("Progress", s.snap.QuestionCount, iv.MaxQuestions, min(width-4, 60)).View())
	b.WriteString("\n\n")

	if s.last != nil {
		b.WriteString("  ")
		b.WriteString(renderVerdict(*s.last))
		b.WriteString("\n\n")
	}

	switch {
	case s.busy && s.snap.Phase == iv.PhaseAwaitingQuestion:
		b.WriteString(s.renderBusy("Preparing question %d...", s.snap.Round()))
	case s.snap.CurrentQuestion != "":
		b.WriteString(renderQuestion(width, s.snap.Round(), s.snap.CurrentQuestion))
		b.WriteString("\n\n")
		if s.busy {
			b.WriteString(s.renderBusy("Checking your answer..."))
		} else {
			b.WriteString("  Your answer: ")
			b.WriteString(s.input.View())
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n\n  ")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
		if s.retry != actionNone {
			b.WriteString("\n  ")
			b.WriteString(theme.Hint.Render("Press Enter to try again."))
		}
	}
	return b.String()
}

func (s *InterviewScreen) renderBusy(format string, args ...any) string {
	frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
	return "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render(frame) + " " +
		theme.Hint.Render(fmt.Sprintf(format, args...))
}

func renderQuestion(width, round int, question string) string {
	header := theme.Label.Render(fmt.Sprintf("Question %d:", round))
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(max(width-4, 20)).
		Render(question)
	return "  " + header + "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(body)
}

func renderVerdict(r iv.RoundResult) string {
	var line string
	if r.Correct {
		line = theme.Correct.Render("Your answer is correct.")
	} else {
		line = theme.Incorrect.Render("Your answer is incorrect.")
	}
	if r.Reason != "" {
		line += " " + theme.Hint.Render(r.Reason)
	}
	return line
}

// renderCompleted renders the closing message and the final level.
func (s *InterviewScreen) renderCompleted(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	if s.last != nil {
		b.WriteString(center.Render(renderVerdict(*s.last)))
		b.WriteString("\n\n")
	}
	b.WriteString(center.Render(theme.Title.Render("Interview completed. Thank you!")))
	b.WriteString("\n\n")
	b.WriteString(center.Render(theme.Body.Render(fmt.Sprintf(
		"%s · %d questions answered · final level %d/%d (%s)",
		s.snap.Skill, s.snap.QuestionCount, s.snap.Level, iv.MaxLevel, iv.Describe(s.snap.Level),
	))))
	b.WriteString("\n\n")
	b.WriteString(center.Render(components.NewButton("Start Again", true).View()))
	return b.String()
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Abandon this interview?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your answers so far will be discarded."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Error).Render("[Y] Yes, reset"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Success).Render("[N] No, keep going"))
	return b.String()
}
