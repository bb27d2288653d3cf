// Package setup implements the screen where the candidate picks a skill and
// a starting level.
package setup

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewbot/internal/interview"
	"github.com/abhisek/interviewbot/internal/router"
	"github.com/abhisek/interviewbot/internal/screen"
	"github.com/abhisek/interviewbot/internal/ui/components"
	"github.com/abhisek/interviewbot/internal/ui/layout"
	"github.com/abhisek/interviewbot/internal/ui/theme"
)

const (
	actionBegin = "Begin Interview"
	actionReset = "Reset"
)

type field int

const (
	fieldSkill field = iota
	fieldLevel
	fieldActions
	fieldCount
)

// InterviewScreenFunc opens the screen that runs a started interview.
type InterviewScreenFunc func() screen.Screen

// SetupScreen collects the skill and starting level and starts the
// interview.
type SetupScreen struct {
	ctrl    *interview.Controller
	open    InterviewScreenFunc
	skill   components.TextInput
	level   components.Slider
	actions components.ButtonRow
	focus   field
	errMsg  string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen. open builds the interview screen pushed
// once the interview has started.
func New(ctrl *interview.Controller, open InterviewScreenFunc) *SetupScreen {
	return &SetupScreen{
		ctrl:    ctrl,
		open:    open,
		skill:   components.NewTextInput("e.g. Go, SQL, Kubernetes", 60),
		level:   components.NewSlider("", interview.MinLevel, interview.MaxLevel, interview.DefaultLevel),
		actions: components.NewButtonRow(actionBegin, actionReset),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.skill.Init()
}

func (s *SetupScreen) Title() string {
	return "Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	switch s.focus {
	case fieldLevel:
		hints = append(hints, layout.KeyHint{Key: "←/→", Description: "Level"})
	case fieldActions:
		hints = append(hints, layout.KeyHint{Key: "←/→", Description: "Choose"}, layout.KeyHint{Key: "Enter", Description: "Select"})
	default:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ResumedMsg:
		return s, s.syncFromSession()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == fieldSkill {
		var cmd tea.Cmd
		s.skill, cmd = s.skill.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	}

	switch s.focus {
	case fieldSkill:
		if msg.String() == "enter" {
			return s, s.setFocus(fieldLevel)
		}
		s.errMsg = ""
		var cmd tea.Cmd
		s.skill, cmd = s.skill.Update(msg)
		return s, cmd

	case fieldLevel:
		if msg.String() == "enter" {
			return s, s.setFocus(fieldActions)
		}
		s.level, _ = s.level.Update(msg)
		return s, nil

	case fieldActions:
		switch msg.String() {
		case "left", "h":
			s.actions.Prev()
		case "right", "l":
			s.actions.Next()
		case "enter", "space", " ":
			if s.actions.Current() == actionReset {
				return s, s.reset()
			}
			return s, s.begin()
		}
	}
	return s, nil
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	if f == fieldSkill {
		return s.skill.Focus()
	}
	s.skill.Blur()
	return nil
}

// begin starts the interview and opens the interview screen.
func (s *SetupScreen) begin() tea.Cmd {
	skill := s.skill.Value()
	if skill == "" {
		s.errMsg = "Enter a skill to be interviewed on."
		return s.setFocus(fieldSkill)
	}

	if _, err := s.ctrl.SubmitSkillAndLevel(skill, s.level.Value); err != nil {
		if !errors.Is(err, interview.ErrInvalidTransition) {
			s.errMsg = err.Error()
			return nil
		}
		// A finished or abandoned interview is still holding the session.
		s.ctrl.Reset()
		if _, err := s.ctrl.SubmitSkillAndLevel(skill, s.level.Value); err != nil {
			s.errMsg = err.Error()
			return nil
		}
	}

	s.errMsg = ""
	next := s.open()
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

// reset restores the session and the form to their defaults.
func (s *SetupScreen) reset() tea.Cmd {
	s.ctrl.Reset()
	s.errMsg = ""
	s.actions.Selected = 0
	return s.syncFromSession()
}

// syncFromSession copies the session's skill and level into the form.
func (s *SetupScreen) syncFromSession() tea.Cmd {
	snap := s.ctrl.Snapshot()
	s.skill.SetValue(snap.Skill)
	s.level.Set(snap.Level)
	return s.setFocus(fieldSkill)
}

func (s *SetupScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Title.Render("Adaptive Interview")))
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Subtitle.Render("Questions get harder as you answer correctly.")))
	b.WriteString("\n\n")

	var form strings.Builder
	form.WriteString(s.fieldLabel(fieldSkill, "Skill to be interviewed on"))
	form.WriteString("\n")
	form.WriteString(s.skill.View())
	form.WriteString("\n\n")

	form.WriteString(s.fieldLabel(fieldLevel, "Skill level (1-10)"))
	form.WriteString("\n")
	form.WriteString(s.level.View(s.focus == fieldLevel))
	form.WriteString("  ")
	form.WriteString(theme.Hint.Render(string(interview.Describe(s.level.Value))))
	form.WriteString("\n\n")

	form.WriteString(s.actions.View(s.focus == fieldActions))

	cardWidth := min(width-4, 64)
	b.WriteString(center.Render(theme.Card.Width(cardWidth).Render(form.String())))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Render(theme.Incorrect.Render(s.errMsg)))
	}
	return b.String()
}

func (s *SetupScreen) fieldLabel(f field, text string) string {
	if s.focus == f {
		return theme.Label.Render("▸ " + text)
	}
	return theme.Body.Render("  " + text)
}
