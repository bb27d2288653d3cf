package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewbot/internal/ui/theme"
)

// Slider picks an integer in [Min, Max] with the arrow keys.
type Slider struct {
	Label string
	Min   int
	Max   int
	Value int
}

// NewSlider creates a slider at value, clamped into [lo, hi].
func NewSlider(label string, lo, hi, value int) Slider {
	s := Slider{Label: label, Min: lo, Max: hi}
	s.Set(value)
	return s
}

// Set moves the slider to v, clamped into range.
func (s *Slider) Set(v int) {
	s.Value = min(max(v, s.Min), s.Max)
}

// Update handles left/right (and h/l) key presses.
func (s Slider) Update(msg tea.Msg) (Slider, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "-":
		s.Set(s.Value - 1)
	case "right", "l", "+":
		s.Set(s.Value + 1)
	case "home":
		s.Set(s.Min)
	case "end":
		s.Set(s.Max)
	}
	return s, nil
}

// View renders the track with one cell per value. focused highlights the
// knob.
func (s Slider) View(focused bool) string {
	var b strings.Builder
	if s.Label != "" {
		b.WriteString(theme.Label.Render(s.Label))
		b.WriteString("  ")
	}

	knob := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if !focused {
		knob = lipgloss.NewStyle().Foreground(theme.Text)
	}
	track := lipgloss.NewStyle().Foreground(theme.Border)
	for v := s.Min; v <= s.Max; v++ {
		if v == s.Value {
			b.WriteString(knob.Render("●"))
		} else {
			b.WriteString(track.Render("─"))
		}
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d", s.Value)))
	return b.String()
}
