package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewbot/internal/ui/theme"
)

// Button is a labelled action. Active marks the button that has focus.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	label := " " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render("▸" + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow is a horizontal group of buttons with one focused entry.
type ButtonRow struct {
	Labels   []string
	Selected int
}

// NewButtonRow creates a row with the first button focused.
func NewButtonRow(labels ...string) ButtonRow {
	return ButtonRow{Labels: labels}
}

// Next moves focus right, wrapping around.
func (r *ButtonRow) Next() {
	if len(r.Labels) == 0 {
		return
	}
	r.Selected = (r.Selected + 1) % len(r.Labels)
}

// Prev moves focus left, wrapping around.
func (r *ButtonRow) Prev() {
	if len(r.Labels) == 0 {
		return
	}
	r.Selected = (r.Selected - 1 + len(r.Labels)) % len(r.Labels)
}

// Current returns the focused label.
func (r ButtonRow) Current() string {
	if r.Selected < 0 || r.Selected >= len(r.Labels) {
		return ""
	}
	return r.Labels[r.Selected]
}

// View renders the buttons side by side. focused false renders every
// button inactive.
func (r ButtonRow) View(focused bool) string {
	parts := make([]string, 0, 2*len(r.Labels))
	for i, l := range r.Labels {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, NewButton(l, focused && i == r.Selected).View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
