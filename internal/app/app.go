// Package app hosts the root Bubble Tea model of the interactive session.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewbot/internal/interview"
	"github.com/abhisek/interviewbot/internal/router"
	"github.com/abhisek/interviewbot/internal/screen"
	ivscreen "github.com/abhisek/interviewbot/internal/screens/interview"
	"github.com/abhisek/interviewbot/internal/screens/setup"
	"github.com/abhisek/interviewbot/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctrl   *interview.Controller
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel that starts on the setup screen.
func newAppModel(ctx context.Context, ctrl *interview.Controller) AppModel {
	setupScreen := setup.New(ctrl, func() screen.Screen {
		return ivscreen.New(ctx, ctrl)
	})
	return AppModel{
		ctrl:   ctrl,
		router: router.New(setupScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.Reset()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// headerStatus reports the running interview's level and round.
func (m AppModel) headerStatus() layout.HeaderStatus {
	snap := m.ctrl.Snapshot()
	if snap.Phase == interview.PhaseIdle {
		return layout.HeaderStatus{}
	}
	return layout.HeaderStatus{
		Level: snap.Level,
		Round: min(snap.Round(), interview.MaxQuestions),
		Total: interview.MaxQuestions,
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = hp.KeyHints()
		}
	}
	if len(hints) == 0 {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program on the setup screen and blocks until the
// user quits.
func Run(ctx context.Context, ctrl *interview.Controller) error {
	p := tea.NewProgram(newAppModel(ctx, ctrl), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
