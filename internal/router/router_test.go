package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interviewbot/internal/screen"
)

// stubScreen records Init calls and the messages it receives.
type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	setup := &stubScreen{title: "setup"}
	r := New(setup)

	iv := &stubScreen{title: "interview"}
	r.Push(iv)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "interview" {
		t.Errorf("expected active 'interview', got %q", r.Active().Title())
	}
	if !iv.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "setup"})
	r.Push(&stubScreen{title: "interview"})

	r.Pop()
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "setup" {
		t.Errorf("expected active 'setup', got %q", r.Active().Title())
	}
}

func TestPopResumesScreenBelow(t *testing.T) {
	r := New(&stubScreen{title: "setup"})
	if cmd := r.Pop(); cmd != nil {
		t.Error("expected no command when popping the bottom screen")
	}

	r.Push(&stubScreen{title: "interview"})
	cmd := r.Pop()
	if cmd == nil {
		t.Fatal("expected a resume command")
	}
	if _, ok := cmd().(screen.ResumedMsg); !ok {
		t.Errorf("expected screen.ResumedMsg, got %T", cmd())
	}
}

func TestReplacePreservesDepth(t *testing.T) {
	r := New(&stubScreen{title: "setup"})
	r.Push(&stubScreen{title: "interview"})

	done := &stubScreen{title: "done"}
	r.Replace(done)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active() != done {
		t.Errorf("expected active 'done', got %q", r.Active().Title())
	}
	if !done.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestNavigationMessages(t *testing.T) {
	setup := &stubScreen{title: "setup"}
	r := New(setup)

	iv := &stubScreen{title: "interview"}
	r.Update(PushScreenMsg{Screen: iv})
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "help"}})
	if r.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", r.Depth())
	}

	r.Update(PopScreenMsg{})
	if r.Active() != iv {
		t.Fatalf("expected active 'interview', got %q", r.Active().Title())
	}

	next := &stubScreen{title: "next"}
	r.Update(ReplaceScreenMsg{Screen: next})
	if r.Active() != next || !next.initRan {
		t.Fatalf("expected 'next' active and initialised")
	}

	r.Update(PopToRootMsg{})
	if r.Depth() != 1 || r.Active() != setup {
		t.Errorf("expected only 'setup' left, got depth %d", r.Depth())
	}
	if len(setup.got) != 0 {
		t.Errorf("navigation messages leaked to screen: %v", setup.got)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	setup := &stubScreen{title: "setup"}
	r := New(setup)
	iv := &stubScreen{title: "interview"}
	r.Push(iv)

	r.Update("ping")

	if len(iv.got) != 1 || iv.got[0] != "ping" {
		t.Errorf("expected active screen to get the message, got %v", iv.got)
	}
	if len(setup.got) != 0 {
		t.Errorf("expected covered screen to get nothing, got %v", setup.got)
	}
	if v := r.View(80, 24); v != "interview" {
		t.Errorf("expected view of active screen, got %q", v)
	}
}
