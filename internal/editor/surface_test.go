package editor_test

import (
	"testing"

	"dayflow/internal/editor"
)

// ─────────────────────────────────────────────────────────────
// Editing surface tests — buffer sync and key bindings
// ─────────────────────────────────────────────────────────────

func TestSurface_SeedOnce(t *testing.T) {
	s := editor.NewSurface("b1", false)
	s.Seed("hello")
	s.Seed("ignored")
	if s.Buffer() != "hello" {
		t.Errorf("expected first seed to win, got %q", s.Buffer())
	}
}

func TestSurface_SelfEditNotEchoed(t *testing.T) {
	s := editor.NewSurface("b1", false)
	s.Seed("hello")

	// Keystroke updates the buffer, then canonical state catches up.
	s.LocalEdit("hello w")
	if overwritten := s.Reconcile("hello w"); overwritten {
		t.Error("expected reconcile after a local edit to leave the buffer alone")
	}
	if s.Buffer() != "hello w" {
		t.Errorf("buffer clobbered: %q", s.Buffer())
	}
}

func TestSurface_FlagIsOneShot(t *testing.T) {
	s := editor.NewSurface("b1", false)
	s.Seed("typed")
	s.LocalEdit("typed more")

	s.Reconcile("typed more") // consumes the flag

	// The next canonical change is external (undo) and must overwrite.
	if overwritten := s.Reconcile("typed"); !overwritten {
		t.Fatal("expected external change to overwrite the buffer")
	}
	if s.Buffer() != "typed" {
		t.Errorf("expected buffer %q, got %q", "typed", s.Buffer())
	}
}

func TestSurface_MatchingCanonicalIsNoop(t *testing.T) {
	s := editor.NewSurface("b1", false)
	s.Seed("same")
	if s.Reconcile("same") {
		t.Error("expected matching canonical content to leave the buffer alone")
	}
}

func TestSurface_HandleKey(t *testing.T) {
	s := editor.NewSurface("b1", false)
	s.Seed("")

	if a := s.HandleKey("Enter", 0, 0); a.Kind != editor.ActionInsertBlock || a.BlockID != "b1" {
		t.Errorf("Enter: got %+v", a)
	}
	if a := s.HandleKey("Backspace", 0, 0); a.Kind != editor.ActionDeleteBlock {
		t.Errorf("Backspace on empty: got %+v", a)
	}
	if a := s.HandleKey("/", 12, 34); a.Kind != editor.ActionOpenMenu || a.Anchor.X != 12 || a.Anchor.Y != 34 {
		t.Errorf("slash on empty: got %+v", a)
	}

	s.LocalEdit("text")
	if a := s.HandleKey("Backspace", 0, 0); a.Kind != editor.ActionNone {
		t.Errorf("Backspace on non-empty: got %+v", a)
	}
	if a := s.HandleKey("/", 0, 0); a.Kind != editor.ActionNone {
		t.Errorf("slash on non-empty: got %+v", a)
	}
	if a := s.HandleKey("x", 0, 0); a.Kind != editor.ActionNone {
		t.Errorf("plain key: got %+v", a)
	}
}

func TestSurface_MultiLineEnter(t *testing.T) {
	s := editor.NewSurface("code1", true)
	s.Seed("line")
	// Code blocks keep Enter as a newline, never a structural action.
	if a := s.HandleKey("Enter", 0, 0); a.Kind != editor.ActionNone {
		t.Errorf("multiline Enter: got %+v", a)
	}
}
