package editor_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
)

// ─────────────────────────────────────────────────────────────
// Autosave tests — debounce, latest-state reads, failure handling
// ─────────────────────────────────────────────────────────────

// saveRecorder is a thread-safe persistence double.
type saveRecorder struct {
	mu    sync.Mutex
	saved []domain.Page
	err   error
}

func (r *saveRecorder) save(p domain.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, p)
	return nil
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func (r *saveRecorder) last() domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved[len(r.saved)-1]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestAutosave_DebouncesToSingleSave(t *testing.T) {
	rec := &saveRecorder{}
	var mu sync.Mutex
	page := titledPage("v0")
	latest := func() domain.Page {
		mu.Lock()
		defer mu.Unlock()
		return page
	}

	a := editor.NewAutosave(30*time.Millisecond, rec.save, latest, zerolog.Nop())

	// Three rapid edits inside the quiet period.
	for _, title := range []string{"v1", "v2", "v3"} {
		mu.Lock()
		page.Title = title
		mu.Unlock()
		a.Arm()
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, func() bool { return rec.count() > 0 })
	time.Sleep(60 * time.Millisecond) // no second timer should fire

	if got := rec.count(); got != 1 {
		t.Fatalf("expected exactly 1 save, got %d", got)
	}
	// The save reflects the state at fire time, not at arm time.
	if rec.last().Title != "v3" {
		t.Errorf("expected latest state v3, got %q", rec.last().Title)
	}
	if a.Dirty() {
		t.Error("expected dirty to clear after a successful save")
	}
}

func TestAutosave_FlushCancelsTimer(t *testing.T) {
	rec := &saveRecorder{}
	page := titledPage("manual")
	a := editor.NewAutosave(50*time.Millisecond, rec.save, func() domain.Page { return page }, zerolog.Nop())

	a.Arm()
	if err := a.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if rec.count() != 1 {
		t.Fatalf("expected 1 save after flush, got %d", rec.count())
	}

	time.Sleep(80 * time.Millisecond)
	if rec.count() != 1 {
		t.Errorf("expected the pending timer to be cancelled, got %d saves", rec.count())
	}
}

func TestAutosave_FailureKeepsDirty(t *testing.T) {
	rec := &saveRecorder{err: errors.New("disk full")}
	page := titledPage("doomed")
	a := editor.NewAutosave(10*time.Millisecond, rec.save, func() domain.Page { return page }, zerolog.Nop())

	a.Arm()
	waitFor(t, func() bool { return a.Dirty() })
	time.Sleep(30 * time.Millisecond)

	// Failure never clears the flag; the next flush retries and succeeds.
	if !a.Dirty() {
		t.Fatal("expected dirty to stay set after a failed save")
	}
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	if err := a.Flush(); err != nil {
		t.Fatalf("retry flush: %v", err)
	}
	if a.Dirty() {
		t.Error("expected dirty to clear after the retry succeeded")
	}
}

func TestAutosave_EditDuringInflightSaveIsPersisted(t *testing.T) {
	rec := &saveRecorder{}
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	save := func(p domain.Page) error {
		blocking := false
		once.Do(func() { blocking = true })
		if blocking {
			close(entered)
			<-release
		}
		return rec.save(p)
	}

	var mu sync.Mutex
	page := titledPage("v1")
	latest := func() domain.Page {
		mu.Lock()
		defer mu.Unlock()
		return page
	}

	a := editor.NewAutosave(10*time.Millisecond, save, latest, zerolog.Nop())

	a.Arm()
	select {
	case <-entered: // first save is in flight holding v1
	case <-time.After(2 * time.Second):
		t.Fatal("first save never started")
	}

	// A second edit lands while the save is still running.
	mu.Lock()
	page.Title = "v2"
	mu.Unlock()
	a.Arm()

	close(release)

	waitFor(t, func() bool { return rec.count() == 2 })
	if rec.last().Title != "v2" {
		t.Errorf("expected the in-flight edit to be persisted, got %q", rec.last().Title)
	}
	waitFor(t, func() bool { return !a.Dirty() })
}

func TestAutosave_CancelDropsPendingWork(t *testing.T) {
	rec := &saveRecorder{}
	page := titledPage("cancelled")
	a := editor.NewAutosave(20*time.Millisecond, rec.save, func() domain.Page { return page }, zerolog.Nop())

	a.Arm()
	a.Cancel()
	if a.Dirty() {
		t.Error("expected cancel to clear the dirty flag")
	}

	time.Sleep(50 * time.Millisecond)
	if rec.count() != 0 {
		t.Errorf("expected no save after cancel, got %d", rec.count())
	}
}
