package editor

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dayflow/internal/domain"
)

// DefaultAutosaveDelay is the quiet period before a debounced save fires.
const DefaultAutosaveDelay = 2 * time.Second

// ─────────────────────────────────────────────────────────────
// Autosave — debounced, always-latest-state persistence
// ─────────────────────────────────────────────────────────────

// Autosave schedules debounced saves. Arm (re)starts a single timer,
// cancelling any pending one; when the timer fires the scheduler reads the
// latest page through the latest callback — never a copy captured at
// arm time — so a save always reflects every edit inside the debounce
// window. Saves are serialized and the dirty flag clears before the
// latest read, so an edit arming while a save is in flight keeps the flag
// set and its own timer persists the newer state. Failures are logged and
// leave the dirty flag set so the next edit or manual save retries; there
// is no retry timer of its own.
type Autosave struct {
	delay  time.Duration
	save   func(domain.Page) error
	latest func() domain.Page
	log    zerolog.Logger

	saveMu sync.Mutex // one flush at a time, saves apply in arm order

	mu    sync.Mutex
	timer *time.Timer
	dirty bool
}

// NewAutosave creates a scheduler. save is the persistence collaborator
// call; latest must return the current live page.
func NewAutosave(delay time.Duration, save func(domain.Page) error, latest func() domain.Page, log zerolog.Logger) *Autosave {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosave{delay: delay, save: save, latest: latest, log: log}
}

// Arm marks the document dirty and (re)starts the debounce timer.
func (a *Autosave) Arm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dirty = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

func (a *Autosave) fire() {
	a.mu.Lock()
	if !a.dirty {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	a.flush()
}

// Flush cancels any pending timer and saves immediately (manual save).
func (a *Autosave) Flush() error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	return a.flush()
}

func (a *Autosave) flush() error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	// Dirty clears before the latest read: an Arm landing after this
	// point re-sets the flag, so its state is never skipped as saved.
	a.mu.Lock()
	a.dirty = false
	a.mu.Unlock()

	page := a.latest()
	if err := a.save(page); err != nil {
		// Dirty re-sets so a later attempt retries. Never propagate
		// into the editing flow.
		a.mu.Lock()
		a.dirty = true
		a.mu.Unlock()
		a.log.Error().Err(err).Str("pageId", page.ID).Msg("autosave failed")
		return err
	}
	return nil
}

// Cancel drops any pending timer and clears the dirty flag. Called when a
// different page is loaded.
func (a *Autosave) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.dirty = false
}

// Dirty reports whether there are unsaved changes.
func (a *Autosave) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}
