package editor

// ─────────────────────────────────────────────────────────────
// Editing surface — uncontrolled buffer synced from canonical state
// ─────────────────────────────────────────────────────────────

// Surface is the local edit buffer of one editable text region. The buffer
// is uncontrolled: external updates to canonical content (undo, transform,
// vault re-import) must refresh it, but the region's own keystrokes must
// never be echoed back, because overwriting the buffer mid-edit relocates
// the caret. Every local edit sets a one-shot self-edit flag before the
// canonical model is notified; the next reconciliation consumes the flag
// instead of overwriting.
type Surface struct {
	BlockID   string
	MultiLine bool // code blocks: Enter inserts a newline instead of a block

	buffer   string
	selfEdit bool
	seeded   bool
}

// Anchor is a screen coordinate pair reported when the slash command menu
// should open. Rendering the menu is the frontend's job.
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ActionKind is the structural action a keystroke resolves to.
type ActionKind string

const (
	ActionNone        ActionKind = ""
	ActionInsertBlock ActionKind = "insertBlock" // Enter
	ActionDeleteBlock ActionKind = "deleteBlock" // Backspace on empty buffer
	ActionOpenMenu    ActionKind = "openMenu"    // "/" on empty buffer
)

// Action is the result of HandleKey.
type Action struct {
	Kind    ActionKind
	BlockID string
	Anchor  Anchor
}

// NewSurface creates a surface for one block's text region.
func NewSurface(blockID string, multiLine bool) *Surface {
	return &Surface{BlockID: blockID, MultiLine: multiLine}
}

// Seed fills the buffer from canonical content once, on mount. Later calls
// are ignored; reconciliation owns updates from then on.
func (s *Surface) Seed(canonical string) {
	if s.seeded {
		return
	}
	s.buffer = canonical
	s.seeded = true
}

// LocalEdit records a keystroke-originated buffer change and raises the
// one-shot flag. The caller then pushes text into the canonical model.
func (s *Surface) LocalEdit(text string) {
	s.buffer = text
	s.selfEdit = true
}

// Reconcile is the effect run whenever canonical content may have changed.
// A pending self-edit flag is consumed without touching the buffer; only a
// mismatch with the flag absent overwrites. Reports whether the buffer was
// overwritten.
func (s *Surface) Reconcile(canonical string) bool {
	if s.selfEdit {
		s.selfEdit = false
		return false
	}
	if s.buffer == canonical {
		return false
	}
	s.buffer = canonical
	return true
}

// Buffer returns the current local text.
func (s *Surface) Buffer() string { return s.buffer }

// HandleKey maps a structural keystroke to an action. caretX/caretY is the
// caret's screen position, used to anchor the slash command menu.
//
//	Enter               → insert block after this one
//	Backspace, buffer "" → delete this block
//	"/", buffer ""       → open the block-type command menu
func (s *Surface) HandleKey(key string, caretX, caretY float64) Action {
	switch key {
	case "Enter":
		if s.MultiLine {
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionInsertBlock, BlockID: s.BlockID}
	case "Backspace":
		if s.buffer == "" {
			return Action{Kind: ActionDeleteBlock, BlockID: s.BlockID}
		}
	case "/":
		if s.buffer == "" {
			return Action{
				Kind:    ActionOpenMenu,
				BlockID: s.BlockID,
				Anchor:  Anchor{X: caretX, Y: caretY},
			}
		}
	}
	return Action{Kind: ActionNone}
}
