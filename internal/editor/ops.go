package editor

import (
	"time"

	"dayflow/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Block collection operations
//
// All operations mutate the given page in place and report whether they
// changed anything. Callers (the Session) run them on a clone of the live
// page and thread successful results through history. Invariant guards
// (deleting the last block, out-of-range moves) are silent no-ops.
// ─────────────────────────────────────────────────────────────

// BlockPatch is a partial payload merge for UpdateBlock. Nil fields are
// left untouched.
type BlockPatch struct {
	Content  []domain.Span
	Icon     *string
	Category *domain.CalloutCategory
	Summary  []domain.Span
	IsOpen   *bool
	Code     *string
	Language *string
	URL      *string
	Caption  *string
	Title    *string
	Label    *string
	Layout   *string
}

// AddBlock inserts a freshly created block of the given type immediately
// after the block with afterID, or appends when afterID is empty or not
// found. Returns the new block's id; the caller is expected to move focus
// to it.
func AddBlock(p *domain.Page, afterID string, t domain.BlockType) string {
	nb := NewBlock(t)
	idx := indexOf(p.Blocks, afterID)
	if idx < 0 {
		p.Blocks = append(p.Blocks, nb)
	} else {
		p.Blocks = append(p.Blocks[:idx+1], append([]domain.Block{nb}, p.Blocks[idx+1:]...)...)
	}
	touch(p)
	return nb.ID
}

// UpdateBlock merges the patch into the block matching id and stamps its
// UpdatedAt. Unknown id is a no-op.
func UpdateBlock(p *domain.Page, id string, patch BlockPatch) bool {
	b := Locate(p, id)
	if b == nil {
		return false
	}
	if patch.Content != nil {
		b.Content = patch.Content
	}
	if patch.Icon != nil {
		b.Icon = *patch.Icon
	}
	if patch.Category != nil {
		b.Category = *patch.Category
	}
	if patch.Summary != nil {
		b.Summary = patch.Summary
	}
	if patch.IsOpen != nil {
		b.IsOpen = *patch.IsOpen
	}
	if patch.Code != nil {
		b.Code = *patch.Code
	}
	if patch.Language != nil {
		b.Language = *patch.Language
	}
	if patch.URL != nil {
		b.URL = *patch.URL
	}
	if patch.Caption != nil {
		b.Caption = *patch.Caption
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Label != nil {
		b.Label = *patch.Label
	}
	if patch.Layout != nil {
		b.Layout = *patch.Layout
	}
	b.UpdatedAt = time.Now()
	touch(p)
	return true
}

// SetBlockText routes plain text into whichever text field the block
// carries: Content for content variants, Summary for toggles, Code for
// code blocks. Blocks without a text field are a no-op.
func SetBlockText(p *domain.Page, id, text string) bool {
	b := Locate(p, id)
	if b == nil {
		return false
	}
	switch {
	case b.Type.IsContentType():
		b.Content = domain.Text(text)
	case b.Type == domain.BlockTypeToggle:
		b.Summary = domain.Text(text)
	case b.Type == domain.BlockTypeCode:
		b.Code = text
	default:
		return false
	}
	b.UpdatedAt = time.Now()
	touch(p)
	return true
}

// DeleteBlock removes the block with the given id. Refuses when it is the
// page's only block. Returns the id of the block that should receive focus
// (previous sibling, or the new first block) and whether anything changed.
func DeleteBlock(p *domain.Page, id string) (focusID string, ok bool) {
	if len(p.Blocks) <= 1 {
		return "", false
	}
	idx := indexOf(p.Blocks, id)
	if idx < 0 {
		return "", false
	}
	p.Blocks = append(p.Blocks[:idx], p.Blocks[idx+1:]...)
	touch(p)
	if idx > 0 {
		return p.Blocks[idx-1].ID, true
	}
	return p.Blocks[0].ID, true
}

// DuplicateBlock deep-clones the block (new ids, same type and content) and
// inserts the copy immediately after the source. Returns the new id.
func DuplicateBlock(p *domain.Page, id string) (string, bool) {
	idx := indexOf(p.Blocks, id)
	if idx < 0 {
		return "", false
	}
	dup := DeepClone(p.Blocks[idx])
	p.Blocks = append(p.Blocks[:idx+1], append([]domain.Block{dup}, p.Blocks[idx+1:]...)...)
	touch(p)
	return dup.ID, true
}

// MoveBlock swaps the block with its adjacent neighbor. No-op at either
// boundary. Direction is "up" or "down".
func MoveBlock(p *domain.Page, id, direction string) bool {
	idx := indexOf(p.Blocks, id)
	if idx < 0 {
		return false
	}
	switch direction {
	case "up":
		if idx == 0 {
			return false
		}
		p.Blocks[idx-1], p.Blocks[idx] = p.Blocks[idx], p.Blocks[idx-1]
	case "down":
		if idx == len(p.Blocks)-1 {
			return false
		}
		p.Blocks[idx], p.Blocks[idx+1] = p.Blocks[idx+1], p.Blocks[idx]
	default:
		return false
	}
	touch(p)
	return true
}

// Reorder removes the element at fromIndex and reinserts it at toIndex,
// leaving every other block's identity and relative order unchanged
// (stable array-move, drag completion semantics).
func Reorder(p *domain.Page, fromIndex, toIndex int) bool {
	n := len(p.Blocks)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
		return false
	}
	moved := p.Blocks[fromIndex]
	rest := append(p.Blocks[:fromIndex], p.Blocks[fromIndex+1:]...)
	p.Blocks = append(rest[:toIndex], append([]domain.Block{moved}, rest[toIndex:]...)...)
	touch(p)
	return true
}

// Locate finds a block by id at the top level or one level inside a
// toggle's children. Returns nil when absent.
func Locate(p *domain.Page, id string) *domain.Block {
	for i := range p.Blocks {
		if p.Blocks[i].ID == id {
			return &p.Blocks[i]
		}
		if p.Blocks[i].Type == domain.BlockTypeToggle {
			for j := range p.Blocks[i].Children {
				if p.Blocks[i].Children[j].ID == id {
					return &p.Blocks[i].Children[j]
				}
			}
		}
	}
	return nil
}

func indexOf(blocks []domain.Block, id string) int {
	for i := range blocks {
		if blocks[i].ID == id {
			return i
		}
	}
	return -1
}

func touch(p *domain.Page) {
	p.UpdatedAt = time.Now()
}
