package editor

import (
	"strings"
	"time"

	"dayflow/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Type transformation — convert a block to another variant while
// preserving identity and best-effort textual content
// ─────────────────────────────────────────────────────────────

// TransformBlock converts the block with the given id to newType. The
// block's id and CreatedAt survive, UpdatedAt is refreshed, and the plain
// text of the source is re-wrapped into the destination's payload shape.
// Styling does not survive a cross-shape conversion; characters always do.
// Same-type and unknown-type transforms are no-ops.
func TransformBlock(p *domain.Page, id string, newType domain.BlockType) bool {
	src := Locate(p, id)
	if src == nil || src.Type == newType || !newType.Known() {
		return false
	}

	text := ExtractPlainText(*src)
	dst := NewBlock(newType)

	switch {
	case newType.IsContentType():
		dst.Content = domain.Text(text)
	case newType.IsListType():
		dst.Items = itemsFromText(text)
	case newType == domain.BlockTypeToggle:
		dst.Summary = domain.Text(text)
	case newType == domain.BlockTypeCode:
		dst.Code = text
	default:
		// leaf/media/reference destinations keep their default payload;
		// the conversion is lossy for text on purpose
	}

	dst.ID = src.ID
	dst.CreatedAt = src.CreatedAt
	dst.UpdatedAt = time.Now()
	*src = dst
	touch(p)
	return true
}

// itemsFromText splits text on newlines into one item per non-empty line.
// A split yielding zero lines still produces exactly one empty item.
func itemsFromText(text string) []domain.Item {
	var items []domain.Item
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		it := NewItem()
		it.Content = domain.Text(line)
		items = append(items, it)
	}
	if len(items) == 0 {
		items = []domain.Item{NewItem()}
	}
	return items
}
