package editor

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"dayflow/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Block factory — creation, cloning, plain-text projection
// ─────────────────────────────────────────────────────────────

// NewBlock creates a block of the given type with a fresh id, current
// timestamps, and the variant's default payload.
func NewBlock(t domain.BlockType) domain.Block {
	now := time.Now()
	b := domain.Block{
		ID:        uuid.New().String(),
		Type:      t,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch t {
	case domain.BlockTypeParagraph, domain.BlockTypeHeading1,
		domain.BlockTypeHeading2, domain.BlockTypeHeading3,
		domain.BlockTypeQuote:
		b.Content = []domain.Span{}
	case domain.BlockTypeCallout:
		b.Content = []domain.Span{}
		b.Icon = "💡"
		b.Category = domain.CalloutInfo
	case domain.BlockTypeBulletList, domain.BlockTypeNumberList,
		domain.BlockTypeTodoList:
		b.Items = []domain.Item{}
	case domain.BlockTypeToggle:
		b.Summary = []domain.Span{}
		b.IsOpen = true
		b.Children = []domain.Block{}
	case domain.BlockTypeDivider:
		// no payload
	case domain.BlockTypeCode:
		b.Language = "plain"
	case domain.BlockTypeImage, domain.BlockTypeVideo,
		domain.BlockTypeEmbed, domain.BlockTypeBookmark:
		// url filled in later by the caller / upload collaborator
	case domain.BlockTypeTable:
		b.Rows = emptyGrid(2, 2)
		b.HasHeader = true
	case domain.BlockTypePageLink, domain.BlockTypeGoalLink,
		domain.BlockTypeTaskLink:
		// target id and label filled in by the caller
	}
	return b
}

// NewItem creates an empty list item with a fresh id.
func NewItem() domain.Item {
	return domain.Item{ID: uuid.New().String(), Content: []domain.Span{}}
}

func emptyGrid(rows, cols int) [][]domain.Cell {
	grid := make([][]domain.Cell, rows)
	for i := range grid {
		grid[i] = make([]domain.Cell, cols)
		for j := range grid[i] {
			grid[i][j] = domain.Cell{Content: []domain.Span{}}
		}
	}
	return grid
}

// DeepClone returns a structurally independent copy of the block with a new
// id — and new ids for every nested item and child block — but identical
// content and type. Used by duplication; ids are never reused.
func DeepClone(b domain.Block) domain.Block {
	now := time.Now()
	out := domain.CloneBlock(b)
	out.ID = uuid.New().String()
	out.CreatedAt = now
	out.UpdatedAt = now
	for i := range out.Items {
		out.Items[i].ID = uuid.New().String()
	}
	for i := range out.Children {
		out.Children[i] = DeepClone(out.Children[i])
	}
	return out
}

// ExtractPlainText returns the textual projection of a block. Content
// variants join their spans, list variants join items with newlines, the
// toggle uses its summary, code is verbatim; leaf and reference variants
// yield the empty string.
func ExtractPlainText(b domain.Block) string {
	switch {
	case b.Type.IsContentType():
		return domain.PlainText(b.Content)
	case b.Type.IsListType():
		lines := make([]string, len(b.Items))
		for i, it := range b.Items {
			lines[i] = domain.PlainText(it.Content)
		}
		return strings.Join(lines, "\n")
	case b.Type == domain.BlockTypeToggle:
		return domain.PlainText(b.Summary)
	case b.Type == domain.BlockTypeCode:
		return b.Code
	default:
		return ""
	}
}
