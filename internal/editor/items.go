package editor

import (
	"time"

	"dayflow/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Item-level operations — lists, tables, toggle children
//
// These mirror the block collection operations at one level of nesting.
// Deletion guards keep at least one item / one table row / one column.
// ─────────────────────────────────────────────────────────────

// InsertItemAfter inserts a fresh empty item after the item with afterID,
// or appends when afterID is empty or not found. Returns the new item id.
func InsertItemAfter(p *domain.Page, blockID, afterID string) (string, bool) {
	b := Locate(p, blockID)
	if b == nil || !b.Type.IsListType() {
		return "", false
	}
	it := NewItem()
	idx := itemIndex(b.Items, afterID)
	if idx < 0 {
		b.Items = append(b.Items, it)
	} else {
		b.Items = append(b.Items[:idx+1], append([]domain.Item{it}, b.Items[idx+1:]...)...)
	}
	stamp(p, b)
	return it.ID, true
}

// DeleteItem removes an item; refuses below 1 remaining item.
func DeleteItem(p *domain.Page, blockID, itemID string) bool {
	b := Locate(p, blockID)
	if b == nil || !b.Type.IsListType() || len(b.Items) <= 1 {
		return false
	}
	idx := itemIndex(b.Items, itemID)
	if idx < 0 {
		return false
	}
	b.Items = append(b.Items[:idx], b.Items[idx+1:]...)
	stamp(p, b)
	return true
}

// UpdateItemContent replaces an item's rich text.
func UpdateItemContent(p *domain.Page, blockID, itemID string, content []domain.Span) bool {
	b := Locate(p, blockID)
	if b == nil {
		return false
	}
	idx := itemIndex(b.Items, itemID)
	if idx < 0 {
		return false
	}
	b.Items[idx].Content = content
	stamp(p, b)
	return true
}

// SetItemChecked toggles a to-do item's checked state.
func SetItemChecked(p *domain.Page, blockID, itemID string, checked bool) bool {
	b := Locate(p, blockID)
	if b == nil || b.Type != domain.BlockTypeTodoList {
		return false
	}
	idx := itemIndex(b.Items, itemID)
	if idx < 0 {
		return false
	}
	b.Items[idx].Checked = checked
	stamp(p, b)
	return true
}

// ── Tables ─────────────────────────────────────────────────

// AddTableRow appends a row of empty cells matching the current column
// count.
func AddTableRow(p *domain.Page, blockID string) bool {
	b := Locate(p, blockID)
	if b == nil || b.Type != domain.BlockTypeTable {
		return false
	}
	cols := 0
	if len(b.Rows) > 0 {
		cols = len(b.Rows[0])
	}
	row := make([]domain.Cell, cols)
	for i := range row {
		row[i] = domain.Cell{Content: []domain.Span{}}
	}
	b.Rows = append(b.Rows, row)
	stamp(p, b)
	return true
}

// DeleteTableRow removes the row at the given index; refuses below 1
// remaining row.
func DeleteTableRow(p *domain.Page, blockID string, rowIndex int) bool {
	b := Locate(p, blockID)
	if b == nil || b.Type != domain.BlockTypeTable || len(b.Rows) <= 1 {
		return false
	}
	if rowIndex < 0 || rowIndex >= len(b.Rows) {
		return false
	}
	b.Rows = append(b.Rows[:rowIndex], b.Rows[rowIndex+1:]...)
	stamp(p, b)
	return true
}

// AddTableColumn appends one empty cell to every row uniformly.
func AddTableColumn(p *domain.Page, blockID string) bool {
	b := Locate(p, blockID)
	if b == nil || b.Type != domain.BlockTypeTable {
		return false
	}
	for i := range b.Rows {
		b.Rows[i] = append(b.Rows[i], domain.Cell{Content: []domain.Span{}})
	}
	stamp(p, b)
	return true
}

// DeleteTableColumn removes the column at the given index from every row;
// refuses below 1 remaining column.
func DeleteTableColumn(p *domain.Page, blockID string, colIndex int) bool {
	b := Locate(p, blockID)
	if b == nil || b.Type != domain.BlockTypeTable || len(b.Rows) == 0 {
		return false
	}
	if colIndex < 0 || colIndex >= len(b.Rows[0]) || len(b.Rows[0]) <= 1 {
		return false
	}
	for i := range b.Rows {
		b.Rows[i] = append(b.Rows[i][:colIndex], b.Rows[i][colIndex+1:]...)
	}
	stamp(p, b)
	return true
}

// UpdateTableCell replaces one cell's rich text.
func UpdateTableCell(p *domain.Page, blockID string, rowIndex, colIndex int, content []domain.Span) bool {
	b := Locate(p, blockID)
	if b == nil || b.Type != domain.BlockTypeTable {
		return false
	}
	if rowIndex < 0 || rowIndex >= len(b.Rows) {
		return false
	}
	if colIndex < 0 || colIndex >= len(b.Rows[rowIndex]) {
		return false
	}
	b.Rows[rowIndex][colIndex].Content = content
	stamp(p, b)
	return true
}

// ── Toggle children ────────────────────────────────────────

// AddChildBlock inserts a fresh block inside a toggle's child sequence,
// after afterID or appended. Returns the new child id.
func AddChildBlock(p *domain.Page, toggleID, afterID string, t domain.BlockType) (string, bool) {
	b := Locate(p, toggleID)
	if b == nil || b.Type != domain.BlockTypeToggle {
		return "", false
	}
	nb := NewBlock(t)
	idx := indexOf(b.Children, afterID)
	if idx < 0 {
		b.Children = append(b.Children, nb)
	} else {
		b.Children = append(b.Children[:idx+1], append([]domain.Block{nb}, b.Children[idx+1:]...)...)
	}
	stamp(p, b)
	return nb.ID, true
}

// DeleteChildBlock removes a child block from a toggle. Unlike top-level
// deletion a toggle may become empty.
func DeleteChildBlock(p *domain.Page, toggleID, childID string) bool {
	b := Locate(p, toggleID)
	if b == nil || b.Type != domain.BlockTypeToggle {
		return false
	}
	idx := indexOf(b.Children, childID)
	if idx < 0 {
		return false
	}
	b.Children = append(b.Children[:idx], b.Children[idx+1:]...)
	stamp(p, b)
	return true
}

func itemIndex(items []domain.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func stamp(p *domain.Page, b *domain.Block) {
	b.UpdatedAt = time.Now()
	touch(p)
}
