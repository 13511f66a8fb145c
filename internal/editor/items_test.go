package editor_test

import (
	"testing"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
)

// ─────────────────────────────────────────────────────────────
// Item-level operation tests — lists, tables, toggle children
// ─────────────────────────────────────────────────────────────

func TestListItems_InsertUpdateDelete(t *testing.T) {
	p := testPage(domain.BlockTypeBulletList)
	blockID := p.Blocks[0].ID

	first, ok := editor.InsertItemAfter(&p, blockID, "")
	if !ok {
		t.Fatal("expected append to succeed")
	}
	second, _ := editor.InsertItemAfter(&p, blockID, "")
	mid, _ := editor.InsertItemAfter(&p, blockID, first)

	items := p.Blocks[0].Items
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != first || items[1].ID != mid || items[2].ID != second {
		t.Error("expected insert-after to land between first and second")
	}

	if !editor.UpdateItemContent(&p, blockID, mid, domain.Text("middle")) {
		t.Fatal("expected item update to succeed")
	}
	if got := domain.PlainText(p.Blocks[0].Items[1].Content); got != "middle" {
		t.Errorf("expected item text 'middle', got %q", got)
	}

	if !editor.DeleteItem(&p, blockID, mid) {
		t.Fatal("expected delete to succeed")
	}
	editor.DeleteItem(&p, blockID, second)
	// Last item is protected.
	if editor.DeleteItem(&p, blockID, first) {
		t.Error("expected deleting the last item to be refused")
	}
	if len(p.Blocks[0].Items) != 1 {
		t.Fatalf("expected 1 item to remain, got %d", len(p.Blocks[0].Items))
	}
}

func TestListItems_NonListBlockRefused(t *testing.T) {
	p := testPage(domain.BlockTypeParagraph)
	if _, ok := editor.InsertItemAfter(&p, p.Blocks[0].ID, ""); ok {
		t.Error("expected item insert into a paragraph to fail")
	}
}

func TestSetItemChecked_TodoOnly(t *testing.T) {
	p := testPage(domain.BlockTypeTodoList, domain.BlockTypeBulletList)
	todoID := p.Blocks[0].ID
	bulletID := p.Blocks[1].ID

	itemID, _ := editor.InsertItemAfter(&p, todoID, "")
	if !editor.SetItemChecked(&p, todoID, itemID, true) {
		t.Fatal("expected check to succeed")
	}
	if !p.Blocks[0].Items[0].Checked {
		t.Error("expected item to be checked")
	}

	bulletItem, _ := editor.InsertItemAfter(&p, bulletID, "")
	if editor.SetItemChecked(&p, bulletID, bulletItem, true) {
		t.Error("expected checking a bullet list item to be refused")
	}
}

func TestTable_RowAndColumnOps(t *testing.T) {
	p := testPage(domain.BlockTypeTable)
	id := p.Blocks[0].ID

	// Factory default is 2x2.
	if !editor.AddTableRow(&p, id) {
		t.Fatal("expected row add to succeed")
	}
	if len(p.Blocks[0].Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(p.Blocks[0].Rows))
	}
	if len(p.Blocks[0].Rows[2]) != 2 {
		t.Errorf("expected new row to match column count, got %d cells", len(p.Blocks[0].Rows[2]))
	}

	if !editor.AddTableColumn(&p, id) {
		t.Fatal("expected column add to succeed")
	}
	for i, row := range p.Blocks[0].Rows {
		if len(row) != 3 {
			t.Fatalf("row %d: expected 3 cells, got %d", i, len(row))
		}
	}

	if !editor.UpdateTableCell(&p, id, 1, 2, domain.Text("cell")) {
		t.Fatal("expected cell update to succeed")
	}
	if got := domain.PlainText(p.Blocks[0].Rows[1][2].Content); got != "cell" {
		t.Errorf("expected cell text 'cell', got %q", got)
	}
	if editor.UpdateTableCell(&p, id, 9, 0, domain.Text("x")) {
		t.Error("expected out-of-range cell update to fail")
	}

	if !editor.DeleteTableRow(&p, id, 2) {
		t.Fatal("expected row delete to succeed")
	}
	if !editor.DeleteTableColumn(&p, id, 2) {
		t.Fatal("expected column delete to succeed")
	}

	// Shrink to 1x1, then both axes are protected.
	editor.DeleteTableRow(&p, id, 1)
	editor.DeleteTableColumn(&p, id, 1)
	if editor.DeleteTableRow(&p, id, 0) {
		t.Error("expected deleting the last row to be refused")
	}
	if editor.DeleteTableColumn(&p, id, 0) {
		t.Error("expected deleting the last column to be refused")
	}
}

func TestToggleChildren_AddDelete(t *testing.T) {
	p := testPage(domain.BlockTypeToggle, domain.BlockTypeParagraph)
	toggleID := p.Blocks[0].ID

	first, ok := editor.AddChildBlock(&p, toggleID, "", domain.BlockTypeParagraph)
	if !ok {
		t.Fatal("expected child add to succeed")
	}
	second, _ := editor.AddChildBlock(&p, toggleID, first, domain.BlockTypeCode)
	if p.Blocks[0].Children[1].ID != second {
		t.Error("expected second child after the first")
	}

	// Unlike the top level, a toggle may become empty.
	if !editor.DeleteChildBlock(&p, toggleID, first) {
		t.Fatal("expected child delete to succeed")
	}
	if !editor.DeleteChildBlock(&p, toggleID, second) {
		t.Fatal("expected deleting the last child to succeed")
	}
	if len(p.Blocks[0].Children) != 0 {
		t.Errorf("expected no children, got %d", len(p.Blocks[0].Children))
	}

	if _, ok := editor.AddChildBlock(&p, p.Blocks[1].ID, "", domain.BlockTypeParagraph); ok {
		t.Error("expected child add into a paragraph to fail")
	}
}
