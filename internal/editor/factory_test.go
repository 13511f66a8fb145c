package editor_test

import (
	"testing"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
)

// ─────────────────────────────────────────────────────────────
// Block factory tests
// ─────────────────────────────────────────────────────────────

func TestNewBlock_Defaults(t *testing.T) {
	callout := editor.NewBlock(domain.BlockTypeCallout)
	if callout.Icon != "💡" || callout.Category != domain.CalloutInfo {
		t.Errorf("callout defaults: icon=%q category=%q", callout.Icon, callout.Category)
	}

	toggle := editor.NewBlock(domain.BlockTypeToggle)
	if !toggle.IsOpen {
		t.Error("expected new toggle to be open")
	}
	if toggle.Children == nil {
		t.Error("expected toggle children to be initialized")
	}

	code := editor.NewBlock(domain.BlockTypeCode)
	if code.Language != "plain" {
		t.Errorf("expected code language 'plain', got %q", code.Language)
	}

	table := editor.NewBlock(domain.BlockTypeTable)
	if len(table.Rows) != 2 || len(table.Rows[0]) != 2 {
		t.Fatalf("expected 2x2 table, got %dx%d", len(table.Rows), len(table.Rows[0]))
	}
	if !table.HasHeader {
		t.Error("expected new table to have a header row")
	}

	todo := editor.NewBlock(domain.BlockTypeTodoList)
	if todo.Items == nil {
		t.Error("expected todo list items to be initialized")
	}
}

func TestNewBlock_UniqueIDs(t *testing.T) {
	a := editor.NewBlock(domain.BlockTypeParagraph)
	b := editor.NewBlock(domain.BlockTypeParagraph)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
}

func TestDeepClone_FreshIDsEverywhere(t *testing.T) {
	toggle := editor.NewBlock(domain.BlockTypeToggle)
	toggle.Summary = domain.Text("details")
	child := editor.NewBlock(domain.BlockTypeParagraph)
	child.Content = domain.Text("inside")
	toggle.Children = append(toggle.Children, child)

	clone := editor.DeepClone(toggle)

	if clone.ID == toggle.ID {
		t.Error("expected clone to get a fresh id")
	}
	if len(clone.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(clone.Children))
	}
	if clone.Children[0].ID == child.ID {
		t.Error("expected nested child to get a fresh id")
	}
	if got := domain.PlainText(clone.Children[0].Content); got != "inside" {
		t.Errorf("expected child content to survive, got %q", got)
	}

	list := editor.NewBlock(domain.BlockTypeBulletList)
	item := editor.NewItem()
	item.Content = domain.Text("one")
	list.Items = append(list.Items, item)

	listClone := editor.DeepClone(list)
	if listClone.Items[0].ID == item.ID {
		t.Error("expected list item to get a fresh id")
	}
}

func TestDeepClone_Independence(t *testing.T) {
	src := editor.NewBlock(domain.BlockTypeParagraph)
	src.Content = domain.Text("before")

	clone := editor.DeepClone(src)
	clone.Content[0].Text = "after"

	if got := domain.PlainText(src.Content); got != "before" {
		t.Errorf("mutating the clone changed the source: %q", got)
	}
}

func TestExtractPlainText(t *testing.T) {
	para := editor.NewBlock(domain.BlockTypeParagraph)
	para.Content = []domain.Span{
		{Text: "Hello "},
		{Text: "World", Annotations: &domain.Annotations{Bold: true}},
	}
	if got := editor.ExtractPlainText(para); got != "Hello World" {
		t.Errorf("content projection: got %q", got)
	}

	list := editor.NewBlock(domain.BlockTypeBulletList)
	for _, txt := range []string{"one", "two"} {
		it := editor.NewItem()
		it.Content = domain.Text(txt)
		list.Items = append(list.Items, it)
	}
	if got := editor.ExtractPlainText(list); got != "one\ntwo" {
		t.Errorf("list projection: got %q", got)
	}

	toggle := editor.NewBlock(domain.BlockTypeToggle)
	toggle.Summary = domain.Text("summary line")
	if got := editor.ExtractPlainText(toggle); got != "summary line" {
		t.Errorf("toggle projection: got %q", got)
	}

	code := editor.NewBlock(domain.BlockTypeCode)
	code.Code = "x := 1\ny := 2"
	if got := editor.ExtractPlainText(code); got != "x := 1\ny := 2" {
		t.Errorf("code projection: got %q", got)
	}

	divider := editor.NewBlock(domain.BlockTypeDivider)
	if got := editor.ExtractPlainText(divider); got != "" {
		t.Errorf("divider projection: got %q", got)
	}
}
