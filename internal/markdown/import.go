package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"dayflow/internal/domain"
	"dayflow/internal/editor"
)

// ─────────────────────────────────────────────────────────────
// Markdown import — parse a markdown document into blocks
// ─────────────────────────────────────────────────────────────

// Importer parses markdown into page blocks using goldmark AST parsing.
type Importer struct {
	parser goldmark.Markdown
}

// NewImporter creates an Importer with table and task-list support.
func NewImporter() *Importer {
	return &Importer{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.TaskList),
		),
	}
}

// Import parses markdown and returns the page title (leading H1, if any)
// and the block sequence. The result always contains at least one block.
func (im *Importer) Import(source []byte) (title string, blocks []domain.Block) {
	doc := im.parser.Parser().Parse(gtext.NewReader(source))

	first := true
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 && first {
			// Leading H1 becomes the page title, not a block
			title = nodeText(h, source)
			first = false
			continue
		}
		first = false
		if b, ok := im.importNode(n, source); ok {
			blocks = append(blocks, b)
		}
	}

	if len(blocks) == 0 {
		blocks = []domain.Block{editor.NewBlock(domain.BlockTypeParagraph)}
	}
	return title, blocks
}

func (im *Importer) importNode(n ast.Node, source []byte) (domain.Block, bool) {
	switch node := n.(type) {
	case *ast.Heading:
		t := domain.BlockTypeHeading3
		switch node.Level {
		case 1:
			t = domain.BlockTypeHeading1
		case 2:
			t = domain.BlockTypeHeading2
		}
		b := editor.NewBlock(t)
		b.Content = domain.Text(nodeText(node, source))
		return b, true

	case *ast.Paragraph:
		if img, ok := node.FirstChild().(*ast.Image); ok && node.ChildCount() == 1 {
			b := editor.NewBlock(domain.BlockTypeImage)
			b.URL = string(img.Destination)
			b.Caption = nodeText(img, source)
			return b, true
		}
		b := editor.NewBlock(domain.BlockTypeParagraph)
		b.Content = domain.Text(nodeText(node, source))
		return b, true

	case *ast.Blockquote:
		b := editor.NewBlock(domain.BlockTypeQuote)
		b.Content = domain.Text(nodeText(node, source))
		return b, true

	case *ast.FencedCodeBlock:
		b := editor.NewBlock(domain.BlockTypeCode)
		if lang := node.Language(source); lang != nil {
			b.Language = string(lang)
		}
		b.Code = blockLines(node, source)
		return b, true

	case *ast.ThematicBreak:
		return editor.NewBlock(domain.BlockTypeDivider), true

	case *ast.List:
		return im.importList(node, source), true

	case *east.Table:
		return im.importTable(node, source), true
	}

	// Anything unrecognized degrades to a paragraph with its text
	text := nodeText(n, source)
	if strings.TrimSpace(text) == "" {
		return domain.Block{}, false
	}
	b := editor.NewBlock(domain.BlockTypeParagraph)
	b.Content = domain.Text(text)
	return b, true
}

func (im *Importer) importList(list *ast.List, source []byte) domain.Block {
	t := domain.BlockTypeBulletList
	if list.IsOrdered() {
		t = domain.BlockTypeNumberList
	}

	type entry struct {
		text    string
		checked bool
		task    bool
	}
	var entries []entry
	hasTask := false
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		e := entry{text: nodeText(li, source)}
		if cb := findCheckBox(li); cb != nil {
			e.task = true
			e.checked = cb.IsChecked
			hasTask = true
		}
		entries = append(entries, e)
	}
	if hasTask {
		t = domain.BlockTypeTodoList
	}

	b := editor.NewBlock(t)
	for _, e := range entries {
		it := editor.NewItem()
		it.Content = domain.Text(e.text)
		it.Checked = e.checked
		b.Items = append(b.Items, it)
	}
	if len(b.Items) == 0 {
		b.Items = []domain.Item{editor.NewItem()}
	}
	return b
}

func (im *Importer) importTable(table *east.Table, source []byte) domain.Block {
	b := editor.NewBlock(domain.BlockTypeTable)
	b.Rows = nil
	b.HasHeader = false
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader:
			b.HasHeader = true
		case *east.TableRow:
		default:
			continue
		}
		var cells []domain.Cell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, domain.Cell{Content: domain.Text(nodeText(cell, source))})
		}
		b.Rows = append(b.Rows, cells)
	}
	if len(b.Rows) == 0 {
		b.Rows = [][]domain.Cell{{{Content: []domain.Span{}}}}
	}
	return b
}

// findCheckBox returns the task checkbox of a list item, if any.
func findCheckBox(li ast.Node) *east.TaskCheckBox {
	para := li.FirstChild()
	if para == nil {
		return nil
	}
	if cb, ok := para.FirstChild().(*east.TaskCheckBox); ok {
		return cb
	}
	return nil
}

// nodeText collects the plain text under a node.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	collectText(n, source, &b)
	return strings.TrimSpace(b.String())
}

func collectText(n ast.Node, source []byte, b *strings.Builder) {
	switch node := n.(type) {
	case *ast.Text:
		b.Write(node.Segment.Value(source))
		if node.SoftLineBreak() || node.HardLineBreak() {
			b.WriteByte('\n')
		}
		return
	case *ast.String:
		b.Write(node.Value)
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, b)
	}
}

// blockLines joins the raw source lines of a code block.
func blockLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}
