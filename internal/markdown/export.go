package markdown

import (
	"fmt"
	"strings"

	"dayflow/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Markdown export — render a page's blocks as a markdown document
// ─────────────────────────────────────────────────────────────

// Export renders a page as markdown. The output is the interchange format
// written to the vault directory; styling annotations are not round-tripped,
// only the plain-text projection of each block is.
func Export(p domain.Page) string {
	var b strings.Builder
	b.WriteString("# " + p.Title + "\n")
	for _, blk := range p.Blocks {
		b.WriteString("\n")
		writeBlock(&b, blk, "")
	}
	return b.String()
}

func writeBlock(b *strings.Builder, blk domain.Block, indent string) {
	text := domain.PlainText(blk.Content)
	switch blk.Type {
	case domain.BlockTypeParagraph:
		b.WriteString(indent + text + "\n")
	case domain.BlockTypeHeading1:
		b.WriteString(indent + "# " + text + "\n")
	case domain.BlockTypeHeading2:
		b.WriteString(indent + "## " + text + "\n")
	case domain.BlockTypeHeading3:
		b.WriteString(indent + "### " + text + "\n")
	case domain.BlockTypeQuote:
		b.WriteString(indent + "> " + text + "\n")
	case domain.BlockTypeCallout:
		b.WriteString(indent + "> " + blk.Icon + " " + text + "\n")
	case domain.BlockTypeBulletList:
		for _, it := range blk.Items {
			b.WriteString(indent + "- " + domain.PlainText(it.Content) + "\n")
		}
	case domain.BlockTypeNumberList:
		for i, it := range blk.Items {
			fmt.Fprintf(b, "%s%d. %s\n", indent, i+1, domain.PlainText(it.Content))
		}
	case domain.BlockTypeTodoList:
		for _, it := range blk.Items {
			mark := " "
			if it.Checked {
				mark = "x"
			}
			b.WriteString(indent + "- [" + mark + "] " + domain.PlainText(it.Content) + "\n")
		}
	case domain.BlockTypeToggle:
		b.WriteString(indent + "- **" + domain.PlainText(blk.Summary) + "**\n")
		for _, child := range blk.Children {
			writeBlock(b, child, indent+"  ")
		}
	case domain.BlockTypeDivider:
		b.WriteString(indent + "---\n")
	case domain.BlockTypeCode:
		b.WriteString(indent + "```" + blk.Language + "\n")
		b.WriteString(blk.Code + "\n")
		b.WriteString(indent + "```\n")
	case domain.BlockTypeImage:
		fmt.Fprintf(b, "%s![%s](%s)\n", indent, blk.Caption, blk.URL)
	case domain.BlockTypeVideo, domain.BlockTypeEmbed, domain.BlockTypeBookmark:
		title := blk.Title
		if title == "" {
			title = blk.URL
		}
		fmt.Fprintf(b, "%s[%s](%s)\n", indent, title, blk.URL)
	case domain.BlockTypeTable:
		writeTable(b, blk, indent)
	case domain.BlockTypePageLink, domain.BlockTypeGoalLink, domain.BlockTypeTaskLink:
		fmt.Fprintf(b, "%s[%s](dayflow://%s/%s)\n", indent, blk.Label, blk.Type, blk.TargetID)
	}
}

func writeTable(b *strings.Builder, blk domain.Block, indent string) {
	for i, row := range blk.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = domain.PlainText(c.Content)
		}
		b.WriteString(indent + "| " + strings.Join(cells, " | ") + " |\n")
		if i == 0 && blk.HasHeader {
			seps := make([]string, len(row))
			for j := range seps {
				seps[j] = "---"
			}
			b.WriteString(indent + "| " + strings.Join(seps, " | ") + " |\n")
		}
	}
}
