package domain

import "time"

type CoverType string

const (
	CoverGradient CoverType = "gradient"
	CoverColor    CoverType = "color"
	CoverImage    CoverType = "image"
)

// Cover is the page header decoration.
type Cover struct {
	Type  CoverType `json:"type"`
	Value string    `json:"value"`
}

// Page is the document: an ordered block sequence plus metadata.
// Blocks always has length >= 1; the sequence index is the sole source of
// truth for rendering and numbering order.
type Page struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Title            string    `json:"title"`
	Icon             string    `json:"icon,omitempty"`
	Cover            *Cover    `json:"cover,omitempty"`
	Tags             []string  `json:"tags"`
	Blocks           []Block   `json:"blocks"`
	LinkedGoalIDs    []string  `json:"linkedGoalIds,omitempty"`
	LinkedProjectIDs []string  `json:"linkedProjectIds,omitempty"`
	LinkedTaskIDs    []string  `json:"linkedTaskIds,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the page preserving every id. Used for
// history snapshots and copy-on-write mutation.
func (p Page) Clone() Page {
	out := p
	out.Tags = append([]string(nil), p.Tags...)
	out.LinkedGoalIDs = append([]string(nil), p.LinkedGoalIDs...)
	out.LinkedProjectIDs = append([]string(nil), p.LinkedProjectIDs...)
	out.LinkedTaskIDs = append([]string(nil), p.LinkedTaskIDs...)
	if p.Cover != nil {
		c := *p.Cover
		out.Cover = &c
	}
	out.Blocks = CloneBlocks(p.Blocks)
	return out
}

// CloneBlocks deep-copies a block sequence preserving ids.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = CloneBlock(b)
	}
	return out
}

// CloneBlock deep-copies a single block preserving ids.
func CloneBlock(b Block) Block {
	out := b
	out.Content = CloneSpans(b.Content)
	out.Summary = CloneSpans(b.Summary)
	if b.Items != nil {
		out.Items = make([]Item, len(b.Items))
		for i, it := range b.Items {
			out.Items[i] = Item{ID: it.ID, Content: CloneSpans(it.Content), Checked: it.Checked}
		}
	}
	if b.Rows != nil {
		out.Rows = make([][]Cell, len(b.Rows))
		for i, row := range b.Rows {
			out.Rows[i] = make([]Cell, len(row))
			for j, c := range row {
				out.Rows[i][j] = Cell{Content: CloneSpans(c.Content)}
			}
		}
	}
	out.Children = CloneBlocks(b.Children)
	return out
}

// PageStore is the persistence collaborator. UpdatePage is the save(page)
// call fired by autosave and manual save; implementations must be
// last-write-wins, since a manual save may race a debounced one.
type PageStore interface {
	CreatePage(p *Page) error
	GetPage(id string) (*Page, error)
	ListPages(userID string) ([]Page, error)
	UpdatePage(p *Page) error
	DeletePage(id string) error
}

// BackupStore persists periodic full-page snapshots.
type BackupStore interface {
	CreateBackup(pageID string, snapshotJSON string) error
	ListBackups(pageID string) ([]Backup, error)
}

// Backup is one stored page snapshot.
type Backup struct {
	ID           string    `json:"id"`
	PageID       string    `json:"pageId"`
	SnapshotJSON string    `json:"snapshotJson"`
	CreatedAt    time.Time `json:"createdAt"`
}
