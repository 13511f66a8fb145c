package domain

import "time"

type BlockType string

const (
	BlockTypeParagraph  BlockType = "paragraph"
	BlockTypeHeading1   BlockType = "heading1"
	BlockTypeHeading2   BlockType = "heading2"
	BlockTypeHeading3   BlockType = "heading3"
	BlockTypeQuote      BlockType = "quote"
	BlockTypeCallout    BlockType = "callout"
	BlockTypeBulletList BlockType = "bulletList"
	BlockTypeNumberList BlockType = "numberList"
	BlockTypeTodoList   BlockType = "todoList"
	BlockTypeToggle     BlockType = "toggle"
	BlockTypeDivider    BlockType = "divider"
	BlockTypeCode       BlockType = "code"
	BlockTypeImage      BlockType = "image"
	BlockTypeVideo      BlockType = "video"
	BlockTypeEmbed      BlockType = "embed"
	BlockTypeBookmark   BlockType = "bookmark"
	BlockTypeTable      BlockType = "table"
	BlockTypePageLink   BlockType = "pageLink"
	BlockTypeGoalLink   BlockType = "goalLink"
	BlockTypeTaskLink   BlockType = "taskLink"
)

// CalloutCategory is the semantic flavor of a callout block.
type CalloutCategory string

const (
	CalloutInfo    CalloutCategory = "info"
	CalloutWarning CalloutCategory = "warning"
	CalloutSuccess CalloutCategory = "success"
	CalloutError   CalloutCategory = "error"
	CalloutNote    CalloutCategory = "note"
	CalloutTip     CalloutCategory = "tip"
)

// Item is one entry of a list block (bulleted, numbered, to-do).
// Numbering and bullets are derived from position, never stored.
type Item struct {
	ID      string `json:"id"`
	Content []Span `json:"content"`
	Checked bool   `json:"checked,omitempty"`
}

// Cell is one table cell.
type Cell struct {
	Content []Span `json:"content"`
}

// Block is one atomic unit of document content. It is a tagged variant:
// Type selects which payload fields are meaningful, everything else stays
// at its zero value and is omitted from JSON.
//
//   - content variants (paragraph, heading1-3, quote, callout): Content;
//     callout additionally Icon and Category
//   - list variants (bulletList, numberList, todoList): Items
//   - toggle: Summary, IsOpen, Children (one level of nesting)
//   - divider: no payload
//   - code: Code, Language
//   - image/video/embed/bookmark: URL, Caption, Title, Description, Layout
//   - table: Rows, HasHeader
//   - pageLink/goalLink/taskLink: TargetID, Label (read-only projections)
type Block struct {
	ID        string    `json:"id"`
	Type      BlockType `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Content []Span `json:"content,omitempty"`

	Icon     string          `json:"icon,omitempty"`
	Category CalloutCategory `json:"category,omitempty"`

	Items []Item `json:"items,omitempty"`

	Summary  []Span  `json:"summary,omitempty"`
	IsOpen   bool    `json:"isOpen,omitempty"`
	Children []Block `json:"children,omitempty"`

	Code     string `json:"code,omitempty"`
	Language string `json:"language,omitempty"`

	URL         string `json:"url,omitempty"`
	Caption     string `json:"caption,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Layout      string `json:"layout,omitempty"`

	Rows      [][]Cell `json:"rows,omitempty"`
	HasHeader bool     `json:"hasHeader,omitempty"`

	TargetID string `json:"targetId,omitempty"`
	Label    string `json:"label,omitempty"`
}

// IsContentType reports whether the type carries a single Content field.
func (t BlockType) IsContentType() bool {
	switch t {
	case BlockTypeParagraph, BlockTypeHeading1, BlockTypeHeading2,
		BlockTypeHeading3, BlockTypeQuote, BlockTypeCallout:
		return true
	}
	return false
}

// IsListType reports whether the type carries an Items sequence.
func (t BlockType) IsListType() bool {
	switch t {
	case BlockTypeBulletList, BlockTypeNumberList, BlockTypeTodoList:
		return true
	}
	return false
}

// Known reports whether t is a member of the closed block type set.
func (t BlockType) Known() bool {
	switch t {
	case BlockTypeParagraph, BlockTypeHeading1, BlockTypeHeading2,
		BlockTypeHeading3, BlockTypeQuote, BlockTypeCallout,
		BlockTypeBulletList, BlockTypeNumberList, BlockTypeTodoList,
		BlockTypeToggle, BlockTypeDivider, BlockTypeCode,
		BlockTypeImage, BlockTypeVideo, BlockTypeEmbed, BlockTypeBookmark,
		BlockTypeTable, BlockTypePageLink, BlockTypeGoalLink, BlockTypeTaskLink:
		return true
	}
	return false
}
