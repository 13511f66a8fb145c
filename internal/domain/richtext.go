package domain

import "strings"

// Annotations are the inline styles carried by a single text span.
type Annotations struct {
	Bold            bool   `json:"bold,omitempty"`
	Italic          bool   `json:"italic,omitempty"`
	Underline       bool   `json:"underline,omitempty"`
	Strikethrough   bool   `json:"strikethrough,omitempty"`
	Code            bool   `json:"code,omitempty"`
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Span is one run of text with its own styling. A content field is an
// ordered sequence of spans; concatenating their Text fields yields the
// plain-text projection used by transformation and word counting.
type Span struct {
	Text        string       `json:"text"`
	Annotations *Annotations `json:"annotations,omitempty"`
	Link        string       `json:"link,omitempty"`
}

// Text wraps a plain string as a single unstyled span sequence.
func Text(s string) []Span {
	return []Span{{Text: s}}
}

// PlainText concatenates the text of all spans.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// CloneSpans returns a structurally independent copy of a span sequence.
func CloneSpans(spans []Span) []Span {
	if spans == nil {
		return nil
	}
	out := make([]Span, len(spans))
	for i, s := range spans {
		out[i] = s
		if s.Annotations != nil {
			a := *s.Annotations
			out[i].Annotations = &a
		}
	}
	return out
}
