package doccast

import (
	"time"

	"github.com/hazyhaar/doccast/render"
	"github.com/hazyhaar/doccast/structure"
)

// ConvertInput is one conversion request.
type ConvertInput struct {
	// Markup is the semantic block markup produced by the upstream
	// DOCX-to-markup step.
	Markup string `json:"markup"`

	// RawText optionally carries the separately extracted plain text; it
	// feeds the metadata counters only. Derived from the markup when empty.
	RawText string `json:"raw_text,omitempty"`

	// Filename is the originating file name; it provides the title
	// fallback and the metadata source field.
	Filename string `json:"filename"`

	// Formats selects the outputs to produce; empty means all three.
	Formats []render.Format `json:"formats,omitempty"`
}

// Result is one completed conversion.
type Result struct {
	ID       string                       `json:"id"`
	Title    string                       `json:"title"`
	Content  *structure.StructuredContent `json:"content"`
	Outputs  map[render.Format]string     `json:"outputs"`
	Duration time.Duration                `json:"duration"`
}
