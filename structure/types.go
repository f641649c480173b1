package structure

import "time"

// SectionType identifies the kind of a content section.
type SectionType string

const (
	SectionHeading   SectionType = "heading"
	SectionParagraph SectionType = "paragraph"
	SectionList      SectionType = "list"
	SectionTable     SectionType = "table"
)

// ListType is the dominant kind of a list section. Mixed nesting is still
// possible inside the section's content lines.
type ListType string

const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
)

// ContentSection is one logical block of a document, in reading order.
//
// Content encoding depends on Type: headings and paragraphs carry cleaned
// text, lists carry the flattened line encoding from package listmark, and
// tables carry newline-separated rows of " | "-joined cells.
type ContentSection struct {
	Type     SectionType `json:"type"`
	Content  string      `json:"content"`
	Level    int         `json:"level,omitempty"`     // heading depth 1-6, headings only
	ListType ListType    `json:"list_type,omitempty"` // lists only
}

// Metadata carries processing counters. Informational only; nothing
// downstream depends on it.
type Metadata struct {
	WordCount   int       `json:"word_count"`
	CharCount   int       `json:"char_count"`
	ProcessedAt time.Time `json:"processed_at"`
	SourceFile  string    `json:"source_file"`
}

// StructuredContent is the extractor's result: a title, the ordered section
// sequence, and processing metadata. Value object; built once per document
// and never mutated afterwards.
type StructuredContent struct {
	Title    string           `json:"title"`
	Sections []ContentSection `json:"sections"`
	Meta     Metadata         `json:"metadata"`
}
