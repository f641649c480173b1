// Package render regenerates output formats from extracted document
// structure: plain text, HTML, and Markdown.
//
// Rendering is a pure function of its input. List sections are reconstructed
// from the flattened line encoding in package listmark; tables pass through
// their pipe-delimited rows.
package render

import (
	"fmt"
	"strings"

	"github.com/hazyhaar/doccast/listmark"
	"github.com/hazyhaar/doccast/structure"
)

// Format identifies an output format.
type Format string

const (
	FormatPlaintext Format = "plaintext"
	FormatHTML      Format = "html"
	FormatMarkdown  Format = "markdown"
)

// Formats returns all output formats in stable order.
func Formats() []Format {
	return []Format{FormatPlaintext, FormatHTML, FormatMarkdown}
}

// Extension returns the file extension for a format, without the dot.
func Extension(f Format) (string, error) {
	switch f {
	case FormatPlaintext:
		return "txt", nil
	case FormatHTML:
		return "html", nil
	case FormatMarkdown:
		return "md", nil
	default:
		return "", fmt.Errorf("render: unknown format %q", f)
	}
}

// Render serialises structured content into the requested format.
func Render(c *structure.StructuredContent, f Format) (string, error) {
	if c == nil {
		return "", nil
	}
	switch f {
	case FormatPlaintext:
		return renderPlaintext(c.Sections), nil
	case FormatHTML:
		return renderHTML(groupLists(c.Sections)), nil
	case FormatMarkdown:
		return renderMarkdown(groupLists(c.Sections)), nil
	default:
		return "", fmt.Errorf("render: unknown format %q", f)
	}
}

// groupLists merges runs of adjacent list sections whose kind matches.
//
// The kind is re-derived from the first content line through the shared
// classifier, not read from the stored ListType. A section whose first item
// differs in kind from later items is therefore grouped by its first item
// only; that is deliberate, long-standing behavior.
func groupLists(sections []structure.ContentSection) []structure.ContentSection {
	var out []structure.ContentSection
	openList := -1 // index in out of the list group being built
	openOrdered := false

	for _, s := range sections {
		if s.Type != structure.SectionList || s.Content == "" {
			openList = -1
			out = append(out, s)
			continue
		}

		first, _, _ := strings.Cut(s.Content, "\n")
		ordered := listmark.Classify(first).Ordered

		if openList >= 0 && openOrdered == ordered {
			out[openList].Content += "\n" + s.Content
			continue
		}

		out = append(out, s)
		openList = len(out) - 1
		openOrdered = ordered
	}
	return out
}

// renderPlaintext joins sections with blank lines. Lists keep their flattened
// content behind a single bullet; tables are labeled inline.
func renderPlaintext(sections []structure.ContentSection) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		switch s.Type {
		case structure.SectionList:
			parts = append(parts, "• "+s.Content)
		case structure.SectionTable:
			parts = append(parts, "[Table: "+s.Content+"]")
		default:
			parts = append(parts, s.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
