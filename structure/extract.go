// Package structure turns a semantic block-markup tree into an ordered
// sequence of typed content sections.
//
// The input tree is parsed HTML as produced by an upstream DOCX-to-markup
// step: h1-h6, p, ol/ul/li (possibly nested), table/tr/td/th. Unknown and
// wrapper elements are walked transparently. Nested lists collapse into a
// single list section whose content uses the flattened line encoding from
// package listmark.
package structure

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/doccast/listmark"
)

// Extract walks the markup tree and returns the structured content.
//
// rawText feeds the word/character counters only; when empty, the counters
// fall back to the concatenated section content. Extraction never fails:
// a nil or empty tree yields zero sections and the filename-derived title.
func Extract(root *html.Node, rawText, filename string) *StructuredContent {
	var sections []ContentSection
	if root != nil {
		walk(root, &sections)
	}

	title := ""
	for _, s := range sections {
		if s.Type == SectionHeading {
			title = s.Content
			break
		}
	}
	if title == "" {
		title = titleFromFilename(filename)
	}

	if rawText == "" {
		var sb strings.Builder
		for i, s := range sections {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(s.Content)
		}
		rawText = sb.String()
	}

	return &StructuredContent{
		Title:    title,
		Sections: sections,
		Meta: Metadata{
			WordCount:   len(strings.Fields(rawText)),
			CharCount:   utf8.RuneCountInString(rawText),
			ProcessedAt: time.Now().UTC(),
			SourceFile:  filename,
		},
	}
}

// titleFromFilename strips the directory and the final extension.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// walk emits sections for known block elements and descends transparently
// through everything else.
func walk(n *html.Node, sections *[]ContentSection) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript:
			return

		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			text := CleanText(collectText(n))
			if text != "" {
				*sections = append(*sections, ContentSection{
					Type:    SectionHeading,
					Content: text,
					Level:   int(n.Data[1] - '0'),
				})
			}
			return

		case atom.P:
			text := CleanText(collectText(n))
			if text != "" {
				*sections = append(*sections, ContentSection{
					Type:    SectionParagraph,
					Content: text,
				})
			}
			return

		case atom.Ol, atom.Ul:
			var lines []string
			walkList(n, n.DataAtom == atom.Ol, 1, &lines)
			if len(lines) > 0 {
				listType := ListUnordered
				if n.DataAtom == atom.Ol {
					listType = ListOrdered
				}
				*sections = append(*sections, ContentSection{
					Type:     SectionList,
					Content:  strings.Join(lines, "\n"),
					ListType: listType,
				})
			}
			return

		case atom.Table:
			if rows := tableRows(n); len(rows) > 0 {
				*sections = append(*sections, ContentSection{
					Type:    SectionTable,
					Content: strings.Join(rows, "\n"),
				})
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, sections)
	}
}

// walkList flattens one ol/ul into lines at the given 1-based nesting level.
// Each direct li contributes one line for its own text (nested list text
// excluded) immediately followed by the lines of any nested lists inside it.
// The ordered counter is per list and per level: it counts only direct items
// here, and each nested list restarts its own counter at 1.
func walkList(list *html.Node, ordered bool, level int, lines *[]string) {
	counter := 0
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}

		text := CleanText(directText(li))
		if text != "" {
			counter++
			marker := listmark.Bullet(level)
			if ordered {
				marker = listmark.OrderedMarker(level, counter)
			}
			*lines = append(*lines, listmark.Indent(level)+marker+text)
		}

		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ol || c.DataAtom == atom.Ul) {
				walkList(c, c.DataAtom == atom.Ol, level+1, lines)
			}
		}
	}
}

// directText collects the text belonging directly to a list item: text nodes
// and inline-element text, excluding any nested ol/ul subtree.
func directText(li *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
			return
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Ol, atom.Ul, atom.Script, atom.Style:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		visit(c)
	}
	return sb.String()
}

// tableRows collects cleaned cell text per row, " | "-joined. Header and
// data cells are not distinguished; rows with zero non-empty cells are
// skipped. No column-count invariant: ragged rows pass through.
func tableRows(table *html.Node) []string {
	var rows []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				collectCells(c, &cells)
			}
			if len(cells) > 0 {
				rows = append(rows, strings.Join(cells, " | "))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(table)
	return rows
}

func collectCells(n *html.Node, cells *[]string) {
	if n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th) {
		if text := CleanText(collectText(n)); text != "" {
			*cells = append(*cells, text)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectCells(c, cells)
	}
}

// collectText extracts all text from a subtree, space-joined.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

// PlainText returns all visible text of a markup tree. Callers that have no
// separately extracted raw text use this to feed the metadata counters.
func PlainText(root *html.Node) string {
	if root == nil {
		return ""
	}
	return CleanText(collectText(root))
}
