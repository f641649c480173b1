package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/hazyhaar/doccast/listmark"
	"github.com/hazyhaar/doccast/structure"
)

// renderHTML serialises sections as an HTML fragment. All literal text is
// entity-escaped before insertion; user content is never echoed as markup.
func renderHTML(sections []structure.ContentSection) string {
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteByte('\n')
		}
		switch s.Type {
		case structure.SectionHeading:
			level := clampLevel(s.Level)
			fmt.Fprintf(&sb, "<h%d>%s</h%d>", level, html.EscapeString(s.Content), level)
		case structure.SectionList:
			sb.WriteString(htmlList(s.Content))
		case structure.SectionTable:
			sb.WriteString(`<div class="table-content">`)
			sb.WriteString(html.EscapeString(s.Content))
			sb.WriteString("</div>")
		default:
			sb.WriteString("<p>")
			sb.WriteString(html.EscapeString(s.Content))
			sb.WriteString("</p>")
		}
	}
	return sb.String()
}

// htmlList reconstructs nested ul/ol markup from flattened list lines using
// the frame stack. Level transitions open and close exactly one tag each;
// a same-level kind flip closes the open list and opens one of the other
// kind. Lines that strip to empty are skipped entirely.
func htmlList(content string) string {
	var sb strings.Builder
	var stack frameStack

	for _, raw := range strings.Split(content, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		ln := listmark.Classify(raw)
		if ln.Text == "" {
			continue
		}

		for stack.closesFor(ln.Level, ln.Ordered) {
			sb.WriteString(closeTag(stack.pop()))
		}
		if stack.opensFor(ln.Level, ln.Ordered) {
			stack.push(frame{level: ln.Level, ordered: ln.Ordered})
			sb.WriteString(openTag(stack.top()))
		}

		sb.WriteString("<li>")
		sb.WriteString(html.EscapeString(ln.Text))
		sb.WriteString("</li>")
	}

	for !stack.empty() {
		sb.WriteString(closeTag(stack.pop()))
	}
	return sb.String()
}

func openTag(f frame) string {
	if f.ordered {
		return "<ol>"
	}
	return "<ul>"
}

func closeTag(f frame) string {
	if f.ordered {
		return "</ol>"
	}
	return "</ul>"
}
