package render

import (
	"fmt"
	"strings"

	"github.com/hazyhaar/doccast/listmark"
	"github.com/hazyhaar/doccast/structure"
)

// renderMarkdown serialises sections as Markdown. Ordered list items are
// renumbered sequentially per level; nesting keeps the two-space indent.
func renderMarkdown(sections []structure.ContentSection) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		switch s.Type {
		case structure.SectionHeading:
			parts = append(parts, strings.Repeat("#", clampLevel(s.Level))+" "+s.Content)
		case structure.SectionList:
			parts = append(parts, markdownList(s.Content))
		case structure.SectionTable:
			parts = append(parts, "**Table:** "+s.Content)
		default:
			parts = append(parts, s.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// markdownList rewrites flattened list lines as Markdown bullets and
// renumbered ordered items. The frame stack mirrors the HTML reconstruction
// so both formats agree on where lists begin and end; counters live per open
// level and are discarded when a shallower line closes their frame.
func markdownList(content string) string {
	var lines []string
	var stack frameStack
	nums := make(counters)

	for _, raw := range strings.Split(content, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		ln := listmark.Classify(raw)
		if ln.Text == "" {
			continue
		}

		for stack.closesFor(ln.Level, ln.Ordered) {
			nums.reset(stack.pop().level)
		}
		nums.dropDeeper(ln.Level)
		if stack.opensFor(ln.Level, ln.Ordered) {
			stack.push(frame{level: ln.Level, ordered: ln.Ordered})
			nums.reset(ln.Level)
		}

		indent := strings.Repeat(" ", ln.Level*listmark.IndentWidth)
		if ln.Ordered {
			lines = append(lines, fmt.Sprintf("%s%d. %s", indent, nums.next(ln.Level), ln.Text))
		} else {
			lines = append(lines, indent+"- "+ln.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// MarkdownTable renders a table section's content as a true Markdown table:
// the first row becomes the header, followed by a separator sized to the
// header, then the data rows. Content rows are " | "-delimited per the table
// encoding; ragged rows pass through unchanged.
func MarkdownTable(content string) string {
	rows := strings.Split(content, "\n")
	if len(rows) == 0 || strings.TrimSpace(rows[0]) == "" {
		return ""
	}

	var sb strings.Builder
	header := strings.Split(rows[0], " | ")
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")

	for _, row := range rows[1:] {
		if strings.TrimSpace(row) == "" {
			continue
		}
		cells := strings.Split(row, " | ")
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
