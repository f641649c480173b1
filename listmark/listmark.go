// Package listmark defines the flattened list-line encoding shared by the
// structure extractor and the format renderer.
//
// A list section's content is newline-separated lines, one per item at any
// nesting depth, in document order. Each line is:
//
//	<2 spaces per nesting step><marker><direct item text>
//
// The extractor emits lines through Indent, Bullet and OrderedMarker; the
// renderer re-derives nesting and ordered/unordered kind through Classify.
// Both sides use this package so the two regex sets cannot drift apart.
package listmark

import (
	"fmt"
	"regexp"
	"strings"
)

// IndentWidth is the number of spaces per nesting step.
const IndentWidth = 2

// Bullet glyphs cycle by nesting level; level 3 and deeper reuse the square.
var bullets = []string{"• ", "◦ ", "▪ "}

// Indent returns the leading whitespace for a 1-based nesting level.
func Indent(level int) string {
	if level <= 1 {
		return ""
	}
	return strings.Repeat(" ", (level-1)*IndentWidth)
}

// Bullet returns the unordered marker for a 1-based nesting level.
func Bullet(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(bullets) {
		level = len(bullets)
	}
	return bullets[level-1]
}

// OrderedMarker returns the numbering glyph for the n-th direct item at a
// 1-based nesting level: 1 → "1.", 2 → "a.", 3 → lowercase roman, 4 → "(1)",
// deeper levels fall back to arabic.
func OrderedMarker(level, n int) string {
	if n < 1 {
		n = 1
	}
	switch level {
	case 2:
		return letterMarker(n) + ". "
	case 3:
		return toRoman(n) + ". "
	case 4:
		return fmt.Sprintf("(%d) ", n)
	default:
		return fmt.Sprintf("%d. ", n)
	}
}

// letterMarker maps 1 → "a", 26 → "z", 27 → "aa" (spreadsheet style).
func letterMarker(n int) string {
	var sb strings.Builder
	for n > 0 {
		n--
		sb.WriteByte(byte('a' + n%26))
		n /= 26
	}
	// Reverse: digits were appended least-significant first.
	b := []byte(sb.String())
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

var romanDigits = []struct {
	value int
	glyph string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func toRoman(n int) string {
	var sb strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			sb.WriteString(d.glyph)
			n -= d.value
		}
	}
	return sb.String()
}

// Line is the decoded form of one flattened list line.
type Line struct {
	Level   int    // 0-based nesting level derived from leading spaces
	Ordered bool   // true when the marker is a number/letter/roman glyph
	Text    string // item text with indentation and marker stripped
}

// Marker patterns. Parenthesized arabic is checked first because "(1)" also
// starts with a character the other patterns reject.
var (
	parenPattern  = regexp.MustCompile(`^\(\d+\)(\s+|$)`)
	arabicPattern = regexp.MustCompile(`^\d+[.)](\s+|$)`)
	letterPattern = regexp.MustCompile(`^[a-zA-Z][.)](\s+|$)`)
	romanPattern  = regexp.MustCompile(`^([ivxlcdmIVXLCDM]+)[.)](\s+|$)`)
	bulletPattern = regexp.MustCompile(`^[•◦▪\-*+](\s+|$)`)
)

// Classify decodes one raw line of list content. The nesting level is the
// leading-space count divided by IndentWidth. A line with no recognizable
// marker is treated as an unordered item carrying its full trimmed text, so
// reconstruction stays total on malformed input.
func Classify(raw string) Line {
	stripped := strings.TrimLeft(raw, " ")
	level := (len(raw) - len(stripped)) / IndentWidth
	stripped = strings.TrimRight(stripped, " \t")

	if m := parenPattern.FindString(stripped); m != "" {
		return Line{Level: level, Ordered: true, Text: stripped[len(m):]}
	}
	if m := arabicPattern.FindString(stripped); m != "" {
		return Line{Level: level, Ordered: true, Text: stripped[len(m):]}
	}
	if m := romanPattern.FindStringSubmatch(stripped); m != nil && isRoman(m[1]) {
		return Line{Level: level, Ordered: true, Text: stripped[len(m[0]):]}
	}
	if m := letterPattern.FindString(stripped); m != "" {
		return Line{Level: level, Ordered: true, Text: stripped[len(m):]}
	}
	if m := bulletPattern.FindString(stripped); m != "" {
		return Line{Level: level, Ordered: false, Text: stripped[len(m):]}
	}
	return Line{Level: level, Ordered: false, Text: stripped}
}

func isRoman(s string) bool {
	if s == "" || len(s) > 15 {
		return false
	}
	for _, r := range strings.ToLower(s) {
		if !strings.ContainsRune("ivxlcdm", r) {
			return false
		}
	}
	return true
}
