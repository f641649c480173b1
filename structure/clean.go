package structure

import (
	"regexp"
	"strings"
	"unicode"
)

var multiSpaceRe = regexp.MustCompile(`\s+`)

// CleanText normalises an extracted text fragment: drops zero-width and
// other unsafe characters, collapses whitespace runs to a single space,
// and trims.
func CleanText(text string) string {
	text = strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff', '\u00ad', '\ufffd':
			return -1
		}
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		// Private-use runes render as tofu everywhere downstream.
		if unicode.In(r, unicode.Co) {
			return -1
		}
		return r
	}, text)

	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
