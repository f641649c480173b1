package structure

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return root
}

func TestExtractHeadingsAndParagraphs(t *testing.T) {
	root := parse(t, `<h1>Report</h1><p>Intro text.</p><h2>Details</h2><p>Body.</p>`)
	c := Extract(root, "", "report.docx")

	if c.Title != "Report" {
		t.Errorf("Title = %q, want %q", c.Title, "Report")
	}
	if len(c.Sections) != 4 {
		t.Fatalf("got %d sections, want 4: %+v", len(c.Sections), c.Sections)
	}
	if c.Sections[0].Type != SectionHeading || c.Sections[0].Level != 1 {
		t.Errorf("section 0 = %+v, want h1", c.Sections[0])
	}
	if c.Sections[2].Type != SectionHeading || c.Sections[2].Level != 2 {
		t.Errorf("section 2 = %+v, want h2", c.Sections[2])
	}
	if c.Sections[1].Content != "Intro text." {
		t.Errorf("paragraph content = %q", c.Sections[1].Content)
	}
}

func TestExtractEmptyBlocksDropped(t *testing.T) {
	root := parse(t, `<h2>   </h2><p></p><p>  kept  </p>`)
	c := Extract(root, "", "f.docx")

	if len(c.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(c.Sections))
	}
	if c.Sections[0].Content != "kept" {
		t.Errorf("content = %q, want %q", c.Sections[0].Content, "kept")
	}
}

func TestExtractTitleFallsBackToFilename(t *testing.T) {
	root := parse(t, `<p>No headings here.</p>`)
	c := Extract(root, "", "quarterly report.docx")

	if c.Title != "quarterly report" {
		t.Errorf("Title = %q, want extension-stripped filename", c.Title)
	}
}

func TestExtractEmptyTree(t *testing.T) {
	root := parse(t, ``)
	c := Extract(root, "", "empty.docx")

	if len(c.Sections) != 0 {
		t.Errorf("got %d sections, want 0", len(c.Sections))
	}
	if c.Title != "empty" {
		t.Errorf("Title = %q, want %q", c.Title, "empty")
	}
}

func TestExtractNilTree(t *testing.T) {
	c := Extract(nil, "", "x.docx")
	if len(c.Sections) != 0 || c.Title != "x" {
		t.Errorf("Extract(nil) = %+v", c)
	}
}

func TestExtractFlatOrderedList(t *testing.T) {
	root := parse(t, `<ol><li>first</li><li>second</li><li>third</li></ol>`)
	c := Extract(root, "", "f.docx")

	if len(c.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(c.Sections))
	}
	s := c.Sections[0]
	if s.Type != SectionList || s.ListType != ListOrdered {
		t.Fatalf("section = %+v, want ordered list", s)
	}
	want := "1. first\n2. second\n3. third"
	if s.Content != want {
		t.Errorf("content = %q, want %q", s.Content, want)
	}
}

func TestExtractNestedListCollapsesToOneSection(t *testing.T) {
	root := parse(t, `<ol>
		<li>first<ol><li>sub one</li><li>sub two</li></ol></li>
		<li>second<ul><li>note</li></ul></li>
	</ol>`)
	c := Extract(root, "", "f.docx")

	if len(c.Sections) != 1 {
		t.Fatalf("nested lists must collapse into one section, got %d", len(c.Sections))
	}
	// Nested counters are independent of the outer list and of each other.
	want := strings.Join([]string{
		"1. first",
		"  a. sub one",
		"  b. sub two",
		"2. second",
		"  ◦ note",
	}, "\n")
	if c.Sections[0].Content != want {
		t.Errorf("content =\n%q\nwant\n%q", c.Sections[0].Content, want)
	}
}

func TestExtractListLevelMarkers(t *testing.T) {
	root := parse(t, `<ol><li>one
		<ol><li>two
			<ol><li>three
				<ol><li>four</li></ol>
			</li></ol>
		</li></ol>
	</li></ol>`)
	c := Extract(root, "", "f.docx")

	want := strings.Join([]string{
		"1. one",
		"  a. two",
		"    i. three",
		"      (1) four",
	}, "\n")
	if c.Sections[0].Content != want {
		t.Errorf("content =\n%q\nwant\n%q", c.Sections[0].Content, want)
	}
}

func TestExtractOrderedCountersRestartPerList(t *testing.T) {
	root := parse(t, `<ol><li>a1</li><li>a2</li></ol><ol><li>b1</li></ol>`)
	c := Extract(root, "", "f.docx")

	if len(c.Sections) != 2 {
		t.Fatalf("got %d sections, want 2 separate lists", len(c.Sections))
	}
	if c.Sections[1].Content != "1. b1" {
		t.Errorf("second list = %q, numbering must restart at 1", c.Sections[1].Content)
	}
}

func TestExtractItemWithOnlyNestedList(t *testing.T) {
	// The wrapper item has no direct text: no line is emitted for it and the
	// direct-item counter does not advance.
	root := parse(t, `<ol><li>first</li><li><ul><li>orphan</li></ul></li><li>second</li></ol>`)
	c := Extract(root, "", "f.docx")

	want := "1. first\n  ◦ orphan\n2. second"
	if c.Sections[0].Content != want {
		t.Errorf("content = %q, want %q", c.Sections[0].Content, want)
	}
}

func TestExtractUnorderedBulletsByLevel(t *testing.T) {
	root := parse(t, `<ul><li>top<ul><li>mid<ul><li>deep</li></ul></li></ul></li></ul>`)
	c := Extract(root, "", "f.docx")

	want := "• top\n  ◦ mid\n    ▪ deep"
	if c.Sections[0].Content != want {
		t.Errorf("content = %q, want %q", c.Sections[0].Content, want)
	}
	if c.Sections[0].ListType != ListUnordered {
		t.Errorf("ListType = %q", c.Sections[0].ListType)
	}
}

func TestExtractTable(t *testing.T) {
	root := parse(t, `<table>
		<tr><th>Name</th><th>Qty</th></tr>
		<tr><td>Widget</td><td>3</td></tr>
		<tr><td></td><td></td></tr>
		<tr><td>Ragged</td></tr>
	</table>`)
	c := Extract(root, "", "f.docx")

	if len(c.Sections) != 1 || c.Sections[0].Type != SectionTable {
		t.Fatalf("sections = %+v", c.Sections)
	}
	want := "Name | Qty\nWidget | 3\nRagged"
	if c.Sections[0].Content != want {
		t.Errorf("content = %q, want %q", c.Sections[0].Content, want)
	}
}

func TestExtractWrapperElementsWalkedTransparently(t *testing.T) {
	root := parse(t, `<div><section><article><p>Deep text</p></article></section></div>`)
	c := Extract(root, "", "f.docx")

	if len(c.Sections) != 1 || c.Sections[0].Content != "Deep text" {
		t.Errorf("sections = %+v", c.Sections)
	}
}

func TestExtractMetadataCounts(t *testing.T) {
	root := parse(t, `<p>irrelevant</p>`)
	c := Extract(root, "héllo wörld four words", "doc.docx")

	if c.Meta.WordCount != 4 {
		t.Errorf("WordCount = %d, want 4", c.Meta.WordCount)
	}
	// Runes, not bytes: accented characters count once.
	if c.Meta.CharCount != 22 {
		t.Errorf("CharCount = %d, want 22", c.Meta.CharCount)
	}
	if c.Meta.SourceFile != "doc.docx" {
		t.Errorf("SourceFile = %q", c.Meta.SourceFile)
	}
	if c.Meta.ProcessedAt.IsZero() {
		t.Error("ProcessedAt not set")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  a   b\t\nc  ", "a b c"},
		{"zero​width", "zerowidth"},
		{"soft­hyphen", "softhyphen"},
		{"repl�acement", "replacement"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
