package doccast

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/doccast/render"
	"github.com/hazyhaar/doccast/structure"
)

const sampleMarkup = `<h1>Quarterly Report</h1>
<p>Summary paragraph.</p>
<ol><li>first</li><li>second<ul><li>detail</li></ul></li></ol>
<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>`

func TestConvertAllFormats(t *testing.T) {
	conv := New(Config{})
	res, err := conv.Convert(context.Background(), ConvertInput{
		Markup:   sampleMarkup,
		Filename: "report.docx",
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if res.Title != "Quarterly Report" {
		t.Errorf("Title = %q", res.Title)
	}
	if len(res.Outputs) != 3 {
		t.Fatalf("got %d outputs, want 3", len(res.Outputs))
	}
	if !strings.HasPrefix(res.ID, "conv_") {
		t.Errorf("ID = %q, want conv_ prefix", res.ID)
	}

	plain := res.Outputs[render.FormatPlaintext]
	if !strings.Contains(plain, "[Table: A | B\n1 | 2]") {
		t.Errorf("plaintext table missing: %q", plain)
	}
	htmlOut := res.Outputs[render.FormatHTML]
	if !strings.Contains(htmlOut, "<h1>Quarterly Report</h1>") {
		t.Errorf("html heading missing: %q", htmlOut)
	}
	if !strings.Contains(htmlOut, "<ol><li>first</li><li>second</li><ul><li>detail</li></ul></ol>") {
		t.Errorf("html list reconstruction wrong: %q", htmlOut)
	}
	md := res.Outputs[render.FormatMarkdown]
	if !strings.Contains(md, "# Quarterly Report") {
		t.Errorf("markdown heading missing: %q", md)
	}
	if !strings.Contains(md, "1. first\n2. second\n  - detail") {
		t.Errorf("markdown list wrong: %q", md)
	}
}

func TestConvertSelectedFormats(t *testing.T) {
	conv := New(Config{})
	res, err := conv.Convert(context.Background(), ConvertInput{
		Markup:  "<p>x</p>",
		Formats: []render.Format{render.FormatMarkdown},
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(res.Outputs) != 1 {
		t.Errorf("got %d outputs, want 1", len(res.Outputs))
	}
	if _, ok := res.Outputs[render.FormatMarkdown]; !ok {
		t.Error("markdown output missing")
	}
}

func TestConvertEmptyMarkup(t *testing.T) {
	conv := New(Config{})
	_, err := conv.Convert(context.Background(), ConvertInput{Markup: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestConvertInputTooLarge(t *testing.T) {
	conv := New(Config{MaxInputSize: 8})
	_, err := conv.Convert(context.Background(), ConvertInput{Markup: "<p>way past the cap</p>"})
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("err = %v, want ErrInputTooLarge", err)
	}
}

func TestConvertSanitizesScriptContent(t *testing.T) {
	conv := New(Config{})
	res, err := conv.Convert(context.Background(), ConvertInput{
		Markup:   `<p>safe</p><script>alert("x")</script>`,
		Filename: "f.docx",
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for f, out := range res.Outputs {
		if strings.Contains(out, "alert") {
			t.Errorf("%s output leaked script content: %q", f, out)
		}
	}
}

func TestConvertMalformedMarkupDegradesGracefully(t *testing.T) {
	// Markup with no recognizable blocks yields an empty section list and
	// the filename-derived title; not an error condition.
	conv := New(Config{})
	res, err := conv.Convert(context.Background(), ConvertInput{
		Markup:   "<unknown><wrapper/></unknown>",
		Filename: "odd.docx",
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(res.Content.Sections) != 0 {
		t.Errorf("sections = %+v, want none", res.Content.Sections)
	}
	if res.Title != "odd" {
		t.Errorf("Title = %q, want filename fallback", res.Title)
	}
}

func TestConvertRawTextFeedsCounters(t *testing.T) {
	conv := New(Config{})
	res, err := conv.Convert(context.Background(), ConvertInput{
		Markup:   "<p>ignored for counting</p>",
		RawText:  "one two three",
		Filename: "f.docx",
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.Content.Meta.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", res.Content.Meta.WordCount)
	}
}

func TestConvertCancelledContext(t *testing.T) {
	conv := New(Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := conv.Convert(ctx, ConvertInput{Markup: "<p>x</p>"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestConvertMarkdownConverterMode(t *testing.T) {
	conv := New(Config{MarkdownEngine: MarkdownConverter})
	res, err := conv.Convert(context.Background(), ConvertInput{
		Markup:   "<h1>Title</h1><p>Body text.</p>",
		Filename: "f.docx",
		Formats:  []render.Format{render.FormatMarkdown},
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	md := res.Outputs[render.FormatMarkdown]
	if !strings.Contains(md, "Title") || !strings.Contains(md, "Body text.") {
		t.Errorf("converter-mode markdown = %q", md)
	}
}

func TestExtract(t *testing.T) {
	conv := New(Config{})
	content, err := conv.Extract(ConvertInput{Markup: sampleMarkup, Filename: "f.docx"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	types := make([]structure.SectionType, 0, len(content.Sections))
	for _, s := range content.Sections {
		types = append(types, s.Type)
	}
	want := []structure.SectionType{
		structure.SectionHeading, structure.SectionParagraph,
		structure.SectionList, structure.SectionTable,
	}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("section %d type = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	os.WriteFile(path, []byte("<h1>From File</h1><p>body</p>"), 0o644)

	conv := New(Config{})
	res, err := conv.ConvertFile(context.Background(), path)
	if err != nil {
		t.Fatalf("convert file: %v", err)
	}
	if res.Title != "From File" {
		t.Errorf("Title = %q", res.Title)
	}
	if res.Content.Meta.SourceFile != "doc.html" {
		t.Errorf("SourceFile = %q", res.Content.Meta.SourceFile)
	}
}

func TestConvertFileUnsupportedType(t *testing.T) {
	conv := New(Config{})
	_, err := conv.ConvertFile(context.Background(), "raw.docx")
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("err = %v, want ErrUnsupportedFile", err)
	}
}

func TestExtensions(t *testing.T) {
	ext := Extensions()
	if ext[render.FormatPlaintext] != "txt" || ext[render.FormatHTML] != "html" || ext[render.FormatMarkdown] != "md" {
		t.Errorf("Extensions = %v", ext)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doccast.yaml")
	os.WriteFile(path, []byte("max_input_size: 1024\nmarkdown_engine: converter\n"), 0o644)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MaxInputSize != 1024 || cfg.MarkdownEngine != MarkdownConverter {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Logger == nil {
		t.Error("defaults must set a logger")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/doccast.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
