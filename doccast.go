// Package doccast converts word-processor documents into clean,
// structure-preserving plain text, HTML, and Markdown.
//
// The converter consumes semantic block markup (headings, paragraphs,
// nested lists, tables) as produced by an upstream DOCX-to-markup step,
// extracts a hierarchical content model, and re-serialises it per format.
// Binary DOCX container parsing, images, and style fidelity are out of
// scope.
//
// Usage:
//
//	conv := doccast.New(doccast.Config{})
//	res, err := conv.Convert(ctx, doccast.ConvertInput{
//		Markup:   "<h1>Report</h1><p>Body.</p>",
//		Filename: "report.docx",
//	})
//	fmt.Println(res.Outputs[render.FormatMarkdown])
package doccast

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	mdtable "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/hazyhaar/doccast/render"
	"github.com/hazyhaar/doccast/structure"
)

// Converter is the document conversion engine. Safe for concurrent use:
// every call takes its full input and returns a fresh result.
type Converter struct {
	cfg       Config
	logger    *slog.Logger
	sanitizer *bluemonday.Policy
	md        *converter.Converter
}

// New creates a Converter with the given configuration.
func New(cfg Config) *Converter {
	cfg.defaults()
	return &Converter{
		cfg:       cfg,
		logger:    cfg.Logger,
		sanitizer: markupPolicy(),
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				mdtable.NewTablePlugin(),
			),
		),
	}
}

// markupPolicy allows the structural elements the extractor understands plus
// common inline formatting. Script and style content is dropped outright.
func markupPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "ol", "ul", "li",
		"table", "thead", "tbody", "tr", "td", "th",
		"div", "section", "article", "span",
		"b", "strong", "i", "em", "u", "s", "sub", "sup", "br",
	)
	p.SkipElementsContent("script", "style", "noscript")
	return p
}

// NewID returns a fresh conversion identifier (prefixed UUIDv7).
func NewID() string {
	return "conv_" + uuid.Must(uuid.NewV7()).String()
}

// Formats returns the supported output formats.
func (c *Converter) Formats() []render.Format {
	return render.Formats()
}

// Extensions maps each output format to its file extension.
func Extensions() map[render.Format]string {
	out := make(map[render.Format]string, 3)
	for _, f := range render.Formats() {
		ext, _ := render.Extension(f)
		out[f] = ext
	}
	return out
}

// Extract sanitises and parses the markup and returns the structured
// content model without rendering any output format.
func (c *Converter) Extract(in ConvertInput) (*structure.StructuredContent, error) {
	if strings.TrimSpace(in.Markup) == "" {
		return nil, ErrInvalidInput
	}
	if int64(len(in.Markup)) > c.cfg.MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(in.Markup), c.cfg.MaxInputSize)
	}

	sanitized := c.sanitizer.Sanitize(in.Markup)
	root, err := html.Parse(strings.NewReader(sanitized))
	if err != nil {
		return nil, fmt.Errorf("doccast: parse markup: %w", err)
	}

	rawText := in.RawText
	if rawText == "" {
		rawText = structure.PlainText(root)
	}
	return structure.Extract(root, rawText, in.Filename), nil
}

// Convert extracts the structured content and renders every requested
// format. Pure CPU work; the context is only consulted between phases.
func (c *Converter) Convert(ctx context.Context, in ConvertInput) (*Result, error) {
	start := time.Now()

	content, err := c.Extract(in)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formats := in.Formats
	if len(formats) == 0 {
		formats = render.Formats()
	}

	outputs := make(map[render.Format]string, len(formats))
	for _, f := range formats {
		out, err := render.Render(content, f)
		if err != nil {
			return nil, err
		}
		if f == render.FormatMarkdown && c.cfg.MarkdownEngine == MarkdownConverter {
			out = c.convertedMarkdown(content, out)
		}
		outputs[f] = out
	}

	res := &Result{
		ID:       NewID(),
		Title:    content.Title,
		Content:  content,
		Outputs:  outputs,
		Duration: time.Since(start),
	}
	c.logger.Debug("converted document",
		"id", res.ID, "file", in.Filename, "title", res.Title,
		"sections", len(content.Sections), "formats", len(outputs),
		"duration_ms", res.Duration.Milliseconds())
	return res, nil
}

// convertedMarkdown runs the HTML rendition through the html-to-markdown
// library. Falls back to the native Markdown renderer when conversion fails
// or produces empty output.
func (c *Converter) convertedMarkdown(content *structure.StructuredContent, native string) string {
	htmlOut, err := render.Render(content, render.FormatHTML)
	if err != nil || htmlOut == "" {
		return native
	}
	out, err := c.md.ConvertString(htmlOut)
	if err != nil || strings.TrimSpace(out) == "" {
		c.logger.Debug("markdown converter fell back to native", "error", err)
		return native
	}
	return strings.TrimSpace(out)
}

// ConvertFile reads a markup file produced by the upstream DOCX-to-markup
// step (.html or .htm) and converts it. The engine itself performs no other
// file I/O.
func (c *Converter) ConvertFile(ctx context.Context, path string, formats ...render.Format) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".html" && ext != ".htm" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("doccast: read %s: %w", path, err)
	}
	return c.Convert(ctx, ConvertInput{
		Markup:   string(data),
		Filename: filepath.Base(path),
		Formats:  formats,
	})
}
