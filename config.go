package doccast

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// MarkdownEngine selects how Markdown output is produced.
const (
	// MarkdownNative renders Markdown directly from the section sequence.
	MarkdownNative = "native"
	// MarkdownConverter renders HTML first and converts it with the
	// html-to-markdown library, falling back to native on failure.
	MarkdownConverter = "converter"
)

// Config configures the converter.
type Config struct {
	// MaxInputSize caps the markup size in bytes (default: 20 MB).
	MaxInputSize int64 `json:"max_input_size" yaml:"max_input_size"`

	// MarkdownEngine is "native" (default) or "converter".
	MarkdownEngine string `json:"markdown_engine" yaml:"markdown_engine"`

	// HistoryDB is the SQLite path for the conversion history; empty
	// disables history. Used by the serving layers, not the engine.
	HistoryDB string `json:"history_db" yaml:"history_db"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxInputSize <= 0 {
		c.MaxInputSize = 20 * 1024 * 1024
	}
	if c.MarkdownEngine == "" {
		c.MarkdownEngine = MarkdownNative
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// LoadConfig reads a YAML configuration file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("doccast: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("doccast: parse config: %w", err)
	}
	cfg.defaults()
	return &cfg, nil
}
