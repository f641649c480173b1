package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Conversion is one history row.
type Conversion struct {
	ID         string   `json:"id"`
	SourceFile string   `json:"source_file"`
	Title      string   `json:"title"`
	WordCount  int      `json:"word_count"`
	CharCount  int      `json:"char_count"`
	Formats    []string `json:"formats"`
	Status     string   `json:"status"`
	Error      string   `json:"error,omitempty"`
	DurationMs int64    `json:"duration_ms"`
	CreatedAt  int64    `json:"created_at"`
}

// Stats holds aggregate history counters.
type Stats struct {
	Total  int `json:"total"`
	Failed int `json:"failed"`
	Words  int `json:"words"`
}

// Insert records a conversion.
func (s *Store) Insert(ctx context.Context, c *Conversion) error {
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().UnixMilli()
	}
	if c.Status == "" {
		c.Status = "ok"
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO conversions (id, source_file, title, word_count, char_count,
		formats, status, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SourceFile, c.Title, c.WordCount, c.CharCount,
		strings.Join(c.Formats, ","), c.Status, c.Error, c.DurationMs, c.CreatedAt,
	)
	return err
}

// Get retrieves one conversion by ID, or nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*Conversion, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, source_file, title, word_count, char_count,
		formats, status, error, duration_ms, created_at
		FROM conversions WHERE id = ?`, id)
	c, err := scanConversion(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// Recent lists the most recent conversions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Conversion, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, source_file, title, word_count, char_count,
		formats, status, error, duration_ms, created_at
		FROM conversions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Conversion
	for rows.Next() {
		c, err := scanConversion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Stats returns aggregate counters over the whole history.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN status != 'ok' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(word_count), 0)
		FROM conversions`).Scan(&st.Total, &st.Failed, &st.Words)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func scanConversion(scan func(...any) error) (*Conversion, error) {
	var c Conversion
	var formats string
	err := scan(&c.ID, &c.SourceFile, &c.Title, &c.WordCount, &c.CharCount,
		&formats, &c.Status, &c.Error, &c.DurationMs, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if formats != "" {
		c.Formats = strings.Split(formats, ",")
	}
	return &c, nil
}
