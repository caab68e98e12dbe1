package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/schema"
)

// DefaultIndent is the indentation of written data files
const DefaultIndent = "    "

// FileWriter persists a whole table as a JSON array of objects.
// It implements store.Persister.
type FileWriter struct {
	Indent string
}

// New creates a FileWriter with the default indentation
func New() *FileWriter {
	return &FileWriter{Indent: DefaultIndent}
}

// Encode renders rows as the data file content, keys in schema order
func (w *FileWriter) Encode(s *schema.TableSchema, rows []data.Row) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", w.Indent)
	if err := enc.Encode(data.Records(s.ColumnNames(), rows)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Save rewrites the file at path with the given rows.
// The content goes to a temp file first which then atomically replaces path.
func (w *FileWriter) Save(path string, s *schema.TableSchema, rows []data.Row) error {
	if path == "" {
		return fmt.Errorf("cannot save table %s: missing path", s.TableName)
	}

	content, err := w.Encode(s, rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows for %s: %w", s.TableName, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write temp file for table %s: %w", s.TableName, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp → %s for table %s: %w", path, s.TableName, err)
	}

	slog.Debug("table saved",
		slog.String("table", s.TableName),
		slog.String("path", path),
		slog.Int("row_count", len(rows)),
		slog.String("size", humanize.Bytes(uint64(len(content)))),
	)
	return nil
}
