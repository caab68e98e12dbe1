package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/domain/schema"
)

// Extension is the suffix of data files
const Extension = ".json"

// LoadedTable is a data file parsed into a schema and conformed rows
type LoadedTable struct {
	Name   string
	Path   string
	Schema *schema.TableSchema
	Rows   []data.Row
}

// TableName derives the table name from a data file path
func TableName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Extension)
}

// Discover returns the data files of dir, sorted by name. Subdirectories are not searched.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return nil, err
	}

	files := paths[:0]
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadTable reads a data file, infers its schema and conforms the rows to it.
// The row order and first-seen key order of the file are preserved.
func LoadTable(path string) (*LoadedTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errors.LoadError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	columns, rows, err := decodeRows(f)
	if err != nil {
		return nil, &errors.LoadError{Path: path, Reason: "invalid data file", Err: err}
	}

	if len(rows) > 0 && indexOf(columns, schema.IDColumn) < 0 {
		return nil, &errors.LoadError{Path: path, Reason: "rows have no id field"}
	}

	name := TableName(path)
	s := schema.Infer(name, columns, rows)
	schema.Conform(s, rows)

	logger := slog.Default()
	if info, err := f.Stat(); err == nil {
		logger = logger.With(slog.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	logger.Debug("table file loaded",
		slog.String("table", name),
		slog.String("path", path),
		slog.Int("row_count", len(rows)),
		slog.Int("column_count", len(s.Columns)),
	)

	return &LoadedTable{Name: name, Path: path, Schema: s, Rows: rows}, nil
}

// decodeRows streams a JSON array of objects. Columns are collected in
// first-seen order; a key missing from a row leaves a short row.
func decodeRows(r io.Reader) ([]string, []data.Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, nil, err
	}

	var columns []string
	positions := make(map[string]int)
	rows := make([]data.Row, 0)

	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", len(rows), err)
		}

		row := make(data.Row, len(columns))
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			key, ok := tok.(string)
			if !ok {
				return nil, nil, fmt.Errorf("row %d: expected key, got %v", len(rows), tok)
			}

			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, nil, fmt.Errorf("row %d: field %q: %w", len(rows), key, err)
			}
			v, err := data.ParseJSON(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: field %q: %w", len(rows), key, err)
			}

			pos, seen := positions[key]
			if !seen {
				pos = len(columns)
				positions[key] = pos
				columns = append(columns, key)
			}
			for len(row) <= pos {
				row = append(row, data.Null())
			}
			row[pos] = v
		}

		if err := expectDelim(dec, '}'); err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, fmt.Errorf("unexpected data after the top-level array")
	}
	return columns, rows, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return fmt.Errorf("unexpected end of file, expected %q", want)
	}
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
