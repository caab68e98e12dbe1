package seed

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Content holds the demo tables
//
//go:embed demo/*.json
var Content embed.FS

// Demo is the demo table set rooted at its files
func Demo() fs.FS {
	sub, err := fs.Sub(Content, "demo")
	if err != nil {
		panic(err)
	}
	return sub
}

// EnsureSeeded copies every *.json file of seedFS into dir when dir holds
// no data file yet. The directory is created if needed. Existing data is
// never touched. Returns the number of files written.
func EnsureSeeded(dir string, seedFS fs.FS) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	existing, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil // Already has data
	}

	slog.Info("Seeding data directory...", "path", dir)

	written := 0
	err = fs.WalkDir(seedFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}

		data, err := fs.ReadFile(seedFS, p)
		if err != nil {
			return err
		}

		// flatten: tables live directly in dir
		target := filepath.Join(dir, path.Base(p))
		if err := os.WriteFile(target, data, 0644); err != nil {
			return err
		}
		written++
		return nil
	})
	return written, err
}
