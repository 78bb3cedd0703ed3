package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nao1215/ytcomments/internal/model"
)

// Save writes each document into dir and returns the written paths.
// The directory is created if needed. Existing files are only replaced when
// overwrite is true; otherwise Save stops with ErrFileExists before writing
// anything.
func Save(dir string, docs []model.Document, overwrite bool) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	paths := make([]string, len(docs))
	for i, doc := range docs {
		paths[i] = filepath.Join(dir, doc.Filename)
		if overwrite {
			continue
		}
		if _, err := os.Stat(paths[i]); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileExists, paths[i])
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to check %s: %w", paths[i], err)
		}
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, doc := range docs {
		if err := os.WriteFile(paths[i], []byte(doc.Content), 0600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", paths[i], err)
		}
	}

	return paths, nil
}
