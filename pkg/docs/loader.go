// Package docs loads the answerable corpus from a local directory.
package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"ai-helpdesk-be/pkg/vectorstore"
)

// LoadDir reads every .md and .txt file directly inside dir (non-recursive)
// and returns one Document per file, id = filename, sorted by id so the
// corpus order is stable across platforms.
//
// Files that cannot be read or are not valid UTF-8 are reported through the
// aggregated error; successfully loaded documents are still returned.
func LoadDir(dir string) ([]vectorstore.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading docs directory %s: %w", dir, err)
	}

	var docs []vectorstore.Document
	var loadErrs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".txt" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			loadErrs = append(loadErrs, fmt.Errorf("reading %s: %w", name, err))
			continue
		}
		if !utf8.Valid(data) {
			loadErrs = append(loadErrs, fmt.Errorf("decoding %s: not valid UTF-8", name))
			continue
		}

		docs = append(docs, vectorstore.Document{ID: name, Text: string(data)})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, errors.Join(loadErrs...)
}
