// Package jsonfile persists the whole vector collection as a single JSON
// file and searches it with brute-force cosine ranking in memory.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/vectorstore"
)

type Store struct {
	path    string
	records []vectorstore.Record
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Build loads the persisted collection when the file exists; otherwise it
// embeds the corpus, writes the file, and keeps the records in memory.
func (s *Store) Build(ctx context.Context, docs []vectorstore.Document, embedder embedding.EmbeddingProvider) error {
	data, err := os.ReadFile(s.path)
	if err == nil {
		if err := json.Unmarshal(data, &s.records); err != nil {
			return fmt.Errorf("corrupt vector file %s: %w", s.path, err)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("reading vector file %s: %w", s.path, err)
	}

	records, err := vectorstore.Embed(docs, embedder)
	if err != nil {
		return fmt.Errorf("embedding corpus: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
	}

	data, err = json.Marshal(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing vector file %s: %w", s.path, err)
	}

	s.records = records
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]vectorstore.Hit, error) {
	return vectorstore.RankTopK(s.records, vector, k), nil
}
