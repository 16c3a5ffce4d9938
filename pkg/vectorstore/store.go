// Package vectorstore defines the storage contract shared by all retrieval
// backends. The backend is a storage/search mechanism only: given the same
// corpus and query every implementation must return the same set of document
// ids for a top-k search.
package vectorstore

import (
	"context"
	"fmt"

	"ai-helpdesk-be/pkg/embedding"
)

// Document is a corpus entry, immutable once loaded.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Record is a document plus its embedding, persisted by the backend.
type Record struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"emb"`
}

// Hit is a scored retrieval result.
type Hit struct {
	Score    float32  `json:"score"`
	Document Document `json:"document"`
}

// Store is the capability interface implemented by each backend. Build is
// idempotent: when persisted data already exists it is loaded instead of
// re-embedding the corpus. Search returns at most k hits ordered by
// descending score, ties keeping insertion order.
type Store interface {
	Build(ctx context.Context, docs []Document, embedder embedding.EmbeddingProvider) error
	Search(ctx context.Context, vector []float32, k int) ([]Hit, error)
}

// Embed runs the provider over every document, preserving order. Shared by
// the backends that compute embeddings locally at build time. A provider
// returning vectors of differing lengths is a misconfiguration caught here,
// before anything is persisted.
func Embed(docs []Document, embedder embedding.EmbeddingProvider) ([]Record, error) {
	records := make([]Record, 0, len(docs))
	dim := 0
	for _, d := range docs {
		resp, err := embedder.Generate(d.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, err
		}
		values := resp.Embedding.Values
		if dim == 0 {
			dim = len(values)
		} else if len(values) != dim {
			return nil, fmt.Errorf("inconsistent embedding dimension for %s: got %d, want %d", d.ID, len(values), dim)
		}
		records = append(records, Record{
			ID:        d.ID,
			Text:      d.Text,
			Embedding: values,
		})
	}
	return records, nil
}
