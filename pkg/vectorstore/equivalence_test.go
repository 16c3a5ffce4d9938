package vectorstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/vectorstore"
	"ai-helpdesk-be/pkg/vectorstore/jsonfile"
	"ai-helpdesk-be/pkg/vectorstore/sqlitestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordOverlapEmbedder gives distinct but deterministic vectors so the two
// in-process backends can be compared on a non-trivial ranking.
type wordOverlapEmbedder struct{}

func (wordOverlapEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	terms := []string{"returns", "shipping", "payments", "warranty"}
	values := make([]float32, len(terms))
	for i, term := range terms {
		for j := 0; j+len(term) <= len(text); j++ {
			if text[j:j+len(term)] == term {
				values[i]++
			}
		}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: values},
	}, nil
}

// The flat-file and sqlite backends must retrieve the same ids in the same
// order for the same corpus and query.
func TestBackendsReturnSameIDs(t *testing.T) {
	docs := []vectorstore.Document{
		{ID: "a.md", Text: "returns returns shipping"},
		{ID: "b.md", Text: "shipping shipping payments"},
		{ID: "c.md", Text: "warranty payments"},
		{ID: "d.md", Text: "returns warranty warranty"},
	}
	embedder := wordOverlapEmbedder{}
	ctx := context.Background()

	jsonStore := jsonfile.NewStore(filepath.Join(t.TempDir(), "vectors.json"))
	require.NoError(t, jsonStore.Build(ctx, docs, embedder))

	sqlStore, err := sqlitestore.NewStore(filepath.Join(t.TempDir(), "vectors.db"))
	require.NoError(t, err)
	require.NoError(t, sqlStore.Build(ctx, docs, embedder))

	queries := []string{
		"where are my returns",
		"shipping and payments",
		"warranty claim",
	}
	for _, q := range queries {
		resp, err := embedder.Generate(q, embedding.TaskRetrievalQuery)
		require.NoError(t, err)

		jsonHits, err := jsonStore.Search(ctx, resp.Embedding.Values, 3)
		require.NoError(t, err)
		sqlHits, err := sqlStore.Search(ctx, resp.Embedding.Values, 3)
		require.NoError(t, err)

		require.Equal(t, len(jsonHits), len(sqlHits), "query %q", q)
		for i := range jsonHits {
			assert.Equal(t, jsonHits[i].Document.ID, sqlHits[i].Document.ID, "query %q rank %d", q, i)
			assert.InDelta(t, jsonHits[i].Score, sqlHits[i].Score, 1e-6)
		}
	}
}

func TestEmbedRejectsInconsistentDimensions(t *testing.T) {
	docs := []vectorstore.Document{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}}
	_, err := vectorstore.Embed(docs, raggedEmbedder{})
	assert.ErrorContains(t, err, "inconsistent embedding dimension")
}

type raggedEmbedder struct{}

func (raggedEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	values := make([]float32, len(text)+1)
	values[0] = 1
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: values},
	}, nil
}
