package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"ai-helpdesk-be/pkg/database"
	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/vectorstore"
	"ai-helpdesk-be/pkg/vectorstore/pgvectorstore"
	"ai-helpdesk-be/pkg/vectorstore/qdrantstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedder assigns each new text its own basis vector, so the query
// for a text is exactly that text's stored vector.
type axisEmbedder struct {
	dim  int
	seen map[string]int
}

func newAxisEmbedder(dim int) *axisEmbedder {
	return &axisEmbedder{dim: dim, seen: make(map[string]int)}
}

func (e *axisEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	idx, ok := e.seen[text]
	if !ok {
		idx = len(e.seen) % e.dim
		e.seen[text] = idx
	}
	values := make([]float32, e.dim)
	values[idx] = 1
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: values},
	}, nil
}

func testDocs() []vectorstore.Document {
	return []vectorstore.Document{
		{ID: "returns.md", Text: "Returns are accepted within 30 days."},
		{ID: "shipping.md", Text: "Standard shipping takes 3-5 days."},
		{ID: "payments.md", Text: "We accept Visa and Mastercard."},
	}
}

// assertStoreContract runs the backend-independent checks: the best hit for
// a document's own vector is that document, scores descend, and k caps the
// result count.
func assertStoreContract(t *testing.T, store vectorstore.Store, embedder *axisEmbedder) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Build(ctx, testDocs(), embedder))

	query, err := embedder.Generate("Standard shipping takes 3-5 days.", embedding.TaskRetrievalQuery)
	require.NoError(t, err)

	hits, err := store.Search(ctx, query.Embedding.Values, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "shipping.md", hits[0].Document.ID)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
}

func TestQdrantStoreContract(t *testing.T) {
	url := os.Getenv("QDRANT_TEST_URL")
	if url == "" {
		t.Skip("QDRANT_TEST_URL not set; skipping qdrant integration test")
	}

	dim := 8
	collection := fmt.Sprintf("it_%s", uuid.NewString()[:8])
	store := qdrantstore.NewStore(url, collection, dim)
	assertStoreContract(t, store, newAxisEmbedder(dim))
}

func TestPgvectorStoreContract(t *testing.T) {
	dsn := os.Getenv("PGVECTOR_TEST_DSN")
	if dsn == "" {
		t.Skip("PGVECTOR_TEST_DSN not set; skipping pgvector integration test")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	dim := 384
	store, err := pgvectorstore.NewStore(db, dim)
	require.NoError(t, err)
	defer db.Exec("TRUNCATE doc_embeddings")

	db.Exec("TRUNCATE doc_embeddings")
	assertStoreContract(t, store, newAxisEmbedder(dim))
}
