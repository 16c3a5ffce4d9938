// Package pgvectorstore keeps vector records in a Postgres table with a
// pgvector column and pushes nearest-neighbor ranking down to the database
// via the cosine distance operator.
package pgvectorstore

import (
	"context"
	"fmt"

	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/vectorstore"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultDimension = 384 // all-MiniLM-L6-v2

// DocEmbedding is the persisted shape of a vector record. The embedding
// column's vector(n) type is declared in NewStore, where n comes from
// configuration.
type DocEmbedding struct {
	ID        string `gorm:"primaryKey"`
	Text      string
	Embedding pgvector.Vector
	Position  int // corpus insertion order
}

func (DocEmbedding) TableName() string {
	return "doc_embeddings"
}

type Store struct {
	db  *gorm.DB
	dim int
}

// NewStore enables the pgvector extension and creates the table with a
// vector column sized to the configured embedding dimension.
func NewStore(db *gorm.DB, dimension int) (*Store, error) {
	if dimension <= 0 {
		dimension = defaultDimension
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("enabling pgvector extension: %w", err)
	}
	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS doc_embeddings (id text PRIMARY KEY, text text, embedding vector(%d), position integer)",
		dimension,
	)
	if err := db.Exec(ddl).Error; err != nil {
		return nil, fmt.Errorf("creating doc_embeddings: %w", err)
	}
	return &Store{db: db, dim: dimension}, nil
}

// Build embeds and inserts the corpus only when the table is empty.
func (s *Store) Build(ctx context.Context, docs []vectorstore.Document, embedder embedding.EmbeddingProvider) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&DocEmbedding{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	records, err := vectorstore.Embed(docs, embedder)
	if err != nil {
		return fmt.Errorf("embedding corpus: %w", err)
	}
	if err := s.checkDimension(records); err != nil {
		return err
	}

	rows := make([]DocEmbedding, 0, len(records))
	for i, r := range records {
		rows = append(rows, DocEmbedding{
			ID:        r.ID,
			Text:      r.Text,
			Embedding: pgvector.NewVector(r.Embedding),
			Position:  i,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

// checkDimension rejects embeddings that would not fit the vector(n) column,
// so a misconfigured embedder fails with a clear error instead of a Postgres
// insert error.
func (s *Store) checkDimension(records []vectorstore.Record) error {
	for _, r := range records {
		if len(r.Embedding) != s.dim {
			return fmt.Errorf("embedding for %s has dimension %d, column is vector(%d)", r.ID, len(r.Embedding), s.dim)
		}
	}
	return nil
}

// Search ranks by cosine similarity in the database. pgvector's <=> operator
// is cosine distance, so score = 1 - distance; position breaks ties to match
// the in-process backends.
func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]vectorstore.Hit, error) {
	type row struct {
		ID    string
		Text  string
		Score float32
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Model(&DocEmbedding{}).
		Select("id, text, 1 - (embedding <=> ?) AS score", pgvector.NewVector(vector)).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?, position ASC",
			Vars: []interface{}{pgvector.NewVector(vector)},
		}}).
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("pgvector search: %w", err)
	}

	hits := make([]vectorstore.Hit, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, vectorstore.Hit{
			Score:    r.Score,
			Document: vectorstore.Document{ID: r.ID, Text: r.Text},
		})
	}
	return hits, nil
}
