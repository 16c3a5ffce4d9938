// Package sqlitestore persists vector records as rows in a local SQLite
// table, one embedding serialized as JSON text per row. No index is used:
// search loads every row and ranks by cosine similarity in memory, matching
// the flat-file backend's semantics exactly.
package sqlitestore

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/vectorstore"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DocRow is the persisted shape of a vector record.
type DocRow struct {
	ID        string `gorm:"primaryKey"`
	Text      string `gorm:"type:text"`
	Embedding string `gorm:"type:text"` // JSON-encoded []float32
	Position  int    // corpus insertion order, preserved for tie-breaking
}

func (DocRow) TableName() string {
	return "docs"
}

type Store struct {
	db      *gorm.DB
	records []vectorstore.Record
}

func NewStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store %s: %w", path, err)
	}
	if err := db.AutoMigrate(&DocRow{}); err != nil {
		return nil, fmt.Errorf("migrating sqlite store: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreFromDB wraps an already-open connection. Used by tests.
func NewStoreFromDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&DocRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Build embeds and inserts the corpus only when the table is empty, then
// loads all rows into memory for searching.
func (s *Store) Build(ctx context.Context, docs []vectorstore.Document, embedder embedding.EmbeddingProvider) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&DocRow{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting rows: %w", err)
	}

	if count == 0 {
		records, err := vectorstore.Embed(docs, embedder)
		if err != nil {
			return fmt.Errorf("embedding corpus: %w", err)
		}
		rows := make([]DocRow, 0, len(records))
		for i, r := range records {
			emb, err := json.Marshal(r.Embedding)
			if err != nil {
				return err
			}
			rows = append(rows, DocRow{
				ID:        r.ID,
				Text:      r.Text,
				Embedding: string(emb),
				Position:  i,
			})
		}
		if len(rows) > 0 {
			if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
				return fmt.Errorf("inserting rows: %w", err)
			}
		}
	}

	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) error {
	var rows []DocRow
	if err := s.db.WithContext(ctx).Order("position asc").Find(&rows).Error; err != nil {
		return fmt.Errorf("loading rows: %w", err)
	}

	records := make([]vectorstore.Record, 0, len(rows))
	for _, row := range rows {
		var emb []float32
		if err := json.Unmarshal([]byte(row.Embedding), &emb); err != nil {
			return fmt.Errorf("corrupt embedding for row %s: %w", row.ID, err)
		}
		records = append(records, vectorstore.Record{ID: row.ID, Text: row.Text, Embedding: emb})
	}
	s.records = records
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]vectorstore.Hit, error) {
	return vectorstore.RankTopK(s.records, vector, k), nil
}
