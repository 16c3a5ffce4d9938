// Package qdrantstore delegates vector storage and nearest-neighbor search
// to a Qdrant instance over its REST API.
//
// Unlike the in-process backends, search quality and ordering are the
// service's responsibility; this client only enforces the shared contract:
// Build is idempotent (the collection is created and populated only when it
// is missing or empty, never unconditionally recreated) and Search returns
// descending-score hits with the document payload.
package qdrantstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/vectorstore"
)

type Store struct {
	baseURL    string
	collection string
	dimension  int
	client     *http.Client
}

func NewStore(baseURL, collection string, dimension int) *Store {
	if baseURL == "" {
		baseURL = "http://localhost:6333"
	}
	if collection == "" {
		collection = "docs"
	}
	return &Store{
		baseURL:    baseURL,
		collection: collection,
		dimension:  dimension,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type collectionInfoResponse struct {
	Result struct {
		PointsCount int64 `json:"points_count"`
	} `json:"result"`
	Status interface{} `json:"status"`
}

type createCollectionRequest struct {
	Vectors vectorsConfig `json:"vectors"`
}

type vectorsConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

type upsertPointsRequest struct {
	Points []point `json:"points"`
}

type point struct {
	ID      int                  `json:"id"`
	Vector  []float32            `json:"vector"`
	Payload vectorstore.Document `json:"payload"`
}

type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type searchResponse struct {
	Result []struct {
		Score   float32              `json:"score"`
		Payload vectorstore.Document `json:"payload"`
	} `json:"result"`
}

// Build ensures the collection exists and is populated. An existing,
// non-empty collection is reused as-is.
func (s *Store) Build(ctx context.Context, docs []vectorstore.Document, embedder embedding.EmbeddingProvider) error {
	count, exists, err := s.collectionPoints(ctx)
	if err != nil {
		return err
	}
	if exists && count > 0 {
		return nil
	}

	if !exists {
		if err := s.createCollection(ctx); err != nil {
			return err
		}
	}

	records, err := vectorstore.Embed(docs, embedder)
	if err != nil {
		return fmt.Errorf("embedding corpus: %w", err)
	}

	points := make([]point, 0, len(records))
	for i, r := range records {
		points = append(points, point{
			ID:      i,
			Vector:  r.Embedding,
			Payload: vectorstore.Document{ID: r.ID, Text: r.Text},
		})
	}
	return s.upsert(ctx, points)
}

func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]vectorstore.Hit, error) {
	reqBody := searchRequest{Vector: vector, Limit: k, WithPayload: true}

	var resp searchResponse
	url := fmt.Sprintf("%s/collections/%s/points/search", s.baseURL, s.collection)
	if err := s.do(ctx, http.MethodPost, url, reqBody, &resp); err != nil {
		return nil, err
	}

	hits := make([]vectorstore.Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, vectorstore.Hit{Score: r.Score, Document: r.Payload})
	}
	return hits, nil
}

func (s *Store) collectionPoints(ctx context.Context) (count int64, exists bool, err error) {
	url := fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("qdrant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, false, nil
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("qdrant api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var info collectionInfoResponse
	if err := json.Unmarshal(bodyBytes, &info); err != nil {
		return 0, false, fmt.Errorf("failed to decode collection info: %w", err)
	}
	return info.Result.PointsCount, true, nil
}

func (s *Store) createCollection(ctx context.Context) error {
	url := fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)
	reqBody := createCollectionRequest{
		Vectors: vectorsConfig{Size: s.dimension, Distance: "Cosine"},
	}
	return s.do(ctx, http.MethodPut, url, reqBody, nil)
}

func (s *Store) upsert(ctx context.Context, points []point) error {
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.baseURL, s.collection)
	return s.do(ctx, http.MethodPut, url, upsertPointsRequest{Points: points}, nil)
}

func (s *Store) do(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qdrant api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
