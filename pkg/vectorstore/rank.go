package vectorstore

import (
	"math"
	"sort"
)

// Cosine computes dot(a,b) / (|a| * |b|). Returns 0 for mismatched lengths or
// zero-magnitude vectors.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// RankTopK brute-force scores every record against the query vector and
// returns the k best hits, descending by score. The sort is stable so ties
// keep corpus insertion order.
func RankTopK(records []Record, query []float32, k int) []Hit {
	hits := make([]Hit, 0, len(records))
	for _, r := range records {
		hits = append(hits, Hit{
			Score:    Cosine(query, r.Embedding),
			Document: Document{ID: r.ID, Text: r.Text},
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
