package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptItem is one purchased line on a receipt. Prices stay as the
// decimal strings the vision model emits; no arithmetic is done on them.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
	UnitPrice string  `json:"unit_price"`
	LineTotal string  `json:"line_total"`
}

// ReceiptPrediction is the structured output extracted from a receipt image.
type ReceiptPrediction struct {
	Items []ReceiptItem `json:"items"`
	Total string        `json:"total"`
}

// ReceiptRecord is what gets appended to the append-only predictions log.
// Records are never mutated or deleted.
type ReceiptRecord struct {
	ID         uuid.UUID         `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	File       string            `json:"file"`
	Prediction ReceiptPrediction `json:"prediction"`
}
