package dto

import (
	"ai-helpdesk-be/internal/entity"

	"github.com/google/uuid"
)

type ExtractResponse struct {
	RecordID   uuid.UUID                `json:"record_id"`
	Prediction entity.ReceiptPrediction `json:"prediction"`
}

type ReceiptRecordsResponse struct {
	Records []entity.ReceiptRecord `json:"records"`
}
