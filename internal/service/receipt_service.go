package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"ai-helpdesk-be/internal/constant"
	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/entity"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/pkg/events"
	"ai-helpdesk-be/pkg/llm"
	"ai-helpdesk-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IReceiptService extracts structured predictions from receipt images.
type IReceiptService interface {
	Extract(ctx context.Context, filename, mimeType string, image []byte) (*dto.ExtractResponse, error)
}

type receiptService struct {
	llmProvider llm.LLMProvider
	publisher   message.Publisher
	logger      logger.ILogger
}

func NewReceiptService(
	llmProvider llm.LLMProvider,
	publisher message.Publisher,
	log logger.ILogger,
) IReceiptService {
	return &receiptService{
		llmProvider: llmProvider,
		publisher:   publisher,
		logger:      log,
	}
}

// Extract sends the image to the vision model at temperature 0, pulls the
// first JSON object out of the (possibly prose-wrapped) response, and
// publishes the parsed record for the consumer to persist.
func (s *receiptService) Extract(ctx context.Context, filename, mimeType string, image []byte) (*dto.ExtractResponse, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	messages := []llm.Message{
		{Role: "user", Content: constant.ReceiptExtractionPrompt, ImageURL: dataURI},
	}
	raw, err := s.llmProvider.Chat(ctx, messages, llm.WithTemperature(0))
	if err != nil {
		s.logger.Error("receipts", "vision call failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: vision: %v", ErrUpstream, err)
	}

	prediction, err := parsePrediction(raw)
	if err != nil {
		s.logger.Warn("receipts", "no structured result in model output", map[string]interface{}{
			"file":  filename,
			"error": err.Error(),
		})
		return nil, err
	}

	record := entity.ReceiptRecord{
		ID:         uuid.New(),
		Timestamp:  time.Now().UTC(),
		File:       filename,
		Prediction: *prediction,
	}

	msg, err := events.NewReceiptExtractedMessage(events.ReceiptExtracted{Record: record})
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(events.TopicReceiptExtracted, msg); err != nil {
		s.logger.Error("receipts", "failed to publish record", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("receipts", "receipt extracted", map[string]interface{}{
		"file":  filename,
		"items": len(prediction.Items),
		"total": prediction.Total,
	})

	return &dto.ExtractResponse{
		RecordID:   record.ID,
		Prediction: *prediction,
	}, nil
}

func parsePrediction(raw string) (*entity.ReceiptPrediction, error) {
	objJSON, err := utils.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStructuredResult, err)
	}

	var prediction entity.ReceiptPrediction
	if err := json.Unmarshal([]byte(objJSON), &prediction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStructuredResult, err)
	}
	return &prediction, nil
}
