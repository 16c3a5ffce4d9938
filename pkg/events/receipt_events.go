// Package events defines the in-process event bus topics and payloads.
package events

import (
	"encoding/json"

	"ai-helpdesk-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// TopicReceiptExtracted carries one ReceiptExtracted payload per
// successfully parsed receipt.
const TopicReceiptExtracted = "receipt.extracted"

// ReceiptExtracted is published after the vision model's output has been
// parsed; the consumer appends the record to the predictions log.
type ReceiptExtracted struct {
	Record entity.ReceiptRecord `json:"record"`
}

// NewReceiptExtractedMessage wraps the event in a watermill message.
func NewReceiptExtractedMessage(ev ReceiptExtracted) (*message.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return message.NewMessage(uuid.NewString(), payload), nil
}
