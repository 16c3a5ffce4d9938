package service

import (
	"context"
	"encoding/json"

	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/internal/repository/predictionlog"
	"ai-helpdesk-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the in-process event bus in the background.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService appends extracted receipt records to the predictions log.
// Persistence happens off the request path so a slow disk never blocks the
// extraction response.
type consumerService struct {
	pubSub *gochannel.GoChannel
	log    *predictionlog.Log
	logger logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	log *predictionlog.Log,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		log:    log,
		logger: sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, events.TopicReceiptExtracted)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload events.ReceiptExtracted
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal receipt event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	if err := cs.log.Append(payload.Record); err != nil {
		cs.logger.Error("consumer", "failed to append prediction", map[string]interface{}{
			"error": err.Error(),
			"file":  payload.Record.File,
		})
		msg.Nack() // disk errors are retriable
		return
	}

	cs.logger.Info("consumer", "prediction persisted", map[string]interface{}{
		"file": payload.Record.File,
		"id":   payload.Record.ID.String(),
	})
	msg.Ack()
}
