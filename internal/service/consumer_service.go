package service

import (
	"context"
	"encoding/json"

	"notepad-be/internal/dto"
	"notepad-be/internal/pkg/logger"
	"notepad-be/internal/repository/memory"
	"notepad-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// Broadcaster pushes a change payload to live websocket clients.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// EventPublisher forwards changes to the external event bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	cache          *memory.OverviewCache
	broadcaster    Broadcaster
	eventPublisher EventPublisher
	logger         logger.ILogger
}

// NewConsumerService fans committed changes out to websocket clients and the
// external bus. broadcaster and eventPublisher may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	cache *memory.OverviewCache,
	broadcaster Broadcaster,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		cache:          cache,
		broadcaster:    broadcaster,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Every outcome acks: a change that cannot be decoded will not decode on redelivery.
	defer msg.Ack()

	var change dto.ChangeMessage
	if err := json.Unmarshal(msg.Payload, &change); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal change message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		return
	}

	if cs.cache != nil {
		cs.cache.Invalidate()
	}

	if cs.broadcaster != nil {
		cs.broadcaster.Broadcast(msg.Payload)
	}

	if cs.eventPublisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type:       change.Type,
		Data:       changeData(change),
		OccurredAt: change.OccurredAt,
	}
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("CONSUMER", "Failed to forward change event", map[string]interface{}{
			"type":  change.Type,
			"error": err.Error(),
		})
	}
}

func changeData(change dto.ChangeMessage) map[string]interface{} {
	data := make(map[string]interface{}, 3)
	if change.NoteId != nil {
		data["note_id"] = change.NoteId.String()
	}
	if change.FolderId != nil {
		data["folder_id"] = change.FolderId.String()
	}
	if change.Affected > 0 {
		data["affected"] = change.Affected
	}
	return data
}
