package service

import (
	"context"
	"encoding/json"

	"notepad-be/internal/dto"
	"notepad-be/internal/pkg/logger"
	"notepad-be/internal/repository/memory"
)

// ChangeNotifier runs after a mutation has committed. The overview snapshot is
// dropped before returning; the change message is published best effort.
type ChangeNotifier struct {
	publisher IPublisherService
	cache     *memory.OverviewCache
	logger    logger.ILogger
}

func NewChangeNotifier(publisher IPublisherService, cache *memory.OverviewCache, log logger.ILogger) *ChangeNotifier {
	return &ChangeNotifier{
		publisher: publisher,
		cache:     cache,
		logger:    log,
	}
}

func (n *ChangeNotifier) Notify(ctx context.Context, change dto.ChangeMessage) {
	if n == nil {
		return
	}
	if n.cache != nil {
		n.cache.Invalidate()
	}
	if n.publisher == nil {
		return
	}

	payload, err := json.Marshal(change)
	if err != nil {
		n.logger.Warn("EVENTS", "Failed to encode change message", map[string]interface{}{
			"type":  change.Type,
			"error": err.Error(),
		})
		return
	}
	if err := n.publisher.Publish(context.WithoutCancel(ctx), payload); err != nil {
		n.logger.Warn("EVENTS", "Failed to publish change message", map[string]interface{}{
			"type":  change.Type,
			"error": err.Error(),
		})
	}
}
