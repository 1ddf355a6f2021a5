package worker

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/planning-service/internal/config"
	"github.com/spec-kit/planning-service/internal/events"
	"github.com/spec-kit/planning-service/internal/persistence"
)

// ChangefeedWorker relays every domain event onto a Redis pub/sub channel.
// Calendar clients subscribe to that channel and refetch on any message, so
// the payload only needs to say what changed, not carry the new state.
type ChangefeedWorker struct {
	redis   *persistence.Redis
	logger  *zap.Logger
	channel string
}

// NewChangefeedWorker creates the worker.
func NewChangefeedWorker(redis *persistence.Redis, logger *zap.Logger, cfg config.ChangefeedConfig) *ChangefeedWorker {
	if !cfg.Enabled {
		return nil
	}
	return &ChangefeedWorker{
		redis:   redis,
		logger:  logger,
		channel: cfg.Channel,
	}
}

// Start subscribes the worker to the dispatcher. Safe to call on a nil
// worker (changefeed disabled).
func (w *ChangefeedWorker) Start(dispatcher events.Dispatcher) {
	if w == nil || dispatcher == nil {
		return
	}
	dispatcher.SubscribeAll(w.relay)
}

func (w *ChangefeedWorker) relay(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		w.logger.Error("marshal changefeed event", zap.Error(err), zap.String("event_id", event.ID))
		return err
	}
	if err := w.redis.Publish(ctx, w.channel, payload); err != nil {
		// Delivery is best-effort: a missed notification only delays the
		// client's next refetch.
		w.logger.Warn("publish changefeed event",
			zap.Error(err),
			zap.String("channel", w.channel),
			zap.String("event_type", string(event.Type)))
		return err
	}
	w.logger.Debug("changefeed event published",
		zap.String("event_type", string(event.Type)),
		zap.String("entity", event.Entity),
		zap.Int64("entity_id", event.EntityID))
	return nil
}
