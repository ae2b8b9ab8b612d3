package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

// emitEvent stages a ledger event in the outbox right after the write
// that produced it. Event loss is tolerated, the authoritative state is
// the entity row, so a failed stage is only logged.
func emitEvent(ctx context.Context, st store.Store, log *zap.SugaredLogger,
	aggregate string, aggregateID, userID uint64, eventType string, payload interface{}) {

	data, err := json.Marshal(payload)
	if err != nil {
		log.Warnw("marshal event payload", "event", eventType, "error", err)
		return
	}
	evt := &model.OutboxEvent{
		Aggregate:   aggregate,
		AggregateID: aggregateID,
		UserID:      userID,
		EventType:   eventType,
		Payload:     string(data),
	}
	if err := st.Outbox().Add(ctx, evt); err != nil {
		log.Warnw("stage outbox event", "event", eventType, "error", err)
	}
}
