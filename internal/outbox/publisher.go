// Package outbox drains staged ledger events to Kafka. Events are
// published in creation order and marked processed only after a
// successful write, so consumers may see duplicates but never gaps.
package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

// Publisher polls the outbox and forwards events to Kafka.
type Publisher struct {
	outbox store.OutboxStore
	writer *kafka.Writer
	log    *zap.SugaredLogger
}

func NewPublisher(ob store.OutboxStore, w *kafka.Writer, log *zap.SugaredLogger) *Publisher {
	return &Publisher{outbox: ob, writer: w, log: log}
}

// Publish sends one event to Kafka, keyed by event id.
func (p *Publisher) Publish(ctx context.Context, evt model.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", evt.ID)),
		Value: []byte(evt.Payload),
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
			{Key: "aggregate", Value: []byte(evt.Aggregate)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Drain publishes one batch of unprocessed events and returns how many
// went out.
func (p *Publisher) Drain(ctx context.Context, batch int) (int, error) {
	events, err := p.outbox.Poll(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("poll outbox: %w", err)
	}
	sent := 0
	for _, evt := range events {
		if err := p.Publish(ctx, evt); err != nil {
			p.log.Errorw("publish event", "id", evt.ID, "error", err)
			continue
		}
		if err := p.outbox.MarkProcessed(ctx, evt.ID); err != nil {
			p.log.Errorw("mark processed", "id", evt.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

// Run drains on every tick until the context is done.
func (p *Publisher) Run(ctx context.Context, interval time.Duration, batch int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if sent, err := p.Drain(ctx, batch); err != nil {
				p.log.Errorw("drain outbox", "error", err)
			} else if sent > 0 {
				p.log.Infow("events published", "count", sent)
			}
		}
	}
}
