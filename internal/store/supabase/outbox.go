package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/roden1999/money-tracking-app/internal/model"
)

const outboxTable = "event_outbox"

type outboxRow struct {
	ID          uint64     `json:"id,omitempty"`
	Aggregate   string     `json:"aggregate"`
	AggregateID uint64     `json:"aggregate_id"`
	UserID      uint64     `json:"user_id"`
	EventType   string     `json:"event_type"`
	Payload     string     `json:"payload"`
	Processed   bool       `json:"processed"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

type outboxStore struct {
	s *Store
}

func (os *outboxStore) Add(ctx context.Context, evt *model.OutboxEvent) error {
	row := outboxRow{
		Aggregate:   evt.Aggregate,
		AggregateID: evt.AggregateID,
		UserID:      evt.UserID,
		EventType:   evt.EventType,
		Payload:     evt.Payload,
	}
	var created []outboxRow
	if err := os.s.do(ctx, http.MethodPost, outboxTable, nil, []outboxRow{row}, &created); err != nil {
		return err
	}
	if len(created) == 1 {
		evt.ID = created[0].ID
	}
	return nil
}

func (os *outboxStore) Poll(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	q := url.Values{}
	q.Set("processed", "eq.false")
	q.Set("order", "id.asc")
	q.Set("limit", fmt.Sprintf("%d", limit))
	var rows []outboxRow
	if err := os.s.do(ctx, http.MethodGet, outboxTable, q, nil, &rows); err != nil {
		return nil, err
	}
	evts := make([]model.OutboxEvent, len(rows))
	for i, r := range rows {
		evts[i] = model.OutboxEvent{
			ID:          r.ID,
			Aggregate:   r.Aggregate,
			AggregateID: r.AggregateID,
			UserID:      r.UserID,
			EventType:   r.EventType,
			Payload:     r.Payload,
			Processed:   r.Processed,
			ProcessedAt: r.ProcessedAt,
		}
	}
	return evts, nil
}

func (os *outboxStore) MarkProcessed(ctx context.Context, id uint64) error {
	now := time.Now()
	q := url.Values{}
	q.Set("id", eq(id))
	patch := map[string]interface{}{"processed": true, "processed_at": now}
	return os.s.do(ctx, http.MethodPatch, outboxTable, q, patch, nil)
}
