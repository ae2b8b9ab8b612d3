package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/roden1999/money-tracking-app/internal/model"
)

type outboxStore struct {
	db *gorm.DB
}

func (os *outboxStore) Add(ctx context.Context, evt *model.OutboxEvent) error {
	return os.db.WithContext(ctx).Create(evt).Error
}

func (os *outboxStore) Poll(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	var evts []model.OutboxEvent
	err := os.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("created_at").
		Limit(limit).
		Find(&evts).Error
	return evts, err
}

func (os *outboxStore) MarkProcessed(ctx context.Context, id uint64) error {
	now := time.Now()
	return os.db.WithContext(ctx).
		Model(&model.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"processed": true, "processed_at": &now}).Error
}
