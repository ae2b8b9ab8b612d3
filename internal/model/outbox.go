package model

import "time"

// Ledger event types written to the outbox.
const (
	EventWalletCreated      = "wallet.created"
	EventWalletUpdated      = "wallet.updated"
	EventWalletDeleted      = "wallet.deleted"
	EventTransactionCreated = "transaction.recorded"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
)

// OutboxEvent is a ledger event staged in the same store as the write
// that produced it, published to Kafka by the poller.
type OutboxEvent struct {
	ID          uint64    `gorm:"primaryKey"`
	Aggregate   string    `gorm:"size:64;not null"`
	AggregateID uint64    `gorm:"not null"`
	UserID      uint64    `gorm:"not null"`
	EventType   string    `gorm:"size:64;not null"`
	Payload     string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	Processed   bool      `gorm:"not null;default:false"`
	ProcessedAt *time.Time
}

func (OutboxEvent) TableName() string { return "event_outbox" }
