package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/roden1999/money-tracking-app/internal/ledger"
)

// Transaction is the stored form of a ledger transaction. Amount is kept
// non-negative; Type carries the sign. Date is the effective date, not
// the creation time.
type Transaction struct {
	ID          uint64          `gorm:"primaryKey"`
	UserID      uint64          `gorm:"not null;index"`
	WalletID    uint64          `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Type        string          `gorm:"size:16;not null"`
	Category    string          `gorm:"size:32;not null"`
	Description string          `gorm:"size:255"`
	Date        time.Time       `gorm:"not null;index"`
	Status      string          `gorm:"size:16;not null;default:'active';index"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (Transaction) TableName() string { return "transactions" }

// ToLedger converts the record to the pure domain type.
func (t Transaction) ToLedger() ledger.Transaction {
	return ledger.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		WalletID:    t.WalletID,
		Amount:      t.Amount,
		Type:        ledger.TxType(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		Status:      ledger.Status(t.Status),
	}
}

// TransactionFromLedger builds a record from the domain type.
func TransactionFromLedger(t ledger.Transaction) Transaction {
	status := string(t.Status)
	if status == "" {
		status = string(ledger.StatusActive)
	}
	return Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		WalletID:    t.WalletID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		Status:      status,
	}
}
