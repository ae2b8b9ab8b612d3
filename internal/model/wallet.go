package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/roden1999/money-tracking-app/internal/ledger"
)

// Wallet is the stored form of a ledger wallet. Balance is the opening
// balance only; displayed balances are recomputed from the transaction
// log.
type Wallet struct {
	ID          uint64          `gorm:"primaryKey"`
	UserID      uint64          `gorm:"not null;index"`
	Name        string          `gorm:"size:64;not null"`
	Description string          `gorm:"size:255"`
	Currency    string          `gorm:"size:8;not null"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,8);not null;default:'0'"`
	Date        time.Time       `gorm:"not null"`
	Status      string          `gorm:"size:16;not null;default:'active';index"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (Wallet) TableName() string { return "wallets" }

// ToLedger converts the record to the pure domain type.
func (w Wallet) ToLedger() ledger.Wallet {
	return ledger.Wallet{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        w.Name,
		Description: w.Description,
		Currency:    w.Currency,
		Balance:     w.Balance,
		Date:        w.Date,
		Status:      ledger.Status(w.Status),
	}
}

// WalletFromLedger builds a record from the domain type.
func WalletFromLedger(w ledger.Wallet) Wallet {
	status := string(w.Status)
	if status == "" {
		status = string(ledger.StatusActive)
	}
	return Wallet{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        w.Name,
		Description: w.Description,
		Currency:    w.Currency,
		Balance:     w.Balance,
		Date:        w.Date,
		Status:      status,
	}
}
