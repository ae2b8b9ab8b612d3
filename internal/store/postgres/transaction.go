package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

type transactionStore struct {
	db *gorm.DB
}

func (ts *transactionStore) Add(ctx context.Context, t *model.Transaction) error {
	if t.Status == "" {
		t.Status = string(ledger.StatusActive)
	}
	return ts.db.WithContext(ctx).Create(t).Error
}

func (ts *transactionStore) Get(ctx context.Context, userID, id uint64) (*model.Transaction, error) {
	var t model.Transaction
	err := ts.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, ledger.StatusActive).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (ts *transactionStore) List(ctx context.Context, f store.TransactionFilter) ([]model.Transaction, error) {
	q := ts.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", f.UserID, ledger.StatusActive)
	if len(f.WalletIDs) > 0 {
		q = q.Where("wallet_id IN ?", f.WalletIDs)
	}
	if f.Type != "" {
		q = q.Where("type = ?", string(f.Type))
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	var txs []model.Transaction
	err := q.Order("date desc, id desc").Find(&txs).Error
	return txs, err
}

// Edit updates the mutable columns only; wallet and owner never change.
func (ts *transactionStore) Edit(ctx context.Context, t *model.Transaction) error {
	res := ts.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND user_id = ? AND status = ?", t.ID, t.UserID, ledger.StatusActive).
		Updates(map[string]interface{}{
			"amount":      t.Amount,
			"type":        t.Type,
			"category":    t.Category,
			"description": t.Description,
			"date":        t.Date,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (ts *transactionStore) Delete(ctx context.Context, userID, id uint64) error {
	res := ts.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, ledger.StatusActive).
		Update("status", string(ledger.StatusDeleted))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
