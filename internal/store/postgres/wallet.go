package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

type walletStore struct {
	db *gorm.DB
}

func (ws *walletStore) Add(ctx context.Context, w *model.Wallet) error {
	if w.Status == "" {
		w.Status = string(ledger.StatusActive)
	}
	return ws.db.WithContext(ctx).Create(w).Error
}

func (ws *walletStore) Get(ctx context.Context, userID, id uint64) (*model.Wallet, error) {
	var w model.Wallet
	err := ws.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, ledger.StatusActive).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (ws *walletStore) List(ctx context.Context, f store.WalletFilter) ([]model.Wallet, error) {
	q := ws.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", f.UserID, ledger.StatusActive)
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}
	var wallets []model.Wallet
	err := q.Order("date, id").Find(&wallets).Error
	return wallets, err
}

func (ws *walletStore) Edit(ctx context.Context, w *model.Wallet) error {
	res := ws.db.WithContext(ctx).
		Model(&model.Wallet{}).
		Where("id = ? AND user_id = ? AND status = ?", w.ID, w.UserID, ledger.StatusActive).
		Updates(map[string]interface{}{
			"name":        w.Name,
			"description": w.Description,
			"currency":    w.Currency,
			"balance":     w.Balance,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (ws *walletStore) Delete(ctx context.Context, userID, id uint64) error {
	res := ws.db.WithContext(ctx).
		Model(&model.Wallet{}).
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
