package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

const walletTable = "wallets"

type walletRow struct {
	ID          uint64          `json:"id,omitempty"`
	UserID      uint64          `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
}

func (r walletRow) toModel() model.Wallet {
	return model.Wallet{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		Currency:    r.Currency,
		Balance:     r.Balance,
		Date:        r.Date,
		Status:      r.Status,
	}
}

func walletToRow(w *model.Wallet) walletRow {
	status := w.Status
	if status == "" {
		status = string(ledger.StatusActive)
	}
	return walletRow{
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

type walletStore struct {
	s *Store
}

func (ws *walletStore) Add(ctx context.Context, w *model.Wallet) error {
	row := walletToRow(w)
	row.ID = 0
	var created []walletRow
	if err := ws.s.do(ctx, http.MethodPost, walletTable, nil, []walletRow{row}, &created); err != nil {
		return err
	}
	if len(created) == 1 {
		*w = created[0].toModel()
	}
	return nil
}

func (ws *walletStore) Get(ctx context.Context, userID, id uint64) (*model.Wallet, error) {
	q := url.Values{}
	q.Set("id", eq(id))
	q.Set("user_id", eq(userID))
	q.Set("status", eq(ledger.StatusActive))
	var rows []walletRow
	if err := ws.s.do(ctx, http.MethodGet, walletTable, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	w := rows[0].toModel()
	return &w, nil
}

func (ws *walletStore) List(ctx context.Context, f store.WalletFilter) ([]model.Wallet, error) {
	q := url.Values{}
	q.Set("user_id", eq(f.UserID))
	q.Set("status", eq(ledger.StatusActive))
	if len(f.IDs) > 0 {
		q.Set("id", in(f.IDs))
	}
	q.Set("order", "date.asc,id.asc")
	var rows []walletRow
	if err := ws.s.do(ctx, http.MethodGet, walletTable, q, nil, &rows); err != nil {
		return nil, err
	}
	wallets := make([]model.Wallet, len(rows))
	for i, r := range rows {
		wallets[i] = r.toModel()
	}
	return wallets, nil
}

func (ws *walletStore) Edit(ctx context.Context, w *model.Wallet) error {
	q := url.Values{}
	q.Set("id", eq(w.ID))
	q.Set("user_id", eq(w.UserID))
	q.Set("status", eq(ledger.StatusActive))
	patch := map[string]interface{}{
		"name":        w.Name,
		"description": w.Description,
		"currency":    w.Currency,
		"balance":     w.Balance,
	}
	var updated []walletRow
	if err := ws.s.do(ctx, http.MethodPatch, walletTable, q, patch, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (ws *walletStore) Delete(ctx context.Context, userID, id uint64) error {
	q := url.Values{}
	q.Set("id", eq(id))
	q.Set("user_id", eq(userID))
	q.Set("status", eq(ledger.StatusActive))
	patch := map[string]interface{}{"status": string(ledger.StatusDeleted)}
	var updated []walletRow
	if err := ws.s.do(ctx, http.MethodPatch, walletTable, q, patch, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return store.ErrNotFound
	}
	return nil
}
