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

const transactionTable = "transactions"

type transactionRow struct {
	ID          uint64          `json:"id,omitempty"`
	UserID      uint64          `json:"user_id"`
	WalletID    uint64          `json:"wallet_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
}

func (r transactionRow) toModel() model.Transaction {
	return model.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		WalletID:    r.WalletID,
		Amount:      r.Amount,
		Type:        r.Type,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
		Status:      r.Status,
	}
}

type transactionStore struct {
	s *Store
}

func (ts *transactionStore) Add(ctx context.Context, t *model.Transaction) error {
	status := t.Status
	if status == "" {
		status = string(ledger.StatusActive)
	}
	row := transactionRow{
		UserID:      t.UserID,
		WalletID:    t.WalletID,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		Status:      status,
	}
	var created []transactionRow
	if err := ts.s.do(ctx, http.MethodPost, transactionTable, nil, []transactionRow{row}, &created); err != nil {
		return err
	}
	if len(created) == 1 {
		*t = created[0].toModel()
	}
	return nil
}

func (ts *transactionStore) Get(ctx context.Context, userID, id uint64) (*model.Transaction, error) {
	q := url.Values{}
	q.Set("id", eq(id))
	q.Set("user_id", eq(userID))
	q.Set("status", eq(ledger.StatusActive))
	var rows []transactionRow
	if err := ts.s.do(ctx, http.MethodGet, transactionTable, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	t := rows[0].toModel()
	return &t, nil
}

func (ts *transactionStore) List(ctx context.Context, f store.TransactionFilter) ([]model.Transaction, error) {
	q := url.Values{}
	q.Set("user_id", eq(f.UserID))
	q.Set("status", eq(ledger.StatusActive))
	if len(f.WalletIDs) > 0 {
		q.Set("wallet_id", in(f.WalletIDs))
	}
	if f.Type != "" {
		q.Set("type", eq(string(f.Type)))
	}
	// PostgREST ANDs repeated filters on the same column.
	if f.From != nil {
		q.Add("date", "gte."+f.From.Format(time.RFC3339))
	}
	if f.To != nil {
		q.Add("date", "lte."+f.To.Format(time.RFC3339))
	}
	q.Set("order", "date.desc,id.desc")
	var rows []transactionRow
	if err := ts.s.do(ctx, http.MethodGet, transactionTable, q, nil, &rows); err != nil {
		return nil, err
	}
	txs := make([]model.Transaction, len(rows))
	for i, r := range rows {
		txs[i] = r.toModel()
	}
	return txs, nil
}

func (ts *transactionStore) Edit(ctx context.Context, t *model.Transaction) error {
	q := url.Values{}
	q.Set("id", eq(t.ID))
	q.Set("user_id", eq(t.UserID))
	q.Set("status", eq(ledger.StatusActive))
	patch := map[string]interface{}{
		"amount":      t.Amount,
		"type":        t.Type,
		"category":    t.Category,
		"description": t.Description,
		"date":        t.Date,
	}
	var updated []transactionRow
	if err := ts.s.do(ctx, http.MethodPatch, transactionTable, q, patch, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (ts *transactionStore) Delete(ctx context.Context, userID, id uint64) error {
	q := url.Values{}
	q.Set("id", eq(id))
	q.Set("user_id", eq(userID))
	q.Set("status", eq(ledger.StatusActive))
	patch := map[string]interface{}{"status": string(ledger.StatusDeleted)}
	var updated []transactionRow
	if err := ts.s.do(ctx, http.MethodPatch, transactionTable, q, patch, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return store.ErrNotFound
	}
	return nil
}
