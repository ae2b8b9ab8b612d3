package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

// TransactionService records and maintains the transaction log. Every
// write invalidates the affected wallet's cached balance; stored opening
// balances are never touched.
type TransactionService struct {
	store store.Store
	rdb   *redis.Client
	log   *zap.SugaredLogger
}

func NewTransactionService(st store.Store, rdb *redis.Client, log *zap.SugaredLogger) *TransactionService {
	return &TransactionService{store: st, rdb: rdb, log: log}
}

// Create validates and records a transaction against an existing active
// wallet the user owns.
func (s *TransactionService) Create(ctx context.Context, in ledger.TransactionInput) (*model.Transaction, error) {
	if err := ledger.ValidateTransaction(in); err != nil {
		return nil, err
	}
	// wallet must exist, be active and be the caller's
	if _, err := s.store.Wallets().Get(ctx, in.UserID, in.WalletID); err != nil {
		return nil, err
	}
	t := &model.Transaction{
		UserID:      in.UserID,
		WalletID:    in.WalletID,
		Amount:      in.Amount,
		Type:        string(in.Type),
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		Status:      string(ledger.StatusActive),
	}
	if err := s.store.Transactions().Add(ctx, t); err != nil {
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	s.invalidateBalance(ctx, in.WalletID)
	emitEvent(ctx, s.store, s.log, "Transaction", t.ID, t.UserID, model.EventTransactionCreated, map[string]interface{}{
		"transaction_id": t.ID, "wallet_id": t.WalletID, "user_id": t.UserID,
		"type": t.Type, "amount": t.Amount,
	})
	return t, nil
}

// ListFilter narrows a transaction listing; zero values mean no
// restriction on that dimension, and set dimensions AND together.
type ListFilter struct {
	WalletIDs []uint64
	Type      ledger.TxType
	From      *time.Time
	To        *time.Time
}

// List returns the user's active transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID uint64, f ListFilter) ([]model.Transaction, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, &ledger.ValidationError{Field: "Type", Reason: "must be Income or Expense"}
	}
	txs, err := s.store.Transactions().List(ctx, store.TransactionFilter{
		UserID:    userID,
		WalletIDs: f.WalletIDs,
		Type:      f.Type,
		From:      f.From,
		To:        f.To,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// EditTransactionInput carries the mutable transaction fields. Wallet
// and owner are fixed at creation.
type EditTransactionInput struct {
	Amount      decimal.Decimal
	Type        ledger.TxType
	Category    string
	Description string
	Date        time.Time
}

// Edit updates an owned active transaction.
func (s *TransactionService) Edit(ctx context.Context, userID, id uint64, in EditTransactionInput) (*model.Transaction, error) {
	t, err := s.store.Transactions().Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateTransaction(ledger.TransactionInput{
		UserID:      userID,
		WalletID:    t.WalletID,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
	}); err != nil {
		return nil, err
	}
	t.Amount = in.Amount
	t.Type = string(in.Type)
	t.Category = in.Category
	t.Description = in.Description
	t.Date = in.Date
	if err := s.store.Transactions().Edit(ctx, t); err != nil {
		return nil, fmt.Errorf("edit transaction: %w", err)
	}
	s.invalidateBalance(ctx, t.WalletID)
	emitEvent(ctx, s.store, s.log, "Transaction", t.ID, userID, model.EventTransactionUpdated, map[string]interface{}{
		"transaction_id": t.ID, "wallet_id": t.WalletID, "user_id": userID,
		"type": t.Type, "amount": t.Amount,
	})
	return t, nil
}

// Delete soft-deletes a transaction, removing its contribution from the
// wallet's resolved balance.
func (s *TransactionService) Delete(ctx context.Context, userID, id uint64) error {
	t, err := s.store.Transactions().Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.Transactions().Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateBalance(ctx, t.WalletID)
	emitEvent(ctx, s.store, s.log, "Transaction", id, userID, model.EventTransactionDeleted, map[string]interface{}{
		"transaction_id": id, "wallet_id": t.WalletID, "user_id": userID,
	})
	return nil
}

// CategoryOptions returns the recommended category labels for a type,
// or both sets when the type is empty.
func (s *TransactionService) CategoryOptions(typ ledger.TxType) ([]string, error) {
	switch typ {
	case ledger.TypeIncome:
		return ledger.IncomeCategories, nil
	case ledger.TypeExpense:
		return ledger.ExpenseCategories, nil
	case "":
		both := make([]string, 0, len(ledger.IncomeCategories)+len(ledger.ExpenseCategories))
		both = append(both, ledger.IncomeCategories...)
		both = append(both, ledger.ExpenseCategories...)
		return both, nil
	default:
		return nil, &ledger.ValidationError{Field: "Type", Reason: "must be Income or Expense"}
	}
}

func (s *TransactionService) invalidateBalance(ctx context.Context, walletID uint64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, balanceKey(walletID)).Err(); err != nil {
		s.log.Warnw("invalidate balance", "wallet_id", walletID, "error", err)
	}
}
