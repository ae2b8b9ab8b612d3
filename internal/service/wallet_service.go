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

const balanceCacheTTL = 5 * time.Minute

// WalletService glues wallet business rules to the store. Stored opening
// balances are never mutated by transactions; the resolved balance is
// recomputed from the transaction log and cached in redis.
type WalletService struct {
	store store.Store
	rdb   *redis.Client
	log   *zap.SugaredLogger
}

func NewWalletService(st store.Store, rdb *redis.Client, log *zap.SugaredLogger) *WalletService {
	return &WalletService{store: st, rdb: rdb, log: log}
}

// WalletView is a wallet with its resolved position attached, what the
// listing and dashboard endpoints return.
type WalletView struct {
	Wallet       model.Wallet
	Balance      decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// Create validates and stores a new wallet.
func (s *WalletService) Create(ctx context.Context, in ledger.WalletInput) (*model.Wallet, error) {
	if err := ledger.ValidateWallet(in); err != nil {
		return nil, err
	}
	w := &model.Wallet{
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Currency:    in.Currency,
		Balance:     in.Balance,
		Date:        in.Date,
		Status:      string(ledger.StatusActive),
	}
	if err := s.store.Wallets().Add(ctx, w); err != nil {
		return nil, fmt.Errorf("add wallet: %w", err)
	}
	emitEvent(ctx, s.store, s.log, "Wallet", w.ID, w.UserID, model.EventWalletCreated, map[string]interface{}{
		"wallet_id": w.ID, "user_id": w.UserID, "currency": w.Currency, "balance": w.Balance,
	})
	return w, nil
}

// List returns the user's active wallets with resolved balances,
// optionally narrowed to a set of ids.
func (s *WalletService) List(ctx context.Context, userID uint64, ids []uint64) ([]WalletView, error) {
	wallets, err := s.store.Wallets().List(ctx, store.WalletFilter{UserID: userID, IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	if len(wallets) == 0 {
		return []WalletView{}, nil
	}

	walletIDs := make([]uint64, len(wallets))
	for i, w := range wallets {
		walletIDs[i] = w.ID
	}
	txs, err := s.store.Transactions().List(ctx, store.TransactionFilter{UserID: userID, WalletIDs: walletIDs})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	domainTxs := make([]ledger.Transaction, len(txs))
	for i, t := range txs {
		domainTxs[i] = t.ToLedger()
	}

	views := make([]WalletView, len(wallets))
	for i, w := range wallets {
		bd, err := ledger.ResolveBreakdown(w.ToLedger(), domainTxs)
		if err != nil {
			return nil, fmt.Errorf("resolve wallet %d: %w", w.ID, err)
		}
		views[i] = WalletView{
			Wallet:       w,
			Balance:      bd.Balance,
			TotalIncome:  bd.TotalIncome,
			TotalExpense: bd.TotalExpense,
		}
		s.cacheBalance(ctx, w.ID, bd.Balance)
	}
	return views, nil
}

// Option is an id/name pair for client-side pickers.
type Option struct {
	ID   uint64
	Name string
}

// Options lists the user's active wallets as picker options.
func (s *WalletService) Options(ctx context.Context, userID uint64) ([]Option, error) {
	wallets, err := s.store.Wallets().List(ctx, store.WalletFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	opts := make([]Option, len(wallets))
	for i, w := range wallets {
		opts[i] = Option{ID: w.ID, Name: w.Name}
	}
	return opts, nil
}

// EditInput carries the mutable wallet fields.
type EditInput struct {
	Name        string
	Description string
	Currency    string
	Balance     decimal.Decimal
}

// Edit updates an owned active wallet. Currency edits re-bucket the
// wallet on the next aggregation; its transactions keep denominating in
// the wallet's currency.
func (s *WalletService) Edit(ctx context.Context, userID, id uint64, in EditInput) (*model.Wallet, error) {
	if in.Name == "" {
		return nil, &ledger.ValidationError{Field: "Name"}
	}
	if in.Currency == "" {
		return nil, &ledger.ValidationError{Field: "Currency"}
	}
	w, err := s.store.Wallets().Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	w.Name = in.Name
	w.Description = in.Description
	w.Currency = in.Currency
	w.Balance = in.Balance
	if err := s.store.Wallets().Edit(ctx, w); err != nil {
		return nil, fmt.Errorf("edit wallet: %w", err)
	}
	s.invalidateBalance(ctx, id)
	emitEvent(ctx, s.store, s.log, "Wallet", id, userID, model.EventWalletUpdated, map[string]interface{}{
		"wallet_id": id, "user_id": userID, "currency": w.Currency,
	})
	return w, nil
}

// Delete soft-deletes a wallet. Its transactions stay stored but the
// wallet leaves every listing and aggregate.
func (s *WalletService) Delete(ctx context.Context, userID, id uint64) error {
	if err := s.store.Wallets().Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateBalance(ctx, id)
	emitEvent(ctx, s.store, s.log, "Wallet", id, userID, model.EventWalletDeleted, map[string]interface{}{
		"wallet_id": id, "user_id": userID,
	})
	return nil
}

func (s *WalletService) cacheBalance(ctx context.Context, walletID uint64, bal decimal.Decimal) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, balanceKey(walletID), bal.String(), balanceCacheTTL).Err(); err != nil {
		s.log.Warnw("cache balance", "wallet_id", walletID, "error", err)
	}
}

func (s *WalletService) invalidateBalance(ctx context.Context, walletID uint64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, balanceKey(walletID)).Err(); err != nil {
		s.log.Warnw("invalidate balance", "wallet_id", walletID, "error", err)
	}
}

// CachedBalance returns the cached resolved balance when fresh, falling
// back to a full resolve. The cache key is not user-scoped, so ownership
// is checked against the store before any cached value is trusted.
func (s *WalletService) CachedBalance(ctx context.Context, userID, walletID uint64) (decimal.Decimal, error) {
	if _, err := s.store.Wallets().Get(ctx, userID, walletID); err != nil {
		return decimal.Zero, err
	}
	if s.rdb != nil {
		if str, err := s.rdb.Get(ctx, balanceKey(walletID)).Result(); err == nil {
			if bal, err := decimal.NewFromString(str); err == nil {
				return bal, nil
			}
		}
	}
	views, err := s.List(ctx, userID, []uint64{walletID})
	if err != nil {
		return decimal.Zero, err
	}
	if len(views) == 0 {
		return decimal.Zero, store.ErrNotFound
	}
	return views[0].Balance, nil
}

func balanceKey(walletID uint64) string {
	return fmt.Sprintf("balance:%d", walletID)
}
