package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/rates"
)

const recentLimit = 10

// DashboardService assembles the overview screen: per-wallet resolved
// balances, the per-currency net-worth breakdown and the most recent
// transactions. The converted grand total is best-effort display data
// from the rate service and is omitted when the lookup fails.
type DashboardService struct {
	wallets      *WalletService
	transactions *TransactionService
	rates        *rates.Client
	log          *zap.SugaredLogger
}

func NewDashboardService(w *WalletService, t *TransactionService, r *rates.Client, log *zap.SugaredLogger) *DashboardService {
	return &DashboardService{wallets: w, transactions: t, rates: r, log: log}
}

// Summary is the dashboard payload.
type Summary struct {
	Wallets    []WalletView
	ByCurrency map[string]decimal.Decimal
	Recent     []model.Transaction
	Converted  *ConvertedTotal
}

// ConvertedTotal is the optional single-currency view of the per-currency
// totals. Display only; the per-currency breakdown stays authoritative.
type ConvertedTotal struct {
	Currency string
	Total    decimal.Decimal
}

// Overview builds the dashboard for one user. displayCurrency selects
// the target of the optional converted total; empty skips conversion.
func (s *DashboardService) Overview(ctx context.Context, userID uint64, displayCurrency string) (*Summary, error) {
	views, err := s.wallets.List(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	resolved := make([]ledger.ResolvedWallet, len(views))
	for i, v := range views {
		resolved[i] = ledger.ResolvedWallet{Wallet: v.Wallet.ToLedger(), Balance: v.Balance}
	}
	byCurrency, err := ledger.AggregateByCurrency(resolved)
	if err != nil {
		return nil, fmt.Errorf("aggregate currencies: %w", err)
	}

	recent, err := s.transactions.List(ctx, userID, ListFilter{})
	if err != nil {
		return nil, err
	}
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	summary := &Summary{
		Wallets:    views,
		ByCurrency: byCurrency,
		Recent:     recent,
	}
	if displayCurrency != "" {
		summary.Converted = s.convertTotals(ctx, byCurrency, ledger.NormalizeCurrency(displayCurrency))
	}
	return summary, nil
}

// convertTotals folds the per-currency totals into one display currency.
// Any rate failure drops the whole converted figure rather than showing
// a partial sum.
func (s *DashboardService) convertTotals(ctx context.Context, totals map[string]decimal.Decimal, target string) *ConvertedTotal {
	grand := decimal.Zero
	for code, amount := range totals {
		if amount.IsZero() {
			continue
		}
		converted, err := s.rates.Convert(ctx, amount, code, target)
		if err != nil {
			s.log.Warnw("convert total", "from", code, "to", target, "error", err)
			return nil
		}
		grand = grand.Add(converted)
	}
	return &ConvertedTotal{Currency: target, Total: grand}
}
