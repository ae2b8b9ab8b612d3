package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/logger"
)

func newDashboardService(t *testing.T) (*DashboardService, *WalletService, *TransactionService, context.Context) {
	ws, ts, _, ctx := newWalletService(t)
	log, err := logger.NewLogger()
	require.NoError(t, err)
	return NewDashboardService(ws, ts, nil, log), ws, ts, ctx
}

func TestDashboard_EmptyUser(t *testing.T) {
	ds, _, _, ctx := newDashboardService(t)

	s, err := ds.Overview(ctx, 1, "")
	require.NoError(t, err)
	assert.Empty(t, s.Wallets)
	assert.Empty(t, s.Recent)
	assert.Nil(t, s.Converted)

	// fixed zero buckets even with no wallets
	assert.Len(t, s.ByCurrency, 5)
	for _, code := range ledger.SupportedCurrencies {
		assert.True(t, s.ByCurrency[code].IsZero())
	}
}

func TestDashboard_PerCurrencyTotals(t *testing.T) {
	ds, ws, ts, ctx := newDashboardService(t)

	a, err := ws.Create(ctx, walletInput(1, "Cash", "PHP", 1000))
	require.NoError(t, err)
	_, err = ws.Create(ctx, walletInput(1, "Bank", "USD", 200))
	require.NoError(t, err)

	_, err = ts.Create(ctx, txInput(1, a.ID, ledger.TypeIncome, 500))
	require.NoError(t, err)
	_, err = ts.Create(ctx, txInput(1, a.ID, ledger.TypeExpense, 200))
	require.NoError(t, err)

	s, err := ds.Overview(ctx, 1, "")
	require.NoError(t, err)

	assert.True(t, s.ByCurrency["PHP"].Equal(decimal.NewFromInt(1300)))
	assert.True(t, s.ByCurrency["USD"].Equal(decimal.NewFromInt(200)))
	assert.True(t, s.ByCurrency["EUR"].IsZero())
	assert.Len(t, s.Recent, 2)
}

func TestDashboard_ScopedToUser(t *testing.T) {
	ds, ws, _, ctx := newDashboardService(t)

	_, err := ws.Create(ctx, walletInput(1, "Mine", "PHP", 100))
	require.NoError(t, err)
	_, err = ws.Create(ctx, walletInput(2, "Theirs", "PHP", 900))
	require.NoError(t, err)

	s, err := ds.Overview(ctx, 1, "")
	require.NoError(t, err)
	assert.True(t, s.ByCurrency["PHP"].Equal(decimal.NewFromInt(100)))
}
