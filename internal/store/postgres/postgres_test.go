package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/logger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

func newTestStore(t *testing.T) *Store {
	// named shared-cache in-memory DB: every pooled connection sees the
	// same database, each test gets its own
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	log, err := logger.NewLogger()
	require.NoError(t, err)
	return NewWithDB(db, log)
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func seedWallet(t *testing.T, st *Store, userID uint64, name, currency string, balance int64) *model.Wallet {
	w := &model.Wallet{
		UserID:   userID,
		Name:     name,
		Currency: currency,
		Balance:  decimal.NewFromInt(balance),
		Date:     day(1),
	}
	require.NoError(t, st.Wallets().Add(context.Background(), w))
	return w
}

func seedTx(t *testing.T, st *Store, userID, walletID uint64, typ ledger.TxType, amount int64, date time.Time) *model.Transaction {
	tx := &model.Transaction{
		UserID:   userID,
		WalletID: walletID,
		Amount:   decimal.NewFromInt(amount),
		Type:     string(typ),
		Category: "Others",
		Date:     date,
	}
	require.NoError(t, st.Transactions().Add(context.Background(), tx))
	return tx
}

func TestWalletStore_SoftDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	w := seedWallet(t, st, 1, "Cash", "PHP", 100)
	require.NoError(t, st.Wallets().Delete(ctx, 1, w.ID))

	// excluded from listings and gets
	wallets, err := st.Wallets().List(ctx, store.WalletFilter{UserID: 1})
	assert.NoError(t, err)
	assert.Empty(t, wallets)

	_, err = st.Wallets().Get(ctx, 1, w.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// row is retained, only marked
	var raw model.Wallet
	require.NoError(t, st.DB().First(&raw, w.ID).Error)
	assert.Equal(t, string(ledger.StatusDeleted), raw.Status)

	// deleting twice is a not-found
	assert.ErrorIs(t, st.Wallets().Delete(ctx, 1, w.ID), store.ErrNotFound)
}

func TestWalletStore_OwnershipScoping(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	mine := seedWallet(t, st, 1, "Mine", "PHP", 100)
	seedWallet(t, st, 2, "Theirs", "USD", 200)

	wallets, err := st.Wallets().List(ctx, store.WalletFilter{UserID: 1})
	assert.NoError(t, err)
	assert.Len(t, wallets, 1)
	assert.Equal(t, mine.ID, wallets[0].ID)

	// cannot reach another user's wallet by id
	_, err = st.Wallets().Get(ctx, 1, wallets[0].ID)
	assert.NoError(t, err)
	_, err = st.Wallets().Get(ctx, 2, mine.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWalletStore_ListByIDs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := seedWallet(t, st, 1, "A", "PHP", 1)
	seedWallet(t, st, 1, "B", "PHP", 2)
	c := seedWallet(t, st, 1, "C", "USD", 3)

	wallets, err := st.Wallets().List(ctx, store.WalletFilter{UserID: 1, IDs: []uint64{a.ID, c.ID}})
	assert.NoError(t, err)
	assert.Len(t, wallets, 2)
}

func TestTransactionStore_Filters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	w1 := seedWallet(t, st, 1, "Cash", "PHP", 0)
	w2 := seedWallet(t, st, 1, "Bank", "PHP", 0)

	seedTx(t, st, 1, w1.ID, ledger.TypeIncome, 500, day(5))
	seedTx(t, st, 1, w1.ID, ledger.TypeExpense, 200, day(10))
	seedTx(t, st, 1, w2.ID, ledger.TypeIncome, 50, day(15))

	// no filter: everything, newest first
	txs, err := st.Transactions().List(ctx, store.TransactionFilter{UserID: 1})
	assert.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, day(15), txs[0].Date.UTC())

	// wallet filter
	txs, err = st.Transactions().List(ctx, store.TransactionFilter{UserID: 1, WalletIDs: []uint64{w1.ID}})
	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	// type filter
	txs, err = st.Transactions().List(ctx, store.TransactionFilter{UserID: 1, Type: ledger.TypeIncome})
	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	// inclusive date range, AND-combined with type
	from, to := day(5), day(10)
	txs, err = st.Transactions().List(ctx, store.TransactionFilter{
		UserID: 1, Type: ledger.TypeIncome, From: &from, To: &to,
	})
	assert.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, day(5), txs[0].Date.UTC())
}

func TestTransactionStore_SoftDeleteExcluded(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	w := seedWallet(t, st, 1, "Cash", "PHP", 0)
	tx := seedTx(t, st, 1, w.ID, ledger.TypeExpense, 100, day(2))

	require.NoError(t, st.Transactions().Delete(ctx, 1, tx.ID))

	txs, err := st.Transactions().List(ctx, store.TransactionFilter{UserID: 1})
	assert.NoError(t, err)
	assert.Empty(t, txs)

	var raw model.Transaction
	require.NoError(t, st.DB().First(&raw, tx.ID).Error)
	assert.Equal(t, string(ledger.StatusDeleted), raw.Status)
}

func TestTransactionStore_EditKeepsWalletAndOwner(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	w := seedWallet(t, st, 1, "Cash", "PHP", 0)
	tx := seedTx(t, st, 1, w.ID, ledger.TypeExpense, 200, day(2))

	tx.Amount = decimal.NewFromInt(500)
	tx.Category = "Bills"
	require.NoError(t, st.Transactions().Edit(ctx, tx))

	got, err := st.Transactions().Get(ctx, 1, tx.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Bills", got.Category)
	assert.Equal(t, w.ID, got.WalletID)
	assert.Equal(t, uint64(1), got.UserID)
}

func TestUserStore(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := &model.User{UserName: "roden", Email: "roden@example.com", PasswordHash: "x"}
	require.NoError(t, st.Users().Add(ctx, u))

	byName, err := st.Users().FindByNameOrEmail(ctx, "roden", "roden")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := st.Users().FindByNameOrEmail(ctx, "roden@example.com", "roden@example.com")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = st.Users().FindByNameOrEmail(ctx, "nobody", "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Users().UpdatePassword(ctx, u.ID, "y"))
	got, err := st.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "y", got.PasswordHash)
}

func TestOutboxStore_PollAndMark(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		evt := &model.OutboxEvent{
			Aggregate: "Wallet", AggregateID: uint64(i + 1), UserID: 1,
			EventType: model.EventWalletCreated, Payload: "{}",
		}
		require.NoError(t, st.Outbox().Add(ctx, evt))
	}

	evts, err := st.Outbox().Poll(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, evts, 3)

	require.NoError(t, st.Outbox().MarkProcessed(ctx, evts[0].ID))
	evts, err = st.Outbox().Poll(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, evts, 2)
}
