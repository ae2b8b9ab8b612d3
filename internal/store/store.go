// Package store defines the persistence contract the services depend on:
// add/list/edit/delete per entity, soft-delete aware. Two adapters
// implement it, a relational one over gorm/postgres and a hosted one over
// the Supabase PostgREST API; which one runs is a startup decision, the
// services never branch on it.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
)

// ErrNotFound is returned when a record does not exist, is soft-deleted,
// or belongs to another user. Callers cannot distinguish those cases.
var ErrNotFound = errors.New("record not found")

// WalletFilter scopes wallet listings. UserID is mandatory; IDs narrows
// to a subset of the user's wallets.
type WalletFilter struct {
	UserID uint64
	IDs    []uint64
}

// TransactionFilter scopes transaction listings. All optional dimensions
// are AND-combined; an absent dimension means no restriction. From and
// To are inclusive bounds on the effective date.
type TransactionFilter struct {
	UserID    uint64
	WalletIDs []uint64
	Type      ledger.TxType
	From      *time.Time
	To        *time.Time
}

// UserStore persists accounts.
type UserStore interface {
	Add(ctx context.Context, u *model.User) error
	// FindByNameOrEmail matches either column, active users only.
	FindByNameOrEmail(ctx context.Context, name, email string) (*model.User, error)
	Get(ctx context.Context, id uint64) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint64, hash string) error
}

// WalletStore persists wallets. List returns active records only.
type WalletStore interface {
	Add(ctx context.Context, w *model.Wallet) error
	Get(ctx context.Context, userID, id uint64) (*model.Wallet, error)
	List(ctx context.Context, f WalletFilter) ([]model.Wallet, error)
	Edit(ctx context.Context, w *model.Wallet) error
	Delete(ctx context.Context, userID, id uint64) error
}

// TransactionStore persists transactions. List returns active records
// only, newest effective date first.
type TransactionStore interface {
	Add(ctx context.Context, t *model.Transaction) error
	Get(ctx context.Context, userID, id uint64) (*model.Transaction, error)
	List(ctx context.Context, f TransactionFilter) ([]model.Transaction, error)
	Edit(ctx context.Context, t *model.Transaction) error
	Delete(ctx context.Context, userID, id uint64) error
}

// OutboxStore stages and drains ledger events.
type OutboxStore interface {
	Add(ctx context.Context, evt *model.OutboxEvent) error
	Poll(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uint64) error
}

// Store bundles the per-entity capabilities behind one handle.
type Store interface {
	Users() UserStore
	Wallets() WalletStore
	Transactions() TransactionStore
	Outbox() OutboxStore
	Close() error
}
