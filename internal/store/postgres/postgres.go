// Package postgres is the relational store adapter, gorm over the
// configured postgres DSN. Soft delete is an update of the status column;
// every list query filters status = active.
package postgres

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

// Store implements store.Store on a gorm handle.
type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// New opens the database and migrates the schema.
func New(dsn string, log *zap.SugaredLogger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{PrepareStmt: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// NewWithDB wraps an existing gorm handle, used by tests with the sqlite
// driver.
func NewWithDB(db *gorm.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: log}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Wallet{},
		&model.Transaction{},
		&model.OutboxEvent{},
	)
}

func (s *Store) Users() store.UserStore               { return &userStore{db: s.db} }
func (s *Store) Wallets() store.WalletStore           { return &walletStore{db: s.db} }
func (s *Store) Transactions() store.TransactionStore { return &transactionStore{db: s.db} }
func (s *Store) Outbox() store.OutboxStore            { return &outboxStore{db: s.db} }

// DB exposes the underlying handle for transactional service flows and
// tests.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
