// Package ledger holds the pure wallet/transaction arithmetic: input
// validation, balance resolution and per-currency aggregation. It performs
// no I/O and keeps no state; every function works only on its arguments.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a wallet or transaction. Records move
// Active -> Deleted exactly once; deleted records stay stored but are
// excluded from every listing and computation.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// TxType is the closed enumeration of transaction types.
type TxType string

const (
	TypeIncome  TxType = "Income"
	TypeExpense TxType = "Expense"
)

// Valid reports whether t is a member of the enumeration.
func (t TxType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Wallet is a named, currency-denominated account with a fixed opening
// balance. Currency never changes after creation and transactions are
// assumed denominated in it.
type Wallet struct {
	ID          uint64
	UserID      uint64
	Name        string
	Description string
	Currency    string
	Balance     decimal.Decimal // opening balance, never mutated by transactions
	Date        time.Time
	Status      Status
}

// Transaction is one dated income or expense record against a wallet.
// Amount is stored non-negative; the sign of its contribution comes from
// Type.
type Transaction struct {
	ID          uint64
	UserID      uint64
	WalletID    uint64
	Amount      decimal.Decimal
	Type        TxType
	Category    string
	Description string
	Date        time.Time
	Status      Status
}

// Signed returns the transaction's contribution to its wallet's balance:
// +Amount for income, -Amount for expense.
func (t Transaction) Signed() (decimal.Decimal, error) {
	switch t.Type {
	case TypeIncome:
		return t.Amount, nil
	case TypeExpense:
		return t.Amount.Neg(), nil
	default:
		return decimal.Zero, &UnknownTypeError{TransactionID: t.ID, Type: string(t.Type)}
	}
}

// Recommended category labels per type. Advisory only, persistence does
// not enforce membership.
var (
	IncomeCategories = []string{
		"Salary", "Allowance", "Business", "Freelance",
		"Bonus", "Gift", "Investment", "Others",
	}
	ExpenseCategories = []string{
		"Food", "Bills", "Rent", "Transportation", "Entertainment",
		"Shopping", "School", "Health", "Internet", "Utilities", "Others",
	}
)

// ValidationError reports a missing or malformed field on wallet or
// transaction input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing required field %s", e.Field)
}

// UnknownTypeError reports a transaction whose Type is outside the
// {Income, Expense} enumeration. It fails the whole balance computation
// rather than being coerced to zero.
type UnknownTypeError struct {
	TransactionID uint64
	Type          string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("transaction %d has unknown type %q", e.TransactionID, e.Type)
}

// AggregationInputError reports a wallet that reached the aggregator
// without a currency code, a data-integrity defect rather than an empty
// bucket.
type AggregationInputError struct {
	WalletID uint64
}

func (e *AggregationInputError) Error() string {
	return fmt.Sprintf("wallet %d has no currency code", e.WalletID)
}
