package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletInput is the plain-data shape a wallet must satisfy before it
// reaches persistence.
type WalletInput struct {
	UserID      uint64
	Name        string
	Description string
	Currency    string
	Balance     decimal.Decimal
	Date        time.Time
}

// TransactionInput is the plain-data shape a transaction must satisfy
// before it reaches persistence.
type TransactionInput struct {
	UserID      uint64
	WalletID    uint64
	Amount      decimal.Decimal
	Type        TxType
	Category    string
	Description string
	Date        time.Time
}

// ValidateWallet checks presence of the required wallet fields. A zero
// opening balance is valid; a zero Date is not.
func ValidateWallet(in WalletInput) error {
	switch {
	case in.UserID == 0:
		return &ValidationError{Field: "User_Id"}
	case in.Name == "":
		return &ValidationError{Field: "Name"}
	case in.Currency == "":
		return &ValidationError{Field: "Currency"}
	case in.Date.IsZero():
		return &ValidationError{Field: "Date"}
	}
	return nil
}

// ValidateTransaction checks presence of the required transaction fields
// and that Amount is a positive number. Sign convention is carried by
// Type, never by the amount itself.
func ValidateTransaction(in TransactionInput) error {
	switch {
	case in.UserID == 0:
		return &ValidationError{Field: "User_Id"}
	case in.WalletID == 0:
		return &ValidationError{Field: "Wallet_Id"}
	case !in.Type.Valid():
		return &ValidationError{Field: "Type", Reason: "must be Income or Expense"}
	case in.Category == "":
		return &ValidationError{Field: "Category"}
	case in.Date.IsZero():
		return &ValidationError{Field: "Date"}
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "Amount", Reason: "must be positive"}
	}
	return nil
}
