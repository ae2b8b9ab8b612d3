package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validWalletInput() WalletInput {
	return WalletInput{
		UserID:   7,
		Name:     "Savings",
		Currency: "PHP",
		Balance:  decimal.NewFromInt(1000),
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func validTxInput() TransactionInput {
	return TransactionInput{
		UserID:   7,
		WalletID: 1,
		Amount:   decimal.NewFromInt(500),
		Type:     TypeIncome,
		Category: "Salary",
		Date:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateWallet(t *testing.T) {
	assert.NoError(t, ValidateWallet(validWalletInput()))

	cases := []struct {
		field  string
		mutate func(*WalletInput)
	}{
		{"User_Id", func(in *WalletInput) { in.UserID = 0 }},
		{"Name", func(in *WalletInput) { in.Name = "" }},
		{"Currency", func(in *WalletInput) { in.Currency = "" }},
		{"Date", func(in *WalletInput) { in.Date = time.Time{} }},
	}
	for _, c := range cases {
		in := validWalletInput()
		c.mutate(&in)
		err := ValidateWallet(in)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, c.field)
		assert.Equal(t, c.field, ve.Field)
	}
}

func TestValidateWallet_ZeroBalanceAllowed(t *testing.T) {
	in := validWalletInput()
	in.Balance = decimal.Zero
	assert.NoError(t, ValidateWallet(in))
}

func TestValidateTransaction(t *testing.T) {
	assert.NoError(t, ValidateTransaction(validTxInput()))

	cases := []struct {
		field  string
		mutate func(*TransactionInput)
	}{
		{"User_Id", func(in *TransactionInput) { in.UserID = 0 }},
		{"Wallet_Id", func(in *TransactionInput) { in.WalletID = 0 }},
		{"Type", func(in *TransactionInput) { in.Type = "transfer" }},
		{"Category", func(in *TransactionInput) { in.Category = "" }},
		{"Date", func(in *TransactionInput) { in.Date = time.Time{} }},
		{"Amount", func(in *TransactionInput) { in.Amount = decimal.NewFromInt(-5) }},
		{"Amount", func(in *TransactionInput) { in.Amount = decimal.Zero }},
	}
	for _, c := range cases {
		in := validTxInput()
		c.mutate(&in)
		err := ValidateTransaction(in)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, c.field)
		assert.Equal(t, c.field, ve.Field)
	}
}

func TestSigned(t *testing.T) {
	in := Transaction{ID: 1, Type: TypeIncome, Amount: decimal.NewFromInt(10)}
	v, err := in.Signed()
	assert.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(10)))

	in.Type = TypeExpense
	v, err = in.Signed()
	assert.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(-10)))

	in.Type = "Refund"
	_, err = in.Signed()
	var ute *UnknownTypeError
	assert.ErrorAs(t, err, &ute)
}
