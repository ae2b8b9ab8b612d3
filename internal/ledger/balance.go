package ledger

import "github.com/shopspring/decimal"

// BalanceBreakdown is a wallet's resolved position: opening balance plus
// the signed sum of its active transactions, with the income and expense
// totals kept separately for display.
type BalanceBreakdown struct {
	Balance      decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// ResolveBalance computes the wallet's current balance from its opening
// balance and the given transactions. Deleted transactions and
// transactions belonging to other wallets contribute nothing; a
// transaction with a type outside the enumeration fails the whole
// computation. The result may be negative, overdraft is allowed.
func ResolveBalance(w Wallet, txs []Transaction) (decimal.Decimal, error) {
	bd, err := ResolveBreakdown(w, txs)
	if err != nil {
		return decimal.Zero, err
	}
	return bd.Balance, nil
}

// ResolveBreakdown is ResolveBalance with the per-type totals retained.
func ResolveBreakdown(w Wallet, txs []Transaction) (BalanceBreakdown, error) {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txs {
		if t.Status == StatusDeleted || t.WalletID != w.ID {
			continue
		}
		switch t.Type {
		case TypeIncome:
			income = income.Add(t.Amount)
		case TypeExpense:
			expense = expense.Add(t.Amount)
		default:
			return BalanceBreakdown{}, &UnknownTypeError{TransactionID: t.ID, Type: string(t.Type)}
		}
	}
	return BalanceBreakdown{
		Balance:      w.Balance.Add(income).Sub(expense),
		TotalIncome:  income,
		TotalExpense: expense,
	}, nil
}
