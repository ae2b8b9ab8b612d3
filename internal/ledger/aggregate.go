package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SupportedCurrencies are the buckets the aggregate always reports, even
// at zero, so consumers can render every column.
var SupportedCurrencies = []string{"PHP", "USD", "EUR", "JPY", "GBP"}

// Older wallet records carry the currency symbol the web form submitted
// instead of an ISO code.
var symbolToCode = map[string]string{
	"₱": "PHP",
	"$": "USD",
	"€": "EUR",
	"¥": "JPY",
	"£": "GBP",
}

// NormalizeCurrency trims, uppercases and maps known currency symbols to
// their ISO codes, so case and whitespace variants land in one bucket.
func NormalizeCurrency(c string) string {
	c = strings.TrimSpace(c)
	if code, ok := symbolToCode[c]; ok {
		return code
	}
	return strings.ToUpper(c)
}

// ResolvedWallet pairs a wallet with its resolved balance, the input the
// aggregator works on.
type ResolvedWallet struct {
	Wallet  Wallet
	Balance decimal.Decimal
}

// AggregateByCurrency groups wallets by normalized currency code and sums
// their resolved balances. The result always contains the supported
// currencies, zero-valued when no wallet uses them; other codes become
// additional buckets. A wallet without a currency code is a
// data-integrity error, never an empty-keyed bucket. No conversion
// between currencies happens here.
func AggregateByCurrency(wallets []ResolvedWallet) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal, len(SupportedCurrencies))
	for _, c := range SupportedCurrencies {
		totals[c] = decimal.Zero
	}
	for _, rw := range wallets {
		code := NormalizeCurrency(rw.Wallet.Currency)
		if code == "" {
			return nil, &AggregationInputError{WalletID: rw.Wallet.ID}
		}
		totals[code] = totals[code].Add(rw.Balance)
	}
	return totals, nil
}
