// Package stats contains the ledger analytics use cases.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// usdNormalizationFactor treats 1 USD as 1000 units of local currency
// when ranking entries of mixed currencies. This is an approximation
// for ranking and trend display only, NOT a real exchange rate. It is
// kept behind this single function so a real rate lookup can replace
// it without touching the aggregation logic.
var usdNormalizationFactor = decimal.NewFromInt(1000)

// normalizedAmount returns the amount of an entry on a common scale
// for cross-currency comparison.
func normalizedAmount(e *entity.Expense) decimal.Decimal {
	if e.Currency == entity.CurrencyUSD {
		return e.Amount.Mul(usdNormalizationFactor)
	}
	return e.Amount
}
