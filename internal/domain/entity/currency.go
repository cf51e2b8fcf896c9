// Package entity defines the core business entities for the domain layer.
package entity

// Currency represents one of the supported expense currencies. Amounts
// are always stored in their original currency and never converted at
// rest.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyMXN Currency = "MXN"
	CurrencyCOP Currency = "COP"
	CurrencyCLP Currency = "CLP"
	CurrencyBRL Currency = "BRL"
)

// Currencies lists all supported currency values.
var Currencies = []Currency{
	CurrencyARS,
	CurrencyUSD,
	CurrencyEUR,
	CurrencyMXN,
	CurrencyCOP,
	CurrencyCLP,
	CurrencyBRL,
}

// IsValid reports whether the currency is one of the supported values.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyARS, CurrencyUSD, CurrencyEUR, CurrencyMXN,
		CurrencyCOP, CurrencyCLP, CurrencyBRL:
		return true
	}
	return false
}
