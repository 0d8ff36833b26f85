package entity

import "github.com/shopspring/decimal"

func init() {
	// prices go out as JSON numbers, the way the storefront reads them
	decimal.MarshalJSONWithoutQuotes = true
}
