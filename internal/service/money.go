package service

import (
	"confidencevoice/internal/entity"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func LineTotal(item entity.LineItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// NetTotal is the sum of unit price times quantity over all items.
func NetTotal(items []entity.LineItem) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, item entity.LineItem, _ int) decimal.Decimal {
		return acc.Add(LineTotal(item))
	}, decimal.Zero)
}

// maskCardNumber keeps only the last four digits.
func maskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	masked := make([]byte, len(number))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(number)-4:], number[len(number)-4:])
	return string(masked)
}
