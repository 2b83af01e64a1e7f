package offer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/widget-basket/internal/catalog"
)

var two = decimal.NewFromInt(2)

// BuyOneGetSecondHalf discounts every second unit of Code by half its price.
type BuyOneGetSecondHalf struct {
	Code string
}

// Kind implements Rule.
func (BuyOneGetSecondHalf) Kind() Kind { return KindBuyOneGetSecondHalf }

// Discount implements Rule. The unit price comes from the items themselves,
// so a catalog change after the items were added has no effect.
func (r BuyOneGetSecondHalf) Discount(items []catalog.Product) decimal.Decimal {
	counts := make(map[string]int64)
	for _, it := range items {
		counts[it.Code()]++
	}

	discount := decimal.Zero
	for code, count := range counts {
		if code != r.Code {
			continue
		}
		pairs := count / 2
		if pairs == 0 {
			continue
		}
		unit, ok := FirstByCode(items, code)
		if !ok {
			continue
		}
		discount = discount.Add(decimal.NewFromInt(pairs).Mul(unit.Price().Div(two)))
	}
	return discount
}

func (r BuyOneGetSecondHalf) String() string {
	return fmt.Sprintf("%s (%s)", KindBuyOneGetSecondHalf, r.Code)
}
