package pricing

import "github.com/shopspring/decimal"

// Money is a fixed-point monetary amount.
type Money = decimal.Decimal

// CentPlaces is the precision payable totals are expressed in.
const CentPlaces = 2

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal      Money
	Discount      Money
	AfterDiscount Money
	Delivery      Money
	Total         Money
}

// DeliveryFunc prices delivery for an already discounted amount.
type DeliveryFunc func(afterDiscount Money) Money

// Compute sums unit prices, applies the discount and adds delivery.
// The discount is capped at the subtotal so the payable amount never goes
// below zero. Component values stay exact; only Total is rounded.
func Compute(prices []Money, discount Money, delivery DeliveryFunc) Summary {
	subtotal := decimal.Zero
	for _, p := range prices {
		subtotal = subtotal.Add(p)
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	after := subtotal.Sub(discount)
	shipping := decimal.Zero
	if delivery != nil {
		shipping = delivery(after)
	}
	return Summary{
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: after,
		Delivery:      shipping,
		Total:         RoundTotal(after.Add(shipping)),
	}
}

// RoundTotal drops fractions of a cent, so a half cent left by a discount
// is always waived for the shopper.
func RoundTotal(m Money) Money {
	return m.RoundFloor(CentPlaces)
}

// Format renders m with exactly two decimals.
func Format(m Money) string {
	return m.StringFixed(CentPlaces)
}
