package basket

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/widget-basket/internal/catalog"
	"github.com/noah-isme/widget-basket/internal/delivery"
	"github.com/noah-isme/widget-basket/internal/offer"
	"github.com/noah-isme/widget-basket/internal/pricing"
)

// Basket collects products for one pricing session together with the
// delivery tiers and offers that apply to it. A Basket is not safe for
// concurrent use; the catalog it reads from is never modified.
type Basket struct {
	catalog *catalog.Catalog
	items   []catalog.Product
	tiers   delivery.Rules
	offers  []offer.Rule
}

// New creates an empty basket backed by c.
func New(c *catalog.Catalog) *Basket {
	return &Basket{catalog: c}
}

// Add resolves code against the catalog and appends the product.
// Duplicates are kept; that is what triggers multi-buy offers.
func (b *Basket) Add(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: empty product code", ErrProductNotFound)
	}
	p, ok := b.catalog.FindByCode(code)
	if !ok {
		return fmt.Errorf("%w: product with code %s", ErrProductNotFound, code)
	}
	b.items = append(b.items, p)
	return nil
}

// AddDeliveryRule charges cost for discounted subtotals strictly below threshold.
func (b *Basket) AddDeliveryRule(threshold, cost decimal.Decimal) error {
	if err := b.tiers.Add(threshold, cost); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// AddOffer activates the stock rule for kind.
func (b *Basket) AddOffer(kind offer.Kind) error {
	rule, err := offer.New(kind, offer.ReferenceTarget)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedOffer, err)
	}
	b.offers = append(b.offers, rule)
	return nil
}

// AddRule activates an already configured discount rule.
func (b *Basket) AddRule(rule offer.Rule) error {
	if rule == nil {
		return fmt.Errorf("%w: nil rule", ErrUnsupportedOffer)
	}
	b.offers = append(b.offers, rule)
	return nil
}

// Items returns the added products in insertion order.
func (b *Basket) Items() []catalog.Product {
	out := make([]catalog.Product, len(b.items))
	copy(out, b.items)
	return out
}

// DeliveryTiers returns the configured tiers in insertion order.
func (b *Basket) DeliveryTiers() []delivery.Tier {
	return b.tiers.Tiers()
}

// Offers returns the active discount rules.
func (b *Basket) Offers() []offer.Rule {
	out := make([]offer.Rule, len(b.offers))
	copy(out, b.offers)
	return out
}

// Len reports the number of items in the basket.
func (b *Basket) Len() int { return len(b.items) }

// FindProductByCode scans the basket items, not the catalog.
func (b *Basket) FindProductByCode(code string) (catalog.Product, bool) {
	return offer.FirstByCode(b.items, code)
}

// Subtotal sums item prices before discounts and delivery.
func (b *Basket) Subtotal() decimal.Decimal {
	return b.Quote().Subtotal
}

// Discount returns the discount applied to the basket: the sum over active
// rules, capped at the subtotal.
func (b *Basket) Discount() decimal.Decimal {
	return b.Quote().Discount
}

func (b *Basket) ruleDiscount() decimal.Decimal {
	discount := decimal.Zero
	for _, rule := range b.offers {
		discount = discount.Add(rule.Discount(b.items))
	}
	return discount
}

// DeliveryCost prices delivery for the current discounted subtotal.
func (b *Basket) DeliveryCost() decimal.Decimal {
	return b.Quote().Delivery
}

// Quote prices the basket and returns every component.
func (b *Basket) Quote() pricing.Summary {
	prices := make([]pricing.Money, 0, len(b.items))
	for _, it := range b.items {
		prices = append(prices, it.Price())
	}
	return pricing.Compute(prices, b.ruleDiscount(), b.tiers.CostFor)
}

// Total returns the payable amount rounded down to whole cents.
func (b *Basket) Total() decimal.Decimal {
	return b.Quote().Total
}
