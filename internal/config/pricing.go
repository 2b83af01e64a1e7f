package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/widget-basket/internal/basket"
	"github.com/noah-isme/widget-basket/internal/catalog"
	"github.com/noah-isme/widget-basket/internal/delivery"
	"github.com/noah-isme/widget-basket/internal/offer"
)

// ProductSpec is one catalog entry from configuration.
type ProductSpec struct {
	Code  string
	Name  string
	Price decimal.Decimal
}

// TierSpec is one delivery tier from configuration.
type TierSpec struct {
	Threshold decimal.Decimal
	Cost      decimal.Decimal
}

// OfferSpec activates an offer kind for a target product.
type OfferSpec struct {
	Kind   offer.Kind
	Target string
}

// none disables tiers or offers when given as the whole value.
const none = "none"

// ReferenceProducts is the stock widget catalog.
func ReferenceProducts() []ProductSpec {
	return []ProductSpec{
		{Code: "R01", Name: "Red Widget", Price: decimal.RequireFromString("32.95")},
		{Code: "G01", Name: "Green Widget", Price: decimal.RequireFromString("24.95")},
		{Code: "B01", Name: "Blue Widget", Price: decimal.RequireFromString("7.95")},
	}
}

// ReferenceTiers charges 4.95 below 50 and 2.95 below 90; delivery is free from 90.
func ReferenceTiers() []TierSpec {
	return []TierSpec{
		{Threshold: decimal.NewFromInt(50), Cost: decimal.RequireFromString("4.95")},
		{Threshold: decimal.NewFromInt(90), Cost: decimal.RequireFromString("2.95")},
	}
}

// ReferenceOffers activates buy-one-get-second-half on red widgets.
func ReferenceOffers() []OfferSpec {
	return []OfferSpec{{Kind: offer.KindBuyOneGetSecondHalf, Target: offer.ReferenceTarget}}
}

// Catalog builds the catalog described by the configuration.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	cat := catalog.New()
	for _, p := range c.Products {
		if _, err := cat.AddProduct(p.Name, p.Price, p.Code); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// NewBasket creates a basket over cat with the configured tiers and offers.
func (c *Config) NewBasket(cat *catalog.Catalog) (*basket.Basket, error) {
	b := basket.New(cat)
	for _, t := range c.Tiers {
		if err := b.AddDeliveryRule(t.Threshold, t.Cost); err != nil {
			return nil, err
		}
	}
	for _, o := range c.Offers {
		rule, err := offer.New(o.Kind, o.Target)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", basket.ErrUnsupportedOffer, err)
		}
		if err := b.AddRule(rule); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// parseProducts reads "CODE:Name:price" entries separated by commas.
func parseProducts(value string) ([]ProductSpec, error) {
	if strings.TrimSpace(value) == "" {
		return ReferenceProducts(), nil
	}
	var out []ProductSpec
	for _, entry := range splitAndTrim(value) {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("CATALOG_PRODUCTS: entry %q must be CODE:Name:price", entry)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("CATALOG_PRODUCTS: entry %q: %w", entry, err)
		}
		p, err := catalog.NewProduct(parts[1], price, parts[0])
		if err != nil {
			return nil, fmt.Errorf("CATALOG_PRODUCTS: %w", err)
		}
		out = append(out, ProductSpec{Code: p.Code(), Name: p.Name(), Price: p.Price()})
	}
	return out, nil
}

// parseTiers reads "threshold:cost" entries separated by commas.
func parseTiers(value string) ([]TierSpec, error) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "":
		return ReferenceTiers(), nil
	case none:
		return nil, nil
	}
	var out []TierSpec
	for _, entry := range splitAndTrim(trimmed) {
		parts := strings.Split(entry, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("DELIVERY_TIERS: entry %q must be threshold:cost", entry)
		}
		threshold, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("DELIVERY_TIERS: entry %q: %w", entry, err)
		}
		cost, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("DELIVERY_TIERS: entry %q: %w", entry, err)
		}
		if err := (delivery.Tier{Threshold: threshold, Cost: cost}).Validate(); err != nil {
			return nil, fmt.Errorf("DELIVERY_TIERS: %w", err)
		}
		out = append(out, TierSpec{Threshold: threshold, Cost: cost})
	}
	return out, nil
}

// parseOffers reads "kind[:target]" entries separated by commas.
func parseOffers(value string) ([]OfferSpec, error) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "":
		return ReferenceOffers(), nil
	case none:
		return nil, nil
	}
	var out []OfferSpec
	for _, entry := range splitAndTrim(trimmed) {
		name, target, _ := strings.Cut(entry, ":")
		kind, err := offer.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("OFFERS: %w", err)
		}
		target = strings.TrimSpace(target)
		if target == "" {
			target = offer.ReferenceTarget
		}
		out = append(out, OfferSpec{Kind: kind, Target: target})
	}
	return out, nil
}
