package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidProduct is returned when a product cannot be registered.
var ErrInvalidProduct = errors.New("invalid product")

// Product is an immutable catalog entry.
type Product struct {
	name  string
	price decimal.Decimal
	code  string
}

// NewProduct validates and constructs a Product.
func NewProduct(name string, price decimal.Decimal, code string) (Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Product{}, fmt.Errorf("%w: code is required", ErrInvalidProduct)
	}
	if price.IsNegative() {
		return Product{}, fmt.Errorf("%w: %s has negative price %s", ErrInvalidProduct, code, price)
	}
	return Product{name: strings.TrimSpace(name), price: price, code: code}, nil
}

// MustProduct is NewProduct for static data; it panics on invalid input.
func MustProduct(name, price, code string) Product {
	p, err := NewProduct(name, decimal.RequireFromString(price), code)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the display name.
func (p Product) Name() string { return p.name }

// Price returns the unit price.
func (p Product) Price() decimal.Decimal { return p.price }

// Code returns the unique product code.
func (p Product) Code() string { return p.code }

// Equal reports whether both products carry the same code, name and price.
func (p Product) Equal(other Product) bool {
	return p.code == other.code && p.name == other.name && p.price.Equal(other.price)
}

// String renders the product the way the console lists it.
func (p Product) String() string {
	return fmt.Sprintf("%s - %s ($%s)", p.code, p.name, p.price.StringFixed(2))
}
