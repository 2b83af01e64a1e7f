package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog maps product codes to products and remembers registration order.
// It is populated once at startup and must be treated as read-only afterwards,
// which makes it safe to share between goroutines.
type Catalog struct {
	products map[string]Product
	order    []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{products: make(map[string]Product)}
}

// Add registers p under its code. Registering an existing code replaces the
// earlier product (last registration wins) without changing its list position.
// The zero Product has no code and is rejected with ErrInvalidProduct.
func (c *Catalog) Add(p Product) error {
	if p.code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidProduct)
	}
	if _, exists := c.products[p.code]; !exists {
		c.order = append(c.order, p.code)
	}
	c.products[p.code] = p
	return nil
}

// AddProduct validates the fields and registers the resulting product.
func (c *Catalog) AddProduct(name string, price decimal.Decimal, code string) (Product, error) {
	p, err := NewProduct(name, price, code)
	if err != nil {
		return Product{}, err
	}
	if err := c.Add(p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// FindByCode looks up a product by exact code.
func (c *Catalog) FindByCode(code string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	p, ok := c.products[code]
	return p, ok
}

// List returns every product in registration order.
func (c *Catalog) List() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.products[code])
	}
	return out
}

// Len reports the number of distinct products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
