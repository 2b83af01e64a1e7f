package offer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/widget-basket/internal/catalog"
)

// ErrUnsupported is returned for offer kinds that have no discount rule.
var ErrUnsupported = errors.New("offer not supported")

// ReferenceTarget is the product the stock buy-one-get-second-half offer applies to.
const ReferenceTarget = "R01"

// Kind identifies a family of discount rules.
type Kind int

const (
	// KindUnknown is the zero value and never maps to a rule.
	KindUnknown Kind = iota
	// KindBuyOneGetSecondHalf halves the price of every second unit of a product.
	KindBuyOneGetSecondHalf
)

var kindNames = map[Kind]string{
	KindBuyOneGetSecondHalf: "buy_one_get_second_half",
}

// String returns the external name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind resolves an external offer name, case-insensitively.
func ParseKind(value string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for k, name := range kindNames {
		if name == needle {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnsupported, value)
}

// Rule computes a non-negative discount for a basket's items.
// Implementations must not retain the slice between calls.
type Rule interface {
	Kind() Kind
	Discount(items []catalog.Product) decimal.Decimal
}

// New builds the rule for kind targeting the given product code.
func New(kind Kind, target string) (Rule, error) {
	switch kind {
	case KindBuyOneGetSecondHalf:
		target = strings.TrimSpace(target)
		if target == "" {
			target = ReferenceTarget
		}
		return BuyOneGetSecondHalf{Code: target}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
}

// FirstByCode returns the first item carrying code.
func FirstByCode(items []catalog.Product, code string) (catalog.Product, bool) {
	for _, it := range items {
		if it.Code() == code {
			return it, true
		}
	}
	return catalog.Product{}, false
}
