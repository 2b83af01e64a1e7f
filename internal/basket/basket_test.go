package basket_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/widget-basket/internal/basket"
	"github.com/noah-isme/widget-basket/internal/catalog"
	"github.com/noah-isme/widget-basket/internal/offer"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newBasket(t *testing.T) (*basket.Basket, *catalog.Catalog) {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.Add(catalog.MustProduct("Red Widget", "32.95", "R01")))
	require.NoError(t, c.Add(catalog.MustProduct("Green Widget", "24.95", "G01")))
	require.NoError(t, c.Add(catalog.MustProduct("Blue Widget", "7.95", "B01")))
	return basket.New(c), c
}

func addReferenceTiers(t *testing.T, b *basket.Basket) {
	t.Helper()
	require.NoError(t, b.AddDeliveryRule(dec("50"), dec("4.95")))
	require.NoError(t, b.AddDeliveryRule(dec("90"), dec("2.95")))
}

func addAll(t *testing.T, b *basket.Basket, codes ...string) {
	t.Helper()
	for _, code := range codes {
		require.NoError(t, b.Add(code))
	}
}

func TestAddProductToBasket(t *testing.T) {
	t.Parallel()

	b, c := newBasket(t)
	product, ok := c.FindByCode("R01")
	require.True(t, ok)

	require.NoError(t, b.Add(product.Code()))
	require.Len(t, b.Items(), 1)
	require.True(t, b.Items()[0].Equal(product))
}

func TestAddUnknownCodeLeavesBasketUnchanged(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	addAll(t, b, "B01")

	for _, code := range []string{"", "   ", "X99", "r01"} {
		err := b.Add(code)
		require.ErrorIs(t, err, basket.ErrProductNotFound, "code %q", code)
		require.Equal(t, 1, b.Len())
	}
}

func TestAddDeliveryRuleValidation(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	valid := [][2]string{{"50", "4.95"}, {"0.01", "0"}, {"90", "2.95"}}
	for _, pair := range valid {
		require.NoError(t, b.AddDeliveryRule(dec(pair[0]), dec(pair[1])))
	}
	invalid := [][2]string{{"0", "4.95"}, {"-1", "1"}, {"50", "-0.01"}}
	for _, pair := range invalid {
		require.ErrorIs(t, b.AddDeliveryRule(dec(pair[0]), dec(pair[1])), basket.ErrInvalidArgument)
	}
	require.Len(t, b.DeliveryTiers(), len(valid))
}

func TestAddOffer(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	require.ErrorIs(t, b.AddOffer(offer.KindUnknown), basket.ErrUnsupportedOffer)
	require.ErrorIs(t, b.AddRule(nil), basket.ErrUnsupportedOffer)
	require.Empty(t, b.Offers())

	require.NoError(t, b.AddOffer(offer.KindBuyOneGetSecondHalf))
	require.Equal(t, []offer.Rule{offer.BuyOneGetSecondHalf{Code: "R01"}}, b.Offers())
}

func TestDiscountOnFourRedWidgets(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	require.NoError(t, b.AddOffer(offer.KindBuyOneGetSecondHalf))
	addAll(t, b, "R01", "R01", "R01", "R01")
	require.True(t, b.Discount().Equal(dec("32.95")))

	b, _ = newBasket(t)
	require.NoError(t, b.AddOffer(offer.KindBuyOneGetSecondHalf))
	addAll(t, b, "R01", "R01", "R01")
	require.True(t, b.Discount().Equal(dec("16.475")))
}

func TestTotalCostWithoutSpecialOffer(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	addAll(t, b, "B01", "G01")
	addReferenceTiers(t, b)

	require.True(t, b.Subtotal().Equal(dec("32.90")))
	require.True(t, b.DeliveryCost().Equal(dec("4.95")))
	require.Equal(t, "37.85", b.Total().StringFixed(2))
}

func TestTotalCostWithSpecialOfferAndDelivery(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	addAll(t, b, "B01", "B01", "R01", "R01", "R01")
	addReferenceTiers(t, b)
	require.NoError(t, b.AddOffer(offer.KindBuyOneGetSecondHalf))

	summary := b.Quote()
	require.True(t, summary.Subtotal.Equal(dec("114.75")))
	require.True(t, summary.Discount.Equal(dec("16.475")))
	require.True(t, summary.AfterDiscount.Equal(dec("98.275")))
	require.True(t, summary.Delivery.IsZero())
	require.Equal(t, "98.27", b.Total().StringFixed(2))
}

func TestDeliveryUsesDiscountedSubtotal(t *testing.T) {
	t.Parallel()

	// R01 + R01 = 65.90, discounted to 49.425 which falls into the cheapest bracket.
	b, _ := newBasket(t)
	addAll(t, b, "R01", "R01")
	addReferenceTiers(t, b)
	require.NoError(t, b.AddOffer(offer.KindBuyOneGetSecondHalf))

	require.True(t, b.DeliveryCost().Equal(dec("4.95")))
	require.Equal(t, "54.37", b.Total().StringFixed(2))
}

func TestReferenceBaskets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		codes []string
		want  string
	}{
		{[]string{"B01", "G01"}, "37.85"},
		{[]string{"R01", "R01"}, "54.37"},
		{[]string{"R01", "G01"}, "60.85"},
		{[]string{"B01", "B01", "R01", "R01", "R01"}, "98.27"},
	}
	for _, tc := range cases {
		b, _ := newBasket(t)
		addReferenceTiers(t, b)
		require.NoError(t, b.AddOffer(offer.KindBuyOneGetSecondHalf))
		addAll(t, b, tc.codes...)
		require.Equal(t, tc.want, b.Total().StringFixed(2), "basket %v", tc.codes)
	}
}

func TestEmptyBasketPaysCheapestBracketDelivery(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	require.True(t, b.Total().IsZero())

	addReferenceTiers(t, b)
	require.Equal(t, "4.95", b.Total().StringFixed(2))
}

func TestFindProductByCodeScansBasketOnly(t *testing.T) {
	t.Parallel()

	b, c := newBasket(t)
	addAll(t, b, "B01")

	_, ok := b.FindProductByCode("R01")
	require.False(t, ok)

	require.NoError(t, c.Add(catalog.MustProduct("Blue Widget", "9.99", "B01")))
	got, ok := b.FindProductByCode("B01")
	require.True(t, ok)
	require.True(t, got.Price().Equal(dec("7.95")))
}

func TestItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	addAll(t, b, "B01")
	items := b.Items()
	items[0] = catalog.MustProduct("Fake", "0", "F01")
	require.Equal(t, "B01", b.Items()[0].Code())
}

type flatDiscount struct{ amount decimal.Decimal }

func (flatDiscount) Kind() offer.Kind { return offer.KindUnknown }

func (f flatDiscount) Discount([]catalog.Product) decimal.Decimal { return f.amount }

func TestDiscountMatchesAppliedCap(t *testing.T) {
	t.Parallel()

	b, _ := newBasket(t)
	addAll(t, b, "B01")
	require.NoError(t, b.AddRule(flatDiscount{amount: dec("100")}))

	q := b.Quote()
	require.True(t, b.Discount().Equal(dec("7.95")))
	require.True(t, b.Discount().Equal(q.Discount))
	require.True(t, b.Subtotal().Sub(b.Discount()).IsZero())
	require.True(t, b.Total().IsZero())
}
