package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func m(s string) Money { return decimal.RequireFromString(s) }

func TestComputeWithoutDiscount(t *testing.T) {
	t.Parallel()

	summary := Compute([]Money{m("7.95"), m("24.95")}, decimal.Zero, func(Money) Money { return m("4.95") })
	require.True(t, summary.Subtotal.Equal(m("32.90")))
	require.True(t, summary.AfterDiscount.Equal(m("32.90")))
	require.True(t, summary.Total.Equal(m("37.85")))
}

func TestComputePassesDiscountedAmountToDelivery(t *testing.T) {
	t.Parallel()

	var seen Money
	summary := Compute([]Money{m("100")}, m("20"), func(amount Money) Money {
		seen = amount
		return decimal.Zero
	})
	require.True(t, seen.Equal(m("80")))
	require.True(t, summary.Total.Equal(m("80")))
}

func TestComputeCapsDiscount(t *testing.T) {
	t.Parallel()

	summary := Compute([]Money{m("10")}, m("25"), nil)
	require.True(t, summary.Discount.Equal(m("10")))
	require.True(t, summary.Total.IsZero())

	summary = Compute([]Money{m("10")}, m("-5"), nil)
	require.True(t, summary.Discount.IsZero())
	require.True(t, summary.Total.Equal(m("10")))
}

func TestRoundTotalWaivesFractionalCent(t *testing.T) {
	t.Parallel()

	require.Equal(t, "98.27", Format(RoundTotal(m("98.275"))))
	require.Equal(t, "98.27", Format(RoundTotal(m("98.2799"))))
	require.Equal(t, "37.85", Format(RoundTotal(m("37.85"))))
	require.Equal(t, "0.00", Format(RoundTotal(decimal.Zero)))
}
