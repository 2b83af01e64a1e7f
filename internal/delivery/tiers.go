package delivery

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrInvalidTier is returned when a tier has a non-positive threshold or a negative cost.
var ErrInvalidTier = errors.New("invalid delivery tier")

// Tier charges Cost for any amount strictly below Threshold.
type Tier struct {
	Threshold decimal.Decimal
	Cost      decimal.Decimal
}

// Validate checks the tier invariants.
func (t Tier) Validate() error {
	if !t.Threshold.IsPositive() {
		return fmt.Errorf("%w: threshold %s must be greater than zero", ErrInvalidTier, t.Threshold)
	}
	if t.Cost.IsNegative() {
		return fmt.Errorf("%w: cost %s must not be negative", ErrInvalidTier, t.Cost)
	}
	return nil
}

// Rules holds tiers in insertion order.
type Rules struct {
	tiers []Tier
}

// Add validates and appends a tier.
func (r *Rules) Add(threshold, cost decimal.Decimal) error {
	t := Tier{Threshold: threshold, Cost: cost}
	if err := t.Validate(); err != nil {
		return err
	}
	r.tiers = append(r.tiers, t)
	return nil
}

// Tiers returns a copy of the tiers in insertion order.
func (r Rules) Tiers() []Tier {
	out := make([]Tier, len(r.tiers))
	copy(out, r.tiers)
	return out
}

// Len reports how many tiers are configured.
func (r Rules) Len() int { return len(r.tiers) }

// CostFor returns the delivery cost for amount under these rules.
func (r Rules) CostFor(amount decimal.Decimal) decimal.Decimal {
	return CostFor(r.tiers, amount)
}

// CostFor returns the cost of the lowest tier whose threshold is strictly
// greater than amount, or zero when amount reaches every threshold.
// The input slice is not modified.
func CostFor(tiers []Tier, amount decimal.Decimal) decimal.Decimal {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold.LessThan(sorted[j].Threshold)
	})
	for _, t := range sorted {
		if amount.LessThan(t.Threshold) {
			return t.Cost
		}
	}
	return decimal.Zero
}
