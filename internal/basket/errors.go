package basket

import "errors"

var (
	// ErrProductNotFound is returned when a code is empty or unknown to the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidArgument is returned for a delivery rule with a non-positive threshold or negative cost.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedOffer is returned when an offer kind has no discount rule.
	ErrUnsupportedOffer = errors.New("offer type not supported")
)
