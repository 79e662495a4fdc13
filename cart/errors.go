package cart

import "errors"

// Error kinds shared by the cart engine and the stores behind it.
// Callers classify with errors.Is; wrapping preserves the kind.
var (
	// ErrNotFound covers a missing product, a missing option on an
	// existing product, and a missing line item.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument covers non-positive quantities and malformed
	// identifiers.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstreamUnavailable covers an unreachable catalog or cart store.
	// It is distinct from an empty cart: the UI must never conflate
	// "no items" with "couldn't load".
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
