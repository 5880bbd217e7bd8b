package entities

import "errors"

// Error taxonomy for the engine. All of these are recoverable from the
// caller's perspective; every failure leaves data in the last-known
// consistent state.
var (
	// ErrInsufficientStock means a requested or transfer quantity exceeds
	// what the source record currently holds. No mutation occurs.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNoStoreAvailable means no candidate store holds enough stock to
	// fulfill an order.
	ErrNoStoreAvailable = errors.New("no store available")

	// ErrInvalidQuantity means a non-positive quantity was requested.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidTransition means a recommendation transition was requested
	// from a state that does not allow it. State is unchanged.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrStaleRecommendation means execution-time revalidation failed; the
	// recommendation reverts to Pending rather than being lost.
	ErrStaleRecommendation = errors.New("stale recommendation")

	// ErrStoreNotFound and friends are referential errors.
	ErrStoreNotFound          = errors.New("store not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrRecordNotFound         = errors.New("inventory record not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
)
