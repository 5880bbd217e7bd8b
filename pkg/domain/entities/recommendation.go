package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransferMethod is the closed set of ways a recommendation can be
// fulfilled. Handling must be exhaustive at generation and execution time
// so a new method cannot bypass the approval workflow's transition rules.
type TransferMethod int

const (
	// StoreTransfer moves stock from a donor store to a destination store.
	StoreTransfer TransferMethod = iota
	// RestockOrder sources stock externally for a destination with a
	// demand gap and no viable donor.
	RestockOrder
)

// String method for TransferMethod enum
func (m TransferMethod) String() string {
	switch m {
	case StoreTransfer:
		return "StoreTransfer"
	case RestockOrder:
		return "RestockOrder"
	default:
		return "Unknown"
	}
}

// RecommendationState is the lifecycle state of a recommendation.
// Rejected and Executed are terminal.
type RecommendationState int

const (
	Pending RecommendationState = iota
	Approved
	Rejected
	Executed
)

// String method for RecommendationState enum
func (s RecommendationState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Approved:
		return "Approved"
	case Rejected:
		return "Rejected"
	case Executed:
		return "Executed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transitions are allowed from s
func (s RecommendationState) Terminal() bool {
	return s == Rejected || s == Executed
}

// Recommendation proposes moving stock toward a store likely to sell it,
// with an estimated emissions saving. Created by the generator in state
// Pending; state transitions are owned by the approval workflow. Records
// are never deleted, only transitioned.
type Recommendation struct {
	ID            string
	ProductID     ProductID
	SourceStoreID StoreID // empty for RestockOrder
	DestStoreID   StoreID
	Quantity      Quantity
	CO2SavedKg    decimal.Decimal
	Method        TransferMethod
	State         RecommendationState
	Note          string
	CreatedAt     time.Time
}

// NewRecommendation creates a validated Recommendation in state Pending
func NewRecommendation(id string, productID ProductID, source, dest StoreID, quantity Quantity, co2SavedKg decimal.Decimal, method TransferMethod, createdAt time.Time) (*Recommendation, error) {
	if id == "" {
		return nil, fmt.Errorf("recommendation ID cannot be empty")
	}
	if string(productID) == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	if string(dest) == "" {
		return nil, fmt.Errorf("destination store cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if co2SavedKg.IsNegative() {
		return nil, fmt.Errorf("co2 saved cannot be negative, got %s", co2SavedKg)
	}

	switch method {
	case StoreTransfer:
		if string(source) == "" {
			return nil, fmt.Errorf("store transfer requires a source store")
		}
	case RestockOrder:
		if string(source) != "" {
			return nil, fmt.Errorf("restock order cannot have a source store")
		}
	default:
		return nil, fmt.Errorf("unknown transfer method: %d", method)
	}

	return &Recommendation{
		ID:            id,
		ProductID:     productID,
		SourceStoreID: source,
		DestStoreID:   dest,
		Quantity:      quantity,
		CO2SavedKg:    co2SavedKg,
		Method:        method,
		State:         Pending,
		CreatedAt:     createdAt,
	}, nil
}
