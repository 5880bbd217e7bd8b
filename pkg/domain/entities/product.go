package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID represents a unique product identifier
type ProductID string

// Category represents a product category from the fixed catalog taxonomy
type Category int

const (
	Outerwear Category = iota
	Tops
	Bottoms
	Dresses
	Footwear
	Accessories
)

// Categories lists every category in the taxonomy, in declaration order.
var Categories = []Category{Outerwear, Tops, Bottoms, Dresses, Footwear, Accessories}

// String method for Category enum
func (c Category) String() string {
	switch c {
	case Outerwear:
		return "Outerwear"
	case Tops:
		return "Tops"
	case Bottoms:
		return "Bottoms"
	case Dresses:
		return "Dresses"
	case Footwear:
		return "Footwear"
	case Accessories:
		return "Accessories"
	default:
		return "Unknown"
	}
}

// ParseCategory converts a category name to its enum value
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category: %q", s)
}

// Product represents a catalog item. Immutable.
type Product struct {
	ID           ProductID
	Name         string
	Category     Category
	Size         string
	UnitPrice    decimal.Decimal
	UnitWeightKg decimal.Decimal
}

// NewProduct creates a validated Product
func NewProduct(id ProductID, name string, category Category, size string, unitPrice, unitWeightKg decimal.Decimal) (*Product, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}
	if unitWeightKg.IsNegative() {
		return nil, fmt.Errorf("unit weight cannot be negative, got %s", unitWeightKg)
	}

	return &Product{
		ID:           id,
		Name:         name,
		Category:     category,
		Size:         size,
		UnitPrice:    unitPrice,
		UnitWeightKg: unitWeightKg,
	}, nil
}
