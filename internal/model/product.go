package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductIdentity is the natural key of a product. No two catalog rows share one.
type ProductIdentity struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Variant  string `json:"variant"`
}

// Normalize trims surrounding whitespace from every field.
func (id ProductIdentity) Normalize() ProductIdentity {
	return ProductIdentity{
		Category: strings.TrimSpace(id.Category),
		Name:     strings.TrimSpace(id.Name),
		Variant:  strings.TrimSpace(id.Variant),
	}
}

func (id ProductIdentity) Validate() error {
	switch {
	case strings.TrimSpace(id.Name) == "":
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	case strings.TrimSpace(id.Category) == "":
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	case strings.TrimSpace(id.Variant) == "":
		return &ValidationError{Field: "variant", Reason: "must not be empty"}
	}
	return nil
}

func (id ProductIdentity) String() string {
	return fmt.Sprintf("%s (%s, %s)", id.Name, id.Category, id.Variant)
}

type Product struct {
	ID       int64           `db:"id" json:"id"`
	Category string          `db:"category" json:"category"`
	Name     string          `db:"name" json:"name"`
	Variant  string          `db:"variant" json:"variant"`
	Quantity int64           `db:"quantity" json:"quantity"`
	Price    decimal.Decimal `db:"price" json:"price"`
}

func (p Product) Identity() ProductIdentity {
	return ProductIdentity{Category: p.Category, Name: p.Name, Variant: p.Variant}
}

// DisplayName is the label used for pickers and for ledger name snapshots.
func (p Product) DisplayName() string {
	return fmt.Sprintf("%s - %s (%s)", p.Name, p.Category, p.Variant)
}

// Validate checks the mutable fields of a product before it is written.
func (p Product) Validate() error {
	if err := p.Identity().Validate(); err != nil {
		return err
	}
	if p.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	return validatePrice("price", p.Price)
}

// PriceScale is the number of decimal places a stored price keeps.
const PriceScale = 2

func validatePrice(field string, price decimal.Decimal) error {
	if price.IsNegative() {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	if !price.Equal(price.Truncate(PriceScale)) {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must have at most %d decimal places", PriceScale)}
	}
	return nil
}
