package model

import "github.com/shopspring/decimal"

// LineItem is one entry of a cart. It either points at an existing product through
// ProductID or, for purchases only, declares a product to be created.
type LineItem struct {
	ProductID  int64            `json:"product_id,omitempty"`
	NewProduct *ProductIdentity `json:"new_product,omitempty"`
	Quantity   int64            `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
}

func NewSaleLine(productID, quantity int64, unitPrice decimal.Decimal) (LineItem, error) {
	l := LineItem{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}
	return l, l.Validate()
}

// NewRestockLine adds stock to an existing product and refreshes its price.
func NewRestockLine(productID, quantity int64, unitPrice decimal.Decimal) (LineItem, error) {
	l := LineItem{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}
	return l, l.Validate()
}

// NewProductLine declares a product that does not exist yet; it is created when the
// purchase commits.
func NewProductLine(id ProductIdentity, quantity int64, unitPrice decimal.Decimal) (LineItem, error) {
	id = id.Normalize()
	l := LineItem{NewProduct: &id, Quantity: quantity, UnitPrice: unitPrice}
	return l, l.Validate()
}

func (l LineItem) IsNew() bool {
	return l.NewProduct != nil
}

func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

func (l LineItem) Validate() error {
	if l.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if err := validatePrice("unit_price", l.UnitPrice); err != nil {
		return err
	}
	if l.IsNew() {
		return l.NewProduct.Validate()
	}
	if l.ProductID <= 0 {
		return &ValidationError{Field: "product_id", Reason: "must reference an existing product"}
	}
	return nil
}

// ValidateFor checks the line and that it is allowed in a cart of the given kind.
// Sales can only move stock of products that already exist.
func (l LineItem) ValidateFor(kind MovementKind) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if kind == KindSale && l.IsNew() {
		return &ValidationError{Field: "product_id", Reason: "sales can only reference existing products"}
	}
	return nil
}
