package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Category string
	Name     string
	Variant  string
	Quantity int64
	Price    decimal.Decimal
}

type UpdateProductInput struct {
	ID       int64
	Category string
	Name     string
	Variant  string
	Quantity int64
	Price    decimal.Decimal
}
