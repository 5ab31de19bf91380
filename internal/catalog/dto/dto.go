package dto

type ProductFilters struct {
	Query       string // case-insensitive substring of name or category
	InStockOnly bool
}
