package dto

import (
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type MovementFilters struct {
	BatchID   string
	Kind      model.MovementKind
	ProductID int64
	Page      int
	PageSize  int
}

// Summary holds the dashboard figures: catalog size and historical totals.
type Summary struct {
	ProductCount   int             `json:"product_count"`
	EntryCount     int             `json:"entry_count"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	PurchasesTotal decimal.Decimal `json:"purchases_total"`
}
