package posv1

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Variant     string          `json:"variant"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	DisplayName string          `json:"display_name"`
}

type ListProductsRequest struct {
	Query       string `json:"query,omitempty"`
	InStockOnly bool   `json:"in_stock_only,omitempty"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

type GetProductRequest struct {
	ID int64 `json:"id"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type GetPriceRequest struct {
	ID int64 `json:"id"`
}

type GetPriceResponse struct {
	Price decimal.Decimal `json:"price"`
}

type CreateProductRequest struct {
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Variant  string          `json:"variant"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type UpdateProductRequest struct {
	ID       int64           `json:"id"`
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Variant  string          `json:"variant"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type NewProduct struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Variant  string `json:"variant"`
}

// LineItem references an existing product by ProductID or, in purchases,
// declares a NewProduct.
type LineItem struct {
	ProductID  int64           `json:"product_id,omitempty"`
	NewProduct *NewProduct     `json:"new_product,omitempty"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type CommitRequest struct {
	Items []*LineItem `json:"items"`
}

// CommitResponse reports a rejected cart as Success=false with a localized
// Reason rather than as an RPC error.
type CommitResponse struct {
	Success bool    `json:"success"`
	Code    string  `json:"code,omitempty"`
	Reason  string  `json:"reason,omitempty"`
	Ticket  *Ticket `json:"ticket,omitempty"`
}

type LedgerEntry struct {
	ID          int64           `json:"id"`
	BatchID     string          `json:"batch_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Kind        string          `json:"kind"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	RecordedAt  string          `json:"recorded_at"`
}

type Ticket struct {
	BatchID    string          `json:"batch_id"`
	Kind       string          `json:"kind"`
	RecordedAt string          `json:"recorded_at"`
	Entries    []*LedgerEntry  `json:"entries"`
	Total      decimal.Decimal `json:"total"`
}

type ListEntriesRequest struct {
	BatchID   string `json:"batch_id,omitempty"`
	Kind      string `json:"kind,omitempty"`
	ProductID int64  `json:"product_id,omitempty"`
	Page      int32  `json:"page,omitempty"`
	PageSize  int32  `json:"page_size,omitempty"`
}

type ListEntriesResponse struct {
	Entries  []*LedgerEntry `json:"entries"`
	Total    int32          `json:"total"`
	Page     int32          `json:"page"`
	PageSize int32          `json:"page_size"`
}

type GetTicketRequest struct {
	BatchID string `json:"batch_id"`
}

type TicketResponse struct {
	Ticket *Ticket `json:"ticket"`
}

type GetSummaryRequest struct{}

type SummaryResponse struct {
	ProductCount   int32           `json:"product_count"`
	EntryCount     int32           `json:"entry_count"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	PurchasesTotal decimal.Decimal `json:"purchases_total"`
}

// StreamEntriesRequest streams the ledger most recent first. Limit 0 means all.
type StreamEntriesRequest struct {
	Limit int32 `json:"limit,omitempty"`
}
