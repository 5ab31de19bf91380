package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	KindSale     MovementKind = "SALE"
	KindPurchase MovementKind = "PURCHASE"
)

func (k MovementKind) Valid() bool {
	return k == KindSale || k == KindPurchase
}

// TimestampLayout is the sortable text form ledger timestamps are stored in.
const TimestampLayout = "2006-01-02 15:04:05"

// LedgerEntry is one line of one committed cart. Rows are never updated or deleted;
// corrections are made with compensating entries.
type LedgerEntry struct {
	ID          int64           `db:"id" json:"id"`
	BatchID     string          `db:"batch_id" json:"batch_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"` // snapshot at commit time
	Kind        MovementKind    `db:"kind" json:"kind"`
	Quantity    int64           `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total" json:"line_total"`
	RecordedAt  string          `db:"recorded_at" json:"recorded_at"`
}

func (e LedgerEntry) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, e.RecordedAt, time.Local)
}

// Ticket groups the ledger rows written by one successful commit.
type Ticket struct {
	BatchID    string        `json:"batch_id"`
	Kind       MovementKind  `json:"kind"`
	RecordedAt string        `json:"recorded_at"`
	Entries    []LedgerEntry `json:"entries"`
}

func (t Ticket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.Entries {
		total = total.Add(e.LineTotal)
	}
	return total
}
