package checkout

import (
	"context"

	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/jmoiron/sqlx"
)

// UseCase commits a whole cart or nothing. A nil error means every line was
// applied; otherwise the error text is the failure reason shown to the cashier.
type UseCase interface {
	CommitSale(ctx context.Context, items []model.LineItem) (*model.Ticket, error)
	CommitPurchase(ctx context.Context, items []model.LineItem) (*model.Ticket, error)
}

// TxRunner opens one unit of work, commits it when fn returns nil and rolls it
// back otherwise. *database.DB implements it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}
