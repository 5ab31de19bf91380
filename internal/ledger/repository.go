package ledger

import (
	"context"
	"iter"

	"github.com/fekuna/omnipos-pos-ledger/internal/ledger/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Append writes one immutable entry and sets its ID.
	Append(ctx context.Context, entry *model.LedgerEntry) error

	// All yields every entry, most recent first. Each range runs a fresh query.
	All(ctx context.Context) iter.Seq2[model.LedgerEntry, error]
	List(ctx context.Context, filters *dto.MovementFilters) ([]model.LedgerEntry, int, error)
	ByBatch(ctx context.Context, batchID string) ([]model.LedgerEntry, error)

	WithTx(tx *sqlx.Tx) Repository
}
