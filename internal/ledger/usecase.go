package ledger

import (
	"context"
	"iter"

	"github.com/fekuna/omnipos-pos-ledger/internal/ledger/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
)

type UseCase interface {
	ListAll(ctx context.Context) iter.Seq2[model.LedgerEntry, error]
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.LedgerEntry, int, error)
	GetTicket(ctx context.Context, batchID string) (*model.Ticket, error)
	Summary(ctx context.Context) (*dto.Summary, error)
}
