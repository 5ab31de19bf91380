package usecase

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/fekuna/omnipos-pos-ledger/internal/catalog"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ledgerUseCase struct {
	repo     ledger.Repository
	products catalog.Repository
	logger   logger.ZapLogger
}

func NewLedgerUseCase(repo ledger.Repository, products catalog.Repository, log logger.ZapLogger) ledger.UseCase {
	return &ledgerUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func (uc *ledgerUseCase) ListAll(ctx context.Context) iter.Seq2[model.LedgerEntry, error] {
	return uc.repo.All(ctx)
}

func (uc *ledgerUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.LedgerEntry, int, error) {
	if filters != nil && filters.Kind != "" && !filters.Kind.Valid() {
		return nil, 0, &model.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown movement kind %q", filters.Kind)}
	}
	if filters != nil && (filters.Page < 0 || filters.PageSize < 0) {
		return nil, 0, &model.ValidationError{Field: "page", Reason: "must not be negative"}
	}
	return uc.repo.List(ctx, filters)
}

func (uc *ledgerUseCase) GetTicket(ctx context.Context, batchID string) (*model.Ticket, error) {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return nil, &model.ValidationError{Field: "batch_id", Reason: "must not be empty"}
	}

	entries, err := uc.repo.ByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("ticket %s: %w", batchID, model.ErrNotFound)
	}

	return &model.Ticket{
		BatchID:    batchID,
		Kind:       entries[0].Kind,
		RecordedAt: entries[0].RecordedAt,
		Entries:    entries,
	}, nil
}

// Summary streams the whole ledger once, so it stays flat in memory however long
// the history grows.
func (uc *ledgerUseCase) Summary(ctx context.Context) (*dto.Summary, error) {
	count, err := uc.products.Count(ctx)
	if err != nil {
		return nil, err
	}

	s := &dto.Summary{
		ProductCount:   count,
		SalesTotal:     decimal.Zero,
		PurchasesTotal: decimal.Zero,
	}
	for e, err := range uc.repo.All(ctx) {
		if err != nil {
			uc.logger.Error("failed to read ledger", zap.Error(err))
			return nil, err
		}
		s.EntryCount++
		switch e.Kind {
		case model.KindSale:
			s.SalesTotal = s.SalesTotal.Add(e.LineTotal)
		case model.KindPurchase:
			s.PurchasesTotal = s.PurchasesTotal.Add(e.LineTotal)
		}
	}
	return s, nil
}
