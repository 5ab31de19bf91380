package usecase_test

import (
	"context"
	"testing"

	catalogrepo "github.com/fekuna/omnipos-pos-ledger/internal/catalog/repository"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger/dto"
	ledgerrepo "github.com/fekuna/omnipos-pos-ledger/internal/ledger/repository"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger/usecase"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database/dbtest"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc       ledger.UseCase
	entries  *ledgerrepo.SQLRepository
	products *catalogrepo.SQLRepository
}

func setup(t *testing.T) *fixture {
	db := dbtest.New(t)
	f := &fixture{
		entries:  ledgerrepo.NewSQLRepository(db.DB),
		products: catalogrepo.NewSQLRepository(db.DB),
	}
	f.uc = usecase.NewLedgerUseCase(f.entries, f.products, logger.NewNop())
	return f
}

func (f *fixture) append(t *testing.T, batch string, kind model.MovementKind, qty int64, price string) {
	t.Helper()
	unit := decimal.RequireFromString(price)
	require.NoError(t, f.entries.Append(context.Background(), &model.LedgerEntry{
		BatchID:     batch,
		ProductID:   1,
		ProductName: "A - Shirt (M)",
		Kind:        kind,
		Quantity:    qty,
		UnitPrice:   unit,
		LineTotal:   unit.Mul(decimal.NewFromInt(qty)),
		RecordedAt:  "2024-05-01 10:00:00",
	}))
}

func TestGetTicket(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.append(t, "SALE-1", model.KindSale, 3, "10.00")
	f.append(t, "SALE-1", model.KindSale, 1, "0.99")

	ticket, err := f.uc.GetTicket(ctx, " SALE-1 ")
	require.NoError(t, err)
	assert.Equal(t, "SALE-1", ticket.BatchID)
	assert.Equal(t, model.KindSale, ticket.Kind)
	assert.Len(t, ticket.Entries, 2)
	assert.Equal(t, "30.99", ticket.Total().StringFixed(2))

	_, err = f.uc.GetTicket(ctx, "SALE-404")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.uc.GetTicket(ctx, "")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestListMovementsValidation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, _, err := f.uc.ListMovements(ctx, &dto.MovementFilters{Kind: "REFUND"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, _, err = f.uc.ListMovements(ctx, &dto.MovementFilters{PageSize: -1})
	assert.ErrorIs(t, err, model.ErrValidation)

	items, count, err := f.uc.ListMovements(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, count)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	s, err := f.uc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, s.ProductCount)
	assert.True(t, s.SalesTotal.IsZero())

	require.NoError(t, f.products.Create(ctx, &model.Product{
		Category: "Shirt", Name: "A", Variant: "M", Quantity: 2, Price: decimal.NewFromInt(10),
	}))
	f.append(t, "PURCHASE-1", model.KindPurchase, 5, "4.10")
	f.append(t, "SALE-1", model.KindSale, 3, "10.00")
	f.append(t, "SALE-2", model.KindSale, 1, "0.10")

	s, err = f.uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.ProductCount)
	assert.Equal(t, 3, s.EntryCount)
	assert.Equal(t, "30.10", s.SalesTotal.StringFixed(2))
	assert.Equal(t, "20.50", s.PurchasesTotal.StringFixed(2))
}
