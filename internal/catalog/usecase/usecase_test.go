package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-pos-ledger/internal/catalog"
	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/repository"
	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/usecase"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database/dbtest"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) catalog.UseCase {
	db := dbtest.New(t)
	return usecase.NewCatalogUseCase(repository.NewSQLRepository(db.DB), logger.NewNop())
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	t.Run("Trims identity fields", func(t *testing.T) {
		p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
			Category: "  Shirt ",
			Name:     " X",
			Variant:  "M  ",
			Quantity: 10,
			Price:    decimal.RequireFromString("5.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, model.ProductIdentity{Category: "Shirt", Name: "X", Variant: "M"}, p.Identity())
		assert.NotZero(t, p.ID)
	})

	t.Run("Duplicate after trimming", func(t *testing.T) {
		_, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
			Category: "Shirt", Name: "X ", Variant: "M", Quantity: 1, Price: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, model.ErrDuplicateIdentity)
	})

	tests := []struct {
		name  string
		input dto.CreateProductInput
		field string
	}{
		{"Empty name", dto.CreateProductInput{Category: "Shirt", Name: "   ", Variant: "M"}, "name"},
		{"Empty category", dto.CreateProductInput{Name: "Y", Variant: "M"}, "category"},
		{"Empty variant", dto.CreateProductInput{Category: "Shirt", Name: "Y"}, "variant"},
		{"Negative quantity", dto.CreateProductInput{Category: "Shirt", Name: "Y", Variant: "M", Quantity: -1}, "quantity"},
		{"Negative price", dto.CreateProductInput{Category: "Shirt", Name: "Y", Variant: "M", Price: decimal.NewFromInt(-1)}, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateProduct(ctx, &tt.input)
			require.ErrorIs(t, err, model.ErrValidation)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestGetProductAndPrice(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		Category: "Shirt", Name: "A", Variant: "M", Quantity: 5, Price: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	got, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A - Shirt (M)", got.DisplayName())

	_, err = uc.GetProduct(ctx, p.ID+100)
	assert.ErrorIs(t, err, model.ErrNotFound)

	price, err := uc.GetPrice(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(10)))

	price, err = uc.GetPrice(ctx, p.ID+100)
	require.NoError(t, err)
	assert.True(t, price.IsZero())
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	p, err := uc.CreateProduct(ctx, &dto.CreateProductInput{
		Category: "Shirt", Name: "A", Variant: "M", Quantity: 5, Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID: p.ID, Category: "Shirt", Name: " A2 ", Variant: "M", Quantity: 8, Price: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)

	listed, err := uc.ListProducts(ctx, &dto.ProductFilters{Query: "a2"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(8), listed[0].Quantity)

	_, err = uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID: p.ID + 100, Category: "Shirt", Name: "B", Variant: "M",
	})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = uc.UpdateProduct(ctx, &dto.UpdateProductInput{Category: "Shirt", Name: "B", Variant: "M"})
	assert.ErrorIs(t, err, model.ErrValidation)
}
