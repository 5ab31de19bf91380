package repository_test

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/repository"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database/dbtest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *repository.SQLRepository {
	return repository.NewSQLRepository(dbtest.New(t).DB)
}

func seed(t *testing.T, repo *repository.SQLRepository, category, name, variant string, qty int64, price string) *model.Product {
	t.Helper()
	p := &model.Product{
		Category: category,
		Name:     name,
		Variant:  variant,
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
	}
	require.NoError(t, repo.Create(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)

	p := seed(t, repo, "Shirt", "Polo", "M", 10, "12.50")

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Polo", found.Name)
	assert.Equal(t, int64(10), found.Quantity)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("12.5")))

	t.Run("Fail on duplicate identity", func(t *testing.T) {
		dup := &model.Product{Category: "Shirt", Name: "Polo", Variant: "M", Quantity: 1, Price: decimal.NewFromInt(1)}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, model.ErrDuplicateIdentity)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Same name with another variant is a new product", func(t *testing.T) {
		seed(t, repo, "Shirt", "Polo", "L", 1, "12.50")
	})
}

func TestFindByIDMissing(t *testing.T) {
	found, err := setup(t).FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)

	seed(t, repo, "Pants", "Jeans", "W", 0, "40")
	seed(t, repo, "Shirt", "Tank", "M", 3, "8")
	seed(t, repo, "Shirt", "Blouse", "W", 5, "20")
	seed(t, repo, "Promo", "100%_cotton", "U", 1, "3")

	names := func(ps []model.Product) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}

	t.Run("No filter returns everything ordered by name", func(t *testing.T) {
		ps, err := repo.List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_cotton", "Blouse", "Jeans", "Tank"}, names(ps))
	})

	t.Run("Filter matches name or category case-insensitively", func(t *testing.T) {
		ps, err := repo.List(ctx, &dto.ProductFilters{Query: "sHiRt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Blouse", "Tank"}, names(ps))

		ps, err = repo.List(ctx, &dto.ProductFilters{Query: "jea"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Jeans"}, names(ps))
	})

	t.Run("Wildcards and quotes in the filter match literally", func(t *testing.T) {
		ps, err := repo.List(ctx, &dto.ProductFilters{Query: "%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_cotton"}, names(ps))

		ps, err = repo.List(ctx, &dto.ProductFilters{Query: "' OR '1'='1"})
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("In stock only", func(t *testing.T) {
		ps, err := repo.List(ctx, &dto.ProductFilters{InStockOnly: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_cotton", "Blouse", "Tank"}, names(ps))
	})

	t.Run("Repeated reads are identical", func(t *testing.T) {
		first, err := repo.List(ctx, nil)
		require.NoError(t, err)
		second, err := repo.List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestListUnicode(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)

	seed(t, repo, "Juguetes", "CAMIÓN", "Rojo", 2, "15")
	seed(t, repo, "Peluches", "Ñandú", "Chico", 4, "9")
	seed(t, repo, "ACCESORIOS", "bufanda", "Lana", 1, "7")
	seed(t, repo, "Juguetes", "avión", "Azul", 3, "12")

	names := func(ps []model.Product) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Lower case query finds upper case accented name", "camión", []string{"CAMIÓN"}},
		{"Upper case query finds mixed case name", "ÑANDÚ", []string{"Ñandú"}},
		{"Partial accented query", "ÑAN", []string{"Ñandú"}},
		{"Category matches regardless of case", "accesorios", []string{"bufanda"}},
		{"Accents are not stripped", "camion", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := repo.List(ctx, &dto.ProductFilters{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(ps))
		})
	}

	t.Run("Ordering ignores case", func(t *testing.T) {
		ps, err := repo.List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"avión", "bufanda", "CAMIÓN", "Ñandú"}, names(ps))
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)
	p := seed(t, repo, "Shirt", "Polo", "M", 10, "12.50")
	other := seed(t, repo, "Shirt", "Polo", "L", 2, "12.50")

	t.Run("Success", func(t *testing.T) {
		p.Name = "Polo Classic"
		p.Quantity = 7
		p.Price = decimal.RequireFromString("15")
		require.NoError(t, repo.Update(ctx, p))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Polo Classic", found.Name)
		assert.Equal(t, int64(7), found.Quantity)
		assert.True(t, found.Price.Equal(decimal.NewFromInt(15)))
	})

	t.Run("Fail on missing id", func(t *testing.T) {
		missing := *p
		missing.ID = 999
		assert.ErrorIs(t, repo.Update(ctx, &missing), model.ErrNotFound)
	})

	t.Run("Fail on identity clash", func(t *testing.T) {
		clash := *other
		clash.Name = "Polo Classic"
		clash.Variant = "M"
		assert.ErrorIs(t, repo.Update(ctx, &clash), model.ErrDuplicateIdentity)
	})
}

func TestStockMovements(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)
	p := seed(t, repo, "Shirt", "Polo", "M", 5, "10")

	t.Run("Increment adds stock and replaces price", func(t *testing.T) {
		require.NoError(t, repo.IncrementStock(ctx, p.ID, 3, decimal.RequireFromString("11.25")))
		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(8), found.Quantity)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("11.25")))
	})

	t.Run("Decrement down to zero", func(t *testing.T) {
		require.NoError(t, repo.DecrementStock(ctx, p.ID, 8))
		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), found.Quantity)
	})

	t.Run("Fail on insufficient stock", func(t *testing.T) {
		assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, 1), model.ErrInsufficientStock)
		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), found.Quantity)
	})

	t.Run("Fail on missing product", func(t *testing.T) {
		assert.ErrorIs(t, repo.DecrementStock(ctx, 999, 1), model.ErrNotFound)
		assert.ErrorIs(t, repo.IncrementStock(ctx, 999, 1, decimal.Zero), model.ErrNotFound)
	})
}
