package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineConstructors(t *testing.T) {
	price := decimal.RequireFromString("10.00")
	shirt := model.ProductIdentity{Category: "Shirt", Name: "X", Variant: "M"}

	tests := []struct {
		name  string
		build func() (model.LineItem, error)
		field string
	}{
		{"Valid sale", func() (model.LineItem, error) { return model.NewSaleLine(1, 3, price) }, ""},
		{"Zero quantity", func() (model.LineItem, error) { return model.NewSaleLine(1, 0, price) }, "quantity"},
		{"Negative quantity", func() (model.LineItem, error) { return model.NewRestockLine(1, -2, price) }, "quantity"},
		{"Negative price", func() (model.LineItem, error) { return model.NewSaleLine(1, 1, price.Neg()) }, "unit_price"},
		{"Zero price is allowed", func() (model.LineItem, error) { return model.NewSaleLine(1, 1, decimal.Zero) }, ""},
		{"Sub-cent price", func() (model.LineItem, error) {
			return model.NewSaleLine(1, 3, decimal.RequireFromString("0.335"))
		}, "unit_price"},
		{"Trailing zeros past the scale are allowed", func() (model.LineItem, error) {
			return model.NewRestockLine(1, 3, decimal.RequireFromString("0.3400"))
		}, ""},
		{"Sub-cent price on a new product", func() (model.LineItem, error) {
			return model.NewProductLine(shirt, 1, decimal.RequireFromString("9.999"))
		}, "unit_price"},
		{"Missing product id", func() (model.LineItem, error) { return model.NewRestockLine(0, 1, price) }, "product_id"},
		{"Valid new product", func() (model.LineItem, error) { return model.NewProductLine(shirt, 10, price) }, ""},
		{"Blank name", func() (model.LineItem, error) {
			return model.NewProductLine(model.ProductIdentity{Category: "Shirt", Name: "  ", Variant: "M"}, 1, price)
		}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestLineTotal(t *testing.T) {
	l, err := model.NewSaleLine(1, 3, decimal.RequireFromString("0.10"))
	require.NoError(t, err)
	assert.Equal(t, "0.30", l.Total().StringFixed(2))
}

func TestNewProductLineNormalizes(t *testing.T) {
	l, err := model.NewProductLine(model.ProductIdentity{Category: " Shirt ", Name: "\tX", Variant: "M "}, 1, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, l.IsNew())
	assert.Equal(t, model.ProductIdentity{Category: "Shirt", Name: "X", Variant: "M"}, *l.NewProduct)
}

func TestProduct(t *testing.T) {
	p := model.Product{Category: "Shirt", Name: "Polo", Variant: "M", Quantity: 0, Price: decimal.Zero}
	require.NoError(t, p.Validate())
	assert.Equal(t, "Polo - Shirt (M)", p.DisplayName())
	assert.Equal(t, "Polo (Shirt, M)", p.Identity().String())

	p.Quantity = -1
	assert.ErrorIs(t, p.Validate(), model.ErrValidation)

	t.Run("Price keeps at most two decimal places", func(t *testing.T) {
		p := model.Product{Category: "Shirt", Name: "Polo", Variant: "M", Price: decimal.RequireFromString("12.50")}
		require.NoError(t, p.Validate())

		p.Price = decimal.RequireFromString("0.335")
		var verr *model.ValidationError
		require.ErrorAs(t, p.Validate(), &verr)
		assert.Equal(t, "price", verr.Field)
	})
}

func TestLineValidateFor(t *testing.T) {
	shirt := model.ProductIdentity{Category: "Shirt", Name: "X", Variant: "M"}
	newLine, err := model.NewProductLine(shirt, 1, decimal.NewFromInt(5))
	require.NoError(t, err)
	saleLine, err := model.NewSaleLine(1, 1, decimal.NewFromInt(5))
	require.NoError(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, newLine.ValidateFor(model.KindSale), &verr)
	assert.Equal(t, "product_id", verr.Field)

	assert.NoError(t, newLine.ValidateFor(model.KindPurchase))
	assert.NoError(t, saleLine.ValidateFor(model.KindSale))
	assert.ErrorIs(t, model.LineItem{ProductID: 1}.ValidateFor(model.KindPurchase), model.ErrValidation)
}

func TestLineError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("product 1: %w", model.ErrInsufficientStock), "insufficient stock for A"},
		{model.ErrDuplicateIdentity, "product A already exists"},
		{model.ErrNotFound, "line 2: product A not found"},
		{model.ErrStorage, "line 2: storage error"},
	}
	for _, tt := range tests {
		err := &model.LineError{Line: 2, Product: "A", Err: tt.err}
		assert.Equal(t, tt.want, err.Error())
		assert.True(t, errors.Is(err, tt.err))
	}
}

func TestTicketTotal(t *testing.T) {
	ticket := model.Ticket{Entries: []model.LedgerEntry{
		{LineTotal: decimal.RequireFromString("30.00")},
		{LineTotal: decimal.RequireFromString("0.05")},
	}}
	assert.Equal(t, "30.05", ticket.Total().StringFixed(2))

	e := model.LedgerEntry{RecordedAt: "2024-05-01 10:11:12"}
	ts, err := e.Time()
	require.NoError(t, err)
	assert.Equal(t, 11, ts.Minute())
}
