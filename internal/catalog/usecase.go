package catalog

import (
	"context"

	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	GetPrice(ctx context.Context, id int64) (decimal.Decimal, error)
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
}
