package catalog

import (
	"context"

	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Repository interface {
	List(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Count(ctx context.Context) (int, error)

	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error

	// Stock movements, used by the checkout engine inside a unit of work
	IncrementStock(ctx context.Context, id, delta int64, newPrice decimal.Decimal) error
	DecrementStock(ctx context.Context, id, delta int64) error

	WithTx(tx *sqlx.Tx) Repository
}
