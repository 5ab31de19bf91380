package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-pos-ledger/internal/catalog"
	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type catalogUseCase struct {
	repo   catalog.Repository
	logger logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	return uc.repo.List(ctx, filters)
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	return p, nil
}

// GetPrice returns the current price, or zero when the product no longer exists.
func (uc *catalogUseCase) GetPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if p == nil {
		return decimal.Zero, nil
	}
	return p.Price, nil
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	id := model.ProductIdentity{Category: input.Category, Name: input.Name, Variant: input.Variant}.Normalize()

	p := &model.Product{
		Category: id.Category,
		Name:     id.Name,
		Variant:  id.Variant,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Warn("failed to create product", zap.String("product", id.String()), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("product", id.String()))
	return p, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if input.ID <= 0 {
		return nil, &model.ValidationError{Field: "id", Reason: "must reference an existing product"}
	}

	id := model.ProductIdentity{Category: input.Category, Name: input.Name, Variant: input.Variant}.Normalize()

	p := &model.Product{
		ID:       input.ID,
		Category: id.Category,
		Name:     id.Name,
		Variant:  id.Variant,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		uc.logger.Warn("failed to update product", zap.Int64("product_id", p.ID), zap.Error(err))
		return nil, err
	}
	return p, nil
}
