package handler

import (
	"context"

	posv1 "github.com/fekuna/omnipos-pos-ledger/api/posv1"
	"github.com/fekuna/omnipos-pos-ledger/internal/catalog"
	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/grpcerr"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	posv1.UnimplementedCatalogServiceServer

	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) ListProducts(ctx context.Context, req *posv1.ListProductsRequest) (*posv1.ListProductsResponse, error) {
	products, err := h.uc.ListProducts(ctx, &dto.ProductFilters{
		Query:       req.Query,
		InStockOnly: req.InStockOnly,
	})
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return nil, grpcerr.Status(err)
	}

	out := make([]*posv1.Product, len(products))
	for i := range products {
		out[i] = MapProductToAPI(&products[i])
	}
	return &posv1.ListProductsResponse{Products: out}, nil
}

func (h *CatalogHandler) GetProduct(ctx context.Context, req *posv1.GetProductRequest) (*posv1.ProductResponse, error) {
	p, err := h.uc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &posv1.ProductResponse{Product: MapProductToAPI(p)}, nil
}

func (h *CatalogHandler) GetPrice(ctx context.Context, req *posv1.GetPriceRequest) (*posv1.GetPriceResponse, error) {
	price, err := h.uc.GetPrice(ctx, req.ID)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &posv1.GetPriceResponse{Price: price}, nil
}

func (h *CatalogHandler) CreateProduct(ctx context.Context, req *posv1.CreateProductRequest) (*posv1.ProductResponse, error) {
	p, err := h.uc.CreateProduct(ctx, &dto.CreateProductInput{
		Category: req.Category,
		Name:     req.Name,
		Variant:  req.Variant,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &posv1.ProductResponse{Product: MapProductToAPI(p)}, nil
}

func (h *CatalogHandler) UpdateProduct(ctx context.Context, req *posv1.UpdateProductRequest) (*posv1.ProductResponse, error) {
	p, err := h.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:       req.ID,
		Category: req.Category,
		Name:     req.Name,
		Variant:  req.Variant,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &posv1.ProductResponse{Product: MapProductToAPI(p)}, nil
}

func MapProductToAPI(p *model.Product) *posv1.Product {
	return &posv1.Product{
		ID:          p.ID,
		Category:    p.Category,
		Name:        p.Name,
		Variant:     p.Variant,
		Quantity:    p.Quantity,
		Price:       p.Price,
		DisplayName: p.DisplayName(),
	}
}
