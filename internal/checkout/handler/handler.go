package handler

import (
	"context"
	"errors"

	posv1 "github.com/fekuna/omnipos-pos-ledger/api/posv1"
	"github.com/fekuna/omnipos-pos-ledger/internal/cart"
	"github.com/fekuna/omnipos-pos-ledger/internal/checkout"
	"github.com/fekuna/omnipos-pos-ledger/internal/grpcerr"
	ledgerH "github.com/fekuna/omnipos-pos-ledger/internal/ledger/handler"
	"github.com/fekuna/omnipos-pos-ledger/internal/locale"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/i18n"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	posv1.UnimplementedCheckoutServiceServer

	uc         checkout.UseCase
	translator *i18n.Translator
	logger     logger.ZapLogger
}

func NewCheckoutHandler(uc checkout.UseCase, translator *i18n.Translator, log logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:         uc,
		translator: translator,
		logger:     log,
	}
}

func (h *CheckoutHandler) CommitSale(ctx context.Context, req *posv1.CommitRequest) (*posv1.CommitResponse, error) {
	items, err := mapItems(model.KindSale, req.Items)
	if err != nil {
		return h.failure(ctx, err)
	}
	t, err := h.uc.CommitSale(ctx, items)
	if err != nil {
		return h.failure(ctx, err)
	}
	return &posv1.CommitResponse{Success: true, Ticket: ledgerH.MapTicketToAPI(t)}, nil
}

func (h *CheckoutHandler) CommitPurchase(ctx context.Context, req *posv1.CommitRequest) (*posv1.CommitResponse, error) {
	items, err := mapItems(model.KindPurchase, req.Items)
	if err != nil {
		return h.failure(ctx, err)
	}
	t, err := h.uc.CommitPurchase(ctx, items)
	if err != nil {
		return h.failure(ctx, err)
	}
	return &posv1.CommitResponse{Success: true, Ticket: ledgerH.MapTicketToAPI(t)}, nil
}

// failure turns a rejected cart into a response the cashier can read. Only a
// caller that went away before the commit started gets an RPC error.
func (h *CheckoutHandler) failure(ctx context.Context, err error) (*posv1.CommitResponse, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, grpcerr.Status(err)
	}

	reason := err.Error()
	id, data := reasonMessage(err)
	if h.translator != nil {
		msg, terr := h.translator.Localize(locale.GetLocale(ctx), id, data)
		if terr != nil {
			h.logger.Warn("failed to localize commit failure", zap.String("message_id", id), zap.Error(terr))
		} else {
			reason = msg
		}
	}

	return &posv1.CommitResponse{
		Success: false,
		Code:    grpcerr.Code(err).String(),
		Reason:  reason,
	}, nil
}

// mapItems builds the request lines into a cart of the given kind, so each line
// is checked against the cart's rules before the commit is attempted.
func mapItems(kind model.MovementKind, in []*posv1.LineItem) ([]model.LineItem, error) {
	c, err := cart.New(kind)
	if err != nil {
		return nil, err
	}

	for i, li := range in {
		if li == nil {
			return nil, &model.LineError{Line: i + 1, Err: &model.ValidationError{Field: "item", Reason: "must not be null"}}
		}

		item := model.LineItem{ProductID: li.ProductID, Quantity: li.Quantity, UnitPrice: li.UnitPrice}
		if li.NewProduct != nil {
			id := model.ProductIdentity{
				Category: li.NewProduct.Category,
				Name:     li.NewProduct.Name,
				Variant:  li.NewProduct.Variant,
			}.Normalize()
			item.ProductID = 0
			item.NewProduct = &id
		}

		if err := c.Add(item); err != nil {
			return nil, &model.LineError{Line: i + 1, Product: productLabel(li), Err: err}
		}
	}
	return c.Items(), nil
}

func productLabel(li *posv1.LineItem) string {
	if li.NewProduct != nil {
		return li.NewProduct.Name
	}
	return ""
}
