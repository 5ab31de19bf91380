package handler

import (
	"context"

	posv1 "github.com/fekuna/omnipos-pos-ledger/api/posv1"
	"github.com/fekuna/omnipos-pos-ledger/internal/grpcerr"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

type LedgerHandler struct {
	posv1.UnimplementedLedgerServiceServer

	uc     ledger.UseCase
	logger logger.ZapLogger
}

func NewLedgerHandler(uc ledger.UseCase, log logger.ZapLogger) *LedgerHandler {
	return &LedgerHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *LedgerHandler) ListEntries(ctx context.Context, req *posv1.ListEntriesRequest) (*posv1.ListEntriesResponse, error) {
	entries, count, err := h.uc.ListMovements(ctx, &dto.MovementFilters{
		BatchID:   req.BatchID,
		Kind:      model.MovementKind(req.Kind),
		ProductID: req.ProductID,
		Page:      int(req.Page),
		PageSize:  int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	return &posv1.ListEntriesResponse{
		Entries:  MapEntriesToAPI(entries),
		Total:    int32(count),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (h *LedgerHandler) GetTicket(ctx context.Context, req *posv1.GetTicketRequest) (*posv1.TicketResponse, error) {
	t, err := h.uc.GetTicket(ctx, req.BatchID)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &posv1.TicketResponse{Ticket: MapTicketToAPI(t)}, nil
}

func (h *LedgerHandler) GetSummary(ctx context.Context, _ *posv1.GetSummaryRequest) (*posv1.SummaryResponse, error) {
	s, err := h.uc.Summary(ctx)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &posv1.SummaryResponse{
		ProductCount:   int32(s.ProductCount),
		EntryCount:     int32(s.EntryCount),
		SalesTotal:     s.SalesTotal,
		PurchasesTotal: s.PurchasesTotal,
	}, nil
}

// StreamEntries sends the ledger row by row as it is read, most recent first.
func (h *LedgerHandler) StreamEntries(req *posv1.StreamEntriesRequest, stream grpc.ServerStreamingServer[posv1.LedgerEntry]) error {
	sent := int32(0)
	for e, err := range h.uc.ListAll(stream.Context()) {
		if err != nil {
			h.logger.Error("failed to stream ledger", zap.Error(err))
			return grpcerr.Status(err)
		}
		if err := stream.Send(MapEntryToAPI(&e)); err != nil {
			return err
		}
		sent++
		if req.Limit > 0 && sent >= req.Limit {
			break
		}
	}
	return nil
}

func MapEntryToAPI(e *model.LedgerEntry) *posv1.LedgerEntry {
	return &posv1.LedgerEntry{
		ID:          e.ID,
		BatchID:     e.BatchID,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Kind:        string(e.Kind),
		Quantity:    e.Quantity,
		UnitPrice:   e.UnitPrice,
		LineTotal:   e.LineTotal,
		RecordedAt:  e.RecordedAt,
	}
}

func MapEntriesToAPI(entries []model.LedgerEntry) []*posv1.LedgerEntry {
	out := make([]*posv1.LedgerEntry, len(entries))
	for i := range entries {
		out[i] = MapEntryToAPI(&entries[i])
	}
	return out
}

func MapTicketToAPI(t *model.Ticket) *posv1.Ticket {
	return &posv1.Ticket{
		BatchID:    t.BatchID,
		Kind:       string(t.Kind),
		RecordedAt: t.RecordedAt,
		Entries:    MapEntriesToAPI(t.Entries),
		Total:      t.Total(),
	}
}
