package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-pos-ledger/internal/catalog"
	"github.com/fekuna/omnipos-pos-ledger/internal/checkout"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database"
	"github.com/fekuna/omnipos-pos-ledger/pkg/lock"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type checkoutUseCase struct {
	tx       checkout.TxRunner
	products catalog.Repository
	entries  ledger.Repository
	locker   lock.Locker
	logger   logger.ZapLogger
	now      func() time.Time
}

type Option func(*checkoutUseCase)

// WithClock replaces time.Now as the source of batch timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *checkoutUseCase) {
		uc.now = now
	}
}

func NewCheckoutUseCase(
	tx checkout.TxRunner,
	products catalog.Repository,
	entries ledger.Repository,
	locker lock.Locker,
	log logger.ZapLogger,
	opts ...Option,
) checkout.UseCase {
	uc := &checkoutUseCase{
		tx:       tx,
		products: products,
		entries:  entries,
		locker:   locker,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// batch is the state shared by every line of one commit.
type batch struct {
	id         string
	kind       model.MovementKind
	recordedAt string
	products   catalog.Repository
	entries    ledger.Repository
	ticket     *model.Ticket
}

func (b *batch) record(ctx context.Context, productID int64, name string, item model.LineItem) error {
	e := &model.LedgerEntry{
		BatchID:     b.id,
		ProductID:   productID,
		ProductName: name,
		Kind:        b.kind,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LineTotal:   item.Total(),
		RecordedAt:  b.recordedAt,
	}
	if err := b.entries.Append(ctx, e); err != nil {
		return err
	}
	b.ticket.Entries = append(b.ticket.Entries, *e)
	return nil
}

func (uc *checkoutUseCase) CommitSale(ctx context.Context, items []model.LineItem) (*model.Ticket, error) {
	return uc.commit(ctx, model.KindSale, items, applySale)
}

func (uc *checkoutUseCase) CommitPurchase(ctx context.Context, items []model.LineItem) (*model.Ticket, error) {
	return uc.commit(ctx, model.KindPurchase, items, applyPurchase)
}

// applySale stops at the first line that cannot be served; the remaining lines
// are not checked.
func applySale(ctx context.Context, b *batch, line int, item model.LineItem) error {
	p, err := b.products.FindByID(ctx, item.ProductID)
	if err != nil {
		return &model.LineError{Line: line, Product: productRef(item.ProductID), Err: err}
	}
	if p == nil {
		return &model.LineError{Line: line, Product: productRef(item.ProductID), Err: model.ErrNotFound}
	}

	if err := b.products.DecrementStock(ctx, p.ID, item.Quantity); err != nil {
		return &model.LineError{Line: line, Product: p.Name, Err: err}
	}
	return b.record(ctx, p.ID, p.DisplayName(), item)
}

func applyPurchase(ctx context.Context, b *batch, line int, item model.LineItem) error {
	if item.IsNew() {
		id := item.NewProduct.Normalize()
		p := &model.Product{
			Category: id.Category,
			Name:     id.Name,
			Variant:  id.Variant,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		}
		if err := b.products.Create(ctx, p); err != nil {
			return &model.LineError{Line: line, Product: id.String(), Err: err}
		}
		return b.record(ctx, p.ID, p.Name, item)
	}

	p, err := b.products.FindByID(ctx, item.ProductID)
	if err != nil {
		return &model.LineError{Line: line, Product: productRef(item.ProductID), Err: err}
	}
	if p == nil {
		return &model.LineError{Line: line, Product: productRef(item.ProductID), Err: model.ErrNotFound}
	}

	if err := b.products.IncrementStock(ctx, p.ID, item.Quantity, item.UnitPrice); err != nil {
		return &model.LineError{Line: line, Product: p.Name, Err: err}
	}
	return b.record(ctx, p.ID, p.DisplayName(), item)
}

type applyFunc func(ctx context.Context, b *batch, line int, item model.LineItem) error

func (uc *checkoutUseCase) commit(ctx context.Context, kind model.MovementKind, items []model.LineItem, apply applyFunc) (*model.Ticket, error) {
	log := uc.logger.With(zap.String("kind", string(kind)), zap.Int("lines", len(items)))

	if err := validate(kind, items); err != nil {
		log.Warn("commit rejected", zap.Error(err))
		return nil, err
	}

	now := uc.now()
	b := &batch{
		id:         newBatchID(kind, now),
		kind:       kind,
		recordedAt: now.Format(model.TimestampLayout),
	}
	log = log.With(zap.String("batch_id", b.id))

	release, err := uc.locker.Acquire(ctx)
	if err != nil {
		if errors.Is(err, lock.ErrTimeout) {
			err = fmt.Errorf("%w: %w", model.ErrStorageBusy, err)
		}
		log.Warn("commit failed", zap.Error(err))
		return nil, err
	}
	defer release()

	// Once the lock is held the commit runs to completion or rollback; a caller
	// going away must not leave it half applied.
	txCtx := context.WithoutCancel(ctx)

	err = uc.tx.WithTx(txCtx, func(tx *sqlx.Tx) error {
		b.products = uc.products.WithTx(tx)
		b.entries = uc.entries.WithTx(tx)
		b.ticket = &model.Ticket{
			BatchID:    b.id,
			Kind:       kind,
			RecordedAt: b.recordedAt,
			Entries:    make([]model.LedgerEntry, 0, len(items)),
		}

		for i, item := range items {
			if err := apply(txCtx, b, i+1, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = classify(err)
		log.Warn("commit failed", zap.Error(err))
		return nil, err
	}

	log.Info("commit succeeded", zap.String("total", b.ticket.Total().StringFixed(2)))
	return b.ticket, nil
}

func validate(kind model.MovementKind, items []model.LineItem) error {
	if len(items) == 0 {
		return &model.ValidationError{Field: "items", Reason: "cart is empty"}
	}
	for i, item := range items {
		if err := item.ValidateFor(kind); err != nil {
			return &model.LineError{Line: i + 1, Product: lineRef(item), Err: err}
		}
	}
	return nil
}

// classify maps errors surfacing from the unit of work itself (begin, commit)
// onto the domain taxonomy. Errors already in the taxonomy pass through.
func classify(err error) error {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrDuplicateIdentity),
		errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrStorageBusy),
		errors.Is(err, model.ErrStorage):
		return err
	case errors.Is(err, database.ErrBusy):
		return fmt.Errorf("%w: %w", model.ErrStorageBusy, err)
	}
	return fmt.Errorf("%w: %w", model.ErrStorage, err)
}

// newBatchID renders KIND-yyyymmdd-hhmmss-xxxxxxxx. The random suffix keeps two
// commits within the same second apart.
func newBatchID(kind model.MovementKind, t time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", kind, t.Format("20060102-150405"), suffix)
}

func productRef(id int64) string {
	return fmt.Sprintf("#%d", id)
}

func lineRef(item model.LineItem) string {
	if item.IsNew() {
		return item.NewProduct.String()
	}
	return productRef(item.ProductID)
}
