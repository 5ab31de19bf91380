package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/fekuna/omnipos-pos-ledger/internal/ledger"
	"github.com/fekuna/omnipos-pos-ledger/internal/ledger/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database"
	"github.com/jmoiron/sqlx"
)

const entryColumns = `id, batch_id, product_id, product_name, kind, quantity, unit_price, line_total, recorded_at`

type SQLRepository struct {
	DB sqlx.ExtContext
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) WithTx(tx *sqlx.Tx) ledger.Repository {
	return &SQLRepository{DB: tx}
}

func (r *SQLRepository) Append(ctx context.Context, e *model.LedgerEntry) error {
	query, args, err := r.DB.BindNamed(`
        INSERT INTO history (
            batch_id, product_id, product_name, kind,
            quantity, unit_price, line_total, recorded_at
        )
        VALUES (
            :batch_id, :product_id, :product_name, :kind,
            :quantity, :unit_price, :line_total, :recorded_at
        )
        RETURNING id
    `, e)
	if err != nil {
		return err
	}

	if err := r.DB.QueryRowxContext(ctx, query, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", storageError(err))
	}
	return nil
}

func (r *SQLRepository) All(ctx context.Context) iter.Seq2[model.LedgerEntry, error] {
	return func(yield func(model.LedgerEntry, error) bool) {
		rows, err := r.DB.QueryxContext(ctx, "SELECT "+entryColumns+" FROM history ORDER BY id DESC")
		if err != nil {
			yield(model.LedgerEntry{}, storageError(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var e model.LedgerEntry
			if err := rows.StructScan(&e); err != nil {
				yield(model.LedgerEntry{}, storageError(err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.LedgerEntry{}, storageError(err))
		}
	}
}

func (r *SQLRepository) List(ctx context.Context, f *dto.MovementFilters) ([]model.LedgerEntry, int, error) {
	if f == nil {
		f = &dto.MovementFilters{}
	}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BatchID != "" {
		conditions = append(conditions, "batch_id = :batch_id")
		args["batch_id"] = f.BatchID
	}
	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = string(f.Kind)
	}
	if f.ProductID > 0 {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery, countArgs, err := r.bindNamed("SELECT count(*) FROM history"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, r.DB, &count, countQuery, countArgs...); err != nil {
		return nil, 0, storageError(err)
	}

	query := "SELECT " + entryColumns + " FROM history" + whereClause + " ORDER BY id DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	query, queryArgs, err := r.bindNamed(query, args)
	if err != nil {
		return nil, 0, err
	}

	items := []model.LedgerEntry{}
	if err := sqlx.SelectContext(ctx, r.DB, &items, query, queryArgs...); err != nil {
		return nil, 0, storageError(err)
	}
	return items, count, nil
}

func (r *SQLRepository) ByBatch(ctx context.Context, batchID string) ([]model.LedgerEntry, error) {
	query := "SELECT " + entryColumns + " FROM history WHERE batch_id = ? ORDER BY id ASC"

	items := []model.LedgerEntry{}
	if err := sqlx.SelectContext(ctx, r.DB, &items, r.DB.Rebind(query), batchID); err != nil {
		return nil, storageError(err)
	}
	return items, nil
}

func (r *SQLRepository) bindNamed(query string, args map[string]interface{}) (string, []interface{}, error) {
	q, a, err := sqlx.Named(query, args)
	if err != nil {
		return "", nil, err
	}
	return r.DB.Rebind(q), a, nil
}

func storageError(err error) error {
	err = database.Classify(err)
	if errors.Is(err, database.ErrBusy) {
		return fmt.Errorf("%w: %w", model.ErrStorageBusy, err)
	}
	return fmt.Errorf("%w: %w", model.ErrStorage, err)
}
