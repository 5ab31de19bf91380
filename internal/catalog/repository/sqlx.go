package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-pos-ledger/internal/catalog"
	"github.com/fekuna/omnipos-pos-ledger/internal/catalog/dto"
	"github.com/fekuna/omnipos-pos-ledger/internal/model"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const productColumns = `id, category, name, variant, quantity, price`

// SQLRepository works against a *sqlx.DB or, through WithTx, an open *sqlx.Tx.
// Queries are written with ? placeholders and rebound for the driver.
type SQLRepository struct {
	DB sqlx.ExtContext
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) WithTx(tx *sqlx.Tx) catalog.Repository {
	return &SQLRepository{DB: tx}
}

func (r *SQLRepository) List(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	conditions := []string{}
	args := []interface{}{}
	fold := func(expr string) string { return database.FoldExpr(r.DB.DriverName(), expr) }

	if f != nil {
		if q := strings.TrimSpace(f.Query); q != "" {
			pattern := "%" + database.EscapeLike(q) + "%"
			conditions = append(conditions, fmt.Sprintf(`(%s LIKE %s ESCAPE '\' OR %s LIKE %s ESCAPE '\')`,
				fold("name"), fold("?"), fold("category"), fold("?")))
			args = append(args, pattern, pattern)
		}
		if f.InStockOnly {
			conditions = append(conditions, "quantity > 0")
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := "SELECT " + productColumns + " FROM products" + whereClause + " ORDER BY " + fold("name") + " ASC, id ASC"

	products := []model.Product{}
	if err := sqlx.SelectContext(ctx, r.DB, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, storageError(err)
	}
	return products, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	query := "SELECT " + productColumns + " FROM products WHERE id = ?"
	err := sqlx.GetContext(ctx, r.DB, &product, r.DB.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return &product, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.DB, &count, "SELECT count(*) FROM products"); err != nil {
		return 0, storageError(err)
	}
	return count, nil
}

func (r *SQLRepository) Create(ctx context.Context, p *model.Product) error {
	query, args, err := r.DB.BindNamed(`
        INSERT INTO products (category, name, variant, quantity, price)
        VALUES (:category, :name, :variant, :quantity, :price)
        RETURNING id
    `, p)
	if err != nil {
		return err
	}

	if err := r.DB.QueryRowxContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return storageError(err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, p *model.Product) error {
	query, args, err := r.DB.BindNamed(`
        UPDATE products
        SET category = :category,
            name = :name,
            variant = :variant,
            quantity = :quantity,
            price = :price
        WHERE id = :id
    `, p)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return storageError(err)
	}
	return expectOneRow(res, p.ID)
}

func (r *SQLRepository) IncrementStock(ctx context.Context, id, delta int64, newPrice decimal.Decimal) error {
	query := `UPDATE products SET quantity = quantity + ?, price = ? WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), delta, newPrice, id)
	if err != nil {
		return storageError(err)
	}
	return expectOneRow(res, id)
}

// DecrementStock checks and subtracts in one statement, so no other writer can
// slip in between the stock read and the write.
func (r *SQLRepository) DecrementStock(ctx context.Context, id, delta int64) error {
	query := `UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), delta, id, delta)
	if err != nil {
		return storageError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return storageError(err)
	}
	if rows > 0 {
		return nil
	}

	// Nothing matched: either the product is gone or the stock is short.
	var exists int
	err = sqlx.GetContext(ctx, r.DB, &exists, r.DB.Rebind(`SELECT count(*) FROM products WHERE id = ?`), id)
	if err != nil {
		return storageError(err)
	}
	if exists == 0 {
		return fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	return fmt.Errorf("product %d: %w", id, model.ErrInsufficientStock)
}

func expectOneRow(res sql.Result, id int64) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return storageError(err)
	}
	if rows == 0 {
		return fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	return nil
}

func storageError(err error) error {
	err = database.Classify(err)
	switch {
	case errors.Is(err, database.ErrUniqueViolation):
		return fmt.Errorf("%w: %w", model.ErrDuplicateIdentity, err)
	case errors.Is(err, database.ErrBusy):
		return fmt.Errorf("%w: %w", model.ErrStorageBusy, err)
	}
	return fmt.Errorf("%w: %w", model.ErrStorage, err)
}
