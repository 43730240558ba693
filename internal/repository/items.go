package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/coffeehub/coffeehub/internal/models"
)

// PostgresItemRepository implements item persistence against a
// PostgreSQL database.
type PostgresItemRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresItemRepository creates a new PostgresItemRepository with
// the given database connection.
func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{DB: db}
}

// GetAll returns every item.
func (r *PostgresItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, amount, price FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("GetAll items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetAll items: %w", err)
	}
	return items, nil
}

// GetByID returns the item with the given id, or (nil, nil) when no
// such item exists.
func (r *PostgresItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT id, name, amount, price FROM items WHERE id = $1`, id)
	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// scanItem reads one item row, mapping a NULL amount to nil (unlimited
// stock).
func scanItem(scan func(...any) error) (models.Item, error) {
	var item models.Item
	var amount sql.NullInt64
	var price decimal.Decimal
	if err := scan(&item.ID, &item.Name, &amount, &price); err != nil {
		if err == sql.ErrNoRows {
			return item, err
		}
		return item, fmt.Errorf("scan item: %w", err)
	}
	if amount.Valid {
		item.Amount = &amount.Int64
	}
	item.Price = price
	return item, nil
}

// HasItemWithID reports whether an item with the given id exists.
func (r *PostgresItemRepository) HasItemWithID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}

// Insert creates a new item record.
func (r *PostgresItemRepository) Insert(ctx context.Context, item models.Item) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO items (id, name, amount, price) VALUES ($1, $2, $3, $4)
	`, item.ID, item.Name, nullableAmount(item.Amount), item.Price)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update replaces the item's name, stock, and price.
func (r *PostgresItemRepository) Update(ctx context.Context, id, name string, amount *int64, price decimal.Decimal) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE items SET name = $2, amount = $3, price = $4 WHERE id = $1
	`, id, name, nullableAmount(amount), price)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// RemoveByID deletes the item. Ledger entries keep their snapshot of
// its id and name.
func (r *PostgresItemRepository) RemoveByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}

// UpdateAmount adjusts the item's stock by delta. The guard on a
// non-NULL amount makes the write a no-op for unlimited items and for
// items that no longer exist; neither case is an error.
func (r *PostgresItemRepository) UpdateAmount(ctx context.Context, id string, delta int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE items SET amount = amount + $2 WHERE id = $1 AND amount IS NOT NULL
	`, id, delta)
	if err != nil {
		return fmt.Errorf("update item amount: %w", err)
	}
	return nil
}

// nullableAmount maps a nil stock pointer to a SQL NULL.
func nullableAmount(amount *int64) sql.NullInt64 {
	if amount == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *amount, Valid: true}
}
