// Package repository provides PostgreSQL persistence for users, their
// ledgers, profile images, and items.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/coffeehub/coffeehub/internal/models"
)

// PostgresUserRepository implements user and ledger persistence against
// a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with
// the given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetAll returns every user with their full ledger, in insertion order
// of the ledger entries.
func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, is_admin, COALESCE(password_hash, '') FROM users ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("GetAll users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	index := make(map[string]int)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.IsAdmin, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetAll users: %w", err)
	}

	txRows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, type, value, ts, COALESCE(item_id, ''), COALESCE(item_name, ''), COALESCE(amount, 0)
		FROM transactions ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("GetAll transactions: %w", err)
	}
	defer txRows.Close()

	for txRows.Next() {
		var userID string
		t, err := scanTransaction(txRows, &userID)
		if err != nil {
			return nil, err
		}
		if i, ok := index[userID]; ok {
			users[i].Transactions = append(users[i].Transactions, t)
		}
	}
	if err := txRows.Err(); err != nil {
		return nil, fmt.Errorf("GetAll transactions: %w", err)
	}
	return users, nil
}

// GetByID returns the user with the given id and their ledger, or
// (nil, nil) when no such user exists.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, is_admin, COALESCE(password_hash, '') FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.IsAdmin, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID user: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, type, value, ts, COALESCE(item_id, ''), COALESCE(item_name, ''), COALESCE(amount, 0)
		FROM transactions WHERE user_id = $1 ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("GetByID transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		t, err := scanTransaction(rows, &userID)
		if err != nil {
			return nil, err
		}
		u.Transactions = append(u.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByID transactions: %w", err)
	}
	return &u, nil
}

// scanTransaction reads one ledger row into a models.Transaction.
func scanTransaction(rows *sql.Rows, userID *string) (models.Transaction, error) {
	var t models.Transaction
	var kind string
	var value decimal.Decimal
	if err := rows.Scan(userID, &kind, &value, &t.Timestamp, &t.ItemID, &t.ItemName, &t.Amount); err != nil {
		return t, fmt.Errorf("scan transaction: %w", err)
	}
	t.Type = models.TransactionType(kind)
	t.Value = value
	return t, nil
}

// HasUserWithID reports whether a user with the given id exists.
func (r *PostgresUserRepository) HasUserWithID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}

// Insert creates a new user record. The ledger starts empty.
func (r *PostgresUserRepository) Insert(ctx context.Context, user models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, is_admin, password_hash) VALUES ($1, $2, $3, NULLIF($4, ''))
	`, user.ID, user.Name, user.IsAdmin, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update replaces the user's name, admin flag, and password hash.
func (r *PostgresUserRepository) Update(ctx context.Context, id, name string, isAdmin bool, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET name = $2, is_admin = $3, password_hash = NULLIF($4, '') WHERE id = $1
	`, id, name, isAdmin, passwordHash)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// RemoveByID deletes the user; the ledger and profile image rows cascade.
func (r *PostgresUserRepository) RemoveByID(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

// AddTransaction appends one entry to the user's ledger.
func (r *PostgresUserRepository) AddTransaction(ctx context.Context, id string, t models.Transaction) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO transactions (user_id, type, value, ts, item_id, item_name, amount)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
	`, id, string(t.Type), t.Value, t.Timestamp, t.ItemID, t.ItemName, t.Amount)
	if err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}
	return nil
}

// AddProfileImage stores or replaces the user's profile image.
func (r *PostgresUserRepository) AddProfileImage(ctx context.Context, id string, img models.ProfileImage) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profile_images (user_id, encoded_image, ts)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			encoded_image = EXCLUDED.encoded_image,
			ts = EXCLUDED.ts
	`, id, img.EncodedImage, img.Timestamp)
	if err != nil {
		return fmt.Errorf("add profile image: %w", err)
	}
	return nil
}

// GetProfileImage returns the user's profile image, or (nil, nil) when
// none is set.
func (r *PostgresUserRepository) GetProfileImage(ctx context.Context, id string) (*models.ProfileImage, error) {
	var img models.ProfileImage
	err := r.DB.QueryRowContext(ctx, `
		SELECT encoded_image, ts FROM profile_images WHERE user_id = $1
	`, id).Scan(&img.EncodedImage, &img.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile image: %w", err)
	}
	return &img, nil
}

// RemoveProfileImage deletes the user's profile image if present.
func (r *PostgresUserRepository) RemoveProfileImage(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM profile_images WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove profile image: %w", err)
	}
	return nil
}
