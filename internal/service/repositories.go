// Package service implements the domain operations of the coffee ledger:
// user and item lifecycle, login, and the funding/purchase/refund
// transaction engine. Every operation returns a result.Result whose
// status maps directly to an HTTP status code; persistence is delegated
// to the repository interfaces defined here.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/coffeehub/coffeehub/internal/models"
)

// UserRepository defines the persistence operations required by the user
// and transaction services.
type UserRepository interface {
	// GetAll returns every user including their ledgers.
	GetAll(ctx context.Context) ([]models.User, error)
	// GetByID returns the user with the given id including their ledger,
	// or (nil, nil) when no such user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// HasUserWithID reports whether a user with the given id exists.
	HasUserWithID(ctx context.Context, id string) (bool, error)
	// Insert creates a new user record.
	Insert(ctx context.Context, user models.User) error
	// Update replaces the user's name, admin flag, and password hash.
	Update(ctx context.Context, id, name string, isAdmin bool, passwordHash string) error
	// RemoveByID deletes the user and, via cascade, their ledger.
	RemoveByID(ctx context.Context, id string) error
	// AddTransaction appends one entry to the user's ledger.
	AddTransaction(ctx context.Context, id string, t models.Transaction) error
	// AddProfileImage stores or replaces the user's profile image.
	AddProfileImage(ctx context.Context, id string, img models.ProfileImage) error
	// GetProfileImage returns the user's profile image, or (nil, nil)
	// when none is set.
	GetProfileImage(ctx context.Context, id string) (*models.ProfileImage, error)
	// RemoveProfileImage deletes the user's profile image if present.
	RemoveProfileImage(ctx context.Context, id string) error
}

// ItemRepository defines the persistence operations required by the item
// and transaction services.
type ItemRepository interface {
	// GetAll returns every item.
	GetAll(ctx context.Context) ([]models.Item, error)
	// GetByID returns the item with the given id, or (nil, nil) when no
	// such item exists.
	GetByID(ctx context.Context, id string) (*models.Item, error)
	// HasItemWithID reports whether an item with the given id exists.
	HasItemWithID(ctx context.Context, id string) (bool, error)
	// Insert creates a new item record.
	Insert(ctx context.Context, item models.Item) error
	// Update replaces the item's name, stock, and price.
	Update(ctx context.Context, id, name string, amount *int64, price decimal.Decimal) error
	// RemoveByID deletes the item.
	RemoveByID(ctx context.Context, id string) error
	// UpdateAmount adjusts the item's stock by delta. It is a no-op, not
	// an error, when the item has unlimited stock or no longer exists.
	UpdateAmount(ctx context.Context, id string, delta int64) error
}
