package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/coffeehub/coffeehub/internal/models"
)

// mockUserRepo implements UserRepository with overridable func fields.
// Unset funcs behave as an empty store.
type mockUserRepo struct {
	GetAllFunc             func(ctx context.Context) ([]models.User, error)
	GetByIDFunc            func(ctx context.Context, id string) (*models.User, error)
	HasUserWithIDFunc      func(ctx context.Context, id string) (bool, error)
	InsertFunc             func(ctx context.Context, user models.User) error
	UpdateFunc             func(ctx context.Context, id, name string, isAdmin bool, passwordHash string) error
	RemoveByIDFunc         func(ctx context.Context, id string) error
	AddTransactionFunc     func(ctx context.Context, id string, t models.Transaction) error
	AddProfileImageFunc    func(ctx context.Context, id string, img models.ProfileImage) error
	GetProfileImageFunc    func(ctx context.Context, id string) (*models.ProfileImage, error)
	RemoveProfileImageFunc func(ctx context.Context, id string) error
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	if m.GetAllFunc == nil {
		return nil, nil
	}
	return m.GetAllFunc(ctx)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc == nil {
		return nil, nil
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) HasUserWithID(ctx context.Context, id string) (bool, error) {
	if m.HasUserWithIDFunc == nil {
		return false, nil
	}
	return m.HasUserWithIDFunc(ctx, id)
}

func (m *mockUserRepo) Insert(ctx context.Context, user models.User) error {
	if m.InsertFunc == nil {
		return nil
	}
	return m.InsertFunc(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, id, name string, isAdmin bool, passwordHash string) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, id, name, isAdmin, passwordHash)
}

func (m *mockUserRepo) RemoveByID(ctx context.Context, id string) error {
	if m.RemoveByIDFunc == nil {
		return nil
	}
	return m.RemoveByIDFunc(ctx, id)
}

func (m *mockUserRepo) AddTransaction(ctx context.Context, id string, t models.Transaction) error {
	if m.AddTransactionFunc == nil {
		return nil
	}
	return m.AddTransactionFunc(ctx, id, t)
}

func (m *mockUserRepo) AddProfileImage(ctx context.Context, id string, img models.ProfileImage) error {
	if m.AddProfileImageFunc == nil {
		return nil
	}
	return m.AddProfileImageFunc(ctx, id, img)
}

func (m *mockUserRepo) GetProfileImage(ctx context.Context, id string) (*models.ProfileImage, error) {
	if m.GetProfileImageFunc == nil {
		return nil, nil
	}
	return m.GetProfileImageFunc(ctx, id)
}

func (m *mockUserRepo) RemoveProfileImage(ctx context.Context, id string) error {
	if m.RemoveProfileImageFunc == nil {
		return nil
	}
	return m.RemoveProfileImageFunc(ctx, id)
}

// mockItemRepo implements ItemRepository with overridable func fields.
type mockItemRepo struct {
	GetAllFunc        func(ctx context.Context) ([]models.Item, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.Item, error)
	HasItemWithIDFunc func(ctx context.Context, id string) (bool, error)
	InsertFunc        func(ctx context.Context, item models.Item) error
	UpdateFunc        func(ctx context.Context, id, name string, amount *int64, price decimal.Decimal) error
	RemoveByIDFunc    func(ctx context.Context, id string) error
	UpdateAmountFunc  func(ctx context.Context, id string, delta int64) error
}

func (m *mockItemRepo) GetAll(ctx context.Context) ([]models.Item, error) {
	if m.GetAllFunc == nil {
		return nil, nil
	}
	return m.GetAllFunc(ctx)
}

func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*models.Item, error) {
	if m.GetByIDFunc == nil {
		return nil, nil
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockItemRepo) HasItemWithID(ctx context.Context, id string) (bool, error) {
	if m.HasItemWithIDFunc == nil {
		return false, nil
	}
	return m.HasItemWithIDFunc(ctx, id)
}

func (m *mockItemRepo) Insert(ctx context.Context, item models.Item) error {
	if m.InsertFunc == nil {
		return nil
	}
	return m.InsertFunc(ctx, item)
}

func (m *mockItemRepo) Update(ctx context.Context, id, name string, amount *int64, price decimal.Decimal) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, id, name, amount, price)
}

func (m *mockItemRepo) RemoveByID(ctx context.Context, id string) error {
	if m.RemoveByIDFunc == nil {
		return nil
	}
	return m.RemoveByIDFunc(ctx, id)
}

func (m *mockItemRepo) UpdateAmount(ctx context.Context, id string, delta int64) error {
	if m.UpdateAmountFunc == nil {
		return nil
	}
	return m.UpdateAmountFunc(ctx, id, delta)
}

// plainHasher is a transparent PasswordHasher for tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errMismatch
	}
	return nil
}

type mismatchError struct{}

func (mismatchError) Error() string { return "password mismatch" }

var errMismatch = mismatchError{}

// staticTokens is a TokenIssuer returning a fixed token.
type staticTokens struct{}

func (staticTokens) Issue(userID string, isAdmin bool) (string, error) {
	return "token-for-" + userID, nil
}

func userWith(id string, transactions ...models.Transaction) *models.User {
	return &models.User{ID: id, Name: id, Transactions: transactions}
}

func int64ptr(n int64) *int64 { return &n }
