package service

import (
	"context"

	"github.com/coffeehub/coffeehub/internal/models"
	"github.com/coffeehub/coffeehub/internal/result"
)

// validateUserExists is the sole gate for operations referencing a user
// by id: not-found when absent, otherwise the user with their ledger.
func validateUserExists(ctx context.Context, repo UserRepository, id string) result.Result[models.User] {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return result.Internal[models.User](err.Error())
	}
	if user == nil {
		return result.NotFound[models.User](MsgUserNotFound)
	}
	return result.OK(*user)
}

// validateUserDoesNotExist gates user creation: conflict when the
// candidate id is taken, otherwise the id passes through.
func validateUserDoesNotExist(ctx context.Context, repo UserRepository, id string) result.Result[string] {
	exists, err := repo.HasUserWithID(ctx, id)
	if err != nil {
		return result.Internal[string](err.Error())
	}
	if exists {
		return result.Conflict[string](MsgUserAlreadyExists)
	}
	return result.OK(id)
}

// validateItemExists is the symmetric gate for items.
func validateItemExists(ctx context.Context, repo ItemRepository, id string) result.Result[models.Item] {
	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return result.Internal[models.Item](err.Error())
	}
	if item == nil {
		return result.NotFound[models.Item](MsgItemNotFound)
	}
	return result.OK(*item)
}

// validateItemDoesNotExist gates item creation.
func validateItemDoesNotExist(ctx context.Context, repo ItemRepository, id string) result.Result[string] {
	exists, err := repo.HasItemWithID(ctx, id)
	if err != nil {
		return result.Internal[string](err.Error())
	}
	if exists {
		return result.Conflict[string](MsgItemAlreadyExists)
	}
	return result.OK(id)
}
