package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/coffeehub/coffeehub/internal/models"
	"github.com/coffeehub/coffeehub/internal/result"
)

// ItemRequest carries the client-supplied fields for creating or
// updating an item. A nil Amount means unlimited stock.
type ItemRequest struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount *int64          `json:"amount"`
	Price  decimal.Decimal `json:"price"`
}

// ItemService implements the item lifecycle.
type ItemService struct {
	repo ItemRepository
}

// NewItemService constructs an ItemService using the provided
// repository.
func NewItemService(repo ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// validateItemRequest enforces the field rules shared by create and
// update: non-blank id and name, stock nil or non-negative, price
// positive with two decimal places.
func validateItemRequest(req ItemRequest) result.Result[ItemRequest] {
	switch {
	case strings.TrimSpace(req.ID) == "",
		strings.TrimSpace(req.Name) == "":
		return result.UnprocessableEntity[ItemRequest](MsgInvalidItemData)
	case req.Amount != nil && *req.Amount < 0:
		return result.UnprocessableEntity[ItemRequest](MsgInvalidItemData)
	case !req.Price.IsPositive() || !models.HasAtMostTwoDecimals(req.Price):
		return result.UnprocessableEntity[ItemRequest](MsgInvalidItemData)
	}
	return result.OK(req)
}

// GetAll returns every item.
func (s *ItemService) GetAll(ctx context.Context) result.Result[[]models.Item] {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return result.Internal[[]models.Item](err.Error())
	}
	return result.OK(items)
}

// GetByID returns the item with the given id.
func (s *ItemService) GetByID(ctx context.Context, id string) result.Result[models.Item] {
	return validateItemExists(ctx, s.repo, id)
}

// CreateItem registers a new item.
func (s *ItemService) CreateItem(ctx context.Context, req ItemRequest) result.Result[models.Item] {
	free := validateItemDoesNotExist(ctx, s.repo, req.ID)

	validated := result.AndThen(free, func(string) result.Result[ItemRequest] {
		return validateItemRequest(req)
	})

	item := result.Map(validated, func(r ItemRequest) models.Item {
		return models.Item{ID: r.ID, Name: r.Name, Amount: r.Amount, Price: r.Price}
	})

	created := result.WithSideEffect(item, func(i models.Item) error {
		return s.repo.Insert(ctx, i)
	})

	return result.AndThen(created, func(i models.Item) result.Result[models.Item] {
		return result.Created(i)
	})
}

// UpdateItem fully replaces the item's name, stock, and price.
func (s *ItemService) UpdateItem(ctx context.Context, id string, req ItemRequest) result.Result[models.Item] {
	req.ID = id

	existing := validateItemExists(ctx, s.repo, id)

	validated := result.AndThen(existing, func(models.Item) result.Result[ItemRequest] {
		return validateItemRequest(req)
	})

	item := result.Map(validated, func(r ItemRequest) models.Item {
		return models.Item{ID: r.ID, Name: r.Name, Amount: r.Amount, Price: r.Price}
	})

	return result.WithSideEffect(item, func(i models.Item) error {
		return s.repo.Update(ctx, i.ID, i.Name, i.Amount, i.Price)
	})
}

// DeleteItemByID removes an item. Historical ledger entries keep their
// snapshot of the item's id and name.
func (s *ItemService) DeleteItemByID(ctx context.Context, id string) result.Result[string] {
	existing := validateItemExists(ctx, s.repo, id)

	removed := result.WithSideEffect(existing, func(i models.Item) error {
		return s.repo.RemoveByID(ctx, i.ID)
	})

	return result.Map(removed, func(models.Item) string { return MsgItemDeleted })
}
