package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coffeehub/coffeehub/internal/models"
	"github.com/coffeehub/coffeehub/internal/result"
)

// refundWindowMillis is the eligibility period after a purchase during
// which exactly one refund may be issued against it.
const refundWindowMillis = 60_000

// TransactionService implements the funding, purchase, and refund
// operations over users' ledgers and item stock.
type TransactionService struct {
	users UserRepository
	items ItemRepository

	// now supplies timestamps; replaced in tests.
	now func() time.Time
}

// NewTransactionService constructs a TransactionService using the
// provided repositories.
func NewTransactionService(users UserRepository, items ItemRepository) *TransactionService {
	return &TransactionService{users: users, items: items, now: time.Now}
}

// ProcessFunding appends a funding entry with the given amount to the
// user's ledger. The amount must have at most two decimal places; no
// sign constraint is enforced.
func (s *TransactionService) ProcessFunding(ctx context.Context, userID string, amount decimal.Decimal) result.Result[string] {
	user := validateUserExists(ctx, s.users, userID)

	validated := result.AndThen(user, func(u models.User) result.Result[models.User] {
		if !models.HasAtMostTwoDecimals(amount) {
			return result.UnprocessableEntity[models.User](MsgInvalidFundingAmount)
		}
		return result.OK(u)
	})

	appended := result.WithSideEffect(validated, func(u models.User) error {
		return s.users.AddTransaction(ctx, u.ID, models.Transaction{
			Type:      models.TransactionFunding,
			Value:     amount,
			Timestamp: s.now().UnixMilli(),
		})
	})

	return result.Map(appended, func(models.User) string { return MsgFundingSuccessful })
}

// purchaseIntent pairs the validated user with the item being bought.
type purchaseIntent struct {
	user models.User
	item models.Item
}

// ProcessPurchase appends a purchase entry valued at -(amount * price)
// to the user's ledger and decrements the item's stock when it is
// tracked. Stock sufficiency is not checked; a tracked counter may go
// negative.
func (s *TransactionService) ProcessPurchase(ctx context.Context, userID, itemID string, amount int64) result.Result[string] {
	user := validateUserExists(ctx, s.users, userID)

	intent := result.AndThen(user, func(u models.User) result.Result[purchaseIntent] {
		return result.Map(validateItemExists(ctx, s.items, itemID), func(i models.Item) purchaseIntent {
			return purchaseIntent{user: u, item: i}
		})
	})

	validated := result.AndThen(intent, func(p purchaseIntent) result.Result[purchaseIntent] {
		if amount <= 0 {
			return result.UnprocessableEntity[purchaseIntent](MsgInvalidPurchaseAmount)
		}
		return result.OK(p)
	})

	appended := result.WithSideEffect(validated, func(p purchaseIntent) error {
		return s.users.AddTransaction(ctx, p.user.ID, models.Transaction{
			Type:      models.TransactionPurchase,
			Value:     p.item.Price.Mul(decimal.NewFromInt(amount)).Neg(),
			Timestamp: s.now().UnixMilli(),
			ItemID:    p.item.ID,
			ItemName:  p.item.Name,
			Amount:    amount,
		})
	})

	// Second write of the same step; no atomicity with the append above.
	adjusted := result.WithSideEffect(appended, func(p purchaseIntent) error {
		return s.items.UpdateAmount(ctx, p.item.ID, -amount)
	})

	return result.Map(adjusted, func(purchaseIntent) string { return MsgPurchaseSuccessful })
}

// refundIntent pairs the user with the refund entry about to be
// appended.
type refundIntent struct {
	user   models.User
	refund models.Transaction
}

// RefundLastPurchase reverts the user's most recent purchase if it is
// still within the refund window and has not been refunded already. The
// stock restoration is a no-op when the item was deleted in the meantime
// or has unlimited stock.
func (s *TransactionService) RefundLastPurchase(ctx context.Context, userID string) result.Result[string] {
	user := validateUserExists(ctx, s.users, userID)

	eligible := result.AndThen(user, func(u models.User) result.Result[refundIntent] {
		last, found := models.LatestRefundCandidate(u.Transactions)
		switch {
		case !found:
			return result.Conflict[refundIntent](MsgNoRefundablePurchase)
		case last.Type == models.TransactionRefund:
			return result.Conflict[refundIntent](MsgLastPurchaseAlreadyRefunded)
		case last.Type == models.TransactionPurchase:
			if s.now().UnixMilli()-last.Timestamp >= refundWindowMillis {
				return result.Conflict[refundIntent](MsgRefundExpired)
			}
			return result.OK(refundIntent{
				user: u,
				refund: models.Transaction{
					Type:      models.TransactionRefund,
					Value:     last.Value.Neg(),
					Timestamp: s.now().UnixMilli(),
					ItemID:    last.ItemID,
					ItemName:  last.ItemName,
					Amount:    last.Amount,
				},
			})
		default:
			return result.Conflict[refundIntent](MsgRefundNotPossible)
		}
	})

	appended := result.WithSideEffect(eligible, func(r refundIntent) error {
		return s.users.AddTransaction(ctx, r.user.ID, r.refund)
	})

	restored := result.WithSideEffect(appended, func(r refundIntent) error {
		return s.items.UpdateAmount(ctx, r.refund.ItemID, r.refund.Amount)
	})

	return result.Map(restored, func(refundIntent) string { return MsgRefundSuccessful })
}
