// Package models defines the core data structures for users, items,
// ledger transactions, and profile images.
package models

import "github.com/shopspring/decimal"

// TransactionType identifies the kind of a ledger entry.
type TransactionType string

const (
	// TransactionFunding represents money added to a user's ledger.
	TransactionFunding TransactionType = "funding"
	// TransactionPurchase represents an item bought by a user.
	TransactionPurchase TransactionType = "purchase"
	// TransactionRefund represents a reverted purchase.
	TransactionRefund TransactionType = "refund"
)

// Transaction is one immutable entry of a user's ledger. Purchase and
// refund entries snapshot the item's id and name at the time of the
// operation; the item itself may be deleted later.
type Transaction struct {
	// Type is the kind of the entry: funding, purchase, or refund.
	Type TransactionType `json:"type"`
	// Value is the signed amount the entry contributes to the balance.
	Value decimal.Decimal `json:"value"`
	// Timestamp is the creation time in milliseconds since the epoch.
	Timestamp int64 `json:"timestamp"`
	// ItemID references the purchased item. Empty for funding entries.
	ItemID string `json:"itemId,omitempty"`
	// ItemName is the item's name at purchase time.
	ItemName string `json:"itemName,omitempty"`
	// Amount is the number of units bought or refunded.
	Amount int64 `json:"amount,omitempty"`
}

// User represents an application user with an append-only ledger.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name of the user.
	Name string `json:"name"`
	// IsAdmin marks users allowed to perform mutations over the API.
	IsAdmin bool `json:"isAdmin"`
	// PasswordHash is the bcrypt hash of the user's password, empty if
	// the user has none. Admins always have one.
	PasswordHash string `json:"-"`
	// Transactions is the user's ledger in insertion order.
	Transactions []Transaction `json:"transactions"`
}

// Balance derives the user's balance as the sum of the values of all
// ledger entries. It is never stored.
func (u User) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, t := range u.Transactions {
		balance = balance.Add(t.Value)
	}
	return balance
}

// Item represents a priced product. A nil Amount means unlimited stock.
type Item struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`
	// Name is the display name of the item.
	Name string `json:"name"`
	// Amount is the remaining stock, nil for unlimited availability.
	Amount *int64 `json:"amount"`
	// Price is the unit price, positive with two decimal places.
	Price decimal.Decimal `json:"price"`
}

// ProfileImage holds a user's encoded avatar, replace-or-absent.
type ProfileImage struct {
	// EncodedImage is the image payload, typically base64.
	EncodedImage string `json:"encodedImage"`
	// Timestamp is the upload time in milliseconds since the epoch.
	Timestamp int64 `json:"timestamp"`
}

// HasAtMostTwoDecimals reports whether d can be represented with two
// decimal places, the granularity of all monetary amounts.
func HasAtMostTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// LatestRefundCandidate selects the most recent purchase or refund from
// a ledger: later timestamp wins, and on equal timestamps a refund
// outranks a purchase. Funding entries are ignored. The selection is a
// stable maximum, so on a full tie the earliest entry is kept. The
// second return value is false when the ledger holds no purchase or
// refund at all.
func LatestRefundCandidate(transactions []Transaction) (Transaction, bool) {
	var best Transaction
	found := false
	for _, t := range transactions {
		if t.Type != TransactionPurchase && t.Type != TransactionRefund {
			continue
		}
		if !found || refundCandidateLess(best, t) {
			best = t
			found = true
		}
	}
	return best, found
}

// refundCandidateLess reports whether a ranks strictly below b in the
// recency order used for refund eligibility.
func refundCandidateLess(a, b Transaction) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.Type == TransactionPurchase && b.Type == TransactionRefund
}
