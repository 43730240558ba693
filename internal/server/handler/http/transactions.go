package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/coffeehub/coffeehub/internal/result"
)

// TransactionService defines the ledger operations required by the HTTP
// handlers.
type TransactionService interface {
	ProcessFunding(ctx context.Context, userID string, amount decimal.Decimal) result.Result[string]
	ProcessPurchase(ctx context.Context, userID, itemID string, amount int64) result.Result[string]
	RefundLastPurchase(ctx context.Context, userID string) result.Result[string]
}

// TransactionHandler handles HTTP requests for funding, purchases, and
// refunds.
type TransactionHandler struct {
	// TransactionService performs the underlying ledger operations.
	TransactionService TransactionService
}

// FundingRequest represents the JSON payload for a funding operation.
type FundingRequest struct {
	// Amount is the funding amount with at most two decimal places.
	Amount decimal.Decimal `json:"amount"`
}

// Funding handles POST /api/users/{id}/funding.
func (h *TransactionHandler) Funding(w http.ResponseWriter, r *http.Request) {
	var req FundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res := h.TransactionService.ProcessFunding(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), messageResponse{res.Data()})
}

// PurchaseRequest represents the JSON payload for a purchase operation.
type PurchaseRequest struct {
	// ItemID references the item being bought.
	ItemID string `json:"itemId"`
	// Amount is the number of units, positive.
	Amount int64 `json:"amount"`
}

// Purchase handles POST /api/users/{id}/purchases.
func (h *TransactionHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res := h.TransactionService.ProcessPurchase(r.Context(), chi.URLParam(r, "id"), req.ItemID, req.Amount)
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), messageResponse{res.Data()})
}

// Refund handles POST /api/users/{id}/refund. The request has no body;
// it reverts the user's most recent purchase if still refundable.
func (h *TransactionHandler) Refund(w http.ResponseWriter, r *http.Request) {
	res := h.TransactionService.RefundLastPurchase(r.Context(), chi.URLParam(r, "id"))
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), messageResponse{res.Data()})
}
