package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coffeehub/coffeehub/internal/models"
	"github.com/coffeehub/coffeehub/internal/result"
	"github.com/coffeehub/coffeehub/internal/service"
)

// ItemService defines the item operations required by the HTTP handlers.
type ItemService interface {
	GetAll(ctx context.Context) result.Result[[]models.Item]
	GetByID(ctx context.Context, id string) result.Result[models.Item]
	CreateItem(ctx context.Context, req service.ItemRequest) result.Result[models.Item]
	UpdateItem(ctx context.Context, id string, req service.ItemRequest) result.Result[models.Item]
	DeleteItemByID(ctx context.Context, id string) result.Result[string]
}

// ItemHandler handles HTTP requests for the item lifecycle.
type ItemHandler struct {
	// ItemService performs the underlying domain operations.
	ItemService ItemService
}

// List handles GET /api/items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	res := h.ItemService.GetAll(r.Context())
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	items := res.Data()
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, res.Status(), items)
}

// Get handles GET /api/items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	res := h.ItemService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), res.Data())
}

// Create handles POST /api/items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res := h.ItemService.CreateItem(r.Context(), req)
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), res.Data())
}

// Update handles PUT /api/items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res := h.ItemService.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), res.Data())
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.ItemService.DeleteItemByID(r.Context(), chi.URLParam(r, "id"))
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), messageResponse{res.Data()})
}
