package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/coffeehub/coffeehub/internal/models"
	"github.com/coffeehub/coffeehub/internal/result"
	"github.com/coffeehub/coffeehub/internal/service"
)

// UserService defines the user operations required by the HTTP handlers.
type UserService interface {
	GetAll(ctx context.Context) result.Result[[]models.User]
	GetByID(ctx context.Context, id string) result.Result[models.User]
	CreateUser(ctx context.Context, req service.UserRequest) result.Result[models.User]
	UpdateUser(ctx context.Context, id string, req service.UserRequest) result.Result[models.User]
	DeleteUserByID(ctx context.Context, id string) result.Result[string]
	Login(ctx context.Context, id, password string) result.Result[string]
	SetProfileImage(ctx context.Context, id, encodedImage string) result.Result[models.ProfileImage]
	GetProfileImage(ctx context.Context, id string) result.Result[models.ProfileImage]
	RemoveProfileImage(ctx context.Context, id string) result.Result[string]
}

// UserHandler handles HTTP requests for user lifecycle, login, and
// profile images.
type UserHandler struct {
	// UserService performs the underlying domain operations.
	UserService UserService
}

// userResponse is the wire representation of a user: the password hash
// is never exposed and the balance is derived from the ledger.
type userResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	IsAdmin      bool                 `json:"isAdmin"`
	Balance      decimal.Decimal      `json:"balance"`
	Transactions []models.Transaction `json:"transactions"`
}

func toUserResponse(u models.User) userResponse {
	transactions := u.Transactions
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		IsAdmin:      u.IsAdmin,
		Balance:      u.Balance(),
		Transactions: transactions,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	res := h.UserService.GetAll(r.Context())
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	users := make([]userResponse, 0, len(res.Data()))
	for _, u := range res.Data() {
		users = append(users, toUserResponse(u))
	}
	writeJSON(w, res.Status(), users)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	res := h.UserService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), toUserResponse(res.Data()))
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res := h.UserService.CreateUser(r.Context(), req)
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), toUserResponse(res.Data()))
}

// Update handles PUT /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res := h.UserService.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), toUserResponse(res.Data()))
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.UserService.DeleteUserByID(r.Context(), chi.URLParam(r, "id"))
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), messageResponse{res.Data()})
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	// ID is the user id to authenticate.
	ID string `json:"id"`
	// Password is the plain password to verify.
	Password string `json:"password"`
}

// Login handles POST /api/login. It returns a bearer token for admins;
// an unknown id and a wrong password are indistinguishable.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res := h.UserService.Login(r.Context(), req.ID, req.Password)
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), tokenResponse{res.Data()})
}

// imageRequest represents the JSON payload for a profile image upload.
type imageRequest struct {
	EncodedImage string `json:"encodedImage"`
}

// SetImage handles PUT /api/users/{id}/image.
func (h *UserHandler) SetImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res := h.UserService.SetProfileImage(r.Context(), chi.URLParam(r, "id"), req.EncodedImage)
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), res.Data())
}

// GetImage handles GET /api/users/{id}/image.
func (h *UserHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	res := h.UserService.GetProfileImage(r.Context(), chi.URLParam(r, "id"))
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), res.Data())
}

// DeleteImage handles DELETE /api/users/{id}/image.
func (h *UserHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	res := h.UserService.RemoveProfileImage(r.Context(), chi.URLParam(r, "id"))
	if !res.IsSuccess() {
		writeJSON(w, res.Status(), errorResponse{res.Err()})
		return
	}
	writeJSON(w, res.Status(), messageResponse{res.Data()})
}
