package http

import (
	"net/http"

	"github.com/coffeehub/coffeehub/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// coffee ledger API. It applies JSON content-type enforcement and
// request logging globally, leaves login and item reads public, and
// guards every mutation behind admin bearer-token authentication.
//
// Routes:
//
//	POST   /api/login                  → userHandler.Login (public)
//	GET    /api/items                  → itemHandler.List (public)
//	GET    /api/items/{id}             → itemHandler.Get (public)
//
//	GET    /api/users                  → userHandler.List
//	POST   /api/users                  → userHandler.Create
//	GET    /api/users/{id}             → userHandler.Get
//	PUT    /api/users/{id}             → userHandler.Update
//	DELETE /api/users/{id}             → userHandler.Delete
//	POST   /api/users/{id}/funding     → transactionHandler.Funding
//	POST   /api/users/{id}/purchases   → transactionHandler.Purchase
//	POST   /api/users/{id}/refund      → transactionHandler.Refund
//	PUT    /api/users/{id}/image       → userHandler.SetImage
//	GET    /api/users/{id}/image       → userHandler.GetImage
//	DELETE /api/users/{id}/image       → userHandler.DeleteImage
//	POST   /api/items                  → itemHandler.Create
//	PUT    /api/items/{id}             → itemHandler.Update
//	DELETE /api/items/{id}             → itemHandler.Delete
func NewRouter(
	userHandler *UserHandler,
	itemHandler *ItemHandler,
	transactionHandler *TransactionHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/login", userHandler.Login)
		r.Get("/items", itemHandler.List)
		r.Get("/items/{id}", itemHandler.Get)

		// Protected group: requires an admin bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(verifier))

			r.Get("/users", userHandler.List)
			r.Post("/users", userHandler.Create)
			r.Get("/users/{id}", userHandler.Get)
			r.Put("/users/{id}", userHandler.Update)
			r.Delete("/users/{id}", userHandler.Delete)

			r.Post("/users/{id}/funding", transactionHandler.Funding)
			r.Post("/users/{id}/purchases", transactionHandler.Purchase)
			r.Post("/users/{id}/refund", transactionHandler.Refund)

			r.Put("/users/{id}/image", userHandler.SetImage)
			r.Get("/users/{id}/image", userHandler.GetImage)
			r.Delete("/users/{id}/image", userHandler.DeleteImage)

			r.Post("/items", itemHandler.Create)
			r.Put("/items/{id}", itemHandler.Update)
			r.Delete("/items/{id}", itemHandler.Delete)
		})
	})

	return r
}
