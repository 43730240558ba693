// Package main initializes and starts the coffee ledger HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, and handlers.
package main

import (
	"cmp"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/coffeehub/coffeehub/internal/config"
	"github.com/coffeehub/coffeehub/internal/db"
	"github.com/coffeehub/coffeehub/internal/logger"
	"github.com/coffeehub/coffeehub/internal/repository"
	"github.com/coffeehub/coffeehub/internal/security"
	"github.com/coffeehub/coffeehub/internal/server/handler/http"
	"github.com/coffeehub/coffeehub/internal/service"
	"github.com/coffeehub/coffeehub/internal/token"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret must be configured")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and items.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	itemRepo := repository.NewPostgresItemRepository(postgresDB)

	// Token signing and password hashing collaborators.
	tokens := token.New(options.JWTSecret, time.Duration(options.TokenTTLMinutes)*time.Minute)
	hasher := security.NewBcryptHasher(options.BcryptCost)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo, hasher, tokens)
	itemService := service.NewItemService(itemRepo)
	transactionService := service.NewTransactionService(userRepo, itemRepo)

	// Create HTTP handlers.
	userHandler := &http.UserHandler{UserService: userService}
	itemHandler := &http.ItemHandler{ItemService: itemService}
	transactionHandler := &http.TransactionHandler{TransactionService: transactionService}

	// Build the router with middleware and routes.
	router := http.NewRouter(userHandler, itemHandler, transactionHandler, tokens, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
