package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/minhngoc/ringside/internal/convstore"
	"github.com/minhngoc/ringside/internal/db"
	"github.com/minhngoc/ringside/internal/handlers"
	"github.com/minhngoc/ringside/internal/logger"
	"github.com/minhngoc/ringside/internal/repositories"
	"github.com/minhngoc/ringside/internal/services"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	config := db.NewConfig()
	database, err := db.Connect(config)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		log.Fatal("database health check failed", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}
	log.Info("database connection established", zap.String("driver", config.Driver))

	ttl := services.DefaultConfirmationTTL
	if raw := os.Getenv("CONFIRMATION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			ttl = d
		}
	}

	var store convstore.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client, err := convstore.ConnectRedis(addr)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		store = convstore.NewRedisStore(client, ttl)
		log.Info("conversation state in redis", zap.String("addr", addr))
	} else {
		store = convstore.NewMemoryStore(ttl)
		log.Info("conversation state in memory")
	}

	// Repositories
	wagerRepo := repositories.NewWagerRepository(database)
	auditRepo := repositories.NewAuditRepository(database)
	ledgerRepo := repositories.NewLedgerRepository(database)

	// Services
	ledgerService := services.NewLedgerService(ledgerRepo, log)
	auditService := services.NewAuditService(auditRepo)
	wagerService := services.NewWagerService(wagerRepo, auditRepo, ledgerService, log)
	mutationService := services.NewMutationService(wagerRepo, ledgerService, log)
	confirmationService := services.NewConfirmationService(mutationService, store, log, ttl)
	chatService := services.NewChatService(confirmationService, store, log)

	// Handlers
	router := handlers.NewRouter(
		handlers.NewWagerHandler(wagerService),
		handlers.NewMutationHandler(mutationService),
		handlers.NewLedgerHandler(ledgerService, auditService),
		handlers.NewChatHandler(chatService),
	)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
