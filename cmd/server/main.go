package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/myfolio/server/internal/api"
	"github.com/myfolio/server/internal/auth"
	"github.com/myfolio/server/internal/config"
	"github.com/myfolio/server/internal/db"
	"github.com/myfolio/server/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: failed to load: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("logging: failed to build: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	postgres, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("postgres: failed to connect", zap.Error(err))
	}
	defer postgres.Close()

	if err := postgres.Ping(ctx); err != nil {
		logger.Fatal("postgres: ping failed", zap.Error(err))
	}
	if err := postgres.EnsureSchema(ctx); err != nil {
		logger.Fatal("postgres: ensure schema", zap.Error(err))
	}

	tokens, err := auth.NewService(cfg.JWT)
	if err != nil {
		logger.Fatal("failed to initialise token service", zap.Error(err))
	}

	router := setupRouter(cfg, logger, tokens, postgres)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}

func setupRouter(cfg *config.Config, logger *zap.Logger, tokens *auth.Service, postgres *db.Postgres) *gin.Engine {
	router := gin.New()
	router.Use(
		api.RequestID(),
		api.RequestLogger(logger),
		api.Recovery(),
		api.CORS(cfg.CORS),
	)

	handler := api.NewHandler(
		tokens,
		db.NewUsersRepo(postgres),
		db.NewTemplatesRepo(postgres),
		db.NewFoliosRepo(postgres),
		cfg,
	)
	handler.RegisterRoutes(router)

	return router
}
