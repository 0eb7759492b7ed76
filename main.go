package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/upliftgrowth/growth-engine/pkg/auth"
	"github.com/upliftgrowth/growth-engine/pkg/config"
	"github.com/upliftgrowth/growth-engine/pkg/database"
	"github.com/upliftgrowth/growth-engine/pkg/handlers"
	"github.com/upliftgrowth/growth-engine/pkg/llm"
	"github.com/upliftgrowth/growth-engine/pkg/logging"
	"github.com/upliftgrowth/growth-engine/pkg/middleware"
	"github.com/upliftgrowth/growth-engine/pkg/repositories"
	"github.com/upliftgrowth/growth-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("ai_model", cfg.AI.Model))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Migrations run over a database/sql handle backed by the same pool.
	stdDB := stdlib.OpenDBFromPool(db.Pool)
	if err := database.RunMigrations(stdDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	defer jwksClient.Close()

	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	llmClient, err := llm.NewClient(&llm.Config{
		Endpoint: cfg.AI.BaseURL,
		Model:    cfg.AI.Model,
		APIKey:   cfg.AI.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	copyService := services.NewCopyService(llmClient, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, db, logger).RegisterRoutes(mux)
	handlers.NewContactsHandler(repositories.NewContactRepository(db), logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewCompaniesHandler(repositories.NewBusinessRepository(db), logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewOpportunitiesHandler(repositories.NewOpportunityRepository(db), logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewProfilesHandler(
		repositories.NewBuyerProfileRepository(db),
		repositories.NewProviderProfileRepository(db),
		logger,
	).RegisterRoutes(mux, authMiddleware)
	handlers.NewProjectsHandler(repositories.NewProjectRepository(db), logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewCopyHandler(copyService, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)
	addr := cfg.BindAddr + ":" + cfg.Port

	logger.Info("Starting growth-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))

	if cfg.TLSCertPath != "" && cfg.TLSKeyPath != "" {
		err = http.ListenAndServeTLS(addr, cfg.TLSCertPath, cfg.TLSKeyPath, handler)
	} else {
		err = http.ListenAndServe(addr, handler)
	}
	if err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
