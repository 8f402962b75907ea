package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"assetmanagement/internal/account"
	"assetmanagement/internal/auth"
	"assetmanagement/internal/config"
	"assetmanagement/internal/domain/repositories"
	"assetmanagement/internal/handler"
	"assetmanagement/internal/metrics"
	"assetmanagement/internal/middleware"
	"assetmanagement/internal/repository/memory"
	"assetmanagement/internal/repository/postgres"
	"assetmanagement/internal/service"
	serviceAuth "assetmanagement/internal/service/auth"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logCloser, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Identity gate: JWKS when configured, otherwise the secret shared with the account service
	var verifier auth.TokenVerifier
	if cfg.JWKSURL != "" {
		verifier, err = auth.NewJWKSVerifier(ctx, cfg.JWKSURL, logger)
	} else {
		verifier, err = auth.NewHMACVerifier([]byte(cfg.JWTSecret), logger)
	}
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required to call the account service")
	}

	// Resource store
	var (
		assetRepo    repositories.AssetRepository
		categoryRepo repositories.CategoryRepository
		txManager    repositories.TransactionManager
		db           handler.Pinger
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		poolConfig := pool.Config()
		logger.Info("database connected",
			"max_conns", poolConfig.MaxConns,
			"min_conns", poolConfig.MinConns,
		)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		assetRepo = postgres.NewAssetRepository(repoConfig)
		categoryRepo = postgres.NewCategoryRepository(repoConfig)
		txManager = postgres.NewTransactionManager(pool, logger)
		db = pool
	} else {
		store := memory.NewStore()
		assetRepo = store.Assets()
		categoryRepo = store.Categories()
		txManager = store
		logger.Warn("DATABASE_URL not set, using in-memory store (data is lost on restart)")
	}

	// Account service
	tokens := auth.NewServiceTokenIssuer([]byte(cfg.JWTSecret), cfg.ServiceTokenTTL)
	accounts := account.NewClient(cfg.AccountServiceURL, tokens, cfg.AccountServiceTimeout, logger)

	// Guard, quota and services
	authorizer := serviceAuth.NewAccountAuthorizer(accounts, assetRepo, logger)
	quota := service.NewQuotaEnforcer(accounts, assetRepo, categoryRepo, logger)
	assetService := service.NewAssetService(assetRepo, categoryRepo, txManager, authorizer, quota, logger)
	categoryService := service.NewCategoryService(categoryRepo, assetRepo, txManager, authorizer, quota, logger)

	assetHandler := handler.NewAssetHandler(assetService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	healthHandler := handler.NewHealthHandler(db)

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	logger.Info("services initialized")

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.HealthCheck)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Asset routes
	mux.HandleFunc("POST /activo", assetHandler.CreateAsset)
	mux.HandleFunc("GET /activo", assetHandler.ListAssets)
	mux.HandleFunc("PUT /activo/{id}", assetHandler.UpdateAsset)
	mux.HandleFunc("DELETE /activo/{id}", assetHandler.DeleteAsset)

	// Category routes
	mux.HandleFunc("POST /categoria-activo", categoryHandler.CreateCategory)
	mux.HandleFunc("GET /categoria-activo", categoryHandler.ListCategories)
	mux.HandleFunc("PUT /categoria-activo/{id}", categoryHandler.UpdateCategory)
	mux.HandleFunc("DELETE /categoria-activo/{id}", categoryHandler.DeleteCategory)

	// Order: CORS → RequestID → Observe → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(verifier, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Observe(mux, logger)(h)
	h = middleware.RequestID()(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"Location", "X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second + cfg.AccountServiceTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
