// Package main starts the inspection API server: configuration,
// logging, storage (PostgreSQL/Redis or seeded in-memory), services,
// and the HTTP router.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/digiprop/inspect/internal/certgen"
	"github.com/digiprop/inspect/internal/config"
	"github.com/digiprop/inspect/internal/db"
	"github.com/digiprop/inspect/internal/logger"
	"github.com/digiprop/inspect/internal/repository"
	"github.com/digiprop/inspect/internal/server/handler/http"
	"github.com/digiprop/inspect/internal/service"
)

// tokenTTL is the lifetime of issued bearer tokens.
const tokenTTL = 24 * time.Hour

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load .env if present, then parse flags and environment.
	_ = godotenv.Load()
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx := context.Background()

	// Pick repositories: PostgreSQL when a DSN is configured, otherwise
	// the seeded in-memory set that backs local development.
	var (
		userRepo       repository.UserRepository
		codeRepo       repository.CodeRepository
		inspectionRepo repository.InspectionRepository
		propertyRepo   repository.PropertyRepository
	)
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		db.StartExpiredCodeCleaner(ctx, postgresDB, time.Hour, zapLogger)

		userRepo = repository.NewPostgresUserRepository(postgresDB)
		codeRepo = repository.NewPostgresCodeRepository(postgresDB)
		inspectionRepo = repository.NewPostgresInspectionRepository(postgresDB)
		propertyRepo = repository.NewPostgresPropertyRepository(postgresDB)
	} else {
		zapLogger.Info("no database configured, using seeded in-memory repositories")
		userRepo = repository.NewMemoryUserRepository()
		codeRepo = repository.NewMemoryCodeRepository()
		inspectionRepo = repository.NewMemoryInspectionRepository()
		propertyRepo = repository.NewMemoryPropertyRepository()
	}

	// Verification codes move to Redis when an address is configured, so
	// multiple server instances share them.
	if options.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: options.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zapLogger.Fatal("cannot reach redis", zap.Error(err))
		}
		codeRepo = repository.NewRedisCodeRepository(redisClient)
	}

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, codeRepo, []byte(options.JWTSecret), tokenTTL, zapLogger)
	inspectionService := service.NewInspectionService(inspectionRepo)
	propertyService := service.NewPropertyService(propertyRepo)
	mediaService := service.NewMediaService()

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	inspectionHandler := &http.InspectionHandler{InspectionService: inspectionService}
	propertyHandler := &http.PropertyHandler{PropertyService: propertyService}
	mediaHandler := &http.MediaHandler{MediaService: mediaService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, inspectionHandler, propertyHandler, mediaHandler,
		[]byte(options.JWTSecret), zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	if options.EnableTLS {
		if err := certgen.EnsureServerCert(options.CertFile, options.KeyFile, []string{"localhost", "127.0.0.1"}); err != nil {
			zapLogger.Fatal("cannot prepare TLS certificate", zap.Error(err))
		}
		zapLogger.Info("starting HTTPS server", zap.String("addr", addr))
		if err := server.ListenAndServeTLS(options.CertFile, options.KeyFile); err != nil {
			zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
		}
		return
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
