package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dataroom/internal/auth"
	"dataroom/internal/backend"
	"dataroom/internal/config"
	"dataroom/internal/handler"
	"dataroom/internal/middleware"
	"dataroom/internal/service/dataroom"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"persistence", cfg.PersistenceBackend,
		"storage", cfg.StorageBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// JWT verification is optional in dev when DEV_USER_ID is set
	var jwtVerifier auth.JWTVerifier
	if cfg.SupabaseJWKSURL != "" {
		jwtVerifier, err = auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
	} else if cfg.DevUserID == "" {
		log.Fatalf("SUPABASE_URL is required unless DEV_USER_ID is set outside production")
	}
	if cfg.DevUserID != "" {
		logger.Warn("DEV MODE: requests without a bearer token act as DEV_USER_ID", "user_id", cfg.DevUserID)
	}

	backends, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open backends: %v", err)
	}
	defer backends.Close()

	service := dataroom.NewService(backends.Repos, backends.Storage, logger,
		dataroom.WithSignedURLTTL(cfg.SignedURLTTL),
	)
	workspaces := dataroom.NewWorkspaceManager(service, auth.ContextIdentity{})

	logger.Info("services initialized")

	// Order: CORS → Recovery → Logging → Auth → Routes
	var h http.Handler = handler.NewRouter(service, workspaces, logger)
	h = middleware.AuthMiddleware(middleware.AuthOptions{
		Verifier:  jwtVerifier,
		DevUserID: cfg.DevUserID,
		Public:    []string{"/health"},
		Logger:    logger,
	})(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be outermost to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  60 * time.Second, // uploads up to the size limit
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
