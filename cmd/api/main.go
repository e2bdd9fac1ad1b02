//	@title			Loftdrive Quota API
//	@version		1.0
//	@description	Storage quota accounting and upload-token issuance over an S3-compatible blob store.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/loftdrive/service/internal/config"
	"github.com/loftdrive/service/internal/db"
	"github.com/loftdrive/service/internal/identity"
	appMiddleware "github.com/loftdrive/service/internal/middleware"
	"github.com/loftdrive/service/internal/profile"
	"github.com/loftdrive/service/internal/quota"
	"github.com/loftdrive/service/internal/storage"

	_ "github.com/loftdrive/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: collaborators → core services → handler
	verifier := identity.NewJWTVerifier(cfg.JWTSecret)
	signer := identity.NewJWTSigner(cfg.JWTSecret, cfg.UploadTokenTTL)

	profileRepo := profile.NewRepository(pool)
	profileSvc := profile.NewService(profileRepo)

	policy := quota.DefaultPolicy()
	accountant := quota.NewAccountant(store)
	resolver := quota.NewResolver(profileSvc, policy, accountant)
	issuer := quota.NewIssuer(verifier, signer, resolver)
	coordinator := quota.NewCoordinator(store)
	quotaHandler := quota.NewHandler(issuer, resolver, coordinator, verifier, profileSvc, policy)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/quota", func(r chi.Router) {
			r.Get("/upload-token", quotaHandler.IssueUploadToken)
			r.Get("/remaining", quotaHandler.RemainingQuota)
			r.Delete("/objects", quotaHandler.DeleteAllObjects)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/tier", quotaHandler.GetTier)
			r.Put("/tier", quotaHandler.UpdateTier)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
