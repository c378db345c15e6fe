package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/journalvault-backend/internal/config"
	"github.com/AnshRaj112/journalvault-backend/internal/database"
	"github.com/AnshRaj112/journalvault-backend/internal/handlers"
	"github.com/AnshRaj112/journalvault-backend/internal/middleware"
	"github.com/AnshRaj112/journalvault-backend/internal/routes"
	"github.com/AnshRaj112/journalvault-backend/internal/services"
	"github.com/AnshRaj112/journalvault-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open the selected storage backend
	log.Printf("Opening %s store...", cfg.StoreDriver)
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}

	// Connect to Redis for rate limiting; stay up without it outside production
	redisClient, redisErr := database.ConnectRedis(cfg.RedisURI)
	if redisErr != nil {
		if cfg.IsProduction() {
			log.Fatal("Failed to connect to Redis: ", redisErr)
		}
		log.Printf("⚠️  Redis unavailable (%v), rate limiting disabled", redisErr)
	}

	// Wire services and handlers
	feed := services.NewFeedHub()
	h := handlers.New(
		services.NewJournalService(st),
		services.NewSyncService(st),
		feed,
	)

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Recover)
	if redisClient != nil {
		r.Use(middleware.RateLimit(redisClient))
	}
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 Shared journal backend running on :%s", cfg.Port)
		log.Printf("📊 Health check: http://localhost:%s/health", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down HTTP server: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("error closing Redis: %v", err)
		}
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Printf("error closing store: %v", err)
	}
	log.Println("📦 Store closed")
}
