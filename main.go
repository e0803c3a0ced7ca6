package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Anishpras/personal-blog-api/internal/auth"
	"github.com/Anishpras/personal-blog-api/internal/config"
	"github.com/Anishpras/personal-blog-api/internal/db"
	"github.com/Anishpras/personal-blog-api/internal/handlers"
	"github.com/Anishpras/personal-blog-api/internal/posts"
	"github.com/Anishpras/personal-blog-api/internal/telemetry"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, "personal-blog-api")
	if err != nil {
		log.Fatalf("telemetry init failed: %v", err)
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	store, err := db.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handlers.NewAuthHandler(auth.NewService(store, tokens))
	postsHandler := handlers.NewPostsHandler(posts.NewService(store))

	router := handlers.NewRouter(handlers.RouterOptions{
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
		AuthRateLimit:      5,
		PublicRateLimit:    30,
	}, tokens, authHandler, postsHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(router, "http.server"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
