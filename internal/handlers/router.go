package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Anishpras/personal-blog-api/internal/auth"
	appmiddleware "github.com/Anishpras/personal-blog-api/internal/middleware"
)

// RouterOptions carries the pieces of config the router cares about.
type RouterOptions struct {
	CorsAllowedOrigins []string
	// Requests per minute per IP; zero disables the limiter.
	AuthRateLimit   int
	PublicRateLimit int
}

// NewRouter wires every endpoint of the API. Auth endpoints sit behind a
// strict per-IP limiter, public reads behind a looser one; post mutation
// requires a verified bearer token.
func NewRouter(opts RouterOptions, tokens *auth.TokenManager, authHandler *AuthHandler, postsHandler *PostsHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   opts.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := limiter(opts.AuthRateLimit)
	publicLimiter := limiter(opts.PublicRateLimit)

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter)
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	r.Get("/authors", authHandler.ListAuthors)

	r.Route("/posts", func(r chi.Router) {
		r.With(publicLimiter).Get("/", postsHandler.List)
		r.With(publicLimiter).Get("/{id}", postsHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(tokens))
			r.Post("/", postsHandler.Create)
			r.Put("/{id}", postsHandler.Update)
			r.Delete("/{id}", postsHandler.Delete)
		})
	})

	return r
}

// limiter builds a per-minute rate limit middleware, or a pass-through when
// the limit is zero (tests run unthrottled).
func limiter(limit int) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return appmiddleware.NewRateLimiter(limit, time.Minute).Limit
}
