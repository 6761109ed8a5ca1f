package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/dvanek/go-auth-api/internal/apperr"
	"github.com/dvanek/go-auth-api/internal/auth"
	"github.com/dvanek/go-auth-api/internal/config"
	"github.com/dvanek/go-auth-api/internal/httputil"
	"github.com/dvanek/go-auth-api/internal/logging"
	"github.com/dvanek/go-auth-api/internal/ratelimit"
	"github.com/dvanek/go-auth-api/internal/user"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	authMiddleware *auth.Middleware,
	limiter *ratelimit.Limiter,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(middleware.Compress(5))        // Compress responses

	// Unmatched routes go through the shared error pipeline
	notFound := httputil.Handle(func(w http.ResponseWriter, r *http.Request) error {
		return apperr.NotFound()
	})
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	} else {
		log.Println("Swagger UI disabled (production mode)")
	}

	// API routes under the configured prefix, rate limited per client IP
	r.Route("/"+cfg.Server.RoutePrefix, func(r chi.Router) {
		r.Use(limiter.Middleware())

		r.Post("/register", httputil.Handle(authHandler.Register))
		r.Post("/login", httputil.Handle(authHandler.Login))

		// Protect the routes below
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Guard)
			r.Get("/users", httputil.Handle(userHandler.List))
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
