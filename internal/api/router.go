package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/serverup/serverup-be/internal/api/handlers"
	"github.com/serverup/serverup-be/internal/auth"
	"github.com/serverup/serverup-be/internal/services"
)

// NewRouter creates and configures a new Chi router. Route paths mirror the
// deployed API and must not change.
func NewRouter(
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	messageService services.MessageServiceProvider,
	productService services.ProductServiceProvider,
	appEnv string,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	metaHandler := handlers.NewMetaHandler(appEnv)
	authHandler := handlers.NewAuthHandler(userService, tokens)
	messageHandler := handlers.NewMessageHandler(messageService)
	productHandler := handlers.NewProductHandler(productService)

	requireAuth := tokens.Middleware()

	r.Get("/health", metaHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", metaHandler.Info)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", messageHandler.GetAll)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", messageHandler.Create)
				r.Delete("/{id}", messageHandler.Delete)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.GetAll)
			r.Get("/{id}", productHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})
	})

	return r
}
