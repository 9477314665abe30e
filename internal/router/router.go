package router

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/services"
	"storefront/internal/store"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(s *store.Store, cfg config.Config, logger zerolog.Logger) *mux.Router {
	seedService := services.NewSeedService(s, logger)
	authService := services.NewAuthService(cfg.JWTSecret, cfg.ScopeTokenTTL, logger)
	userService := services.NewUserService(s, logger)
	catalogService := services.NewCatalogService(s, logger)
	cartService := services.NewCartService(s, catalogService, logger)

	authHandler := handlers.NewAuthHandler(userService, authService, seedService, logger)
	pageHandler := handlers.NewPageHandler(userService, cartService, logger)
	productHandler := handlers.NewProductHandler(catalogService, userService, logger)
	cartHandler := handlers.NewCartHandler(cartService, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(metrics.HTTPMetricsMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/scopes", authHandler.CreateScope).Methods("POST")

	scoped := api.PathPrefix("").Subrouter()
	scoped.Use(middleware.ScopeAuthentication(authService, logger))
	scoped.Use(middleware.RequestValidation())

	auth := scoped.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	auth.HandleFunc("/me", authHandler.Me).Methods("GET")

	scoped.HandleFunc("/pages/{page}", pageHandler.Get).Methods("GET")

	adminOnly := middleware.RequireAdmin(userService, logger)
	products := scoped.PathPrefix("/products").Subrouter()
	products.HandleFunc("", productHandler.List).Methods("GET")
	products.Handle("", adminOnly(http.HandlerFunc(productHandler.Create))).Methods("POST")
	products.Handle("/editing", adminOnly(http.HandlerFunc(productHandler.Editing))).Methods("GET")
	products.Handle("/editing", adminOnly(http.HandlerFunc(productHandler.SaveEditing))).Methods("PUT")
	products.HandleFunc("/{id:[0-9]+}", productHandler.Get).Methods("GET")
	products.Handle("/{id:[0-9]+}", adminOnly(http.HandlerFunc(productHandler.Update))).Methods("PUT")
	products.Handle("/{id:[0-9]+}", adminOnly(http.HandlerFunc(productHandler.Delete))).Methods("DELETE")
	products.Handle("/{id:[0-9]+}/edit", adminOnly(http.HandlerFunc(productHandler.BeginEdit))).Methods("POST")

	cart := scoped.PathPrefix("/cart").Subrouter()
	cart.HandleFunc("", cartHandler.Get).Methods("GET")
	cart.HandleFunc("", cartHandler.Clear).Methods("DELETE")
	cart.HandleFunc("/count", cartHandler.Count).Methods("GET")
	cart.HandleFunc("/checkout", cartHandler.Checkout).Methods("GET")
	cart.HandleFunc("/items", cartHandler.AddItem).Methods("POST")
	cart.HandleFunc("/items/{id:[0-9]+}", cartHandler.UpdateQuantity).Methods("PUT")
	cart.HandleFunc("/items/{id:[0-9]+}", cartHandler.RemoveItem).Methods("DELETE")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
