package handlers

import (
	"fmt"
	"net/http"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/rs/zerolog"
)

const registerRedirectDelay = 1500 * time.Millisecond

type AuthHandler struct {
	userService *services.UserService
	authService *services.AuthService
	seedService *services.SeedService
	logger      zerolog.Logger
}

func NewAuthHandler(users *services.UserService, auth *services.AuthService, seed *services.SeedService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: users,
		authService: auth,
		seedService: seed,
		logger:      logger,
	}
}

// CreateScope hands out a new client scope. Seed data is initialized first so
// the new client sees the default users and catalog.
func (h *AuthHandler) CreateScope(w http.ResponseWriter, r *http.Request) {
	if err := h.seedService.Initialize(r.Context()); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	scope, token, err := h.authService.NewScope()
	if err != nil {
		h.logger.Error().Err(err).Msg("Scope creation failed")
		respondWithError(w, http.StatusInternalServerError, "token_generation_failed", "Failed to generate token")
		return
	}
	metrics.ScopesCreated.Inc()

	respondWithJSON(w, http.StatusCreated, models.ScopeResponse{Scope: scope, Token: token})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	metrics.Registrations.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, models.AuthResponse{
		User:     user.Public(),
		Notice:   models.NewNotice(models.LevelSuccess, "Account created successfully!"),
		Redirect: models.NewRedirect(models.PageLogin, registerRedirectDelay),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), scope, &req)
	metrics.Logins.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.AuthResponse{
		User:     user.Public(),
		Notice:   models.NewNotice(models.LevelSuccess, fmt.Sprintf("Welcome back, %s!", user.Name)),
		Redirect: models.NewRedirect(models.PageHome, models.RedirectDelay),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	if err := h.userService.Logout(r.Context(), scope); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.AuthResponse{
		Notice:   models.NewNotice(models.LevelSuccess, "Logged out successfully"),
		Redirect: models.NewRedirect(models.PageHome, models.RedirectDelay),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	user, err := h.userService.CurrentUser(r.Context(), scope)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if user == nil {
		respondWithJSON(w, http.StatusOK, models.AuthResponse{})
		return
	}

	respondWithJSON(w, http.StatusOK, models.AuthResponse{User: user.Public()})
}
