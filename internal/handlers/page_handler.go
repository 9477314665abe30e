package handlers

import (
	"net/http"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type PageHandler struct {
	userService *services.UserService
	cartService *services.CartService
	logger      zerolog.Logger
}

func NewPageHandler(users *services.UserService, cart *services.CartService, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		userService: users,
		cartService: cart,
		logger:      logger,
	}
}

// Get resolves the guard decision for a page. Navigation and the cart badge
// are only filled in when the page is allowed.
func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	loggedIn, err := h.userService.HasSession(r.Context(), scope)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	resp := models.PageResponse{
		Access: services.ResolvePageAccess(services.PageID(mux.Vars(r)["page"]), loggedIn),
	}
	if resp.Access.Outcome != models.AccessAllow {
		respondWithJSON(w, http.StatusOK, resp)
		return
	}

	if resp.Navigation, err = h.userService.Navigation(r.Context(), scope); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if resp.CartBadge, err = h.cartService.Badge(r.Context(), scope); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
