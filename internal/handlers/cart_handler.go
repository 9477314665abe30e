package handlers

import (
	"fmt"
	"net/http"

	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/rs/zerolog"
)

type CartHandler struct {
	cartService *services.CartService
	logger      zerolog.Logger
}

func NewCartHandler(cart *services.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cart,
		logger:      logger,
	}
}

// respondWithCart writes the fresh cart view and badge along with notice.
func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, scope string, code int, notice *models.Notice) {
	items, err := h.cartService.Items(r.Context(), scope)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	view := services.BuildView(items)
	respondWithJSON(w, code, models.CartResponse{
		View:   view,
		Badge:  models.Badge{Count: view.Totals.ItemCount, Visible: view.Totals.ItemCount > 0},
		Notice: notice,
	})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}
	h.respondWithCart(w, r, scope, http.StatusOK, nil)
}

func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	badge, err := h.cartService.Badge(r.Context(), scope)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.CartResponse{Badge: badge})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.cartService.AddItem(r.Context(), scope, req.ProductID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	metrics.CartOperations.WithLabelValues("add").Inc()

	h.respondWithCart(w, r, scope, http.StatusOK,
		models.NewNotice(models.LevelSuccess, fmt.Sprintf("%s added to cart!", product.Name)))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}
	id, ok := idVar(w, r)
	if !ok {
		return
	}

	var req models.QuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		respondWithServiceError(w, h.logger, services.ErrMissingQuantity)
		return
	}
	quantity := *req.Quantity

	found, err := h.cartService.SetQuantity(r.Context(), scope, id, quantity)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	var notice *models.Notice
	switch {
	case !found:
		// nothing to update, the view is returned unchanged
	case quantity < 1:
		metrics.CartOperations.WithLabelValues("remove").Inc()
		notice = models.NewNotice(models.LevelWarning, "Item removed from cart")
	default:
		metrics.CartOperations.WithLabelValues("quantity").Inc()
		notice = models.NewNotice(models.LevelSuccess, "Quantity updated")
	}

	h.respondWithCart(w, r, scope, http.StatusOK, notice)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}
	id, ok := idVar(w, r)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), scope, id); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	metrics.CartOperations.WithLabelValues("remove").Inc()

	h.respondWithCart(w, r, scope, http.StatusOK, models.NewNotice(models.LevelWarning, "Item removed from cart"))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}
	if !confirmed(w, r, "Are you sure you want to clear your entire cart?") {
		return
	}

	if err := h.cartService.Clear(r.Context(), scope); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	metrics.CartOperations.WithLabelValues("clear").Inc()

	h.respondWithCart(w, r, scope, http.StatusOK, models.NewNotice(models.LevelWarning, "Cart cleared"))
}

// Checkout returns the order summary. An empty cart has nothing to check out.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	count, err := h.cartService.Count(r.Context(), scope)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	if count == 0 {
		respondWithNotice(w, http.StatusConflict, "cart_empty", models.NewNotice(models.LevelWarning, "Your cart is empty"))
		return
	}

	h.respondWithCart(w, r, scope, http.StatusOK, nil)
}
