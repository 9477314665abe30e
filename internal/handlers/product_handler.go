package handlers

import (
	"net/http"

	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/rs/zerolog"
)

const PageEditProduct = "admin-edit-product.html"

type ProductHandler struct {
	catalogService *services.CatalogService
	userService    *services.UserService
	logger         zerolog.Logger
}

func NewProductHandler(catalog *services.CatalogService, users *services.UserService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalog,
		userService:    users,
		logger:         logger,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	products, err := h.catalogService.List(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	canManage, err := h.userService.IsAdmin(r.Context(), scope)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.ProductList{
		Products:  products,
		CanManage: canManage,
		Empty:     len(products) == 0,
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(w, r)
	if !ok {
		return
	}

	product, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.ProductResponse{Product: product})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.catalogService.Add(r.Context(), &req)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	metrics.CatalogOperations.WithLabelValues("add").Inc()

	respondWithJSON(w, http.StatusCreated, models.ProductResponse{
		Product: product,
		Notice:  models.NewNotice(models.LevelSuccess, "Product added successfully!"),
	})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(w, r)
	if !ok {
		return
	}

	var req models.ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.catalogService.Save(r.Context(), id, &req)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	metrics.CatalogOperations.WithLabelValues("save").Inc()

	respondWithJSON(w, http.StatusOK, models.ProductResponse{
		Product: product,
		Notice:  models.NewNotice(models.LevelSuccess, "Product updated successfully!"),
	})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(w, r)
	if !ok {
		return
	}
	if !confirmed(w, r, "Are you sure you want to delete this product?") {
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	metrics.CatalogOperations.WithLabelValues("delete").Inc()

	respondWithJSON(w, http.StatusOK, models.ProductResponse{
		Notice: models.NewNotice(models.LevelSuccess, "Product deleted successfully!"),
	})
}

// BeginEdit marks the product as pending edit for this client and points it
// at the edit page.
func (h *ProductHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}
	id, ok := idVar(w, r)
	if !ok {
		return
	}

	if err := h.catalogService.BeginEdit(r.Context(), scope, id); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.ProductResponse{
		Redirect: models.NewRedirect(PageEditProduct, 0),
	})
}

func (h *ProductHandler) Editing(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	editing, err := h.catalogService.Editing(r.Context(), scope)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, editing)
}

func (h *ProductHandler) SaveEditing(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOrReject(w, r)
	if !ok {
		return
	}

	var req models.ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.catalogService.SaveEditing(r.Context(), scope, &req)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}
	metrics.CatalogOperations.WithLabelValues("save").Inc()

	respondWithJSON(w, http.StatusOK, models.ProductResponse{
		Product:  product,
		Notice:   models.NewNotice(models.LevelSuccess, "Product updated successfully!"),
		Redirect: models.NewRedirect("shop.html", models.RedirectDelay),
	})
}
