package services

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/models"
	"storefront/internal/store"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

type CatalogService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewCatalogService(s *store.Store, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:  s,
		logger: logger,
	}
}

// List returns the catalog, empty when nothing is stored.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error loading products")
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id int) (*models.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, err
	}
	product, found := lo.Find(products, func(p models.Product) bool { return p.ID == id })
	if !found {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Delete removes the product with id. Deleting an unknown id is not an error
// and leaves the list unchanged.
func (s *CatalogService) Delete(ctx context.Context, id int) error {
	var removed bool
	err := s.store.UpdateProducts(ctx, func(products []models.Product) ([]models.Product, error) {
		kept := lo.Reject(products, func(p models.Product, _ int) bool { return p.ID == id })
		removed = len(kept) != len(products)
		return kept, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("Error deleting product")
		return err
	}
	if removed {
		s.logger.Info().Int("product_id", id).Msg("Product deleted")
	}
	return nil
}

func normalizeProduct(req *models.ProductRequest) (models.Product, error) {
	p := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
		Category:    strings.TrimSpace(req.Category),
	}
	if p.Name == "" || p.Price < 0 {
		return models.Product{}, ErrInvalidProduct
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	return p, nil
}

// Add appends a new product with a store-assigned id.
func (s *CatalogService) Add(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	product, err := normalizeProduct(req)
	if err != nil {
		return nil, err
	}

	err = s.store.UpdateProducts(ctx, func(products []models.Product) ([]models.Product, error) {
		id, err := s.store.NextID(ctx)
		if err != nil {
			return nil, err
		}
		product.ID = id
		return append(products, product), nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Error adding product")
		return nil, err
	}

	s.logger.Info().Int("product_id", product.ID).Str("name", product.Name).Msg("Product added")
	return &product, nil
}

// Save replaces the product with id, or appends it when no product has that id.
func (s *CatalogService) Save(ctx context.Context, id int, req *models.ProductRequest) (*models.Product, error) {
	product, err := normalizeProduct(req)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, ErrProductNotFound
	}
	product.ID = id

	var created bool
	err = s.store.UpdateProducts(ctx, func(products []models.Product) ([]models.Product, error) {
		_, idx, found := lo.FindIndexOf(products, func(p models.Product) bool { return p.ID == id })
		if !found {
			created = true
			if err := s.store.EnsureSequenceAtLeast(ctx, id); err != nil {
				return nil, err
			}
			return append(products, product), nil
		}
		products[idx] = product
		return products, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("Error saving product")
		return nil, err
	}

	s.logger.Info().Int("product_id", id).Bool("created", created).Msg("Product saved")
	return &product, nil
}

// BeginEdit stashes id as the scope's pending edit.
func (s *CatalogService) BeginEdit(ctx context.Context, scope string, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.store.SetEditingProduct(ctx, scope, id)
}

// Editing returns the pending edit for scope. The product is nil when it was
// deleted in the meantime.
func (s *CatalogService) Editing(ctx context.Context, scope string) (*models.EditingProduct, error) {
	id, err := s.store.EditingProduct(ctx, scope)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, ErrNotEditing
	}
	product, err := s.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrProductNotFound) {
		return nil, err
	}
	return &models.EditingProduct{ProductID: id, Product: product}, nil
}

// SaveEditing saves the pending edit of scope and clears the marker.
func (s *CatalogService) SaveEditing(ctx context.Context, scope string, req *models.ProductRequest) (*models.Product, error) {
	id, err := s.store.EditingProduct(ctx, scope)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, ErrNotEditing
	}
	product, err := s.Save(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if err = s.store.ClearEditingProduct(ctx, scope); err != nil {
		return nil, err
	}
	return product, nil
}
