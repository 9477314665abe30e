package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// CartService manages one cart per scope. The cart holds at most one line per
// product and every stored line has quantity >= 1.
type CartService struct {
	store   *store.Store
	catalog *CatalogService
	logger  zerolog.Logger
}

func NewCartService(s *store.Store, catalog *CatalogService, logger zerolog.Logger) *CartService {
	return &CartService{
		store:   s,
		catalog: catalog,
		logger:  logger,
	}
}

func (s *CartService) Items(ctx context.Context, scope string) ([]models.CartItem, error) {
	cart, err := s.store.Cart(ctx, scope)
	if err != nil {
		s.logger.Error().Err(err).Str("scope", scope).Msg("Error loading cart")
		return nil, err
	}
	if cart == nil {
		cart = []models.CartItem{}
	}
	return cart, nil
}

// AddItem puts one more unit of productID in the cart. It returns the product
// so callers can name it.
func (s *CartService) AddItem(ctx context.Context, scope string, productID int) (*models.Product, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	err = s.store.UpdateCart(ctx, scope, func(cart []models.CartItem) ([]models.CartItem, error) {
		_, idx, found := lo.FindIndexOf(cart, func(item models.CartItem) bool { return item.ID == productID })
		if found {
			cart[idx].Quantity++
			return cart, nil
		}

		category := product.Category
		if category == "" {
			category = models.DefaultCategory
		}
		return append(cart, models.CartItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.Image,
			Category: category,
			Quantity: 1,
		}), nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", productID).Msg("Error adding to cart")
		return nil, err
	}

	s.logger.Debug().Str("scope", scope).Int("product_id", productID).Msg("Added to cart")
	return product, nil
}

// RemoveItem drops the line for productID. Missing lines are ignored.
func (s *CartService) RemoveItem(ctx context.Context, scope string, productID int) error {
	err := s.store.UpdateCart(ctx, scope, func(cart []models.CartItem) ([]models.CartItem, error) {
		return lo.Reject(cart, func(item models.CartItem, _ int) bool { return item.ID == productID }), nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", productID).Msg("Error removing from cart")
	}
	return err
}

// SetQuantity sets the line's quantity. A quantity below 1 removes the line.
// It reports whether a line was changed; a missing line is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, scope string, productID, quantity int) (bool, error) {
	if quantity < 1 {
		return true, s.RemoveItem(ctx, scope, productID)
	}

	var updated bool
	err := s.store.UpdateCart(ctx, scope, func(cart []models.CartItem) ([]models.CartItem, error) {
		_, idx, found := lo.FindIndexOf(cart, func(item models.CartItem) bool { return item.ID == productID })
		if found {
			cart[idx].Quantity = quantity
			updated = true
		}
		return cart, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", productID).Msg("Error updating cart quantity")
		return false, err
	}
	return updated, nil
}

// Clear empties the cart. Callers confirm with the user first.
func (s *CartService) Clear(ctx context.Context, scope string) error {
	if err := s.store.DeleteCart(ctx, scope); err != nil {
		s.logger.Error().Err(err).Str("scope", scope).Msg("Error clearing cart")
		return err
	}
	s.logger.Info().Str("scope", scope).Msg("Cart cleared")
	return nil
}

func ComputeTotals(cart []models.CartItem) models.CartTotals {
	subtotal := lo.SumBy(cart, func(item models.CartItem) float64 { return item.LineTotal() })
	tax := subtotal * models.TaxRate
	return models.CartTotals{
		ItemCount: lo.SumBy(cart, func(item models.CartItem) int { return item.Quantity }),
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal + tax,
	}
}

func (s *CartService) Totals(ctx context.Context, scope string) (models.CartTotals, error) {
	cart, err := s.Items(ctx, scope)
	if err != nil {
		return models.CartTotals{}, err
	}
	return ComputeTotals(cart), nil
}

// Count is the number of units in the cart.
func (s *CartService) Count(ctx context.Context, scope string) (int, error) {
	cart, err := s.Items(ctx, scope)
	if err != nil {
		return 0, err
	}
	return lo.SumBy(cart, func(item models.CartItem) int { return item.Quantity }), nil
}

// Badge is the navbar counter; it is hidden rather than showing 0.
func (s *CartService) Badge(ctx context.Context, scope string) (models.Badge, error) {
	count, err := s.Count(ctx, scope)
	if err != nil {
		return models.Badge{}, err
	}
	return models.Badge{Count: count, Visible: count > 0}, nil
}

func BuildView(cart []models.CartItem) *models.CartView {
	totals := ComputeTotals(cart)
	lines := lo.Map(cart, func(item models.CartItem, _ int) models.CartLine {
		return models.CartLine{
			CartItem:         item,
			LineTotal:        item.LineTotal(),
			DisplayPrice:     models.FormatMoney(item.Price),
			DisplayLineTotal: models.FormatMoney(item.LineTotal()),
			CanDecrement:     item.Quantity > 1,
		}
	})
	return &models.CartView{
		Lines:        lines,
		Empty:        len(cart) == 0,
		Summary:      models.ItemsSummary(totals.ItemCount),
		ShowCheckout: len(cart) > 0,
		Totals:       totals,
		Display:      totals.Display(),
	}
}

// View is everything the cart and checkout pages render.
func (s *CartService) View(ctx context.Context, scope string) (*models.CartView, error) {
	cart, err := s.Items(ctx, scope)
	if err != nil {
		return nil, err
	}
	return BuildView(cart), nil
}
