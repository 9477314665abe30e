package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/store"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	models.User
	password string
}

var defaultUsers = []seedUser{
	{User: models.User{ID: 1, Name: "Admin", Email: "admin@gmail.com", IsAdmin: true}, password: "admin123"},
	{User: models.User{ID: 2, Name: "John Doe", Email: "john@example.com"}, password: "123456"},
}

var defaultProducts = []models.Product{
	{ID: 1, Name: "iPhone 15", Price: 999, Description: "Latest iPhone with advanced camera", Image: "https://images.unsplash.com/photo-1592899677979-9a7c7e9f7138?w=300", Category: "electronics"},
	{ID: 2, Name: "MacBook Pro", Price: 1999, Description: "Powerful laptop for professionals", Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=300", Category: "electronics"},
	{ID: 3, Name: "AirPods Pro", Price: 249, Description: "Wireless earbuds with noise cancellation", Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300", Category: "electronics"},
	{ID: 4, Name: "Samsung Galaxy S24", Price: 899, Description: "Flagship Android smartphone", Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300", Category: "electronics"},
	{ID: 5, Name: "Sony Headphones", Price: 349, Description: "Premium wireless headphones", Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300", Category: "electronics"},
	{ID: 6, Name: "Dell XPS 13", Price: 1299, Description: "Ultra-thin premium laptop", Image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=300", Category: "electronics"},
}

// seedUsers hashes the default passwords. It only runs when the users key is
// absent.
func seedUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(defaultUsers))
	for _, u := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), PasswordCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := u.User
		user.PasswordHash = string(hash)
		users = append(users, user)
	}
	return users, nil
}

type SeedService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewSeedService(s *store.Store, logger zerolog.Logger) *SeedService {
	return &SeedService{
		store:  s,
		logger: logger,
	}
}

// Initialize writes the default users and products if their keys are absent.
// A present but empty list is left alone.
func (s *SeedService) Initialize(ctx context.Context) error {
	seededUsers, err := s.store.InitUsers(ctx, seedUsers)
	if err != nil {
		return err
	}
	if seededUsers {
		s.logger.Info().Int("count", len(defaultUsers)).Msg("Seeded default users")
	}

	seededProducts, err := s.store.InitProducts(ctx, func() ([]models.Product, error) {
		return defaultProducts, nil
	})
	if err != nil {
		return err
	}
	if seededProducts {
		s.logger.Info().Int("count", len(defaultProducts)).Msg("Seeded default products")
	}

	maxUserID := lo.Max(lo.Map(defaultUsers, func(u seedUser, _ int) int { return u.ID }))
	maxProductID := lo.Max(lo.Map(defaultProducts, func(p models.Product, _ int) int { return p.ID }))
	return s.store.EnsureSequenceAtLeast(ctx, max(maxUserID, maxProductID))
}

// Reset drops users, products and the id sequence, then seeds again.
func (s *SeedService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	s.logger.Warn().Msg("Store reset")
	return s.Initialize(ctx)
}
