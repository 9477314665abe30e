package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/models"
	"storefront/internal/store"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

// PasswordCost is the bcrypt cost for new hashes.
var PasswordCost = bcrypt.DefaultCost

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewUserService(s *store.Store, logger zerolog.Logger) *UserService {
	return &UserService{
		store:  s,
		logger: logger,
	}
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// Register creates a non-admin user. Checks run in a fixed order and the first
// failing one is returned; nothing is written in that case.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var created models.User
	err = s.store.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		if lo.ContainsBy(users, func(u models.User) bool { return u.Email == email }) {
			return nil, ErrEmailExists
		}
		id, err := s.store.NextID(ctx)
		if err != nil {
			return nil, err
		}
		created = models.User{
			ID:           id,
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			IsAdmin:      false,
		}
		return append(users, created), nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			s.logger.Error().Err(err).Str("email", email).Msg("Error creating user")
		}
		return nil, err
	}

	s.logger.Info().Int("user_id", created.ID).Str("email", created.Email).Msg("User registered successfully")
	return &created, nil
}

// Login checks the credentials and sets the scope's session marker. A failure
// does not say which field was wrong and leaves the marker untouched.
func (s *UserService) Login(ctx context.Context, scope string, req *models.LoginRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error loading users")
		return nil, err
	}

	user, found := lo.Find(users, func(u models.User) bool {
		return u.Email == email && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
	})
	if !found {
		s.logger.Warn().Str("email", email).Msg("Failed authentication attempt")
		return nil, ErrInvalidCredentials
	}

	if err = s.store.SetSession(ctx, scope, email); err != nil {
		s.logger.Error().Err(err).Msg("Error setting session")
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User logged in")
	return &user, nil
}

// Logout is idempotent.
func (s *UserService) Logout(ctx context.Context, scope string) error {
	if err := s.store.ClearSession(ctx, scope); err != nil {
		s.logger.Error().Err(err).Msg("Error clearing session")
		return err
	}
	return nil
}

// CurrentUser resolves the session marker. It returns nil when the scope is
// anonymous or the marker names a user that no longer exists.
func (s *UserService) CurrentUser(ctx context.Context, scope string) (*models.User, error) {
	email, err := s.store.Session(ctx, scope)
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, nil
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	user, found := lo.Find(users, func(u models.User) bool { return u.Email == email })
	if !found {
		s.logger.Debug().Str("email", email).Msg("Session refers to unknown user")
		return nil, nil
	}
	return &user, nil
}

func (s *UserService) IsAdmin(ctx context.Context, scope string) (bool, error) {
	user, err := s.CurrentUser(ctx, scope)
	if err != nil || user == nil {
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *UserService) HasSession(ctx context.Context, scope string) (bool, error) {
	email, err := s.store.Session(ctx, scope)
	return email != "", err
}

// Navigation is the navbar state: greeting and admin link for a logged-in
// scope, nothing for an anonymous one.
func (s *UserService) Navigation(ctx context.Context, scope string) (models.Navigation, error) {
	loggedIn, err := s.HasSession(ctx, scope)
	if err != nil || !loggedIn {
		return models.Navigation{}, err
	}
	nav := models.Navigation{LoggedIn: true}
	user, err := s.CurrentUser(ctx, scope)
	if err != nil {
		return models.Navigation{}, err
	}
	if user != nil {
		nav.UserName = user.Name
		nav.ShowAdminLink = user.IsAdmin
	}
	return nav, nil
}
