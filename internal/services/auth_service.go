package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultSecret = "default-secret-key-change-in-production"

// AuthService issues and checks scope tokens. A scope token names one client
// storage scope (its cart, session marker and pending edit); it does not carry
// a login.
type AuthService struct {
	secretKey []byte
	ttl       time.Duration
	logger    zerolog.Logger
}

type ScopeClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func NewAuthService(secret string, ttl time.Duration, logger zerolog.Logger) *AuthService {
	if secret == "" {
		secret = defaultSecret
		logger.Warn().Msg("JWT_SECRET not set, using default key")
	}

	return &AuthService{
		secretKey: []byte(secret),
		ttl:       ttl,
		logger:    logger,
	}
}

// NewScope creates a fresh scope id and its token.
func (s *AuthService) NewScope() (string, string, error) {
	scope := uuid.NewString()
	token, err := s.GenerateScopeToken(scope)
	if err != nil {
		return "", "", err
	}
	s.logger.Info().Str("scope", scope).Msg("Scope created")
	return scope, token, nil
}

func (s *AuthService) GenerateScopeToken(scope string) (string, error) {
	now := time.Now()
	claims := &ScopeClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error generating scope token")
		return "", err
	}
	return tokenString, nil
}

// ValidateScopeToken returns the scope named by a valid token.
func (s *AuthService) ValidateScopeToken(tokenString string) (string, error) {
	claims := &ScopeClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidScopeToken
	}
	if _, err = uuid.Parse(claims.Scope); err != nil {
		return "", ErrInvalidScopeToken
	}
	return claims.Scope, nil
}
