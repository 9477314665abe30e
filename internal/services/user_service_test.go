package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/store"
)

func (s *StorefrontSuite) TestSeedIsIdempotent() {
	users, err := s.store.Users(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)

	s.Require().NoError(s.seed.Initialize(s.ctx))

	users, err = s.store.Users(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)
	for _, u := range users {
		s.NotEmpty(u.PasswordHash)
		s.NotEqual("admin123", u.PasswordHash)
	}

	products, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.Len(products, 6)
}

func (s *StorefrontSuite) TestSeedLeavesEmptyCatalogAlone() {
	s.Require().NoError(s.store.SaveProducts(s.ctx, nil))
	s.Require().NoError(s.seed.Initialize(s.ctx))

	products, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(products)
}

func (s *StorefrontSuite) TestRegisterAddsExactlyOneUser() {
	user, err := s.users.Register(s.ctx, &models.RegisterRequest{
		Name:            "  Jane Roe ",
		Email:           " jane@example.com ",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	s.Require().NoError(err)
	s.Equal("Jane Roe", user.Name)
	s.Equal("jane@example.com", user.Email)
	s.False(user.IsAdmin)
	s.Greater(user.ID, 6, "ids continue after the seed ids")

	users, err := s.store.Users(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 3)

	// the stored password is a hash of the supplied one
	_, err = s.users.Login(s.ctx, testScope, &models.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	s.NoError(err)
}

func (s *StorefrontSuite) TestRegisterRejectsDuplicateEmail() {
	req := &models.RegisterRequest{Name: "A", Email: "dup@example.com", Password: "123456", ConfirmPassword: "123456"}
	_, err := s.users.Register(s.ctx, req)
	s.Require().NoError(err)

	_, err = s.users.Register(s.ctx, req)
	s.ErrorIs(err, ErrEmailExists)

	_, err = s.users.Register(s.ctx, &models.RegisterRequest{Email: "admin@gmail.com", Password: "123456", ConfirmPassword: "123456"})
	s.ErrorIs(err, ErrEmailExists)

	users, err := s.store.Users(s.ctx)
	s.Require().NoError(err)
	count := 0
	for _, u := range users {
		if u.Email == "dup@example.com" {
			count++
		}
	}
	s.Equal(1, count)
}

func (s *StorefrontSuite) TestRegisterValidationOrder() {
	cases := []struct {
		name string
		req  models.RegisterRequest
		want error
	}{
		{"bad email wins over everything", models.RegisterRequest{Email: "nope", Password: "1", ConfirmPassword: "2"}, ErrInvalidEmail},
		{"short password before mismatch", models.RegisterRequest{Email: "a@b.co", Password: "12345", ConfirmPassword: "x"}, ErrPasswordTooShort},
		{"mismatch", models.RegisterRequest{Email: "a@b.co", Password: "123456", ConfirmPassword: "1234567"}, ErrPasswordMismatch},
		{"mismatch before duplicate", models.RegisterRequest{Email: "admin@gmail.com", Password: "123456", ConfirmPassword: "654321"}, ErrPasswordMismatch},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.users.Register(s.ctx, &tc.req)
			s.ErrorIs(err, tc.want)
		})
	}

	users, err := s.store.Users(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2, "failed registrations must not write")
}

func (s *StorefrontSuite) TestLoginSeededAdmin() {
	user, err := s.users.Login(s.ctx, testScope, &models.LoginRequest{Email: "admin@gmail.com", Password: "admin123"})
	s.Require().NoError(err)
	s.True(user.IsAdmin)

	email, err := s.store.Session(s.ctx, testScope)
	s.Require().NoError(err)
	s.Equal("admin@gmail.com", email)

	admin, err := s.users.IsAdmin(s.ctx, testScope)
	s.Require().NoError(err)
	s.True(admin)
}

func (s *StorefrontSuite) TestLoginWrongPasswordKeepsMarker() {
	_, err := s.users.Login(s.ctx, testScope, &models.LoginRequest{Email: "john@example.com", Password: "123456"})
	s.Require().NoError(err)

	_, err = s.users.Login(s.ctx, testScope, &models.LoginRequest{Email: "admin@gmail.com", Password: "wrong-password"})
	s.ErrorIs(err, ErrInvalidCredentials)

	email, err := s.store.Session(s.ctx, testScope)
	s.Require().NoError(err)
	s.Equal("john@example.com", email)

	_, err = s.users.Login(s.ctx, "other-scope", &models.LoginRequest{Email: "nobody@example.com", Password: "123456"})
	s.ErrorIs(err, ErrInvalidCredentials)
	email, err = s.store.Session(s.ctx, "other-scope")
	s.Require().NoError(err)
	s.Empty(email)
}

func (s *StorefrontSuite) TestLoginRequiresFields() {
	_, err := s.users.Login(s.ctx, testScope, &models.LoginRequest{Email: "   ", Password: "admin123"})
	s.ErrorIs(err, ErrMissingFields)
	_, err = s.users.Login(s.ctx, testScope, &models.LoginRequest{Email: "admin@gmail.com"})
	s.ErrorIs(err, ErrMissingFields)
}

func (s *StorefrontSuite) TestLogoutIsIdempotent() {
	_, err := s.users.Login(s.ctx, testScope, &models.LoginRequest{Email: "admin@gmail.com", Password: "admin123"})
	s.Require().NoError(err)

	s.NoError(s.users.Logout(s.ctx, testScope))
	s.NoError(s.users.Logout(s.ctx, testScope))

	user, err := s.users.CurrentUser(s.ctx, testScope)
	s.Require().NoError(err)
	s.Nil(user)
}

func (s *StorefrontSuite) TestCurrentUserWithDanglingMarker() {
	s.Require().NoError(s.store.SetSession(s.ctx, testScope, "gone@example.com"))

	user, err := s.users.CurrentUser(s.ctx, testScope)
	s.Require().NoError(err)
	s.Nil(user)

	nav, err := s.users.Navigation(s.ctx, testScope)
	s.Require().NoError(err)
	s.True(nav.LoggedIn)
	s.Empty(nav.UserName)
	s.False(nav.ShowAdminLink)
}

func (s *StorefrontSuite) TestNavigation() {
	nav, err := s.users.Navigation(s.ctx, testScope)
	s.Require().NoError(err)
	s.Equal(models.Navigation{}, nav)

	_, err = s.users.Login(s.ctx, testScope, &models.LoginRequest{Email: "admin@gmail.com", Password: "admin123"})
	s.Require().NoError(err)

	nav, err = s.users.Navigation(s.ctx, testScope)
	s.Require().NoError(err)
	s.Equal(models.Navigation{LoggedIn: true, UserName: "Admin", ShowAdminLink: true}, nav)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"admin@gmail.com", false},
		{"a@b.co", false},
		{"first.last@sub.example.org", false},
		{"", true},
		{"plainaddress", true},
		{"no-tld@example", true},
		{"two@@example.com", true},
		{"with space@example.com", true},
		{"@example.com", true},
		{strings.Repeat("x", 3) + "@" + "y.z", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeedKeepsConcurrentRegistrations(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryStore())
	seed := NewSeedService(s, zerolog.Nop())
	users := NewUserService(s, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, seed.Initialize(ctx))
	}()
	go func() {
		defer wg.Done()
		_, err := users.Register(ctx, &models.RegisterRequest{
			Name: "Jane", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
		})
		assert.NoError(t, err)
	}()
	wg.Wait()

	_, err := users.Login(ctx, testScope, &models.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	assert.NoError(t, err, "seeding must not drop a registration")
}
