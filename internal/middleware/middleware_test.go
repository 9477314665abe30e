package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator map[string]string

func (f fakeValidator) ValidateScopeToken(token string) (string, error) {
	scope, ok := f[token]
	if !ok {
		return "", errors.New("bad token")
	}
	return scope, nil
}

type fakeChecker struct {
	admins map[string]bool
	err    error
}

func (f fakeChecker) IsAdmin(_ context.Context, scope string) (bool, error) {
	return f.admins[scope], f.err
}

func echoScope() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, _ := GetScope(r)
		w.Write([]byte(scope))
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestScopeAuthentication(t *testing.T) {
	handler := ScopeAuthentication(fakeValidator{"good": "scope-1"}, zerolog.Nop())(echoScope())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing_authorization"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "invalid_authorization"},
		{"too many parts", "Bearer good extra", http.StatusUnauthorized, "invalid_authorization"},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, "invalid_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantError, resp.Error)
			require.NotNil(t, resp.Notice)
			assert.EqualValues(t, "error", resp.Notice.Level)
		})
	}

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "scope-1", rec.Body.String())
	})
}

func TestRequireAdmin(t *testing.T) {
	checker := fakeChecker{admins: map[string]bool{"admin-scope": true}}
	handler := RequireAdmin(checker, zerolog.Nop())(echoScope())

	serve := func(r *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec
	}

	rec := serve(httptest.NewRequest(http.MethodPost, "/api/v1/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(WithScope(httptest.NewRequest(http.MethodPost, "/api/v1/products", nil), "user-scope"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only admins can manage products", decodeError(t, rec).Notice.Message)

	rec = serve(WithScope(httptest.NewRequest(http.MethodPost, "/api/v1/products", nil), "admin-scope"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-scope", rec.Body.String())

	failing := RequireAdmin(fakeChecker{err: errors.New("store down")}, zerolog.Nop())(echoScope())
	rec = httptest.NewRecorder()
	failing.ServeHTTP(rec, WithScope(httptest.NewRequest(http.MethodPost, "/api/v1/products", nil), "admin-scope"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	handler := NewRateLimiter(0, 2).Middleware()(echoScope())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestValidation(t *testing.T) {
	handler := RequestValidation()(echoScope())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":1}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":1}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "bodyless POST needs no content type")
}

func TestErrorHandlingRecoversPanics(t *testing.T) {
	handler := ErrorHandling(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error)
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	handler := RequestLogging(zerolog.Nop())(echoScope())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
