package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/models"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type contextKey string

const (
	ScopeKey     contextKey = "scope"
	RequestIDKey contextKey = "request_id"
)

// ScopeValidator resolves a bearer token to a storage scope.
type ScopeValidator interface {
	ValidateScopeToken(token string) (string, error)
}

// AdminChecker reports whether the scope's session belongs to an admin.
type AdminChecker interface {
	IsAdmin(ctx context.Context, scope string) (bool, error)
}

type ErrorResponse struct {
	Error  string         `json:"error"`
	Notice *models.Notice `json:"notice,omitempty"`
}

func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"*"},
		MaxAge:         86400,
	})
	return c.Handler
}

func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			w.Header().Set("Content-Security-Policy", "default-src 'self'")
			next.ServeHTTP(w, r)
		})
	}
}

type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(r, b),
	}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.limiter.Allow() {
				respondWithError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequestLogging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = generateRequestID()
			}
			w.Header().Set("X-Request-ID", requestID)

			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			r = r.WithContext(ctx)

			logger.Debug().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.UserAgent()).
				Msg("Incoming request")

			wrapped := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.StatusCode).
				Dur("duration", time.Since(start)).
				Msg("Request completed")
		})
	}
}

// ResponseWriter records the status code written by the wrapped handler.
type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(code int) {
	rw.StatusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

// ScopeAuthentication requires a valid scope token and puts its scope into the
// request context.
func ScopeAuthentication(validator ScopeValidator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "missing_authorization", "Authorization header is required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondWithError(w, http.StatusUnauthorized, "invalid_authorization", "Invalid authorization header format")
				return
			}

			scope, err := validator.ValidateScopeToken(parts[1])
			if err != nil {
				logger.Warn().Err(err).Msg("Invalid scope token")
				respondWithError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ScopeKey, scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin lets the request through only when the scope is logged in as
// an admin user.
func RequireAdmin(checker AdminChecker, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, ok := GetScope(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "unauthorized", "Scope not found")
				return
			}

			isAdmin, err := checker.IsAdmin(r.Context(), scope)
			if err != nil {
				logger.Error().Err(err).Msg("Error checking admin flag")
				respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
				return
			}
			if !isAdmin {
				respondWithError(w, http.StatusForbidden, "forbidden", "Only admins can manage products")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequestValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if (r.Method == http.MethodPost || r.Method == http.MethodPut) && r.ContentLength != 0 {
				contentType := r.Header.Get("Content-Type")
				if !strings.Contains(contentType, "application/json") {
					respondWithError(w, http.StatusBadRequest, "invalid_content_type", "Content-Type must be application/json")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ErrorHandling(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("error", err).
						Str("path", r.URL.Path).
						Str("method", r.Method).
						Msg("Panic recovered")

					respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func PerformanceMonitoring(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			if duration > 1*time.Second {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Dur("duration", duration).
					Int("status", wrapped.StatusCode).
					Msg("Slow request detected")
			}
		})
	}
}

func GetScope(r *http.Request) (string, bool) {
	scope, ok := r.Context().Value(ScopeKey).(string)
	return scope, ok && scope != ""
}

// WithScope returns a copy of r carrying scope, as ScopeAuthentication would.
func WithScope(r *http.Request, scope string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ScopeKey, scope))
}

func respondWithError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:  errorCode,
		Notice: models.NewNotice(models.LevelError, message),
	})
}
