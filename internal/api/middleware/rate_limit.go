package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/catalog-admin/internal/errors"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils/response"
)

type SubmitLimiter interface {
	CheckSubmitRateLimit(ctx context.Context, userID string) (bool, int, int, error)
}

// SubmitRateLimit caps submissions per authenticated admin. A limiter failure
// lets the request through.
func SubmitRateLimit(limiter SubmitLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			logger := LoggerFromContext(r.Context())

			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				response.Error(w, errors.UnauthorizedError("Authentication required"))
				return
			}

			allowed, remaining, retryAfter, err := limiter.CheckSubmitRateLimit(r.Context(), claims.UserID.String())
			if err != nil {
				logger.Error("Submit rate limit check failed", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.Error(w, errors.TooManyRequestsError("Too many submissions. Please try again later."))
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		})
	}
}
