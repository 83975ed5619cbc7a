package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/skarbek/treasury-server-go/internal/errors"
	"github.com/skarbek/treasury-server-go/internal/httputil"
	"github.com/skarbek/treasury-server-go/internal/service"
)

const (
	loginMaxAttempts    = 5
	loginWindowDuration = time.Minute
)

// LoginRateLimitMiddleware throttles login attempts per client IP using the
// redis sliding-window limiter.
type LoginRateLimitMiddleware struct {
	limiter *service.RateLimiter
}

func NewLoginRateLimitMiddleware(limiter *service.RateLimiter) *LoginRateLimitMiddleware {
	return &LoginRateLimitMiddleware{limiter: limiter}
}

func (m *LoginRateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		allowed, resetAt := m.limiter.CheckLimit(r.Context(), "login:"+ip, loginMaxAttempts, loginWindowDuration)
		if !allowed {
			secondsLeft := int(time.Until(resetAt).Seconds()) + 1
			if secondsLeft < 1 {
				secondsLeft = 1
			}
			log.Warn().Str("ip", ip).Int("retryAfter", secondsLeft).Msg("login rate limit exceeded")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", secondsLeft))
			httputil.WriteError(w, apperrors.RateLimitExceeded())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
