// Package ratelimit provides a Redis-backed fixed-window request limiter.
package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dvanek/go-auth-api/internal/apperr"
	"github.com/dvanek/go-auth-api/internal/httputil"
	"github.com/dvanek/go-auth-api/internal/logging"
)

// Limiter counts requests per client IP in a fixed window. Counters live in
// Redis so the limit holds across instances.
type Limiter struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *logging.Logger
}

func NewLimiter(client *redis.Client, max int, window time.Duration, logger *logging.Logger) *Limiter {
	return &Limiter{
		client: client,
		max:    max,
		window: window,
		logger: logger,
	}
}

// Allow records one request for key and reports whether it is within the
// limit. The window TTL is set when the counter is first created.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(l.max), nil
}

// Middleware gates a route subtree with the limiter. Redis failures fail
// open so the API stays available without its limiter.
func (l *Limiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				l.logger.Error("rate limiter unavailable", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				httputil.WriteError(w, r, apperr.TooManyRequests(
					"Too Many Request from this IP, please try again in an hour."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP assumes the RealIP middleware already rewrote RemoteAddr
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
