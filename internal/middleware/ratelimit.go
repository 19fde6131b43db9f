package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/questforge/questforge-backend/internal/database"
	"github.com/questforge/questforge-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the counting window for the Redis limiter.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the number of requests allowed per window.
	RateLimitMaxRequests = 40
	// RateLimitKeyPrefix is the Redis key prefix for request counters.
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs.
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked.
	BlockedIPDuration = 24 * time.Hour
)

// RateLimitMiddleware is a Redis-backed windowed limiter with IP
// blocking. Fails open when Redis is unreachable.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r)
		ctx := context.Background()

		blocked, err := database.RedisClient.Exists(ctx, BlockedIPKeyPrefix+ip).Result()
		if err == nil && blocked > 0 {
			tooManyRequests(w, "Your IP has been temporarily blocked due to excessive requests. Please try again later.", 0)
			return
		}

		key := RateLimitKeyPrefix + ip
		count, err := database.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, key, RateLimitWindow)
		}

		if count > RateLimitMaxRequests {
			database.RedisClient.Set(ctx, BlockedIPKeyPrefix+ip, "1", BlockedIPDuration)
			tooManyRequests(w, "Rate limit exceeded. Your IP has been temporarily blocked. Please try again later.", int(RateLimitWindow.Seconds()))
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(RateLimitMaxRequests-count, 10))
		next.ServeHTTP(w, r)
	})
}

func tooManyRequests(w http.ResponseWriter, message string, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	if retryAfter > 0 {
		fmt.Fprintf(w, `{"success":false,"message":"%s","retry_after":%d}`, message, retryAfter)
		return
	}
	fmt.Fprintf(w, `{"success":false,"message":"%s"}`, message)
}
