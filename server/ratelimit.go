package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const limiterIdleCleanup = 5 * time.Minute

// rateLimiter hands out one token bucket per client IP.
type rateLimiter struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	trustProxy  bool
	mu          sync.Mutex
	lastCleanup time.Time
}

// newRateLimiter allows perMinute requests per client per minute, all of them
// available as a burst. Zero disables limiting. Proxy headers identify the
// client only when trustProxy is set.
func newRateLimiter(perMinute int, trustProxy bool) *rateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &rateLimiter{
		rate:        rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		burst:       perMinute,
		trustProxy:  trustProxy,
		lastCleanup: time.Now(),
	}
}

func (rl *rateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}
	actual, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rate, rl.burst))
	rl.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose bucket has refilled completely.
func (rl *rateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < limiterIdleCleanup {
		return
	}
	rl.lastCleanup = time.Now()

	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// clientIP returns the peer address. With trustProxy it prefers the first
// X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			return strings.TrimSpace(strings.Split(xff, ",")[0])
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// AuthRateLimitMiddleware throttles the login and callback routes per client IP.
func (s *Server) AuthRateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authLimit == nil {
			next(w, r)
			return
		}

		key := clientIP(r, s.authLimit.trustProxy)
		limiter := s.authLimit.getLimiter(key)
		if !limiter.Allow() {
			reservation := limiter.Reserve()
			delay := reservation.Delay()
			reservation.Cancel()

			retryAfter := max(int(delay.Seconds()), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			log.Ctx(r.Context()).Warn().
				Str("client_ip", key).
				Str("path", r.URL.Path).
				Int("retry_after", retryAfter).
				Msg("Auth rate limit exceeded")
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
