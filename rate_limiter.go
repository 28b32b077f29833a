package main

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"clientListWebsite/internal/utils"
)

// RateLimiter keeps one token bucket per client address
type RateLimiter struct {
	limit      rate.Limit
	burst      int
	limiters   map[string]*clientLimiter
	mutex      sync.Mutex
	cleanupTtl time.Duration
	now        func() time.Time
	stop       chan struct{}
	stopOnce   sync.Once
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerMinute int, burstCapacity int) *RateLimiter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return &RateLimiter{
		limit:      limit,
		burst:      burstCapacity,
		limiters:   make(map[string]*clientLimiter),
		cleanupTtl: 10 * time.Minute,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
}

// Allow checks if a request from the given IP should be allowed
func (rl *RateLimiter) Allow(ip string) bool {
	now := rl.now()

	rl.mutex.Lock()
	cl, exists := rl.limiters[ip]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = cl
	}
	cl.lastSeen = now
	rl.mutex.Unlock()

	return cl.limiter.AllowN(now, 1)
}

// StartCleanupRoutine starts a background routine that forgets idle clients
func (rl *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stop:
				return
			}
		}
	}()
}

// Stop ends the cleanup routine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) > rl.cleanupTtl {
			delete(rl.limiters, ip)
		}
	}
}

// RateLimitMiddleware creates HTTP middleware for rate limiting
func (app *App) RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getRealIP(r)

			if !limiter.Allow(ip) {
				AppLogger.WithFields(map[string]interface{}{
					"ip":     ip,
					"method": r.Method,
					"path":   r.URL.Path,
				}).Warn("Rate limit exceeded")

				utils.RespondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getRealIP extracts the real IP address from the request
func getRealIP(r *http.Request) string {
	// Check X-Real-IP header (nginx)
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	// X-Forwarded-For can contain multiple IPs, take the first one
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
