package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

var (
	limiters      = make(map[string]*rate.Limiter)
	limitersMutex sync.Mutex

	whitelistedIPs = map[string]bool{
		"127.0.0.1": true, // the paired device syncs aggressively on reconnect
	}
)

func getLimiter(ip string) *rate.Limiter {
	limitersMutex.Lock()
	defer limitersMutex.Unlock()

	limiter, exists := limiters[ip]
	if !exists {
		// 10 req/s steady with a burst of 30 covers the radar screen's
		// fan-out without letting a runaway client hammer SQLite.
		limiter = rate.NewLimiter(10, 30)
		limiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware throttles per client IP
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if whitelistedIPs[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !getLimiter(ip).Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
