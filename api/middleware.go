package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

type RateLimiter struct {
	requests map[string]*ClientRequests
	mu       sync.RWMutex
}

type ClientRequests struct {
	count    int
	lastSeen time.Time
}

const (
	maxRequests    = 120             // Maximum requests per window
	windowDuration = time.Minute * 5 // Window duration
)

var limiter = &RateLimiter{
	requests: make(map[string]*ClientRequests),
}

func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A valid API key bypasses rate limiting entirely
		apiKey := r.Header.Get("Authorization")
		if apiKey != "" && ValidateAPIKey(apiKey) {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := r.RemoteAddr

		limiter.mu.Lock()
		defer limiter.mu.Unlock()

		// Clean up old entries
		now := time.Now()
		for ip, req := range limiter.requests {
			if now.Sub(req.lastSeen) > windowDuration {
				delete(limiter.requests, ip)
			}
		}

		client, exists := limiter.requests[clientIP]
		if !exists {
			client = &ClientRequests{}
			limiter.requests[clientIP] = client
		}

		if now.Sub(client.lastSeen) > windowDuration {
			client.count = 0
		}

		if client.count >= maxRequests {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(maxRequests))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", client.lastSeen.Add(windowDuration).Format(time.RFC3339))
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		client.count++
		client.lastSeen = now

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(maxRequests-client.count))
		w.Header().Set("X-RateLimit-Reset", client.lastSeen.Add(windowDuration).Format(time.RFC3339))

		next.ServeHTTP(w, r)
	})
}
