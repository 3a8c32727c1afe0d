package server

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const limiterCleanupInterval = 5 * time.Minute

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter throttles requests per client address. Each limiter keeps its own
// budget, so routes sharing one limiter share a client's budget.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows perMinute requests per client with bursts of the same
// size, and starts the background cleanup of idle clients.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	rl := &RateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := clientAddress(r)
		if !rl.allow(client) {
			log.Ctx(r.Context()).Warn().Str("client", client).Str("path", r.URL.Path).Msg("rate limit exceeded")

			retryAfter := int(math.Ceil(1.0 / float64(rl.limit)))
			w.Header().Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[client] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now().Add(-2 * limiterCleanupInterval))
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for client, cl := range rl.limiters {
		if cl.lastAccess.Before(cutoff) {
			delete(rl.limiters, client)
		}
	}
}

// clientAddress is the first X-Forwarded-For hop or the remote address.
func clientAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
