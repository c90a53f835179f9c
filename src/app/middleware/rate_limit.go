package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"jokeapi/src/app/http/response"
)

// RateLimiter hands every client IP its own token bucket. A bucket holds
// `requests` tokens and refills completely over `window`.
//
// Client identity comes from gin's ClientIP, so the engine's trusted proxy
// list decides whether X-Forwarded-For is honoured.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*visitor
	limit     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
	log       *slog.Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter builds a limiter allowing requests per window per client.
func NewRateLimiter(requests int, window time.Duration, log *slog.Logger) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*visitor),
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   requests,
		window:  window,
		now:     time.Now,
		log:     log,
	}
}

// Allow spends one token from the client's bucket.
func (l *RateLimiter) Allow(client string) bool {
	now := l.now()

	l.mu.Lock()
	if l.lastSweep.IsZero() {
		l.lastSweep = now
	}
	if now.Sub(l.lastSweep) >= l.window {
		l.evictIdle(now)
		l.lastSweep = now
	}
	v, ok := l.clients[client]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Clients returns the number of buckets currently tracked.
func (l *RateLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// evictIdle drops buckets untouched for a full window. Such a bucket has
// refilled completely, so a new one is equivalent. Must hold l.mu.
func (l *RateLimiter) evictIdle(now time.Time) {
	for client, v := range l.clients {
		if now.Sub(v.lastSeen) >= l.window {
			delete(l.clients, client)
		}
	}
}

// Middleware answers 429 once the client's budget is spent.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if !l.Allow(client) {
			l.log.Warn("rate limit exceeded",
				"request_id", GetRequestID(c),
				"client", client,
				"path", c.Request.URL.Path,
			)
			response.TooManyRequests(c, "request limit exceeded, try again later", GetRequestID(c))
			return
		}
		c.Next()
	}
}
