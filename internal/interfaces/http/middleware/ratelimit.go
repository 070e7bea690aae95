package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/podstore/backoffice/internal/interfaces/http/dto"
)

// RateLimitMessage is the body of a 429
const RateLimitMessage = "Demasiadas solicitudes, intente más tarde"

// RateLimiter keeps one token bucket per key. Buckets idle for two
// windows are dropped by the janitor.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	every   rate.Limit
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows limit requests per window and key, refilled evenly
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		every:   rate.Every(window / time.Duration(limit)),
		stop:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Stop ends the janitor goroutine
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, c := range rl.clients {
				if now.Sub(c.lastSeen) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.every, rl.limit)}
		rl.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

// Allow reports whether a request from key may proceed
func (rl *RateLimiter) Allow(key string) bool {
	return rl.bucket(key).Allow()
}

// Remaining returns the whole tokens left for key
func (rl *RateLimiter) Remaining(key string) int {
	tokens := rl.bucket(key).Tokens()
	return int(math.Max(0, math.Floor(tokens)))
}

// RateLimit limits requests per client IP and answers 429 with a flat
// error body.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	limitHeader := strconv.Itoa(limiter.limit)
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.Allow(key) {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(1/float64(limiter.every)))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.MarketplaceError{Error: RateLimitMessage})
			return
		}

		c.Header("X-RateLimit-Limit", limitHeader)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
