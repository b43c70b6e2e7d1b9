// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		stop:     make(chan struct{}),
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors(time.Minute)

	return rl
}

// PerSecond builds a limiter from a requests-per-second setting.
func PerSecond(rps float64, burst int) *RateLimiter {
	return NewRateLimiter(rate.Limit(rps), burst)
}

// PerMinute builds a limiter that refills n tokens each minute.
func PerMinute(n, burst int) *RateLimiter {
	if n <= 0 {
		n = 1
	}
	return NewRateLimiter(rate.Every(time.Minute/time.Duration(n)), burst)
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupVisitors(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mtx.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > visitorTTL {
					delete(rl.visitors, ip)
				}
			}
			rl.mtx.Unlock()
		}
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getVisitor(c.ClientIP())

		if !limiter.Allow() {
			lang := utils.GetLangFromContext(c)
			utils.AbortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", i18n.T(lang, i18n.KeyRateLimited))
			return
		}

		c.Next()
	}
}
