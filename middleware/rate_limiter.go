package middleware

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const rateLimitWindow = time.Minute

// rateLimitPerMinute can be tuned with RATE_LIMIT_PER_MINUTE.
var rateLimitPerMinute int64 = 300

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	// In-memory fallback when Redis is not configured. Per-instance only,
	// so multi-instance deployments should always set REDIS_ADDR.
	visitors   = make(map[string]*visitor)
	visitorsMu sync.Mutex
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func getRedis() *redis.Client {
	redisOnce.Do(func() {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			return
		}
		redisClient = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     os.Getenv("REDIS_PASSWORD"),
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
	})
	return redisClient
}

// RateLimitMiddleware limits requests per client IP. With Redis configured
// it uses fixed-window counters with a TTL, shared across instances; the
// keys expire on their own, so there is no in-process state to clean up.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip, _, _ = net.SplitHostPort(r.RemoteAddr)
		}

		if !allow(r.Context(), ip) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func allow(ctx context.Context, ip string) bool {
	if client := getRedis(); client != nil {
		window := time.Now().Unix() / int64(rateLimitWindow.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", ip, window)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			// Redis down: let the request through rather than failing closed.
			log.Printf("rate limiter: redis incr failed: %v", err)
			return true
		}
		if count == 1 {
			client.Expire(ctx, key, rateLimitWindow+time.Second)
		}
		return count <= rateLimitPerMinute
	}

	return getLimiter(ip).Allow()
}

func getLimiter(ip string) *rate.Limiter {
	visitorsMu.Lock()
	defer visitorsMu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(float64(rateLimitPerMinute)/rateLimitWindow.Seconds()), int(rateLimitPerMinute)/2)
		visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// CleanupVisitors evicts idle in-memory limiters. Run as a goroutine from
// main; only relevant for the non-Redis fallback.
func CleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		visitorsMu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, ip)
			}
		}
		visitorsMu.Unlock()
	}
}

func init() {
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit <= 0 {
			log.Printf("rate limiter: ignoring invalid RATE_LIMIT_PER_MINUTE %q", v)
			return
		}
		rateLimitPerMinute = limit
	}
}
