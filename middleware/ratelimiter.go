package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	libredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/iedc-carmel/club-management-backend/config"
)

// RateLimiter limits requests per IP. Uses Redis when configured so the
// limit holds across restarts, with an in-memory fallback.
func RateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	store := buildStore(cfg)
	instance := limiter.New(store, rate)

	return ginlimiter.NewMiddleware(instance)
}

func buildStore(cfg *config.Config) limiter.Store {
	if cfg.RedisAddr == "" {
		return memory.NewStore()
	}

	client := libredis.NewClient(&libredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "club_ratelimit",
	})
	if err != nil {
		log.Printf("⚠️ Redis rate-limit store unavailable, using memory store: %v", err)
		return memory.NewStore()
	}
	return store
}
