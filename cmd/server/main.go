package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/tourmate/internal/config"
	"github.com/iliyamo/tourmate/internal/database"
	"github.com/iliyamo/tourmate/internal/handler"
	"github.com/iliyamo/tourmate/internal/middleware"
	"github.com/iliyamo/tourmate/internal/namespace"
	"github.com/iliyamo/tourmate/internal/queue"
	"github.com/iliyamo/tourmate/internal/render"
	"github.com/iliyamo/tourmate/internal/repository"
	"github.com/iliyamo/tourmate/internal/router"
	"github.com/iliyamo/tourmate/internal/service"
)

func main() {
	cfg := config.Load()
	rdb := config.NewRedisClient() // nil when Redis is unreachable

	open, backend := openNamespaces(cfg, rdb)

	var publisher repository.Publisher
	if cfg.EventsEnabled {
		publisher = service.NewAMQPPublisher(cfg.AMQPURL)
		go queue.StartActivityConsumer(cfg.AMQPURL, cfg.ActivityLogDir)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = render.New()
	e.Use(echomw.Recover())

	session := middleware.SessionNamespace(cfg.SessionSecret, cfg.SessionTTL, open)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, handler.NewHealthHandler(backend))
	router.RegisterRecommendations(e, cache)
	router.RegisterClients(e, handler.NewClientHandler(publisher, cfg.LandingURL), session, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, namespace=%s, events=%t)", addr, cfg.Env, backend, cfg.EventsEnabled)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// openNamespaces picks the namespace backend.  A redis backend without a
// reachable server falls back to memory; a mysql backend that cannot be
// opened is fatal.
func openNamespaces(cfg config.Config, rdb *redis.Client) (namespace.Factory, string) {
	switch cfg.Namespace.Backend {
	case config.BackendRedis:
		if rdb != nil {
			return namespace.RedisFactory(rdb, cfg.Namespace.Prefix, cfg.Namespace.TTL), config.BackendRedis
		}
		log.Printf("namespace: redis unavailable, falling back to memory")
	case config.BackendMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("namespace: mysql open failed: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("namespace: %v", err)
		}
		return namespace.MySQLFactory(db), config.BackendMySQL
	}
	return namespace.NewMemoryRegistry(cfg.SessionTTL).Open, config.BackendMemory
}
