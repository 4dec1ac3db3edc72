package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"civreg/internal/audit"
	jwttoken "civreg/internal/jwt_token"
	"civreg/internal/platform/config"
	"civreg/internal/platform/database"
	"civreg/internal/platform/httpserver"
	"civreg/internal/platform/kafka/producer"
	"civreg/internal/platform/logger"
	"civreg/internal/platform/metrics"
	"civreg/internal/platform/redis"
	"civreg/internal/platform/tracer"
	requesthandler "civreg/internal/request/handler"
	requestservice "civreg/internal/request/service"
	requeststore "civreg/internal/request/store"
	"civreg/internal/registry/cache"
	registryhandler "civreg/internal/registry/handler"
	registryservice "civreg/internal/registry/service"
	registrystore "civreg/internal/registry/store"
	httptransport "civreg/internal/transport/http"
	id "civreg/pkg/domain"
)

const identityTokenTTL = 24 * time.Hour

// main wires dependencies and owns the process lifecycle. Business rules
// live in the service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if cfg.OwnerIdentity == "" {
		log.Error("CIVREG_OWNER_IDENTITY is required")
		os.Exit(1)
	}

	m := metrics.New()

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var (
		regStore registrystore.Store
		reqStore requeststore.Store
	)
	if pool != nil {
		regStore = registrystore.NewPostgres(pool.DB())
		reqStore = requeststore.NewPostgres(pool.DB())
		log.Info("using postgres stores")
	} else {
		regStore = registrystore.NewMemory()
		reqStore = requeststore.NewMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	redisCfg := redis.DefaultConfig()
	redisCfg.URL = cfg.RedisURL
	redisClient, err := redis.New(redisCfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	var regionCache *cache.RegionCache
	if redisClient != nil {
		regionCache = cache.NewRegionCache(redisClient.Client, cfg.RegionCacheTTL, log)
		log.Info("region cache enabled", "ttl", cfg.RegionCacheTTL)
	}

	auditOpts := []audit.PublisherOption{
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	}
	var kafkaProducer *producer.Producer
	if cfg.KafkaBrokers != "" {
		kafkaProducer, err = producer.New(producer.Config{
			Brokers:         cfg.KafkaBrokers,
			Acks:            "all",
			Retries:         3,
			DeliveryTimeout: 10 * time.Second,
		}, log)
		if err != nil {
			log.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		auditOpts = append(auditOpts, audit.WithSink(audit.NewKafkaSink(kafkaProducer, cfg.AuditTopic)))
		log.Info("audit events published to kafka", "topic", cfg.AuditTopic)
	}
	auditor := audit.NewPublisher(audit.NewInMemoryStore(), auditOpts...)

	registry := registryservice.NewService(
		id.Identity(cfg.OwnerIdentity),
		regStore,
		log,
		registryservice.WithMetrics(m),
		registryservice.WithRegionCache(regionCache),
	)
	requests := requestservice.NewService(
		reqStore,
		registry,
		auditor,
		log,
		requestservice.WithMetrics(m),
		requestservice.WithTracer(tracer.NewOTel()),
	)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, identityTokenTTL)

	var health httptransport.HealthChecker
	if pool != nil {
		health = pool.Health
	}
	router := httptransport.NewRouter(log, tokens, health,
		registryhandler.New(registry, log, m),
		requesthandler.New(requests, log, m),
	)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting civreg server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if redisClient != nil {
		group.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					redisClient.RecordPoolStats()
				}
			}
		})
	}

	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
	}

	auditor.Close()
	if kafkaProducer != nil {
		kafkaProducer.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if pool != nil {
		_ = pool.Close()
	}
	log.Info("shutdown complete")
}
