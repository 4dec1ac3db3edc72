package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	OwnerIdentity string
	JWTSigningKey string

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers string
	AuditTopic   string

	// RegionCacheTTL bounds how long region-officer bindings may be served
	// from cache. Bindings change rarely (BindRegion is owner-only and
	// rejected for already-bound regions), so a short TTL is safe.
	RegionCacheTTL time.Duration
}

const defaultRegionCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:           getEnv("CIVREG_ADDR", ":8080"),
		OwnerIdentity:  os.Getenv("CIVREG_OWNER_IDENTITY"),
		JWTSigningKey:  getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		KafkaBrokers:   os.Getenv("KAFKA_BROKERS"),
		AuditTopic:     getEnv("AUDIT_TOPIC", "civreg.request.events"),
		RegionCacheTTL: defaultRegionCacheTTL,
	}

	if ttl := os.Getenv("REGION_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.RegionCacheTTL = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
