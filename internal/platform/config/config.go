package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration. All values come from the
// environment so main stays lean and deployments stay twelve-factor.
type Config struct {
	Addr        string
	Environment string
	Version     string

	DatabaseURL string
	RedisURL    string

	KafkaBrokers           []string
	KafkaNotificationTopic string

	JWTSigningKey string
	JWTIssuer     string
	AccessTokenTTL time.Duration
}

// FromEnv builds a Config from environment variables, applying development
// defaults where unset.
func FromEnv() Config {
	cfg := Config{
		Addr:                   getenv("STOREFRONT_ADDR", ":8080"),
		Environment:            getenv("STOREFRONT_ENV", "development"),
		Version:                getenv("STOREFRONT_VERSION", "dev"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		RedisURL:               os.Getenv("REDIS_URL"),
		KafkaNotificationTopic: getenv("KAFKA_NOTIFICATION_TOPIC", "storefront.notifications"),
		JWTSigningKey:          getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:              getenv("JWT_ISSUER", "storefront"),
		AccessTokenTTL:         30 * time.Minute,
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if ttl := os.Getenv("ACCESS_TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.AccessTokenTTL = d
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
