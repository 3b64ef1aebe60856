package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a Postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		url.QueryEscape(d.User), url.QueryEscape(d.Pass), d.Host, d.Port, d.Name)
}

// Checkout stores hosted checkout provider settings.
type Checkout struct {
	APIKey      string
	BaseURL     string
	SiteDomain  string
	Currency    string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Identity mode values.
const (
	IdentityModeJWT    = "jwt"
	IdentityModeRemote = "remote"
)

// Identity stores token verification settings.
// Mode is either "jwt" (local HS256 verification with Secret) or "remote"
// (delegation to the verifier service at BaseURL).
type Identity struct {
	Mode    string
	Secret  string
	BaseURL string
}

// Kafka stores event stream settings. Empty brokers disable publishing.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// RateLimit stores per-IP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Config stores parcel service settings.
type Config struct {
	Port          int
	DB            DB
	Checkout      Checkout
	Identity      Identity
	Kafka         Kafka
	RateLimit     RateLimit
	MigrationsDir string
	OpTimeout     time.Duration
}

// Load reads configuration from .env (if present), then the environment,
// then command line flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:          envInt("PORT", DefaultPort()),
		DB:            loadDB(),
		Checkout:      loadCheckout(),
		Identity:      loadIdentity(),
		Kafka:         loadKafka(),
		RateLimit:     loadRateLimit(),
		MigrationsDir: envStr("MIGRATIONS_DIR", defaultMigrationsDir),
		OpTimeout:     envDuration("OPERATION_TIMEOUT", defaultOpTimeout),
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if err := cfg.Identity.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (i Identity) validate() error {
	switch i.Mode {
	case IdentityModeJWT:
		if i.Secret == "" {
			return fmt.Errorf("identity mode jwt requires IDENTITY_JWT_SECRET")
		}
	case IdentityModeRemote:
		if i.BaseURL == "" {
			return fmt.Errorf("identity mode remote requires IDENTITY_BASE_URL")
		}
	default:
		return fmt.Errorf("unknown identity mode: %q", i.Mode)
	}
	return nil
}

func loadDB() DB {
	d := DefaultDB()
	d.Host = envStr("POSTGRES_HOST", d.Host)
	d.Port = envStr("POSTGRES_PORT", d.Port)
	d.User = envStr("POSTGRES_USER", d.User)
	d.Pass = envStr("POSTGRES_PASSWORD", d.Pass)
	d.Name = envStr("POSTGRES_DB", d.Name)
	return d
}

func loadCheckout() Checkout {
	c := DefaultCheckout()
	c.APIKey = envStr("CHECKOUT_API_KEY", c.APIKey)
	c.BaseURL = envStr("CHECKOUT_BASE_URL", c.BaseURL)
	c.SiteDomain = envStr("SITE_DOMAIN", c.SiteDomain)
	c.Currency = envStr("CHECKOUT_CURRENCY", c.Currency)
	c.MaxAttempts = envInt("CHECKOUT_MAX_ATTEMPTS", c.MaxAttempts)
	c.BaseDelay = envDuration("CHECKOUT_RETRY_BASE_DELAY", c.BaseDelay)
	c.MaxDelay = envDuration("CHECKOUT_RETRY_MAX_DELAY", c.MaxDelay)
	return c
}

func loadIdentity() Identity {
	i := DefaultIdentity()
	i.Mode = envStr("IDENTITY_MODE", i.Mode)
	i.Secret = envStr("IDENTITY_JWT_SECRET", i.Secret)
	i.BaseURL = envStr("IDENTITY_BASE_URL", i.BaseURL)
	return i
}

func loadKafka() Kafka {
	k := DefaultKafka()
	if v := envStr("KAFKA_BROKERS", ""); v != "" {
		parts := strings.Split(v, ",")
		k.Brokers = k.Brokers[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				k.Brokers = append(k.Brokers, p)
			}
		}
	}
	k.Topic = envStr("KAFKA_TOPIC", k.Topic)
	k.GroupID = envStr("KAFKA_GROUP_ID", k.GroupID)
	return k
}

func loadRateLimit() RateLimit {
	rl := DefaultRateLimit()
	if v := envStr("RATE_LIMIT_ENABLED", ""); v != "" {
		rl.Enabled = v == "true" || v == "1"
	}
	rl.Rate = envFloat("RATE_LIMIT_RATE", rl.Rate)
	rl.Burst = envInt("RATE_LIMIT_BURST", rl.Burst)
	rl.TTL = envDuration("RATE_LIMIT_TTL", rl.TTL)
	rl.MaxBuckets = envInt("RATE_LIMIT_MAX_BUCKETS", rl.MaxBuckets)
	return rl
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
