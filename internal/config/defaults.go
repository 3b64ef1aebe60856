package config

import "time"

const defaultPort = 8080

const defaultMigrationsDir = "migrations"

const defaultOpTimeout = 3 * time.Second

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "parcel_db",
}

var defaultCheckout = Checkout{
	BaseURL:     "https://api.stripe.com",
	SiteDomain:  "http://localhost:5173",
	Currency:    "usd",
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultIdentity = Identity{
	Mode:   IdentityModeJWT,
	Secret: "dev-secret",
}

var defaultKafka = Kafka{
	Topic:   "parcel-status-events",
	GroupID: "parcel-events-recorder",
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultCheckout returns the default checkout provider settings.
func DefaultCheckout() Checkout {
	return defaultCheckout
}

// DefaultIdentity returns the default identity verification settings.
func DefaultIdentity() Identity {
	return defaultIdentity
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default rate limiting settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
