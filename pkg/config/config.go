package config

import (
	"fmt"
	"time"

	"github.com/zinklake/shuttle/internal/domain/ride"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`
	Typesense TypesenseConfig `yaml:"typesense"`
	OTEL      OTELConfig      `yaml:"otel"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Contact   ContactConfig   `yaml:"contact"`
	Cache     CacheConfig     `yaml:"cache"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  string        `yaml:"allowed_origins"  env:"ALLOWED_ORIGINS"         env-default:"*"`
	// TrustedProxies lists IPs/CIDRs allowed to set X-Forwarded-For.
	TrustedProxies string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Env   string `yaml:"env"   env:"ENV"       env-default:"production"`
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"REDIS_ENABLED"  env-default:"true"`
	Host     string `yaml:"host"     env:"REDIS_HOST"     env-default:"localhost"`
	Port     int    `yaml:"port"     env:"REDIS_PORT"     env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL        string `yaml:"url"        env:"TYPESENSE_URL"        env-default:"http://localhost:8108"`
	APIKey     string `yaml:"api_key"    env:"TYPESENSE_API_KEY"    env-default:"xyz"`
	Collection string `yaml:"collection" env:"TYPESENSE_COLLECTION" env-default:"faqs"`
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string `yaml:"service_name"    env:"OTEL_SERVICE_NAME"    env-default:"zinklake-shuttle"`
	ServiceVersion string `yaml:"service_version" env:"OTEL_SERVICE_VERSION" env-default:"1.0.0"`
	Endpoint       string `yaml:"endpoint"        env:"OTEL_ENDPOINT"`
	Enabled        bool   `yaml:"enabled"         env:"OTEL_ENABLED"         env-default:"false"`
}

// CatalogConfig points at optional YAML files replacing the bundled data.
type CatalogConfig struct {
	FaqPath   string `yaml:"faq_path"   env:"FAQ_CATALOG_PATH"`
	RidesPath string `yaml:"rides_path" env:"RIDES_FEED_PATH"`
}

// TrackerConfig holds ride tracker behaviour.
type TrackerConfig struct {
	// CancelledPolicy is "hide" or "reset".
	CancelledPolicy string        `yaml:"cancelled_policy" env:"TRACKER_CANCELLED_POLICY" env-default:"hide"`
	FeedLatency     time.Duration `yaml:"feed_latency"     env:"TRACKER_FEED_LATENCY"     env-default:"0s"`
}

// ContactConfig holds the company contact channels and contact form limits.
type ContactConfig struct {
	Phone       string        `yaml:"phone"        env:"CONTACT_PHONE"         env-default:"918-212-4822"`
	Email       string        `yaml:"email"        env:"CONTACT_EMAIL"         env-default:"info@zinklakerecreation.com"`
	Website     string        `yaml:"website"      env:"CONTACT_WEBSITE"       env-default:"https://www.zinklakerecreation.com"`
	SendDelay   time.Duration `yaml:"send_delay"   env:"CONTACT_SEND_DELAY"    env-default:"0s"`
	RateLimit   int           `yaml:"rate_limit"   env:"CONTACT_RATE_LIMIT"    env-default:"5"`
	RateWindow  time.Duration `yaml:"rate_window"  env:"CONTACT_RATE_WINDOW"   env-default:"1h"`
	DedupWindow time.Duration `yaml:"dedup_window" env:"CONTACT_DEDUP_WINDOW"  env-default:"24h"`
}

// CacheConfig holds HTTP response cache TTLs.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"  env:"CACHE_ENABLED"  env-default:"true"`
	FaqTTL  time.Duration `yaml:"faq_ttl"  env:"CACHE_FAQ_TTL"  env-default:"30m"`
	RideTTL time.Duration `yaml:"ride_ttl" env:"CACHE_RIDE_TTL" env-default:"30s"`
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr returns the HTTP listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate rejects values the services cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if _, err := ride.ParseCancelledPolicy(c.Tracker.CancelledPolicy); err != nil {
		return fmt.Errorf("tracker.cancelled_policy: %w", err)
	}
	if c.Tracker.FeedLatency < 0 {
		return fmt.Errorf("tracker.feed_latency must not be negative")
	}
	if c.Contact.SendDelay < 0 {
		return fmt.Errorf("contact.send_delay must not be negative")
	}
	if c.Contact.RateLimit <= 0 {
		return fmt.Errorf("contact.rate_limit must be positive, got %d", c.Contact.RateLimit)
	}
	return nil
}
