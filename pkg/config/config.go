package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Upstream     UpstreamConfig
	Redis        RedisConfig
	DB           DBConfig
	Session      SessionConfig
	Checkout     CheckoutConfig
	Geolocation  GeolocationConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite || cfg.DB.DSN != "" || cfg.DB.LegacyHost != "" {
		if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RESTAURANT_APP_ENV" required:"true"`
	Port         string `envconfig:"RESTAURANT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RESTAURANT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RESTAURANT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the gateway at the external restaurant API.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"RESTAURANT_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"RESTAURANT_UPSTREAM_TIMEOUT" default:"15s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RESTAURANT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RESTAURANT_REDIS_ADDR"`
	Password     string        `envconfig:"RESTAURANT_REDIS_PASSWORD"`
	DB           int           `envconfig:"RESTAURANT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RESTAURANT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RESTAURANT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RESTAURANT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RESTAURANT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RESTAURANT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// DBConfig backs the durable session snapshot store. Optional: when no DSN is
// configured the gateway persists snapshots in Redis only.
type DBConfig struct {
	DSN    string `envconfig:"RESTAURANT_DB_DSN"`
	Driver string `envconfig:"RESTAURANT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RESTAURANT_DB_HOST"`
	LegacyPort     int    `envconfig:"RESTAURANT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RESTAURANT_DB_USER"`
	LegacyPassword string `envconfig:"RESTAURANT_DB_PASSWORD"`
	LegacyName     string `envconfig:"RESTAURANT_DB_NAME"`
	LegacySSLMode  string `envconfig:"RESTAURANT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RESTAURANT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RESTAURANT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RESTAURANT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RESTAURANT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Configured reports whether a relational snapshot store has been set up.
func (db DBConfig) Configured() bool {
	return db.DSN != ""
}

type SessionConfig struct {
	CookieName string        `envconfig:"RESTAURANT_SESSION_COOKIE" default:"restaurant-app-session"`
	TTL        time.Duration `envconfig:"RESTAURANT_SESSION_TTL" default:"720h"`
}

type CheckoutConfig struct {
	// TaxRate is the flat sales tax applied to the cart subtotal.
	TaxRate string `envconfig:"RESTAURANT_CHECKOUT_TAX_RATE" default:"0.0875"`
	// ProcessingDelay simulates payment settlement between order acceptance
	// and confirmation.
	ProcessingDelay time.Duration `envconfig:"RESTAURANT_CHECKOUT_PROCESSING_DELAY" default:"3s"`
	OTPLength       int           `envconfig:"RESTAURANT_CHECKOUT_OTP_LENGTH" default:"6"`
	IdempotencyTTL  time.Duration `envconfig:"RESTAURANT_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

// GeolocationConfig is handed to the browser in the bootstrap payload; the
// gateway never calls geolocation APIs itself.
type GeolocationConfig struct {
	Timeout      time.Duration `envconfig:"RESTAURANT_GEO_TIMEOUT" default:"10s"`
	MaximumAge   time.Duration `envconfig:"RESTAURANT_GEO_MAXIMUM_AGE" default:"5m"`
	HighAccuracy bool          `envconfig:"RESTAURANT_GEO_HIGH_ACCURACY" default:"true"`
	RadiusMiles  float64       `envconfig:"RESTAURANT_GEO_NEARBY_RADIUS" default:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RESTAURANT_CORS_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite bool `envconfig:"RESTAURANT_USE_SQLITE" default:"false"`
	// AllowOTPBypass keeps the demo "skip verification" path available in
	// non-production environments. Never honored when App.Env is production.
	AllowOTPBypass bool `envconfig:"RESTAURANT_FEATURE_ALLOW_OTP_BYPASS" default:"false"`
}

// OTPBypassEnabled reports whether checkout verification may be skipped.
// The flag is clamped off in production regardless of the environment value.
func (c *Config) OTPBypassEnabled() bool {
	return c.FeatureFlags.AllowOTPBypass && !c.App.IsProd()
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}
	if useSQLite {
		db.Driver = "sqlite"
		db.DSN = "restaurant-app-storage.db"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
