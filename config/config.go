package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"volunteerhub/internal/scheduler"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `env:"GO_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"3000"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"public"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret  string        `env:"JWT_SECRET,required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	StoreDriver  string        `env:"STORE_DRIVER" envDefault:"mongo"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	// Mongo. MONGO_URI wins over the user/password/cluster triple.
	MongoURI         string `env:"MONGO_URI"`
	MongoUser        string `env:"MONGO_USER"`
	MongoPwd         string `env:"MONGO_PWD"`
	MongoCluster     string `env:"MONGO_CLUSTER"`
	DBName           string `env:"DB_NAME"`
	UsersCollection  string `env:"USERS_COLLECTION_NAME"`
	EventsCollection string `env:"EVENTS_COLLECTION_NAME"`

	// Postgres
	DatabaseURL string `env:"DATABASE_URL"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	StrictIdentity     bool     `env:"STRICT_IDENTITY" envDefault:"false"`
	ReconcileSchedule  string   `env:"RECONCILE_SCHEDULE"`

	EmailProvider         string `env:"EMAIL_PROVIDER" envDefault:"noop"`
	EmailFromAddress      string `env:"EMAIL_FROM_ADDRESS"`
	EmailFromName         string `env:"EMAIL_FROM_NAME" envDefault:"VolunteerHub"`
	AWSRegion             string `env:"AWS_REGION"`
	AWSAccessKeyID        string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey    string `env:"AWS_SECRET_ACCESS_KEY"`
	SESInsecureSkipVerify bool   `env:"SES_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.CORSAllowedOrigins = trimAll(cfg.CORSAllowedOrigins)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that depend on each other.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoConnectionURI() == "" {
			errs = append(errs, errors.New("MONGO_URI or MONGO_USER, MONGO_PWD and MONGO_CLUSTER are required with the mongo store"))
		}
		if c.DBName == "" {
			errs = append(errs, errors.New("DB_NAME is required with the mongo store"))
		}
		if c.UsersCollection == "" || c.EventsCollection == "" {
			errs = append(errs, errors.New("USERS_COLLECTION_NAME and EVENTS_COLLECTION_NAME are required with the mongo store"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required with the postgres store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	if c.ReconcileSchedule != "" {
		if err := scheduler.ParseSchedule(c.ReconcileSchedule); err != nil {
			errs = append(errs, fmt.Errorf("RECONCILE_SCHEDULE: %w", err))
		}
	}
	return errors.Join(errs...)
}

// IsProduction reports whether GO_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// MongoConnectionURI returns MONGO_URI when set, otherwise an SRV URI assembled
// from the user, password and cluster. Empty when neither form is complete.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	if c.MongoUser == "" || c.MongoPwd == "" || c.MongoCluster == "" {
		return ""
	}
	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(c.MongoUser, c.MongoPwd),
		Host:   c.MongoCluster,
		Path:   "/" + c.DBName,
	}
	return u.String()
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
