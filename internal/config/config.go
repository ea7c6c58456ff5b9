package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env        Env
	Server     ServerConfig
	Identity   IdentityConfig
	Storage    StorageConfig
	Metadata   MetadataConfig
	Database   DatabaseConfig
	Mongo      MongoConfig
	Generation GenerationConfig
	Polling    PollingConfig
	Library    LibraryConfig
	Handoff    HandoffConfig
	NATS       NATSConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

// IsProd reports whether the service runs in production
func (e Env) IsProd() bool {
	return e.Env == "prod" || e.Env == "PROD"
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type IdentityConfig struct {
	Header string `envconfig:"IAP_HEADER" default:"X-Goog-Authenticated-User-Email"`
	// DevUserEmail is only honoured outside prod
	DevUserEmail string `envconfig:"IAP_DEV_USER_EMAIL"`
}

type StorageConfig struct {
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"storage.googleapis.com"`
	AccessKey       string        `envconfig:"STORAGE_ACCESS_KEY" required:"true"`
	SecretKey       string        `envconfig:"STORAGE_SECRET_KEY" required:"true"`
	Region          string        `envconfig:"STORAGE_REGION" default:"auto"`
	Bucket          string        `envconfig:"STORAGE_BUCKET" required:"true"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"true"`
	SignedURLExpiry time.Duration `envconfig:"STORAGE_SIGNED_URL_EXPIRY" default:"1h"`
	// SignedURLCacheTTL must stay below SignedURLExpiry
	SignedURLCacheTTL  time.Duration `envconfig:"STORAGE_SIGNED_URL_CACHE_TTL" default:"45m"`
	SignedURLCacheSize int           `envconfig:"STORAGE_SIGNED_URL_CACHE_SIZE" default:"4096"`
}

type MetadataConfig struct {
	// Store is either "postgres" or "mongo"
	Store string `envconfig:"METADATA_STORE" default:"postgres"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER"`
	Password       string        `envconfig:"DB_PASSWORD"`
	Name           string        `envconfig:"DB_NAME"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type MongoConfig struct {
	URI        string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database   string `envconfig:"MONGO_DATABASE" default:"imgstudio"`
	Collection string `envconfig:"MONGO_COLLECTION" default:"metadata"`
}

type GenerationConfig struct {
	Project         string `envconfig:"GENAI_PROJECT" required:"true"`
	Location        string `envconfig:"GENAI_LOCATION" default:"us-central1"`
	ImageModel      string `envconfig:"GENAI_IMAGE_MODEL" default:"imagen-4.0-generate-001"`
	VideoModel      string `envconfig:"GENAI_VIDEO_MODEL" default:"veo-3.0-generate-001"`
	OutputURIPrefix string `envconfig:"GENAI_OUTPUT_URI_PREFIX" required:"true"`
	// StatusRatePerSecond throttles operation status checks across all pollers
	StatusRatePerSecond float64       `envconfig:"GENAI_STATUS_RATE_PER_SECOND" default:"5"`
	StatusBurst         int           `envconfig:"GENAI_STATUS_BURST" default:"10"`
	BreakerMaxFailures  uint32        `envconfig:"GENAI_BREAKER_MAX_FAILURES" default:"5"`
	BreakerTimeout      time.Duration `envconfig:"GENAI_BREAKER_TIMEOUT" default:"30s"`
	BreakerInterval     time.Duration `envconfig:"GENAI_BREAKER_INTERVAL" default:"60s"`
	// MediaRoots bound the input images a user may reference, see domain.MediaRoots
	MediaRoots []string `ignored:"true"`
}

type PollingConfig struct {
	InitialInterval time.Duration `envconfig:"POLLING_INITIAL_INTERVAL" default:"6s"`
	MaxInterval     time.Duration `envconfig:"POLLING_MAX_INTERVAL" default:"60s"`
	Growth          float64       `envconfig:"POLLING_GROWTH" default:"1.2"`
	JitterFactor    float64       `envconfig:"POLLING_JITTER_FACTOR" default:"0.2"`
	MaxAttempts     int           `envconfig:"POLLING_MAX_ATTEMPTS" default:"30"`
	SessionTTL      time.Duration `envconfig:"POLLING_SESSION_TTL" default:"1h"`
	MaxSessions     int           `envconfig:"POLLING_MAX_SESSIONS" default:"1024"`
}

type LibraryConfig struct {
	PageSize          int           `envconfig:"LIBRARY_PAGE_SIZE" default:"24"`
	SignConcurrency   int           `envconfig:"LIBRARY_SIGN_CONCURRENCY" default:"16"`
	DeleteConcurrency int           `envconfig:"LIBRARY_DELETE_CONCURRENCY" default:"8"`
	SessionTTL        time.Duration `envconfig:"LIBRARY_SESSION_TTL" default:"30m"`
	MaxSessions       int           `envconfig:"LIBRARY_MAX_SESSIONS" default:"1024"`
	// MediaRoots bound the objects a user may export, see domain.MediaRoots
	MediaRoots []string `ignored:"true"`
}

type HandoffConfig struct {
	TTL      time.Duration `envconfig:"HANDOFF_TTL" default:"15m"`
	MaxUsers int           `envconfig:"HANDOFF_MAX_USERS" default:"4096"`
}

type NATSConfig struct {
	URL           string `envconfig:"NATS_URL"`
	StreamName    string `envconfig:"NATS_STREAM_NAME" default:"IMGSTUDIO"`
	SubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"imgstudio"`
	ConsumerName  string `envconfig:"NATS_CONSUMER_NAME" default:"storage-cleanup"`
}

// Enabled reports whether a NATS server is configured
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

// WorkerConfig is the subset read by the storage cleanup worker
type WorkerConfig struct {
	Env     Env
	Storage StorageConfig
	NATS    NATSConfig
}

// Load reads the configuration from the environment. Outside prod an optional .env file is loaded first.
func Load() (*Config, error) {
	var cfg Config

	if env := os.Getenv("ENV"); env != "prod" && env != "PROD" {
		_ = godotenv.Load()
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWorker reads the worker configuration the same way Load does
func LoadWorker() (*WorkerConfig, error) {
	var cfg WorkerConfig

	if env := os.Getenv("ENV"); env != "prod" && env != "PROD" {
		_ = godotenv.Load()
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if !cfg.NATS.Enabled() {
		return nil, errors.New("NATS_URL is required by the cleanup worker")
	}

	return &cfg, nil
}
