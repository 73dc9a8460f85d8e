package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const envProduction = "production"

// Config holds all configuration for the application
type Config struct {
	Environment string `env:"GO_ENV" env-default:"development"`
	Port        string `env:"PORT" env-default:"8080"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	// RequestTimeout bounds every service call, including the upload and insert of a create.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`

	DB         DBConfig
	ImageStore ImageStoreConfig
}

// DBConfig holds the database connection settings. An empty URL is not an error here;
// the connector reports it as an unavailable store on first use.
type DBConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"2"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
}

// ImageStoreConfig selects and configures the image hosting provider.
type ImageStoreConfig struct {
	Provider  string `env:"IMAGE_STORE_PROVIDER" env-default:"local"`
	Folder    string `env:"IMAGE_STORE_FOLDER" env-default:"DevEvent"`
	LocalDir  string `env:"IMAGE_STORE_LOCAL_DIR" env-default:"./uploads"`
	PublicURL string `env:"IMAGE_STORE_PUBLIC_URL" env-default:"http://localhost:8080/uploads"`

	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION" env-default:"us-east-1"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3UsePathStyle  bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// IsProduction reports whether GO_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == envProduction
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if os.Getenv("GO_ENV") != envProduction {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if cfg.ImageStore.Provider == "s3" && cfg.ImageStore.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required when IMAGE_STORE_PROVIDER is s3")
	}
	return &cfg, nil
}
