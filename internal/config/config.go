package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port     string
	LogLevel string

	// Store
	StoreDriver     string
	DatabasePath    string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Pipeline
	InputFolder      string
	Workers          int
	KeywordCount     int
	StopwordLanguage string

	// S3 archive of source PDFs
	S3Enabled         bool
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool
}

// Load reads configuration from the environment. Values in a .env file in the
// working directory are used when the variable is not already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DatabasePath:      getEnv("DATABASE_PATH", "data/pdf_summary.db"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "pdf_summary_database"),
		MongoCollection:   getEnv("MONGO_COLLECTION", "pdf_documents"),
		InputFolder:       getEnv("INPUT_FOLDER", "documents"),
		Workers:           getEnvInt("PIPELINE_WORKERS", runtime.NumCPU()),
		KeywordCount:      getEnvInt("KEYWORD_COUNT", 5),
		StopwordLanguage:  getEnv("STOPWORD_LANGUAGE", "english"),
		S3Enabled:         getEnvBool("S3_ENABLED", false),
		S3Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "documents"),
		S3UseSSL:          getEnvBool("S3_USE_SSL", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite store")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo store")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("PIPELINE_WORKERS must be positive, got %d", c.Workers)
	}
	if c.KeywordCount <= 0 {
		return fmt.Errorf("KEYWORD_COUNT must be positive, got %d", c.KeywordCount)
	}
	if c.S3Enabled && c.S3BucketName == "" {
		return fmt.Errorf("S3_BUCKET_NAME is required when S3_ENABLED is true")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true"
	}
	return defaultValue
}
