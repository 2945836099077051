package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	Session   SessionConfig
	Cookie    CookieConfig
	Upload    UploadConfig
	Storage   StorageConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Path     string
	URL      string
}

// SessionConfig holds session signing configuration
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// UploadConfig holds attachment upload limits
type UploadConfig struct {
	Dir               string
	MaxBytes          int64
	AllowedExtensions []string
}

// StorageConfig selects the attachment backend
type StorageConfig struct {
	Backend     string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string
}

// AdminConfig holds the identity seeded on first start
type AdminConfig struct {
	Username string
	Password string
}

// RateLimitConfig holds limiter settings
type RateLimitConfig struct {
	RequestsPerMinute int
	LoginPerMinute    int
}

const devSessionSecret = "dev-only-session-secret-change-me"

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", cfg.AppMode)
	return cfg, nil
}

// FromEnv builds the configuration from the process environment only
func FromEnv() (*Config, error) {
	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	session, err := loadSessionConfig(appMode)
	if err != nil {
		return nil, err
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "5000"),
		Database: database,
		Session:  session,
		Cookie:   loadCookieConfig(appMode),
		Upload: UploadConfig{
			Dir:               getEnv("UPLOAD_DIR", "static/uploads"),
			MaxBytes:          int64(getEnvInt("MAX_UPLOAD_MB", 16)) << 20,
			AllowedExtensions: []string{"pdf"},
		},
		Storage: storage,
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
			LoginPerMinute:    getEnvInt("LOGIN_RATE_LIMIT_PER_MINUTE", 5),
		},
	}

	if cfg.Upload.MaxBytes <= 0 {
		return nil, errors.New("MAX_UPLOAD_MB must be positive")
	}
	return cfg, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	defaultPort := "3306"
	switch driver {
	case "sqlite", "mysql":
	case "postgres":
		defaultPort = "5432"
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'sqlite', 'mysql' or 'postgres')", driver)
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "ethesis"),
		Path:     getEnv("DB_PATH", "ethesis.db"),
		URL:      getEnv("DATABASE_URL", ""),
	}, nil
}

// loadSessionConfig loads the session secret; production refuses a missing one
func loadSessionConfig(mode string) (SessionConfig, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		if mode == "prod" {
			return SessionConfig{}, errors.New("SESSION_SECRET is required in prod mode")
		}
		secret = devSessionSecret
	}

	hours := getEnvInt("SESSION_HOURS", 12)
	if hours <= 0 {
		return SessionConfig{}, errors.New("SESSION_HOURS must be positive")
	}

	return SessionConfig{
		Secret: secret,
		TTL:    time.Duration(hours) * time.Hour,
	}, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	defaultSecure := "false"
	if mode == "prod" {
		prefix = "PROD_"
		defaultSecure = "true"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", getEnv("COOKIE_SECURE", defaultSecure)))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "strict"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadStorageConfig() (StorageConfig, error) {
	backend := strings.ToLower(getEnv("STORAGE_BACKEND", "local"))
	cfg := StorageConfig{
		Backend:     backend,
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Prefix:    getEnv("S3_PREFIX", "uploads/"),
	}

	switch backend {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			return cfg, errors.New("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return cfg, fmt.Errorf("invalid STORAGE_BACKEND: '%s' (must be 'local' or 's3')", backend)
	}
	return cfg, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return ""
	}
	return origins
}
