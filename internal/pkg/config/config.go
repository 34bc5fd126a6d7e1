package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	AWS      AWSConfig
	Upload   UploadConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Janitor  JanitorConfig
}

type AppConfig struct {
	Name    string
	Version string
	Env     string
	Locale  string
}

type ServerConfig struct {
	Port string
	Host string
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type AWSConfig struct {
	Region string
	// Endpoint overrides the AWS endpoints, e.g. for LocalStack.
	Endpoint string
}

type UploadConfig struct {
	BucketNameParam string
	PresignDuration time.Duration
	PartSizeBytes   int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// URL, when set, is used verbatim as the DSN.
	URL string

	// Parameter store names; each one found overrides the matching field.
	URLParam      string
	UsernameParam string
	PasswordParam string

	AutoMigrate bool
}

type RedisConfig struct {
	Host string
	Port string
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type AuthConfig struct {
	JWTSecret     string
	JWTExpiration time.Duration
	Username      string
	PasswordParam string
}

type JanitorConfig struct {
	Enabled  bool
	Schedule string
	MaxAge   time.Duration
	Workers  int
	// BatchSize bounds how many stale records one sweep handles.
	BatchSize int
}

func LoadConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "multipart-uploader"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Env:     getEnv("APP_ENV", "development"),
			Locale:  getEnv("APP_LOCALE", "en"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		AWS: AWSConfig{
			Region:   getEnv("AWS_REGION", "us-east-1"),
			Endpoint: getEnv("AWS_ENDPOINT", ""),
		},
		Upload: UploadConfig{
			BucketNameParam: getEnv("S3_BUCKET_NAME_PARAM", "/multipart-uploader/s3/bucket-name"),
			PresignDuration: time.Duration(getEnvAsInt64("S3_PRESIGN_DURATION_MINUTES", 60)) * time.Minute,
			PartSizeBytes:   getEnvAsInt64("S3_PART_SIZE_MB", 5) * 1024 * 1024,
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", ""),
			DBName:        getEnv("DB_NAME", "multipart_uploader"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			URL:           getEnv("DB_URL", ""),
			URLParam:      getEnv("DB_URL_PARAM", ""),
			UsernameParam: getEnv("DB_USERNAME_PARAM", ""),
			PasswordParam: getEnv("DB_PASSWORD_PARAM", ""),
			AutoMigrate:   getEnvAsBool("RUN_AUTO_MIGRATION", true),
		},
		Redis: RedisConfig{
			Host: getEnv("REDIS_HOST", ""),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			JWTExpiration: time.Duration(getEnvAsInt64("JWT_EXPIRATION_MS", 3600000)) * time.Millisecond,
			Username:      getEnv("AUTH_USERNAME", "admin"),
			PasswordParam: getEnv("AUTH_PASSWORD_PARAM", "/multipart-uploader/auth/password"),
		},
		Janitor: JanitorConfig{
			Enabled:   getEnvAsBool("JANITOR_ENABLED", false),
			Schedule:  getEnv("JANITOR_SCHEDULE", "0 0 * * * *"),
			MaxAge:    time.Duration(getEnvAsInt64("JANITOR_MAX_AGE_HOURS", 24)) * time.Hour,
			Workers:   int(getEnvAsInt64("JANITOR_WORKERS", 4)),
			BatchSize: int(getEnvAsInt64("JANITOR_BATCH_SIZE", 500)),
		},
	}
}

// Validate reports every setting the service cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Upload.BucketNameParam == "" {
		errs = append(errs, errors.New("S3_BUCKET_NAME_PARAM is required"))
	}
	if c.Upload.PartSizeBytes < 5*1024*1024 {
		errs = append(errs, fmt.Errorf("S3_PART_SIZE_MB must be at least 5, got %d bytes", c.Upload.PartSizeBytes))
	}
	if c.Upload.PresignDuration <= 0 {
		errs = append(errs, errors.New("S3_PRESIGN_DURATION_MINUTES must be positive"))
	}
	if c.Auth.Username == "" {
		errs = append(errs, errors.New("AUTH_USERNAME is required"))
	}
	if c.Auth.PasswordParam == "" {
		errs = append(errs, errors.New("AUTH_PASSWORD_PARAM is required"))
	}
	if c.Auth.JWTExpiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MS must be positive"))
	}
	if c.Janitor.Enabled {
		if c.Janitor.Workers < 1 {
			errs = append(errs, errors.New("JANITOR_WORKERS must be at least 1"))
		}
		if c.Janitor.MaxAge <= 0 {
			errs = append(errs, errors.New("JANITOR_MAX_AGE_HOURS must be positive"))
		}
		if c.Janitor.BatchSize < 1 {
			errs = append(errs, errors.New("JANITOR_BATCH_SIZE must be at least 1"))
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return defaultValue
}
