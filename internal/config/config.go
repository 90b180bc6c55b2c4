package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	Log        LogConfig
	CORS       CORSConfig
	Email      EmailConfig
	Engine     EngineConfig
	Vision     VisionConfig
	Validation ValidationConfig
	Parse      ParseConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for the document archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds review-alert email settings.
type EmailConfig struct {
	Provider        string  `mapstructure:"provider"`
	Region          string  `mapstructure:"region"`
	FromAddress     string  `mapstructure:"from_address"`
	FromName        string  `mapstructure:"from_name"`
	ReviewerAddress string  `mapstructure:"reviewer_address"`
	AlertThreshold  float64 `mapstructure:"alert_threshold"`
}

// EngineConfig holds settings for one external extraction engine endpoint.
type EngineConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// VisionConfig holds vision-model settings.
type VisionConfig struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	DPI         int     `mapstructure:"dpi"`
}

// ValidationConfig holds the consistency-check thresholds.
type ValidationConfig struct {
	EarningsAbsTolerance float64 `mapstructure:"earnings_abs_tolerance"`
	EarningsPctTolerance float64 `mapstructure:"earnings_pct_tolerance"`
	LowGrossFloor        float64 `mapstructure:"low_gross_floor"`
	HighGrossCeiling     float64 `mapstructure:"high_gross_ceiling"`
}

// ParseConfig holds parse request limits.
type ParseConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// Load reads configuration from environment variables with the PAYPROOF_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAYPROOF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "payproof")
	v.SetDefault("db.password", "payproof_secret")
	v.SetDefault("db.name", "payproof_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "8h")
	v.SetDefault("jwt.issuer", "payproof")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "payproof-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@payproof.io")
	v.SetDefault("email.from_name", "PayProof")
	v.SetDefault("email.reviewer_address", "")
	v.SetDefault("email.alert_threshold", 0.5)

	// Extraction engine defaults
	v.SetDefault("engine.base_url", "http://localhost:9300")
	v.SetDefault("engine.timeout_secs", 60)

	// Vision defaults
	v.SetDefault("vision.provider", "openai")
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.model", "gpt-4o")
	v.SetDefault("vision.timeout_secs", 120)
	v.SetDefault("vision.temperature", 0.1)
	v.SetDefault("vision.max_tokens", 3000)
	v.SetDefault("vision.dpi", 200)

	// Validation defaults
	v.SetDefault("validation.earnings_abs_tolerance", 100.0)
	v.SetDefault("validation.earnings_pct_tolerance", 0.05)
	v.SetDefault("validation.low_gross_floor", 100.0)
	v.SetDefault("validation.high_gross_ceiling", 50000.0)

	// Parse defaults
	v.SetDefault("parse.max_file_size_mb", 25)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "PAYPROOF_SERVER_PORT",
		"server.read_timeout":               "PAYPROOF_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "PAYPROOF_SERVER_WRITE_TIMEOUT",
		"server.environment":                "PAYPROOF_SERVER_ENVIRONMENT",
		"db.host":                           "PAYPROOF_DB_HOST",
		"db.port":                           "PAYPROOF_DB_PORT",
		"db.user":                           "PAYPROOF_DB_USER",
		"db.password":                       "PAYPROOF_DB_PASSWORD",
		"db.name":                           "PAYPROOF_DB_NAME",
		"db.sslmode":                        "PAYPROOF_DB_SSLMODE",
		"db.max_open":                       "PAYPROOF_DB_MAX_OPEN",
		"db.max_idle":                       "PAYPROOF_DB_MAX_IDLE",
		"jwt.secret":                        "PAYPROOF_JWT_SECRET",
		"jwt.access_expiry":                 "PAYPROOF_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                        "PAYPROOF_JWT_ISSUER",
		"s3.region":                         "PAYPROOF_S3_REGION",
		"s3.bucket":                         "PAYPROOF_S3_BUCKET",
		"s3.endpoint":                       "PAYPROOF_S3_ENDPOINT",
		"s3.access_key":                     "PAYPROOF_S3_ACCESS_KEY",
		"s3.secret_key":                     "PAYPROOF_S3_SECRET_KEY",
		"s3.max_file_size_mb":               "PAYPROOF_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                 "PAYPROOF_S3_PRESIGN_EXPIRY",
		"log.level":                         "PAYPROOF_LOG_LEVEL",
		"log.format":                        "PAYPROOF_LOG_FORMAT",
		"cors.allowed_origins":              "PAYPROOF_CORS_ALLOWED_ORIGINS",
		"email.provider":                    "PAYPROOF_EMAIL_PROVIDER",
		"email.region":                      "PAYPROOF_EMAIL_REGION",
		"email.from_address":                "PAYPROOF_EMAIL_FROM_ADDRESS",
		"email.from_name":                   "PAYPROOF_EMAIL_FROM_NAME",
		"email.reviewer_address":            "PAYPROOF_EMAIL_REVIEWER_ADDRESS",
		"email.alert_threshold":             "PAYPROOF_EMAIL_ALERT_THRESHOLD",
		"engine.base_url":                   "PAYPROOF_ENGINE_BASE_URL",
		"engine.timeout_secs":               "PAYPROOF_ENGINE_TIMEOUT_SECS",
		"vision.provider":                   "PAYPROOF_VISION_PROVIDER",
		"vision.api_key":                    "PAYPROOF_VISION_API_KEY",
		"vision.model":                      "PAYPROOF_VISION_MODEL",
		"vision.timeout_secs":               "PAYPROOF_VISION_TIMEOUT_SECS",
		"vision.temperature":                "PAYPROOF_VISION_TEMPERATURE",
		"vision.max_tokens":                 "PAYPROOF_VISION_MAX_TOKENS",
		"vision.dpi":                        "PAYPROOF_VISION_DPI",
		"validation.earnings_abs_tolerance": "PAYPROOF_VALIDATION_EARNINGS_ABS_TOLERANCE",
		"validation.earnings_pct_tolerance": "PAYPROOF_VALIDATION_EARNINGS_PCT_TOLERANCE",
		"validation.low_gross_floor":        "PAYPROOF_VALIDATION_LOW_GROSS_FLOOR",
		"validation.high_gross_ceiling":     "PAYPROOF_VALIDATION_HIGH_GROSS_CEILING",
		"parse.max_file_size_mb":            "PAYPROOF_PARSE_MAX_FILE_SIZE_MB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PAYPROOF_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PAYPROOF_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Email = EmailConfig{
		Provider:        v.GetString("email.provider"),
		Region:          v.GetString("email.region"),
		FromAddress:     v.GetString("email.from_address"),
		FromName:        v.GetString("email.from_name"),
		ReviewerAddress: v.GetString("email.reviewer_address"),
		AlertThreshold:  v.GetFloat64("email.alert_threshold"),
	}
	cfg.Engine = EngineConfig{
		BaseURL:     v.GetString("engine.base_url"),
		TimeoutSecs: v.GetInt("engine.timeout_secs"),
	}
	cfg.Vision = VisionConfig{
		Provider:    v.GetString("vision.provider"),
		APIKey:      v.GetString("vision.api_key"),
		Model:       v.GetString("vision.model"),
		TimeoutSecs: v.GetInt("vision.timeout_secs"),
		Temperature: v.GetFloat64("vision.temperature"),
		MaxTokens:   v.GetInt("vision.max_tokens"),
		DPI:         v.GetInt("vision.dpi"),
	}
	cfg.Validation = ValidationConfig{
		EarningsAbsTolerance: v.GetFloat64("validation.earnings_abs_tolerance"),
		EarningsPctTolerance: v.GetFloat64("validation.earnings_pct_tolerance"),
		LowGrossFloor:        v.GetFloat64("validation.low_gross_floor"),
		HighGrossCeiling:     v.GetFloat64("validation.high_gross_ceiling"),
	}
	cfg.Parse = ParseConfig{
		MaxFileSizeMB: v.GetInt64("parse.max_file_size_mb"),
	}

	return cfg, nil
}
