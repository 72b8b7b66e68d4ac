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
	LLM        LLMConfig
	Extraction ExtractionConfig
	Sanitizer  SanitizerConfig
	CORS       CORSConfig
	Email      EmailConfig
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
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for application document storage.
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

// LLMConfig holds LLM completion gateway settings.
type LLMConfig struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	TextModel           string        `mapstructure:"text_model"`
	VisionModel         string        `mapstructure:"vision_model"`
	VisionFallbackModel string        `mapstructure:"vision_fallback_model"`
	Temperature         float64       `mapstructure:"temperature"`
	TimeoutSecs         int           `mapstructure:"timeout_secs"`
	MaxRetries          int           `mapstructure:"max_retries"`
	RetryBaseDelay      time.Duration `mapstructure:"retry_base_delay"`
	Referer             string        `mapstructure:"referer"`
	Title               string        `mapstructure:"title"`
}

// ExtractionConfig selects the image text-extraction strategy.
// "ocr" runs the local tesseract engine; "vision" sends the image to a
// vision-capable model with a fallback model on failure.
type ExtractionConfig struct {
	Strategy string `mapstructure:"strategy"`
}

// SanitizerConfig holds output validation thresholds. These are tuned against
// a specific model's behavior and should be adjusted when swapping models.
type SanitizerConfig struct {
	MinLength int `mapstructure:"min_length"`
	MaxLength int `mapstructure:"max_length"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the HIA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "hia")
	v.SetDefault("db.password", "hia_secret")
	v.SetDefault("db.name", "hia_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "hia")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "hia-applications")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 5)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("llm.text_model", "arcee-ai/trinity-large-preview:free")
	v.SetDefault("llm.vision_model", "allenai/molmo-2-8b:free")
	v.SetDefault("llm.vision_fallback_model", "qwen/qwen2.5-vl-32b-instruct:free")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.retry_base_delay", "500ms")
	v.SetDefault("llm.referer", "http://localhost:8080")
	v.SetDefault("llm.title", "Health Insight Agent")

	// Extraction defaults
	v.SetDefault("extraction.strategy", "vision")

	// Sanitizer defaults
	v.SetDefault("sanitizer.min_length", 50)
	v.SetDefault("sanitizer.max_length", 5000)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@hia.health")
	v.SetDefault("email.from_name", "Health Insight Agent")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "HIA_SERVER_PORT",
		"server.read_timeout":       "HIA_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "HIA_SERVER_WRITE_TIMEOUT",
		"server.environment":        "HIA_SERVER_ENVIRONMENT",
		"db.host":                   "HIA_DB_HOST",
		"db.port":                   "HIA_DB_PORT",
		"db.user":                   "HIA_DB_USER",
		"db.password":               "HIA_DB_PASSWORD",
		"db.name":                   "HIA_DB_NAME",
		"db.sslmode":                "HIA_DB_SSLMODE",
		"db.max_open":               "HIA_DB_MAX_OPEN",
		"db.max_idle":               "HIA_DB_MAX_IDLE",
		"jwt.secret":                "HIA_JWT_SECRET",
		"jwt.access_expiry":         "HIA_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":        "HIA_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                "HIA_JWT_ISSUER",
		"s3.region":                 "HIA_S3_REGION",
		"s3.bucket":                 "HIA_S3_BUCKET",
		"s3.endpoint":               "HIA_S3_ENDPOINT",
		"s3.access_key":             "HIA_S3_ACCESS_KEY",
		"s3.secret_key":             "HIA_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "HIA_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "HIA_S3_PRESIGN_EXPIRY",
		"log.level":                 "HIA_LOG_LEVEL",
		"log.format":                "HIA_LOG_FORMAT",
		"llm.api_key":               "HIA_LLM_API_KEY",
		"llm.base_url":              "HIA_LLM_BASE_URL",
		"llm.text_model":            "HIA_LLM_TEXT_MODEL",
		"llm.vision_model":          "HIA_LLM_VISION_MODEL",
		"llm.vision_fallback_model": "HIA_LLM_VISION_FALLBACK_MODEL",
		"llm.temperature":           "HIA_LLM_TEMPERATURE",
		"llm.timeout_secs":          "HIA_LLM_TIMEOUT_SECS",
		"llm.max_retries":           "HIA_LLM_MAX_RETRIES",
		"llm.retry_base_delay":      "HIA_LLM_RETRY_BASE_DELAY",
		"llm.referer":               "HIA_LLM_REFERER",
		"llm.title":                 "HIA_LLM_TITLE",
		"extraction.strategy":       "HIA_EXTRACTION_STRATEGY",
		"sanitizer.min_length":      "HIA_SANITIZER_MIN_LENGTH",
		"sanitizer.max_length":      "HIA_SANITIZER_MAX_LENGTH",
		"cors.allowed_origins":      "HIA_CORS_ALLOWED_ORIGINS",
		"email.provider":            "HIA_EMAIL_PROVIDER",
		"email.region":              "HIA_EMAIL_REGION",
		"email.from_address":        "HIA_EMAIL_FROM_ADDRESS",
		"email.from_name":           "HIA_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if HIA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HIA_SERVER_PORT") == "" {
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
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
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
	cfg.LLM = LLMConfig{
		APIKey:              v.GetString("llm.api_key"),
		BaseURL:             v.GetString("llm.base_url"),
		TextModel:           v.GetString("llm.text_model"),
		VisionModel:         v.GetString("llm.vision_model"),
		VisionFallbackModel: v.GetString("llm.vision_fallback_model"),
		Temperature:         v.GetFloat64("llm.temperature"),
		TimeoutSecs:         v.GetInt("llm.timeout_secs"),
		MaxRetries:          v.GetInt("llm.max_retries"),
		RetryBaseDelay:      v.GetDuration("llm.retry_base_delay"),
		Referer:             v.GetString("llm.referer"),
		Title:               v.GetString("llm.title"),
	}
	cfg.Extraction = ExtractionConfig{
		Strategy: v.GetString("extraction.strategy"),
	}
	cfg.Sanitizer = SanitizerConfig{
		MinLength: v.GetInt("sanitizer.min_length"),
		MaxLength: v.GetInt("sanitizer.max_length"),
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
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}
