package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища файлов.
const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env            string
	HTTPPort       string
	DatabaseURL    string
	MigrationsPath string
	AllowedOrigins []string

	RateLimitLimit  int64
	RateLimitPeriod time.Duration

	// Кэш запросов каталога.
	QueryStaleTime time.Duration
	QueryGCTime    time.Duration
	// QueryFetchTimeout ограничивает общий запрос к Gateway, который не зависит от отмены клиентом.
	QueryFetchTimeout time.Duration

	// Сессии посетителей для серверного сценария форм.
	SessionSecret  string
	FormSessionTTL time.Duration

	// Проверка ролей администратора, токены выпускает внешний провайдер.
	JWTSecret string

	StorageDriver    string
	StoragePublicURL string
	MediaStoragePath string
	MaxUploadSizeMB  int64
	S3Bucket         string
	// S3Endpoint нужен для LocalStack или MinIO, для AWS остаётся пустым.
	S3Endpoint string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	SalesEmail   string
}

// MailEnabled сообщает, настроена ли отправка писем отделу продаж.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SalesEmail != ""
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:              env,
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
		StoragePublicURL: strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", ""), "/"),
		MediaStoragePath: getEnv("MEDIA_STORAGE_PATH", "./storage/resumes"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Endpoint:       getEnv("AWS_S3_ENDPOINT", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		MailFrom:         getEnv("MAIL_FROM", "no-reply@localhost"),
		SalesEmail:       getEnv("SALES_EMAIL", ""),
	}

	// Без адреса хранилища и его публичного URL сайт не может работать с Gateway.
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL обязателен")
	}
	if cfg.StoragePublicURL == "" {
		return nil, fmt.Errorf("config: STORAGE_PUBLIC_URL обязателен")
	}

	switch cfg.StorageDriver {
	case StorageDriverLocal:
	case StorageDriverS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("config: S3_BUCKET обязателен для STORAGE_DRIVER=s3")
		}
	default:
		return nil, fmt.Errorf("config: неизвестный STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	sessionSecret := getEnv("SESSION_SECRET", "")
	jwtSecret := getEnv("JWT_SECRET", "")
	if env == "production" {
		if len(sessionSecret) < 32 {
			return nil, fmt.Errorf("config: SESSION_SECRET обязателен и должен быть не менее 32 символов в production")
		}
		if len(jwtSecret) < 32 {
			return nil, fmt.Errorf("config: JWT_SECRET обязателен и должен быть не менее 32 символов в production")
		}
	} else {
		if sessionSecret == "" {
			sessionSecret = "dev-session-secret-change-me-in-production"
			log.Printf("config: WARNING - используется дефолтный SESSION_SECRET, измените в production!")
		}
		if jwtSecret == "" {
			jwtSecret = "dev-jwt-secret-change-me-in-production"
			log.Printf("config: WARNING - используется дефолтный JWT_SECRET, измените в production!")
		}
	}
	cfg.SessionSecret = sessionSecret
	cfg.JWTSecret = jwtSecret

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	} else {
		cfg.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}

	var err error
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", "10"); err != nil {
		return nil, err
	}
	if cfg.MaxUploadSizeMB, err = parseInt64("MAX_UPLOAD_MB", "10"); err != nil {
		return nil, err
	}
	smtpPort, err := parseInt64("SMTP_PORT", "587")
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = int(smtpPort)

	if cfg.RateLimitPeriod, err = parseDuration("RATE_LIMIT_PERIOD", "1m"); err != nil {
		return nil, err
	}
	if cfg.QueryStaleTime, err = parseDuration("QUERY_STALE_TIME", "1m"); err != nil {
		return nil, err
	}
	if cfg.QueryGCTime, err = parseDuration("QUERY_GC_TIME", "10m"); err != nil {
		return nil, err
	}
	if cfg.QueryFetchTimeout, err = parseDuration("QUERY_FETCH_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.FormSessionTTL, err = parseDuration("FORM_SESSION_TTL", "30m"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// parseDuration читает длительность из окружения.
func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить %s=%q: %w", key, v, err)
	}
	return dur, nil
}

// parseInt64 читает целое число из окружения.
func parseInt64(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить %s=%q: %w", key, v, err)
	}
	return num, nil
}
