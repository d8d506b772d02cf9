package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	PublicURL  string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Auth holds the GitHub OAuth application and session cookie settings.
type Auth struct {
	GitHubClientID     string
	GitHubClientSecret string
	URL                string
	Secret             string
	SessionMaxAge      time.Duration
	StateTTL           time.Duration
}

type Config struct {
	ServerPort        int
	Env               string
	LogLevel          string
	SentryDSN         string
	DB                DB
	MinIO             MinIO
	Redis             Redis
	Auth              Auth
	MaxUploadSize     int64
	HTTPClientTimeout time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "pitchdeck"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}

	return MinIO{
		Endpoint:   endpoint,
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+endpoint),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "assets"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadRedis() Redis {
	return Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("REDIS_DB", 0),
	}
}

func LoadAuth() Auth {
	return Auth{
		GitHubClientID:     getEnv("AUTH_GITHUB_ID", ""),
		GitHubClientSecret: getEnv("AUTH_GITHUB_SECRET", ""),
		URL:                getEnv("AUTH_URL", "http://localhost:8080"),
		Secret:             getEnv("AUTH_SECRET", ""),
		SessionMaxAge:      parseDuration(getEnv("SESSION_MAX_AGE", "720h"), 30*24*time.Hour),
		StateTTL:           parseDuration(getEnv("AUTH_STATE_TTL", "10m"), 10*time.Minute),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	return &Config{
		ServerPort:        getEnvAsInt("SERVER_PORT", 8080),
		Env:               getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		DB:                LoadDB(),
		MinIO:             LoadMinIO(),
		Redis:             LoadRedis(),
		Auth:              LoadAuth(),
		MaxUploadSize:     parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		HTTPClientTimeout: parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "10s"), 10*time.Second),
	}
}

// CallbackURL is the redirect URI registered with the GitHub OAuth app.
func (a Auth) CallbackURL() string {
	return a.URL + "/api/auth/callback/github"
}

// SecureCookies reports whether session cookies need the Secure flag.
func (a Auth) SecureCookies() bool {
	return len(a.URL) >= 8 && a.URL[:8] == "https://"
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}
