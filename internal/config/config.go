package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	SessionTTL      string
	GoogleAudience  string
	AllowOrigins    []string
	LogstashTCPAddr string

	MinIOEndpoint       string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOUseSSL         bool
	MinIOBucketPackages string
	MinIOPublicURL      string

	BackendAPIURL     string
	BackendAPIKey     string
	BackendTimeout    string
	SuggestDebounceMS int
	SuggestLimit      int

	PackageImageMaxBytes int64
	PackageImageMaxDim   int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	imageMax := int64(10 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("PACKAGE_IMAGE_MAX_BYTES", "10485760"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}
	imageDim := 0
	if v, err := strconv.Atoi(getenv("PACKAGE_IMAGE_MAX_DIMENSION", "0")); err == nil && v > 0 {
		imageDim = v
	}
	debounceMS := 300
	if v, err := strconv.Atoi(getenv("SUGGEST_DEBOUNCE_MS", "300")); err == nil && v >= 0 {
		debounceMS = v
	}
	suggestLimit := 8
	if v, err := strconv.Atoi(getenv("SUGGEST_LIMIT", "8")); err == nil && v > 0 {
		suggestLimit = v
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		SessionTTL:      getenv("SESSION_TTL", "24h"),
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),

		MinIOEndpoint:       must("MINIO_ENDPOINT"),
		MinIOAccessKey:      must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:      must("MINIO_SECRET_KEY"),
		MinIOUseSSL:         getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketPackages: getenv("MINIO_BUCKET_PACKAGES", "viajes-packages"),
		MinIOPublicURL:      getenv("MINIO_PUBLIC_URL", ""),

		BackendAPIURL:     getenv("BACKEND_API_URL", ""),
		BackendAPIKey:     getenv("BACKEND_API_KEY", ""),
		BackendTimeout:    getenv("BACKEND_TIMEOUT", "5s"),
		SuggestDebounceMS: debounceMS,
		SuggestLimit:      suggestLimit,

		PackageImageMaxBytes: imageMax,
		PackageImageMaxDim:   imageDim,

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", ""),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),
		SMTPUseTLS:   getenv("SMTP_USE_TLS", "false") == "true",
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
