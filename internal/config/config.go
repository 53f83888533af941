package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig collects what the server needs to start.
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabasePath    string
	SessionSecret   string
	SecureCookies   bool
	GinMode         string
	UploadDir       string
	UploadURLPath   string
	AdminPassword   string
	LogLevel        string
	LogFormat       string
	MaxUploadMB     int64
	UploadRateLimit string
	CORSOrigins     []string
}

// MaxUploadBytes is the per-file upload cap.
func (c AppConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Load reads an optional .env file and then the environment, filling in
// defaults for anything missing. Variables already set in the environment win
// over the file.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv reads the process environment only.
func FromEnv() AppConfig {
	port := getEnv("PORT", "3000")

	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "25"), 10, 64)
	if err != nil || maxUploadMB <= 0 {
		maxUploadMB = 25
	}

	secureCookies, err := strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false"))
	if err != nil {
		secureCookies = false
	}

	return AppConfig{
		ListenAddr:      getEnv("LISTEN_ADDR", fmt.Sprintf(":%s", port)),
		Port:            port,
		DatabasePath:    getEnv("DATABASE_PATH", "portfolio.db"),
		SessionSecret:   getEnv("SESSION_SECRET", "portfolio-dev-secret"),
		SecureCookies:   secureCookies,
		GinMode:         getEnv("GIN_MODE", "release"),
		UploadDir:       getEnv("UPLOAD_DIR", "public/galleries"),
		UploadURLPath:   strings.TrimRight(getEnv("UPLOAD_URL_PATH", "/galleries"), "/"),
		AdminPassword:   strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		MaxUploadMB:     maxUploadMB,
		UploadRateLimit: getEnv("UPLOAD_RATE_LIMIT", "60-M"),
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
