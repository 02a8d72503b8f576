package config

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDoctorKey = "doctor123"

	StoreMemory = "memory"
	StoreMySQL  = "mysql"
)

type Config struct {
	Port           string
	Env            string
	SecretKey      string
	SessionTTL     time.Duration
	CookieSecure   bool
	DoctorKey      string
	StoreDriver    string
	DatabaseDSN    string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	LogLevel       string
	LogFormat      string
	LogFile        string
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		SecretKey:      os.Getenv("SECRET_KEY"),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		CookieSecure:   getBool("COOKIE_SECURE", false),
		DoctorKey:      getEnv("DOCTOR_ACCESS_KEY", DefaultDoctorKey),
		StoreDriver:    getEnv("STORE_DRIVER", StoreMemory),
		DatabaseDSN:    getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/healthguard?parseTime=true"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
	}

	cfg.LogFormat = getEnv("LOG_FORMAT", "text")
	if cfg.IsProduction() && os.Getenv("LOG_FORMAT") == "" {
		cfg.LogFormat = "json"
	}

	// Sessions do not survive a restart when the secret is generated.
	if cfg.SecretKey == "" {
		cfg.SecretKey = randomSecret()
		slog.Warn("SECRET_KEY not set, generated a per-process session secret")
	}

	if cfg.IsProduction() && cfg.DoctorKey == DefaultDoctorKey {
		slog.Error("DOCTOR_ACCESS_KEY must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid number, using default", "key", key, "value", v)
		return fallback
	}
	return f
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func randomSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("config: reading random secret: " + err.Error())
	}
	return hex.EncodeToString(b)
}
