package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultUserAgent is a desktop browser identity; some sites refuse obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36 Edg/131.0.0.0"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr  string
	CORSOrigins string // Comma-separated origins allowed to call /api

	// Fetching
	UserAgent         string
	FetchTimeout      time.Duration // 0 leaves the http.Client default (no timeout)
	MaxBodyBytes      int64
	AllowPrivateHosts bool // Skip the private-address check, e.g. for local testing

	// Text pipeline
	ExtractMode    string // "all" or "article"
	Segmenter      string // "gse" or "bigram"
	TopN           int
	DefaultMinFreq int

	// Charts
	ChartHeight int
	ChartFont   string // Optional TTF used by raster charts so CJK labels render

	// Session
	RedisURL      string // Empty keeps UI state in memory
	SessionSecret string // Used for signing cookies (min 32 chars)

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "文章分析工具"
	SiteFooter string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		UserAgent:         getEnv("USER_AGENT", DefaultUserAgent),
		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 0),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 10<<20)),
		AllowPrivateHosts: getEnvBool("ALLOW_PRIVATE_HOSTS"),

		ExtractMode:    strings.ToLower(getEnv("EXTRACT_MODE", "all")),
		Segmenter:      strings.ToLower(getEnv("SEGMENTER", "gse")),
		TopN:           getEnvInt("TOP_N", 20),
		DefaultMinFreq: getEnvInt("DEFAULT_MIN_FREQ", 5),

		ChartHeight: getEnvInt("CHART_HEIGHT", 600),
		ChartFont:   getEnv("CHART_FONT", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),

		SiteTitle:  getEnv("SITE_TITLE", "文章分析工具"),
		SiteFooter: getEnv("SITE_FOOTER", "中文网页词频分析"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// UsesArticleMode reports whether extraction should run readability first.
func (c *Config) UsesArticleMode() bool {
	return c.ExtractMode == "article"
}
