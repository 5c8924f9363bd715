package config

import (
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // Asia/Tokyo must resolve on minimal images

	"github.com/joho/godotenv"
)

// Cfg is the global configuration loaded at startup.
var Cfg Config

// Config holds all application configuration.
type Config struct {
	// Server
	Port     string
	BaseURL  string
	Timezone string
	LogLevel string

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string

	// Rate limiter
	RateLimitRPS   int
	RateLimitBurst int

	// Gzip
	GzipEnabled bool

	// Proxy
	TrustProxy bool

	// Plan store
	StoreBackend  string
	StorePath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Link checker
	LinkCheckEnabled  bool
	LinkCheckInterval time.Duration
	LinkCheckDelay    time.Duration

	// HTTP
	UserAgent string

	// Reminders
	ReminderEnabled    bool
	ReminderHour       int
	ReminderWebhookURL string
	TelegramBotToken   string
	TelegramChatID     string

	// Report
	ReportFontPath string

	// Content
	ArticlesDir string

	// Admin / stats
	AdminAPIKey    string
	CounterPath    string
	MetricsEnabled bool
}

var location = time.Local

// Load reads .env (if present) and populates Cfg from environment variables.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	Cfg = Config{
		Port:     envOr("PORT", "8080"),
		BaseURL:  envOr("BASE_URL", "https://futarinavi.jp"),
		Timezone: envOr("TIMEZONE", "Asia/Tokyo"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: envOr("SENTRY_ENVIRONMENT", "production"),
		SentryRelease:     envOr("SENTRY_RELEASE", "futarinavi@1.0.0"),

		RateLimitRPS:   envInt("RATE_LIMIT_RPS", 30),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 60),

		GzipEnabled: envBool("GZIP_ENABLED", true),

		TrustProxy: envBool("TRUST_PROXY", false),

		StoreBackend:  envOr("STORE_BACKEND", "file"),
		StorePath:     envOr("STORE_PATH", "plans.json"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		LinkCheckEnabled:  envBool("LINKCHECK_ENABLED", true),
		LinkCheckInterval: envDuration("LINKCHECK_INTERVAL", 24*time.Hour),
		LinkCheckDelay:    envDuration("LINKCHECK_DELAY", 5*time.Second),

		UserAgent: envOr("USER_AGENT", "Mozilla/5.0 (compatible; FutariNaviBot/1.0; +https://futarinavi.jp)"),

		ReminderEnabled:    envBool("REMINDER_ENABLED", false),
		ReminderHour:       envInt("REMINDER_HOUR", 8),
		ReminderWebhookURL: os.Getenv("REMINDER_WEBHOOK_URL"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:     os.Getenv("TELEGRAM_CHAT_ID"),

		ReportFontPath: os.Getenv("REPORT_FONT_PATH"),

		ArticlesDir: os.Getenv("ARTICLES_DIR"),

		AdminAPIKey:    os.Getenv("ADMIN_API_KEY"),
		CounterPath:    envOr("COUNTER_PATH", "counter.json"),
		MetricsEnabled: envBool("METRICS_ENABLED", true),
	}

	if Cfg.ReminderHour < 0 || Cfg.ReminderHour > 23 {
		log.Printf("config: REMINDER_HOUR=%d out of range, using 8", Cfg.ReminderHour)
		Cfg.ReminderHour = 8
	}

	loc, err := time.LoadLocation(Cfg.Timezone)
	if err != nil {
		log.Printf("config: unknown timezone %q, falling back to local time", Cfg.Timezone)
		loc = time.Local
	}
	location = loc

	log.Printf("config: loaded (port=%s, store=%s, tz=%s, linkcheck=%v, reminders=%v)",
		Cfg.Port, Cfg.StoreBackend, location, Cfg.LinkCheckEnabled, Cfg.ReminderEnabled)
}

// Location is the timezone every calendar date is interpreted in.
func Location() *time.Location {
	return location
}

// Now returns the current time in Location.
func Now() time.Time {
	return time.Now().In(location)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
