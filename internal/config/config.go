package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Search engine
	DebounceDelay  time.Duration // delay before a query change triggers a search
	OnlineTimeout  time.Duration // ceiling for the whole online fan-out
	CacheTTL       time.Duration // TTL for cached online result sets
	SearchMode     string        // "local" | "hybrid" | "online"
	EnabledSources []string      // remote source ids to query
	GroupBySource  bool          // group result view by source instead of type

	// Background maintenance
	ProbeInterval   time.Duration // availability re-probe interval
	JanitorInterval time.Duration // expired-cache sweep interval

	// Redis (optional; empty addr disables recent-search recording)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
	RedisPoolSize       int
	RedisWarnThreshold  int
	RecentsMax          int // how many recent searches to keep
}

func Load() *Config {
	return &Config{
		ListenPort:      getenv("SKYSEEK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SKYSEEK_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("SKYSEEK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SKYSEEK_PRETTY_LOG", true),

		DebounceDelay:  mustDuration("SKYSEEK_DEBOUNCE_DELAY", 200*time.Millisecond),
		OnlineTimeout:  mustDuration("SKYSEEK_ONLINE_TIMEOUT", 10*time.Second),
		CacheTTL:       mustDuration("SKYSEEK_CACHE_TTL", 30*time.Minute),
		SearchMode:     getenv("SKYSEEK_SEARCH_MODE", "hybrid"),
		EnabledSources: splitAndTrim(getenv("SKYSEEK_ENABLED_SOURCES", "simbad,sesame")),
		GroupBySource:  mustBool("SKYSEEK_GROUP_BY_SOURCE", false),

		ProbeInterval:   mustDuration("SKYSEEK_PROBE_INTERVAL", 5*time.Minute),
		JanitorInterval: mustDuration("SKYSEEK_JANITOR_INTERVAL", 10*time.Minute),

		RedisAddr:           getenv("SKYSEEK_REDIS_ADDR", ""),
		RedisUser:           getenv("SKYSEEK_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("SKYSEEK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SKYSEEK_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("SKYSEEK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("SKYSEEK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("SKYSEEK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisConnectTimeout: mustDuration("SKYSEEK_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("SKYSEEK_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("SKYSEEK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("SKYSEEK_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("SKYSEEK_REDIS_POOL_SIZE", 10),
		RedisWarnThreshold:  getenvInt("SKYSEEK_REDIS_WARN_THRESHOLD", 3),
		RecentsMax:          getenvInt("SKYSEEK_RECENTS_MAX", 50),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
