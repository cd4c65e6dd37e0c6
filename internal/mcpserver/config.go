package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/JacobTheEvans/swagger-validator-middleware/validator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize int64

	// list_routes defaults.
	RouteLimit int
	MaxLimit   int

	// Placeholder style for reported route patterns.
	Placeholders validator.PlaceholderStyle
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SWAGVAL_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("SWAGVAL_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SWAGVAL_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("SWAGVAL_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("SWAGVAL_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SWAGVAL_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("SWAGVAL_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
		RouteLimit:         envInt("SWAGVAL_MCP_ROUTE_LIMIT", 100),
		MaxLimit:           envInt("SWAGVAL_MCP_MAX_LIMIT", 1000),
		Placeholders:       envPlaceholders("SWAGVAL_MCP_PLACEHOLDERS"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
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
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
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
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envPlaceholders(key string) validator.PlaceholderStyle {
	v := os.Getenv(key)
	style, err := validator.ParsePlaceholderStyle(v)
	if err != nil {
		slog.Warn("invalid placeholder style env var, using default", "key", key, "value", v, "default", "colon")
		return validator.ColonPlaceholders
	}
	return style
}
