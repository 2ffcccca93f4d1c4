package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Environment variable names recognized by Load.
const (
	EnvBaseURL        = "BIM_PORTAL_BASE_URL"
	EnvUsername       = "BIM_PORTAL_USERNAME"
	EnvPassword       = "BIM_PORTAL_PASSWORD"
	EnvExportDir      = "EXPORT_DIRECTORY"
	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvExportRate     = "EXPORT_RATE_LIMIT"
)

const (
	// DefaultBaseURL is the production BIM portal instance.
	DefaultBaseURL = "https://via.bund.de/bim"

	// EduBaseURL is the education instance used for hackathons and testing.
	EduBaseURL = "https://via.bund.de/bmdv/bim-portal/edu/bim"

	DefaultExportDir      = "exports"
	DefaultRequestTimeout = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second

	// TokenRefreshMargin is subtracted from a token's expiry when deciding
	// whether it is still usable. A token inside the margin is refreshed
	// before the next request.
	TokenRefreshMargin = 20 * time.Second

	// AuthRetryLimit bounds how often a single call is retried after a
	// re-authentication triggered by an unauthorized response.
	AuthRetryLimit = 1

	// MaxProjectsToProbe bounds how many search hits discovery helpers walk
	// when looking for an exportable resource.
	MaxProjectsToProbe = 10
)

// Config holds all resolved settings for a portal session. It is constructed
// once by Load (or by hand in tests) and passed into the client and auth
// constructors; nothing reads the environment after that point.
type Config struct {
	BaseURL        string
	Username       string
	Password       string
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	ExportDir      string

	// ExportRateLimit caps the download bandwidth of export calls in bytes
	// per second. Zero means unlimited.
	ExportRateLimit int64
}

// Load reads the configuration from a .env file (if one exists in the working
// directory) and the process environment, falling back to defaults. Missing
// credentials are not an error here; they are checked at login time.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded settings from .env file")
	}

	cfg := Config{
		BaseURL:        strings.TrimRight(envOr(EnvBaseURL, DefaultBaseURL), "/"),
		Username:       os.Getenv(EnvUsername),
		Password:       os.Getenv(EnvPassword),
		RequestTimeout: DefaultRequestTimeout,
		ConnectTimeout: DefaultConnectTimeout,
		ExportDir:      envOr(EnvExportDir, DefaultExportDir),
	}

	if raw := os.Getenv(EnvRequestTimeout); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			log.Warn().Str("value", raw).Msgf("Ignoring invalid %s value", EnvRequestTimeout)
		} else {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}

	if raw := os.Getenv(EnvExportRate); raw != "" {
		limit, err := ParseSize(raw)
		if err != nil {
			log.Warn().Str("value", raw).Msgf("Ignoring invalid %s value", EnvExportRate)
		} else {
			cfg.ExportRateLimit = limit
		}
	}

	return cfg
}

var sizeRegexp = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]+)?\s*$`)

// ParseSize converts a human readable size such as "500KB" or "1.5 MB" into
// a byte count. Units are powers of 1024; a bare number is taken as bytes.
func ParseSize(sizeStr string) (int64, error) {
	s := strings.TrimSpace(sizeStr)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}
	m := sizeRegexp.FindStringSubmatch(s)
	if len(m) == 0 {
		return 0, fmt.Errorf("unable to parse size %q", sizeStr)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, err
	}

	var mult float64
	switch strings.ToLower(m[2]) {
	case "", "b", "bytes":
		mult = 1
	case "k", "kb", "kib":
		mult = 1024
	case "m", "mb", "mib":
		mult = 1024 * 1024
	case "g", "gb", "gib":
		mult = 1024 * 1024 * 1024
	case "t", "tb", "tib":
		mult = 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size unit %q in %q", m[2], sizeStr)
	}

	return int64(value * mult), nil
}

// HasCredentials reports whether both username and password are set.
func (c Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Validate returns a list of configuration problems, empty when the
// configuration is usable.
func (c Config) Validate() []string {
	var issues []string
	if c.BaseURL == "" {
		issues = append(issues, "base URL is not set")
	} else if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		issues = append(issues, "base URL must start with http:// or https://")
	}
	if c.RequestTimeout <= 0 {
		issues = append(issues, fmt.Sprintf("request timeout must be positive, got %v", c.RequestTimeout))
	}
	if c.ConnectTimeout <= 0 {
		issues = append(issues, fmt.Sprintf("connect timeout must be positive, got %v", c.ConnectTimeout))
	}
	if c.ExportDir == "" {
		issues = append(issues, "export directory is not set")
	}
	return issues
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
