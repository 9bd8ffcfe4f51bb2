package todoist

import (
	"net/url"
	"os"
	"strings"
	"time"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIToken = "TODOIST_API_TOKEN"
	EnvBaseURL  = "TODOIST_API_BASE_URL"
	EnvTimeout  = "TODOIST_API_TIMEOUT"
)

const (
	DefaultBaseURL = "https://api.todoist.com/api/v1"
	DefaultTimeout = 30 * time.Second
)

// Config is the immutable client configuration, built once at startup.
type Config struct {
	// Token is the personal API token sent as a bearer credential.
	Token string

	// BaseURL is the API root, without trailing slash.
	BaseURL string

	// Timeout bounds every request, including reading the response body.
	Timeout time.Duration

	// UserAgent is sent with every request when set.
	UserAgent string
}

// ConfigFromEnv reads the client configuration from the environment.
// A missing token is a *ConfigurationError.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Token:   strings.TrimSpace(os.Getenv(EnvAPIToken)),
		BaseURL: os.Getenv(EnvBaseURL),
		Timeout: DefaultTimeout,
	}

	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, &ConfigurationError{Setting: EnvTimeout, Reason: "not a valid duration: " + err.Error()}
		}
		cfg.Timeout = timeout
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate reports the first invalid setting as a *ConfigurationError.
func (c Config) Validate() error {
	if c.Token == "" {
		return &ConfigurationError{Setting: EnvAPIToken, Reason: "environment variable is required"}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigurationError{Setting: EnvBaseURL, Reason: "must be an absolute http(s) URL"}
	}

	if c.Timeout < 0 {
		return &ConfigurationError{Setting: EnvTimeout, Reason: "must be positive"}
	}
	return nil
}
