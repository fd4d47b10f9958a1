package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"

	"github.com/jannisp/hourglass/internal/core"
)

// Config is the full configuration of one report cycle.
type Config struct {
	// BaseURL is the API root, e.g. "https://acme.api.opsramp.com".
	BaseURL  string `mapstructure:"base_url"`
	TenantID string `mapstructure:"tenant_id"`

	// OAuth client-credentials pair. Secrets are usually injected via
	// ${ENV_VAR} references in the config file.
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`

	AppID            string   `mapstructure:"app_id"`
	Metrics          []string `mapstructure:"metrics"`
	Methods          []string `mapstructure:"methods"`
	FilterCriteria   string   `mapstructure:"filter_criteria"`
	ReportFormat     []string `mapstructure:"report_format"`
	ReportNamePrefix string   `mapstructure:"report_name_prefix"`
	DisplayMode      string   `mapstructure:"display_mode"`
	QueryConfig      string   `mapstructure:"query_config"`

	TokenRefreshMarginSeconds int `mapstructure:"token_refresh_margin_seconds"`
	HTTPTimeoutSeconds        int `mapstructure:"http_timeout_seconds"`
	BurstPauseSeconds         int `mapstructure:"burst_pause_seconds"`

	// InsecureSkipVerify disables TLS certificate validation. The platform's
	// gateway appliances commonly present self-signed certificates; this is
	// an explicit opt-in, never the default.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

var envRefPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Load reads, interpolates and validates the configuration file at path.
// Validation failures are returned as *core.ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if raw == nil {
		return nil, &core.ConfigError{Reason: "config file is empty"}
	}

	interpolated, err := interpolate(raw)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building config decoder: %w", err)
	}
	if err := dec.Decode(interpolated); err != nil {
		return nil, &core.ConfigError{Reason: err.Error()}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// interpolate walks the raw document and replaces ${VAR} references in
// string values with the environment variable's value. A reference to an
// unset variable is a hard error so secrets never silently end up empty.
func interpolate(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			replaced, err := interpolate(inner)
			if err != nil {
				return nil, err
			}
			out[key] = replaced
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			replaced, err := interpolate(inner)
			if err != nil {
				return nil, err
			}
			out[i] = replaced
		}
		return out, nil
	case string:
		var missing string
		replaced := envRefPattern.ReplaceAllStringFunc(v, func(ref string) string {
			name := envRefPattern.FindStringSubmatch(ref)[1]
			val, ok := os.LookupEnv(name)
			if !ok && missing == "" {
				missing = name
			}
			return val
		})
		if missing != "" {
			return nil, &core.ConfigError{
				Reason: fmt.Sprintf("environment variable %q referenced in config but not set", missing),
			}
		}
		return replaced, nil
	default:
		return value, nil
	}
}

func (c *Config) applyDefaults() {
	if c.AppID == "" {
		c.AppID = "PERFORMANCE-UTILIZATION"
	}
	if len(c.Metrics) == 0 {
		c.Metrics = []string{"system_cpu_utilization"}
	}
	if len(c.Methods) == 0 {
		c.Methods = []string{"max"}
	}
	if c.FilterCriteria == "" {
		c.FilterCriteria = `state = "active" AND monitorable = "true"`
	}
	if len(c.ReportFormat) == 0 {
		c.ReportFormat = []string{"xlsx"}
	}
	if c.ReportNamePrefix == "" {
		c.ReportNamePrefix = "hourly-perf-report"
	}
	if c.DisplayMode == "" {
		c.DisplayMode = "Consolidated List"
	}
	if c.QueryConfig == "" {
		c.QueryConfig = "summary"
	}
	if c.TokenRefreshMarginSeconds == 0 {
		c.TokenRefreshMarginSeconds = 300
	}
	if c.HTTPTimeoutSeconds == 0 {
		c.HTTPTimeoutSeconds = 30
	}
	if c.BurstPauseSeconds == 0 {
		c.BurstPauseSeconds = 2
	}
}

func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"base_url", c.BaseURL},
		{"tenant_id", c.TenantID},
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
	}
	for _, r := range required {
		if r.value == "" {
			return &core.ConfigError{Reason: fmt.Sprintf("missing required key %q", r.key)}
		}
	}

	if c.TokenRefreshMarginSeconds < 0 {
		return &core.ConfigError{Reason: "token_refresh_margin_seconds must not be negative"}
	}
	// a margin >= the token lifetime would force a refresh on every call
	if time.Duration(c.TokenRefreshMarginSeconds)*time.Second >= core.NominalTokenLifetime {
		return &core.ConfigError{Reason: fmt.Sprintf(
			"token_refresh_margin_seconds (%d) must be less than the token lifetime (%ds)",
			c.TokenRefreshMarginSeconds, int(core.NominalTokenLifetime.Seconds()))}
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return &core.ConfigError{Reason: "http_timeout_seconds must be positive"}
	}
	if c.BurstPauseSeconds < 0 {
		return &core.ConfigError{Reason: "burst_pause_seconds must not be negative"}
	}
	return nil
}

// Credentials returns the immutable credential set handed to the token
// manager and report client.
func (c *Config) Credentials() core.Credentials {
	return core.Credentials{
		BaseURL:      c.BaseURL,
		TenantID:     c.TenantID,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}

func (c *Config) RefreshMargin() time.Duration {
	return time.Duration(c.TokenRefreshMarginSeconds) * time.Second
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) BurstPause() time.Duration {
	return time.Duration(c.BurstPauseSeconds) * time.Second
}
