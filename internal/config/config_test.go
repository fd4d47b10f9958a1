package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jannisp/hourglass/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hourglass.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

const minimalConfig = `
base_url: https://acme.api.opsramp.com
tenant_id: client_12345
client_id: abc
client_secret: def
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Config{
		BaseURL:                   "https://acme.api.opsramp.com",
		TenantID:                  "client_12345",
		ClientID:                  "abc",
		ClientSecret:              "def",
		AppID:                     "PERFORMANCE-UTILIZATION",
		Metrics:                   []string{"system_cpu_utilization"},
		Methods:                   []string{"max"},
		FilterCriteria:            `state = "active" AND monitorable = "true"`,
		ReportFormat:              []string{"xlsx"},
		ReportNamePrefix:          "hourly-perf-report",
		DisplayMode:               "Consolidated List",
		QueryConfig:               "summary",
		TokenRefreshMarginSeconds: 300,
		HTTPTimeoutSeconds:        30,
		BurstPauseSeconds:         2,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ExplicitValuesWin(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
app_id: CUSTOM-APP
metrics: [system_memory_utilization, system_cpu_utilization]
report_format: [csv]
token_refresh_margin_seconds: 600
insecure_skip_verify: true
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppID != "CUSTOM-APP" {
		t.Errorf("AppID = %q, want CUSTOM-APP", cfg.AppID)
	}
	if diff := cmp.Diff([]string{"system_memory_utilization", "system_cpu_utilization"}, cfg.Metrics); diff != "" {
		t.Errorf("Metrics mismatch (-want +got):\n%s", diff)
	}
	if cfg.TokenRefreshMarginSeconds != 600 {
		t.Errorf("TokenRefreshMarginSeconds = %d, want 600", cfg.TokenRefreshMarginSeconds)
	}
	if !cfg.InsecureSkipVerify {
		t.Error("InsecureSkipVerify should be true")
	}
}

func TestLoad_EnvInterpolation(t *testing.T) {
	t.Setenv("HOURGLASS_TEST_SECRET", "s3cr3t")

	cfg, err := Load(writeConfig(t, `
base_url: https://acme.api.opsramp.com
tenant_id: client_12345
client_id: abc
client_secret: ${HOURGLASS_TEST_SECRET}
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ClientSecret != "s3cr3t" {
		t.Errorf("ClientSecret = %q, want interpolated env value", cfg.ClientSecret)
	}
}

func TestLoad_MissingEnvVar(t *testing.T) {
	_, err := Load(writeConfig(t, `
base_url: https://acme.api.opsramp.com
tenant_id: client_12345
client_id: abc
client_secret: ${HOURGLASS_DEFINITELY_UNSET_VAR}
`))

	var cfgErr *core.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %v, want *core.ConfigError", err)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing base_url", `
tenant_id: client_12345
client_id: abc
client_secret: def
`},
		{"missing client_secret", `
base_url: https://acme.api.opsramp.com
tenant_id: client_12345
client_id: abc
`},
		{"margin exceeds token lifetime", minimalConfig + `
token_refresh_margin_seconds: 7200
`},
		{"negative margin", minimalConfig + `
token_refresh_margin_seconds: -1
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			var cfgErr *core.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Load() error = %v, want *core.ConfigError", err)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() on a missing file should fail")
	}
}
