package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jannisp/hourglass/internal/auth"
	"github.com/jannisp/hourglass/internal/config"
	"github.com/jannisp/hourglass/internal/cycle"
	"github.com/jannisp/hourglass/internal/opsramp"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// BuildScheduler wires the full stack for one cycle: HTTP transport,
// token manager, report client, scheduler. The scheduler never sees
// credentials directly, only the report client borrowing tokens.
func (f *Factory) BuildScheduler(cfg *config.Config) *cycle.Scheduler {
	if cfg.InsecureSkipVerify {
		// deliberate trust decision for self-signed gateway certificates,
		// surfaced loudly so it is never an oversight
		log.Warn().Msg("TLS certificate validation is DISABLED (insecure_skip_verify)")
	}

	httpClient := opsramp.NewHTTPClient(cfg.HTTPTimeout(), cfg.InsecureSkipVerify)
	tokens := auth.NewManager(cfg.Credentials(), cfg.RefreshMargin(), httpClient)
	api := opsramp.New(cfg.Credentials(), reportSettings(cfg), tokens, httpClient)

	return cycle.New(api, cycle.SystemClock(), cfg.ReportNamePrefix,
		cycle.WithBurstPause(cfg.BurstPause()))
}

func reportSettings(cfg *config.Config) opsramp.ReportSettings {
	return opsramp.ReportSettings{
		AppID:          cfg.AppID,
		Metrics:        cfg.Metrics,
		Methods:        cfg.Methods,
		FilterCriteria: cfg.FilterCriteria,
		Format:         cfg.ReportFormat,
		DisplayMode:    cfg.DisplayMode,
		QueryConfig:    cfg.QueryConfig,
	}
}
