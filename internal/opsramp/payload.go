package opsramp

import "github.com/jannisp/hourglass/internal/core"

// apiTimeLayout is the timestamp format the reporting API expects,
// e.g. "2026-03-14T09:00:00.000Z".
const apiTimeLayout = "2006-01-02T15:04:05.000Z"

// ReportSettings are the analysis parameters shared by every report of a
// cycle. They come straight from configuration.
type ReportSettings struct {
	AppID          string
	Metrics        []string
	Methods        []string
	FilterCriteria string
	Format         []string
	DisplayMode    string
	QueryConfig    string
}

// Payload is the create-analysis request body.
type Payload struct {
	Parameters Parameters `json:"parameters"`
	Name       string     `json:"name"`
	TenantID   string     `json:"tenantId"`
	AppID      string     `json:"appId"`
	Format     []string   `json:"format"`
}

type Parameters struct {
	Method         []string     `json:"method"`
	EndTime        string       `json:"endTime"`
	Metrics        []string     `json:"metrics"`
	Options        []string     `json:"options"`
	StartTime      string       `json:"startTime"`
	OpsQLQuery     []OpsQLQuery `json:"opsqlQuery"`
	DisplayMode    string       `json:"displayMode"`
	QueryConfig    string       `json:"queryConfig"`
	AnalysisPeriod string       `json:"analysisPeriod"`
	Client         string       `json:"client"`
}

type OpsQLQuery struct {
	GroupBy        []string `json:"groupBy"`
	FilterCriteria string   `json:"filterCriteria"`
}

// BuildPayload assembles the create-analysis body for one window.
// Exported so the debug command can print the exact body without a client.
func BuildPayload(tenantID string, settings ReportSettings, window core.ReportWindow) Payload {
	return Payload{
		Parameters: Parameters{
			Method:    settings.Methods,
			EndTime:   window.End.UTC().Format(apiTimeLayout),
			Metrics:   settings.Metrics,
			Options:   []string{"resource.id", "resource.name"},
			StartTime: window.Start.UTC().Format(apiTimeLayout),
			OpsQLQuery: []OpsQLQuery{
				{GroupBy: []string{}, FilterCriteria: settings.FilterCriteria},
			},
			DisplayMode:    settings.DisplayMode,
			QueryConfig:    settings.QueryConfig,
			AnalysisPeriod: "Specific Period",
			Client:         tenantID,
		},
		Name:     window.Name,
		TenantID: tenantID,
		AppID:    settings.AppID,
		Format:   settings.Format,
	}
}