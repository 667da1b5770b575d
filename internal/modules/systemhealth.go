package modules

import (
	"context"
	"html/template"
	"net/url"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// SystemHealth surfaces the backend's health monitor: overall status,
// detailed metrics, active alerts, CSV export and the monitoring toggle.
type SystemHealth struct {
	app console.App
}

// NewSystemHealth constructs the system health module.
func NewSystemHealth(app console.App) *SystemHealth {
	return &SystemHealth{app: app}
}

type healthView struct {
	Overview visionhub.HealthOverview
	Metrics  visionhub.HealthMetrics
	Alerts   []visionhub.HealthAlert
}

var healthTmpl = template.Must(template.New("health").Funcs(tmplFuncs).Parse(`
<div class="space-y-6">
  <div class="flex justify-between items-center">
    <h3 class="text-xl font-bold">System Health Monitor</h3>
    <div class="flex gap-2">
      <form method="post" action="/admin/system-health/action/refresh" class="inline">
        <button type="submit" class="btn btn-secondary">Refresh Status</button>
      </form>
      <form method="post" action="/admin/system-health/action/export" class="inline">
        <button type="submit" class="btn btn-info">Export Report</button>
      </form>
      <form method="post" action="/admin/system-health/action/start-monitoring" class="inline">
        <button type="submit" class="btn btn-success">Start Monitoring</button>
      </form>
    </div>
  </div>

  {{with .Overview}}
  <div class="card {{if eq .Overall "healthy"}}border-success{{else if eq .Overall "degraded"}}border-warning{{else}}border-danger{{end}}">
    <div class="flex items-center justify-between mb-4">
      <div class="flex items-center">
        <span class="badge {{if eq .Overall "healthy"}}badge-success{{else if eq .Overall "degraded"}}badge-warning{{else}}badge-danger{{end}} mr-3">{{if .Overall}}{{upper .Overall}}{{else}}UNKNOWN{{end}}</span>
        <h4 class="text-lg font-semibold">System Status</h4>
      </div>
      <div class="text-sm text-muted">Last checked: {{if .LastChecked}}{{datetime .LastChecked}}{{else}}Never{{end}}</div>
    </div>
    <div class="grid grid-cols-1 md:grid-cols-3 gap-4">
      <div class="metric-card">
        <h5 class="font-medium text-sm text-muted">System Performance</h5>
        <div class="mt-2">
          <p class="text-lg font-semibold">CPU: {{.Summary.System.CPUUsage}}%</p>
          <p class="text-lg font-semibold">Memory: {{.Summary.System.MemoryUsage}}%</p>
        </div>
      </div>
      <div class="metric-card">
        <h5 class="font-medium text-sm text-muted">Database Health</h5>
        <div class="mt-2">
          <p class="text-lg font-semibold {{if eq .Summary.Database.Status "healthy"}}text-green-600{{else}}text-red-600{{end}}">{{if .Summary.Database.Status}}{{upper .Summary.Database.Status}}{{else}}UNKNOWN{{end}}</p>
          <p class="text-sm">Response: {{.Summary.Database.ResponseTime}}ms</p>
        </div>
      </div>
      <div class="metric-card">
        <h5 class="font-medium text-sm text-muted">Application</h5>
        <div class="mt-2">
          <p class="text-lg font-semibold {{if eq .Summary.Application.Status "healthy"}}text-green-600{{else}}text-red-600{{end}}">{{if .Summary.Application.Status}}{{upper .Summary.Application.Status}}{{else}}UNKNOWN{{end}}</p>
          <p class="text-sm">Uptime: {{hours .Summary.Application.Uptime}}h</p>
        </div>
      </div>
    </div>
  </div>
  {{end}}

  {{if .Alerts}}
  <div class="card border-warning">
    <h4 class="text-lg font-semibold mb-3 text-yellow-600">Active Alerts ({{len .Alerts}})</h4>
    <div class="space-y-2">
      {{range .Alerts}}
      <div class="alert alert-{{.Type}} p-3 rounded">
        <div class="flex justify-between items-start">
          <div>
            <span class="badge badge-{{.Type}} mr-2">{{upper .Category}}</span>
            <span class="font-medium">{{.Message}}</span>
          </div>
          <span class="text-xs text-muted">{{datetime .Timestamp}}</span>
        </div>
      </div>
      {{end}}
    </div>
  </div>
  {{end}}

  {{with .Metrics}}
  <div class="grid grid-cols-1 lg:grid-cols-2 gap-6">
    <div class="card">
      <h4 class="text-lg font-semibold mb-3">System Metrics</h4>
      <div class="space-y-3">
        <div class="metric-row"><span class="metric-label">CPU Cores:</span> <span class="metric-value">{{.System.CPU.Cores}}</span></div>
        <div class="metric-row"><span class="metric-label">Total Memory:</span> <span class="metric-value">{{.System.Memory.Total}} MB</span></div>
        <div class="metric-row"><span class="metric-label">Memory Used:</span> <span class="metric-value">{{.System.Memory.Used}} MB</span></div>
        <div class="metric-row"><span class="metric-label">System Uptime:</span> <span class="metric-value">{{hours .System.Uptime.System}}h</span></div>
        <div class="metric-row"><span class="metric-label">Platform:</span> <span class="metric-value">{{if .System.Platform.Type}}{{.System.Platform.Type}}{{else}}N/A{{end}}</span></div>
      </div>
    </div>
    <div class="card">
      <h4 class="text-lg font-semibold mb-3">Database Status</h4>
      <div class="space-y-3">
        <div class="metric-row"><span class="metric-label">Status:</span> <span class="metric-value {{if eq .Database.Status "healthy"}}text-green-600{{else}}text-red-600{{end}}">{{if .Database.Status}}{{upper .Database.Status}}{{else}}UNKNOWN{{end}}</span></div>
        <div class="metric-row"><span class="metric-label">Response Time:</span> <span class="metric-value">{{.Database.ResponseTime}}ms</span></div>
        <div class="metric-row"><span class="metric-label">Videos:</span> <span class="metric-value">{{.Database.Stats.Videos}}</span></div>
        <div class="metric-row"><span class="metric-label">Users:</span> <span class="metric-value">{{.Database.Stats.Users}}</span></div>
        <div class="metric-row"><span class="metric-label">Database Size:</span> <span class="metric-value">{{if .Database.Stats.DatabaseSize}}{{.Database.Stats.DatabaseSize}}{{else}}N/A{{end}} MB</span></div>
      </div>
    </div>
  </div>

  <div class="card">
    <h4 class="text-lg font-semibold mb-3">API Performance</h4>
    <div class="grid grid-cols-1 md:grid-cols-3 gap-4">
      <div class="metric-card">
        <h5 class="font-medium text-sm text-muted">Active Connections</h5>
        <p class="text-2xl font-bold">{{.API.ActiveConnections}}</p>
      </div>
      <div class="metric-card">
        <h5 class="font-medium text-sm text-muted">Avg Response Time</h5>
        <p class="text-2xl font-bold">{{.API.AverageResponseTime}}ms</p>
      </div>
      <div class="metric-card">
        <h5 class="font-medium text-sm text-muted">Error Rate</h5>
        <p class="text-2xl font-bold {{if gt .API.ErrorRate 5.0}}text-red-600{{else}}text-green-600{{end}}">{{.API.ErrorRate}}%</p>
      </div>
    </div>
  </div>

  <div class="card">
    <h4 class="text-lg font-semibold mb-3">External Services</h4>
    <div class="space-y-3">
      <div class="service-status">
        <div class="flex items-center justify-between">
          <span class="font-medium">Google Gemini AI</span>
          <span class="badge {{if eq .ExternalServices.GeminiAI.Status "healthy"}}badge-success{{else if eq .ExternalServices.GeminiAI.Status "configured"}}badge-info{{else}}badge-warning{{end}}">{{if .ExternalServices.GeminiAI.Status}}{{upper .ExternalServices.GeminiAI.Status}}{{else}}UNKNOWN{{end}}</span>
        </div>
        {{if .ExternalServices.GeminiAI.LastTest}}<p class="text-sm text-muted">Last tested: {{datetime .ExternalServices.GeminiAI.LastTest}}</p>{{end}}
      </div>
    </div>
  </div>
  {{end}}
</div>`))

var healthExportTmpl = template.Must(template.New("healthExport").Parse(`
<div class="modal-content" style="max-width: 48rem;">
  <h3 class="modal-title">Health Report ({{.Filename}})</h3>
  <pre class="export-preview">{{.Data}}</pre>
  <div class="modal-footer">
    <form method="post" action="/admin/system-health/action/cancel" class="inline">
      <button type="submit" class="btn btn-secondary">Close</button>
    </form>
  </div>
</div>`))

// Render fetches the three health endpoints and lays out the dashboard.
func (m *SystemHealth) Render(ctx context.Context) {
	var overviewResp visionhub.HealthOverviewResponse
	var metricsResp visionhub.HealthMetricsResponse
	var alertsResp visionhub.HealthAlertsResponse
	errOverview := m.app.API().Get(ctx, "/health/overview", &overviewResp)
	errMetrics := m.app.API().Get(ctx, "/health/metrics", &metricsResp)
	errAlerts := m.app.API().Get(ctx, "/health/alerts", &alertsResp)
	if errOverview != nil || errMetrics != nil || errAlerts != nil {
		for _, err := range []error{errOverview, errMetrics, errAlerts} {
			if err != nil {
				logActionErr("render-system-health", err)
				break
			}
		}
		m.app.Container().SetError("Error loading system health data")
		return
	}

	view := healthView{}
	if overviewResp.Success {
		view.Overview = overviewResp.Overview
	}
	if metricsResp.Success {
		view.Metrics = metricsResp.Metrics
	}
	if alertsResp.Success {
		view.Alerts = alertsResp.Alerts
	}
	render(m.app.Container(), healthTmpl, view)
}

// HandleAction routes health actions.
func (m *SystemHealth) HandleAction(ctx context.Context, action string, _ url.Values) {
	switch action {
	case "refresh":
		m.app.ShowLoading(true, "Refreshing health status...")
		m.Render(ctx)
		m.app.ShowToast("Health status refreshed", "success")
	case "export":
		m.export(ctx)
	case "start-monitoring":
		m.startMonitoring(ctx)
	case "cancel":
		m.app.HideModal()
		m.Render(ctx)
	default:
		m.Render(ctx)
	}
}

func (m *SystemHealth) export(ctx context.Context) {
	var resp visionhub.ExportResponse
	if err := m.app.API().Get(ctx, "/health/export?format=csv", &resp); err != nil || !resp.Success {
		logActionErr("export-health", err)
		m.app.ShowToast("Failed to export health report", "error")
		return
	}
	renderModal(m.app, healthExportTmpl, struct {
		Filename string
		Data     string
	}{exportFilename(), resp.Data})
	m.app.ShowToast("Health report exported", "success")
}

func (m *SystemHealth) startMonitoring(ctx context.Context) {
	if err := m.app.API().Post(ctx, "/health/monitoring/start", nil, nil); err != nil {
		logActionErr("start-monitoring", err)
		m.app.ShowToast("Failed to start monitoring", "error")
		return
	}
	m.app.ShowToast("Health monitoring started", "success")
	m.Render(ctx)
}
