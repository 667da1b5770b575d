package modules

import (
	"context"
	"html/template"
	"net/url"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// Reports shows open video reports alongside the recent activity log.
// Resolving a report removes it.
type Reports struct {
	app console.App
}

// NewReports constructs the reports and logs module.
func NewReports(app console.App) *Reports {
	return &Reports{app: app}
}

var reportsViewTmpl = template.Must(template.New("reports").Funcs(tmplFuncs).Parse(`
<div class="card mb-6">
  <h3 class="text-xl font-bold mb-4">Video Reports</h3>
  {{if .Reports}}
  <div class="table-container">
    <table class="table">
      <thead>
        <tr><th>Video</th><th>Reason</th><th>Reporter</th><th>Date</th><th class="text-right">Actions</th></tr>
      </thead>
      <tbody>
        {{range .Reports}}
        <tr>
          <td>{{if .VideoTitle}}{{.VideoTitle}}{{else}}ID: {{.VideoID}}{{end}}</td>
          <td>{{.Reason}}</td>
          <td>{{.UserID}}</td>
          <td>{{date .CreatedAt}}</td>
          <td class="text-right">
            <form method="post" action="/admin/reports/action/resolve" class="inline">
              <input type="hidden" name="id" value="{{.ID}}">
              <button type="submit" class="btn btn-sm btn-success">Resolve</button>
            </form>
          </td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </div>
  {{else}}<p class="text-muted">No reports at this time</p>{{end}}
</div>
<div class="card">
  <h3 class="text-xl font-bold mb-4">Recent Activity Logs</h3>
  {{if .Logs}}
  <div class="table-container">
    <table class="table">
      <thead>
        <tr><th>User</th><th>Action</th><th>Details</th><th>Date</th></tr>
      </thead>
      <tbody>
        {{range .Logs}}
        <tr>
          <td>{{.UserID}}</td>
          <td class="font-medium">{{.Action}}</td>
          <td class="text-sm">{{.Details}}</td>
          <td>{{date .CreatedAt}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </div>
  {{else}}<p class="text-muted">No activity logs</p>{{end}}
</div>`))

// Render shows open reports and the most recent fifty log entries.
func (m *Reports) Render(ctx context.Context) {
	var reportsResp visionhub.ReportsResponse
	var logsResp visionhub.LogsResponse
	errReports := m.app.API().Get(ctx, "/reports", &reportsResp)
	errLogs := m.app.API().Get(ctx, "/logs?limit=50", &logsResp)
	if errReports != nil || errLogs != nil {
		if errReports != nil {
			logActionErr("render-reports", errReports)
		} else {
			logActionErr("render-reports", errLogs)
		}
		m.app.Container().SetError("Error loading reports and logs")
		return
	}

	var reports []visionhub.Report
	if reportsResp.Success {
		reports = reportsResp.Reports
	}
	var logs []visionhub.LogEntry
	if logsResp.Success {
		logs = logsResp.Logs
	}

	render(m.app.Container(), reportsViewTmpl, struct {
		Reports []visionhub.Report
		Logs    []visionhub.LogEntry
	}{reports, logs})
}

// HandleAction routes report actions.
func (m *Reports) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "resolve":
		m.resolve(ctx, form.Get("id"))
	default:
		m.Render(ctx)
	}
}

func (m *Reports) resolve(ctx context.Context, id string) {
	if err := m.app.API().Delete(ctx, "/reports/"+url.PathEscape(id), nil); err != nil {
		logActionErr("resolve-report", err)
		m.app.ShowToast("Error resolving report", "error")
		return
	}
	m.app.ShowToast("Report resolved successfully", "success")
	m.Render(ctx)
}
