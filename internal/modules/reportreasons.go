package modules

import (
	"context"
	"html/template"
	"net/url"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// ReportReasons manages the selectable reasons users can pick when
// reporting a video.
type ReportReasons struct {
	app console.App
}

// NewReportReasons constructs the report reasons module.
func NewReportReasons(app console.App) *ReportReasons {
	return &ReportReasons{app: app}
}

var reasonsTableTmpl = template.Must(template.New("reasons").Funcs(tmplFuncs).Parse(`
<div class="flex justify-between items-center mb-4">
  <h2 class="text-2xl font-bold">Report Reasons Management</h2>
  <div class="flex gap-2">
    <form method="post" action="/admin/report-reasons/action/show-form" class="inline">
      <button type="submit" class="btn btn-sm btn-primary" title="Add New Reason">
        <i class="fas fa-plus"></i> Add New Reason
      </button>
    </form>
  </div>
</div>
<div class="table-container">
  <table class="table">
    <thead>
      <tr><th>Reason Text</th><th>Created</th><th class="text-right">Actions</th></tr>
    </thead>
    <tbody>
      {{range .}}
      <tr>
        <td class="font-medium">{{.Reason}}</td>
        <td>{{date .CreatedAt}}</td>
        <td class="text-right">
          <form method="post" action="/admin/report-reasons/action/show-form" class="inline">
            <input type="hidden" name="id" value="{{.ID}}">
            <button type="submit" class="btn btn-sm btn-secondary">Edit</button>
          </form>
          <form method="post" action="/admin/report-reasons/action/delete" class="inline">
            <input type="hidden" name="id" value="{{.ID}}">
            <button type="submit" class="btn btn-sm btn-danger">Delete</button>
          </form>
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
</div>`))

var reasonFormTmpl = template.Must(template.New("reasonForm").Parse(`
<div class="modal-content">
  <h3 class="modal-title">{{if .ID}}Edit Report Reason{{else}}Add New Report Reason{{end}}</h3>
  <form method="post" action="/admin/report-reasons/action/save" class="space-y-4">
    <input type="hidden" name="id" value="{{if .ID}}{{.ID}}{{end}}">
    <div class="form-group">
      <label class="form-label">Reason Text</label>
      <input type="text" name="reason" value="{{.Reason}}" class="form-input" required>
    </div>
    <div class="modal-footer">
      <button type="submit" formaction="/admin/report-reasons/action/cancel" formnovalidate class="btn btn-secondary">Cancel</button>
      <button type="submit" class="btn btn-primary">Save</button>
    </div>
  </form>
</div>`))

// Render lists all report reasons.
func (m *ReportReasons) Render(ctx context.Context) {
	var resp visionhub.ReasonsResponse
	if err := m.app.API().Get(ctx, "/report-reasons", &resp); err != nil || !resp.Success {
		logActionErr("render-report-reasons", err)
		m.app.Container().SetError("Error loading report reasons")
		return
	}
	render(m.app.Container(), reasonsTableTmpl, resp.Reasons)
}

// HandleAction routes report reason actions.
func (m *ReportReasons) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "show-form":
		m.showForm(ctx, form.Get("id"))
	case "save":
		m.save(ctx, form)
	case "delete":
		m.delete(ctx, form.Get("id"))
	case "cancel":
		m.app.HideModal()
		m.Render(ctx)
	default:
		m.Render(ctx)
	}
}

func (m *ReportReasons) showForm(ctx context.Context, id string) {
	reason := visionhub.ReportReason{}
	if id != "" {
		var resp visionhub.ReasonResponse
		if err := m.app.API().Get(ctx, "/report-reasons/"+url.PathEscape(id), &resp); err != nil || !resp.Success {
			logActionErr("show-reason-form", err)
			m.app.ShowToast("Error loading reason", "error")
			return
		}
		reason = resp.Reason
	}
	renderModal(m.app, reasonFormTmpl, reason)
}

func (m *ReportReasons) save(ctx context.Context, form url.Values) {
	id := form.Get("id")
	payload := map[string]any{"reason": form.Get("reason")}

	var err error
	if id != "" {
		err = m.app.API().Put(ctx, "/report-reasons/"+url.PathEscape(id), payload, nil)
	} else {
		err = m.app.API().Post(ctx, "/report-reasons", payload, nil)
	}
	if err != nil {
		logActionErr("save-reason", err)
		m.app.ShowToast("Error saving reason", "error")
		return
	}
	if id != "" {
		m.app.ShowToast("Report reason updated successfully", "success")
	} else {
		m.app.ShowToast("Report reason created successfully", "success")
	}
	m.app.HideModal()
	m.Render(ctx)
}

func (m *ReportReasons) delete(ctx context.Context, id string) {
	m.app.ShowConfirmationModal(
		"Are you sure you want to delete this report reason?",
		func(ctx context.Context) {
			if err := m.app.API().Delete(ctx, "/report-reasons/"+url.PathEscape(id), nil); err != nil {
				logActionErr("delete-reason", err)
				m.app.ShowToast("Error deleting reason", "error")
				return
			}
			m.app.ShowToast("Report reason deleted successfully", "success")
			m.Render(ctx)
		},
	)
}
