package modules

import (
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// BackupSystem drives database, file and full backups plus restore and
// deletion. The outcome of the last backup or restore stays on screen.
type BackupSystem struct {
	app        console.App
	lastResult *backupResult
}

// NewBackupSystem constructs the backup system module.
func NewBackupSystem(app console.App) *BackupSystem {
	return &BackupSystem{app: app}
}

type backupResult struct {
	Title   string
	Success bool
	Backup  *visionhub.BackupResult
	Message string
	Error   string
}

type backupView struct {
	Status  visionhub.BackupStatus
	Backups []visionhub.Backup
	Result  *backupResult
}

var backupsTmpl = template.Must(template.New("backups").Funcs(tmplFuncs).Parse(`
<div class="space-y-6">
  <div class="flex justify-between items-center">
    <h3 class="text-xl font-bold">Backup System</h3>
    <div class="flex gap-2">
      <form method="post" action="/admin/backup-system/action/backup-database" class="inline">
        <button type="submit" class="btn btn-secondary">Backup Database</button>
      </form>
      <form method="post" action="/admin/backup-system/action/backup-files" class="inline">
        <button type="submit" class="btn btn-secondary">Backup Files</button>
      </form>
      <form method="post" action="/admin/backup-system/action/backup-full" class="inline">
        <button type="submit" class="btn btn-primary">Full Backup</button>
      </form>
      <form method="post" action="/admin/backup-system/action/refresh" class="inline">
        <button type="submit" class="btn btn-info">Refresh</button>
      </form>
    </div>
  </div>

  <div class="card">
    <h4 class="text-lg font-semibold mb-3">Backup System Status</h4>
    <div class="grid grid-cols-1 md:grid-cols-2 gap-4">
      <div class="feature-status">
        <label class="text-sm font-medium">Backup Directory</label>
        <p>{{if .Status.BackupPath}}{{.Status.BackupPath}}{{else}}N/A{{end}}</p>
      </div>
      <div class="feature-status">
        <label class="text-sm font-medium">Database Path</label>
        <p>{{if .Status.DBPath}}{{.Status.DBPath}}{{else}}N/A{{end}}</p>
      </div>
      <div class="feature-status">
        <label class="text-sm font-medium">Uploads Path</label>
        <p>{{if .Status.UploadsPath}}{{.Status.UploadsPath}}{{else}}N/A{{end}}</p>
      </div>
      <div class="feature-status">
        <label class="text-sm font-medium">Schedule</label>
        <p>{{if .Status.ScheduleEnabled}}{{.Status.BackupSchedule}}{{else}}Not scheduled{{end}}</p>
      </div>
    </div>
  </div>

  <div class="card">
    <div class="flex justify-between items-center mb-3">
      <h4 class="text-lg font-semibold">Available Backups ({{len .Backups}})</h4>
      <div class="text-sm text-muted">Showing latest 20 backups</div>
    </div>
    {{if .Backups}}
    <div class="table-container">
      <table class="table">
        <thead>
          <tr><th>Filename</th><th>Type</th><th>Size</th><th>Created</th><th class="text-right">Actions</th></tr>
        </thead>
        <tbody>
          {{range .Backups}}
          <tr>
            <td class="font-mono text-sm">{{.Filename}}</td>
            <td><span class="badge {{if eq .Type "database"}}badge-success{{else}}badge-info{{end}}">{{.Type}}</span></td>
            <td>{{kb .Size}} KB</td>
            <td>{{datetime .Created}}</td>
            <td class="text-right">
              <div class="action-buttons">
                {{if eq .Type "database"}}
                <form method="post" action="/admin/backup-system/action/restore" class="inline">
                  <input type="hidden" name="filename" value="{{.Filename}}">
                  <button type="submit" class="btn btn-sm btn-info">Restore</button>
                </form>
                {{end}}
                <form method="post" action="/admin/backup-system/action/delete" class="inline">
                  <input type="hidden" name="filename" value="{{.Filename}}">
                  <button type="submit" class="btn btn-sm btn-danger">Delete</button>
                </form>
              </div>
            </td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>
    {{else}}
    <div class="text-center text-muted py-8">
      <p>No backups available</p>
      <p class="text-sm mt-2">Create your first backup using the buttons above</p>
    </div>
    {{end}}
  </div>

  {{with .Result}}
  <div class="card">
    <h4 class="text-lg font-semibold mb-3">Backup Results</h4>
    <h5 class="font-semibold mb-2">{{.Title}} Results</h5>
    {{if .Success}}
    <div class="bg-green-100 border border-green-400 text-green-700 px-4 py-3 rounded mb-3">
      <p class="font-bold">Success!</p>
      {{with .Backup}}
      {{if .Filename}}<p>Backup File: <span class="font-mono text-sm">{{.Filename}}</span></p>{{end}}
      {{if .Size}}<p>Size: <span class="font-semibold">{{kb .Size}} KB</span></p>{{end}}
      {{if .Timestamp}}<p>Created: <span class="font-semibold">{{datetime .Timestamp}}</span></p>{{end}}
      {{if .RestoredFrom}}<p>Restored from: <span class="font-mono text-sm">{{.RestoredFrom}}</span></p>{{end}}
      {{end}}
      {{if .Message}}<p>{{.Message}}</p>{{end}}
    </div>
    {{else}}
    <div class="bg-red-100 border border-red-400 text-red-700 px-4 py-3 rounded mb-3">
      <p class="font-bold">Error!</p>
      <p>{{if .Error}}{{.Error}}{{else}}Unknown error occurred{{end}}</p>
    </div>
    {{end}}
  </div>
  {{end}}
</div>`))

// Render shows status, the latest twenty backups and the last result.
func (m *BackupSystem) Render(ctx context.Context) {
	var statusResp visionhub.BackupStatusResponse
	var listResp visionhub.BackupListResponse
	errStatus := m.app.API().Get(ctx, "/backups/status", &statusResp)
	errList := m.app.API().Get(ctx, "/backups/list", &listResp)
	if errStatus != nil || errList != nil {
		if errStatus != nil {
			logActionErr("render-backups", errStatus)
		} else {
			logActionErr("render-backups", errList)
		}
		m.app.Container().SetError("Error loading backup system")
		return
	}

	view := backupView{Result: m.lastResult}
	if statusResp.Success {
		view.Status = statusResp.Backup
	}
	if listResp.Success {
		view.Backups = listResp.Backups.Backups
		if len(view.Backups) > 20 {
			view.Backups = view.Backups[:20]
		}
	}
	render(m.app.Container(), backupsTmpl, view)
}

// HandleAction routes backup actions.
func (m *BackupSystem) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "backup-database":
		m.create(ctx, "Database Backup", "/backups/database", "Creating database backup...",
			"Database backup created successfully!", "Error creating database backup")
	case "backup-files":
		m.create(ctx, "File Backup", "/backups/files", "Creating file backup...",
			"File backup created successfully!", "Error creating file backup")
	case "backup-full":
		m.create(ctx, "Full Backup", "/backups/full", "Creating full backup...",
			"Full backup created successfully!", "Error creating full backup")
	case "refresh":
		m.app.ShowLoading(true, "Refreshing backup list...")
		m.Render(ctx)
		m.app.ShowToast("Backup list refreshed", "success")
	case "restore":
		m.restore(ctx, form.Get("filename"))
	case "delete":
		m.delete(ctx, form.Get("filename"))
	default:
		m.Render(ctx)
	}
}

func (m *BackupSystem) create(ctx context.Context, title, path, loadingMsg, okMsg, errMsg string) {
	m.app.ShowLoading(true, loadingMsg)

	var resp visionhub.BackupResultResponse
	if err := m.app.API().Post(ctx, path, nil, &resp); err != nil {
		logActionErr("create-backup", err)
		m.app.ShowToast(errMsg, "error")
		m.Render(ctx)
		return
	}

	m.lastResult = &backupResult{
		Title:   title,
		Success: resp.Success,
		Backup:  resp.Backup,
		Message: resp.Message,
		Error:   resp.Error,
	}
	if resp.Success {
		m.app.ShowToast(okMsg, "success")
	}
	m.Render(ctx)
}

func (m *BackupSystem) restore(ctx context.Context, filename string) {
	m.app.ShowConfirmationModal(
		fmt.Sprintf("Are you sure you want to restore the database from backup %q? This will overwrite the current database.", filename),
		func(ctx context.Context) {
			m.app.ShowLoading(true, "Restoring database...")

			var resp visionhub.BackupResultResponse
			if err := m.app.API().Post(ctx, "/backups/restore/"+url.PathEscape(filename), nil, &resp); err != nil {
				logActionErr("restore-backup", err)
				m.app.ShowToast("Error restoring database", "error")
				m.Render(ctx)
				return
			}

			m.lastResult = &backupResult{
				Title:   "Database Restore",
				Success: resp.Success,
				Backup:  resp.Backup,
				Message: resp.Message,
				Error:   resp.Error,
			}
			if resp.Success {
				m.app.ShowToast("Database restored successfully!", "success")
			}
			m.Render(ctx)
		},
	)
}

// delete is the one flow that surfaces the backend's own error text: a
// failed deletion reports why (file in use, already gone) instead of a
// generic message.
func (m *BackupSystem) delete(ctx context.Context, filename string) {
	m.app.ShowConfirmationModal(
		fmt.Sprintf("Are you sure you want to delete backup %q? This action cannot be undone.", filename),
		func(ctx context.Context) {
			m.app.ShowLoading(true, "Deleting backup...")

			var resp visionhub.StatusResponse
			if err := m.app.API().Delete(ctx, "/backups/"+url.PathEscape(filename), &resp); err != nil {
				logActionErr("delete-backup", err)
				m.app.ShowToast("Error deleting backup", "error")
				m.Render(ctx)
				return
			}
			if resp.Success {
				m.app.ShowToast("Backup deleted successfully!", "success")
				m.Render(ctx)
				return
			}
			msg := resp.Error
			if msg == "" {
				msg = "Failed to delete backup"
			}
			m.app.ShowToast(msg, "error")
			m.Render(ctx)
		},
	)
}
