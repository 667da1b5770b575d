package modules

import (
	"context"
	"html/template"
	"net/url"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// SiteSettings edits the handful of branding settings the site exposes.
type SiteSettings struct {
	app console.App
}

// NewSiteSettings constructs the site settings module.
func NewSiteSettings(app console.App) *SiteSettings {
	return &SiteSettings{app: app}
}

var settingsFormTmpl = template.Must(template.New("settings").Parse(`
<form method="post" action="/admin/settings/action/save" class="space-y-4">
  <div class="form-group">
    <label class="form-label">Site Name</label>
    <input type="text" name="siteName" value="{{.SiteName}}" class="form-input">
  </div>
  <div class="form-group">
    <label class="form-label">Primary Color</label>
    <input type="color" name="primaryColor" value="{{.PrimaryColor}}" class="form-input">
  </div>
  <div class="flex justify-end">
    <button type="submit" class="btn btn-primary">Save Settings</button>
  </div>
</form>`))

// Render shows the settings form prefilled with the current values.
func (m *SiteSettings) Render(ctx context.Context) {
	var resp visionhub.SettingsResponse
	if err := m.app.API().Get(ctx, "/settings", &resp); err != nil || !resp.Success {
		logActionErr("render-settings", err)
		m.app.Container().SetError("Error loading settings")
		return
	}
	render(m.app.Container(), settingsFormTmpl, resp.Settings)
}

// HandleAction routes settings actions.
func (m *SiteSettings) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "save":
		m.save(ctx, form)
	default:
		m.Render(ctx)
	}
}

func (m *SiteSettings) save(ctx context.Context, form url.Values) {
	payload := map[string]any{
		"siteName":     form.Get("siteName"),
		"primaryColor": form.Get("primaryColor"),
	}
	if err := m.app.API().Post(ctx, "/settings", payload, nil); err != nil {
		logActionErr("save-settings", err)
		m.app.ShowToast("Error saving settings", "error")
		return
	}
	m.app.ShowToast("Settings saved successfully", "success")
	m.Render(ctx)
}
