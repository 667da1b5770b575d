package modules

import (
	"context"
	"html/template"
	"net/url"
	"strings"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// AISettings manages where the Gemini API key comes from: the environment
// or a database-stored setting. The last connection test result stays on
// screen until the next test replaces it.
type AISettings struct {
	app      console.App
	lastTest *aiTestResult
}

// NewAISettings constructs the AI settings module.
func NewAISettings(app console.App) *AISettings {
	return &AISettings{app: app}
}

type aiTestResult struct {
	Success  bool
	Quota    bool
	Category string
	Error    string
}

type aiSettingsView struct {
	StatusMessage string
	StatusClass   string
	HasEnvKey     bool
	HasDBKey      bool
	Initialized   bool
	Source        string
	APIKey        string
	Test          *aiTestResult
}

var aiSettingsTmpl = template.Must(template.New("aiSettings").Funcs(tmplFuncs).Parse(`
<div class="space-y-6">
  <div class="flex justify-between items-center">
    <h3 class="text-xl font-bold">AI Service Settings</h3>
  </div>

  <div class="card">
    <div class="flex items-center mb-3">
      <span class="badge {{.StatusClass}} mr-2">{{upper .StatusMessage}}</span>
      <h4 class="text-lg font-semibold">Google Gemini API Key Status</h4>
    </div>
    <div class="mb-4">
      <p class="text-sm text-secondary">
        The Google Gemini API key is used for AI-powered features like auto-categorization,
        tag generation, content analysis, and summary generation.
      </p>
    </div>
    <div class="grid grid-cols-1 md:grid-cols-3 gap-4 mt-4">
      <div class="bg-gray-800 p-3 rounded">
        <div class="text-xs text-muted">Environment Key</div>
        <div class="font-medium {{if .HasEnvKey}}text-success{{else}}text-warning{{end}}">{{if .HasEnvKey}}CONFIGURED{{else}}NOT SET{{end}}</div>
      </div>
      <div class="bg-gray-800 p-3 rounded">
        <div class="text-xs text-muted">Database Key</div>
        <div class="font-medium {{if .HasDBKey}}text-success{{else}}text-warning{{end}}">{{if .HasDBKey}}CONFIGURED{{else}}NOT SET{{end}}</div>
      </div>
      <div class="bg-gray-800 p-3 rounded">
        <div class="text-xs text-muted">Service Status</div>
        <div class="font-medium {{if .Initialized}}text-success{{else}}text-warning{{end}}">{{if .Initialized}}INITIALIZED{{else}}NOT READY{{end}}</div>
      </div>
    </div>
  </div>

  <div class="card">
    <h4 class="text-lg font-semibold mb-4">API Key Configuration</h4>
    <form method="post" action="/admin/ai-settings/action/save" class="space-y-4">
      <div class="form-group">
        <label class="form-label">API Key Source</label>
        <div class="flex flex-col space-y-2 md:space-y-0 md:flex-row md:items-center md:space-x-6">
          <label class="flex items-center">
            <input type="radio" name="apiKeySource" value="environment" class="form-radio"
              {{if eq .Source "environment"}}checked{{end}} {{if not .HasEnvKey}}disabled{{end}}>
            <span class="ml-2">Environment Variable (.env file)</span>
            {{if .HasEnvKey}}<span class="ml-2 badge badge-success">CONFIGURED</span>{{else}}<span class="ml-2 badge badge-warning">NOT SET</span>{{end}}
          </label>
          <label class="flex items-center">
            <input type="radio" name="apiKeySource" value="database" class="form-radio" {{if eq .Source "database"}}checked{{end}}>
            <span class="ml-2">Database Storage</span>
          </label>
        </div>
      </div>

      <div class="form-group {{if ne .Source "database"}}hidden{{end}}">
        <label class="form-label">Google Gemini API Key</label>
        <input type="password" name="geminiApiKey" value="{{.APIKey}}" placeholder="Enter your Google Gemini API key" class="form-input">
        <p class="text-xs text-muted mt-1">
          Get your API key from <a href="https://makersuite.google.com/app/apikey" target="_blank" class="text-primary">Google AI Studio</a>
        </p>
        <div class="mt-2 text-sm text-info">
          <strong>Note:</strong> Storing API keys in the database is less secure than using environment variables.
        </div>
      </div>

      <div class="flex justify-end space-x-3">
        <button type="submit" formaction="/admin/ai-settings/action/test" class="btn btn-secondary">Test Connection</button>
        <button type="submit" class="btn btn-primary">Save Settings</button>
      </div>
    </form>
  </div>

  {{with .Test}}
  <div class="card">
    <h4 class="text-lg font-semibold mb-3">Connection Test Result</h4>
    {{if .Success}}
    <div class="flex items-center">
      <span class="badge badge-success">SUCCESS</span>
      <span class="ml-2 text-success">Connected to Google Gemini API successfully!</span>
    </div>
    <div class="mt-2 text-sm"><strong>Test Result:</strong> {{.Category}}</div>
    {{else if .Quota}}
    <div class="flex items-center">
      <span class="badge badge-warning">QUOTA EXCEEDED</span>
      <span class="ml-2 text-warning">API quota limit reached. Please try again later or upgrade your plan.</span>
    </div>
    <div class="mt-2 text-sm text-warning"><strong>Error:</strong> {{.Error}}</div>
    {{else}}
    <div class="flex items-center">
      <span class="badge badge-error">FAILED</span>
      <span class="ml-2 text-error">Failed to connect to Google Gemini API</span>
    </div>
    <div class="mt-2 text-sm text-error"><strong>Error:</strong> {{.Error}}</div>
    {{end}}
  </div>
  {{end}}
</div>`))

// Render fetches the stored settings and the AI service status and lays
// out the key-source form. Failed envelopes degrade to empty values; only
// a transport failure blocks the page.
func (m *AISettings) Render(ctx context.Context) {
	var settingsResp visionhub.SettingsResponse
	if err := m.app.API().Get(ctx, "/settings", &settingsResp); err != nil {
		logActionErr("render-ai-settings", err)
		m.app.Container().SetError("Error loading AI settings: " + err.Error())
		return
	}
	var statusResp visionhub.AIStatusResponse
	if err := m.app.API().Get(ctx, "/ai/status", &statusResp); err != nil {
		logActionErr("render-ai-settings", err)
		m.app.Container().SetError("Error loading AI settings: " + err.Error())
		return
	}

	var settings visionhub.Settings
	if settingsResp.Success {
		settings = settingsResp.Settings
	}
	var status visionhub.AIStatus
	if statusResp.Success {
		status = statusResp.AI
	}

	// The environment key never leaves the server; only a database-stored
	// key is echoed back into the form.
	source := "environment"
	apiKey := ""
	if status.HasDBAPIKey {
		source = "database"
		apiKey = settings.GeminiAPIKey
	}

	statusMessage, statusClass := "Not configured", "badge-warning"
	if status.Initialized && status.HasAPIKey {
		statusMessage, statusClass = "Active", "badge-success"
	} else if apiKey != "" || status.HasEnvAPIKey {
		statusMessage = "Inactive"
	}

	render(m.app.Container(), aiSettingsTmpl, aiSettingsView{
		StatusMessage: statusMessage,
		StatusClass:   statusClass,
		HasEnvKey:     status.HasEnvAPIKey,
		HasDBKey:      status.HasDBAPIKey,
		Initialized:   status.Initialized,
		Source:        source,
		APIKey:        apiKey,
		Test:          m.lastTest,
	})
}

// HandleAction routes AI settings actions.
func (m *AISettings) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "save":
		m.save(ctx, form)
	case "test":
		m.test(ctx)
	default:
		m.Render(ctx)
	}
}

func (m *AISettings) save(ctx context.Context, form url.Values) {
	payload := map[string]any{"geminiApiKey": ""}
	if form.Get("apiKeySource") == "database" {
		key := strings.TrimSpace(form.Get("geminiApiKey"))
		if key == "" {
			m.app.ShowToast("Please enter a valid API key", "warning")
			m.Render(ctx)
			return
		}
		payload["geminiApiKey"] = key
	}

	m.app.ShowLoading(true, "Saving settings...")

	var resp visionhub.StatusResponse
	if err := m.app.API().Post(ctx, "/settings", payload, &resp); err != nil {
		logActionErr("save-ai-settings", err)
		m.app.ShowToast("Error saving AI settings: "+err.Error(), "error")
		m.Render(ctx)
		return
	}
	if !resp.Success {
		m.app.ShowToast("Error saving AI settings", "error")
		m.Render(ctx)
		return
	}
	m.app.ShowToast("AI settings saved successfully", "success")
	m.Render(ctx)
}

// test probes the categorization endpoint with the first catalog video,
// or a synthetic one when the catalog is empty.
func (m *AISettings) test(ctx context.Context) {
	body := map[string]any{"title": "Test Video", "description": "This is a test for AI connectivity"}
	if videos := m.app.Videos(ctx); len(videos) > 0 {
		body = map[string]any{"videoId": videos[0].ID}
	}

	var resp visionhub.AICategorizeResponse
	err := m.app.API().Post(ctx, "/ai/categorize", body, &resp)
	switch {
	case err == nil && resp.Success && resp.Categorization.Success:
		m.lastTest = &aiTestResult{Success: true, Category: resp.Categorization.Category}
	default:
		errMsg := resp.Error
		if err != nil {
			errMsg = err.Error()
		}
		if errMsg == "" {
			errMsg = "Unknown error occurred"
		}
		m.lastTest = &aiTestResult{
			Quota: strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota"),
			Error: errMsg,
		}
	}
	m.Render(ctx)
}
