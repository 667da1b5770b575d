package modules

import (
	"context"
	"html/template"
	"net/url"
	"strconv"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// PasswordPolicy administers the password security policies. Creating a
// policy activates it; the backend deactivates the previous one.
type PasswordPolicy struct {
	app console.App
}

// NewPasswordPolicy constructs the password policy module.
func NewPasswordPolicy(app console.App) *PasswordPolicy {
	return &PasswordPolicy{app: app}
}

var policyViewTmpl = template.Must(template.New("policies").Funcs(tmplFuncs).Parse(`
<div class="space-y-6">
  <div class="flex justify-between items-center">
    <h3 class="text-xl font-bold">Password Policy Management</h3>
    <form method="post" action="/admin/password-policy/action/show-form" class="inline">
      <button type="submit" class="btn btn-primary">Create New Policy</button>
    </form>
  </div>
  {{if .Active}}
  {{with .Active}}
  <div class="card border-success">
    <div class="flex items-center mb-3">
      <span class="badge badge-success mr-2">ACTIVE</span>
      <h4 class="text-lg font-semibold">{{.Name}}</h4>
    </div>
    <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-4 gap-4">
      <div>
        <label class="text-sm font-medium">Minimum Length</label>
        <p class="text-lg">{{.MinLength}} characters</p>
      </div>
      <div>
        <label class="text-sm font-medium">Requirements</label>
        <div class="space-y-1">
          {{if .RequireUppercase}}<span class="badge badge-success">Uppercase</span>{{else}}<span class="badge badge-secondary">No Uppercase</span>{{end}}
          {{if .RequireLowercase}}<span class="badge badge-success">Lowercase</span>{{else}}<span class="badge badge-secondary">No Lowercase</span>{{end}}
          {{if .RequireNumbers}}<span class="badge badge-success">Numbers</span>{{else}}<span class="badge badge-secondary">No Numbers</span>{{end}}
          {{if .RequireSpecialChars}}<span class="badge badge-success">Special Chars</span>{{else}}<span class="badge badge-secondary">No Special Chars</span>{{end}}
        </div>
      </div>
      <div>
        <label class="text-sm font-medium">Password Age</label>
        <p class="text-lg">{{.MaxAgeDays}} days</p>
      </div>
      <div>
        <label class="text-sm font-medium">Lockout Settings</label>
        <p class="text-sm">{{.LockoutAttempts}} attempts</p>
        <p class="text-sm">{{.LockoutDurationMinutes}} min lockout</p>
      </div>
    </div>
  </div>
  {{end}}
  {{else}}
  <div class="card border-warning">
    <div class="text-center text-warning">
      <h4 class="text-lg font-semibold">No Active Password Policy</h4>
      <p>Create a password policy to enforce security requirements.</p>
    </div>
  </div>
  {{end}}
  <div class="card">
    <h4 class="text-lg font-semibold mb-4">All Password Policies</h4>
    <div class="table-container">
      <table class="table">
        <thead>
          <tr><th>Policy Name</th><th>Min Length</th><th>Requirements</th><th>Status</th><th>Created</th></tr>
        </thead>
        <tbody>
          {{range .Policies}}
          <tr>
            <td class="font-medium">{{.Name}}</td>
            <td>{{.MinLength}} chars</td>
            <td>
              <div class="flex gap-1">
                {{if .RequireUppercase}}<span class="badge badge-success">A</span>{{end}}
                {{if .RequireLowercase}}<span class="badge badge-success">a</span>{{end}}
                {{if .RequireNumbers}}<span class="badge badge-success">1</span>{{end}}
                {{if .RequireSpecialChars}}<span class="badge badge-success">@</span>{{end}}
              </div>
            </td>
            <td>{{if .IsActive}}<span class="badge badge-success">Active</span>{{else}}<span class="badge badge-secondary">Inactive</span>{{end}}</td>
            <td>{{date .CreatedAt}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>
  </div>
</div>`))

var policyFormTmpl = template.Must(template.New("policyForm").Parse(`
<div class="modal-content" style="max-width: 32rem;">
  <h3 class="modal-title">Create Password Policy</h3>
  <form method="post" action="/admin/password-policy/action/save" class="space-y-4">
    <div class="form-group">
      <label class="form-label">Policy Name</label>
      <input type="text" name="name" class="form-input" required>
    </div>
    <div class="form-group">
      <label class="form-label">Minimum Length</label>
      <input type="number" name="minLength" value="8" min="4" max="64" class="form-input" required>
    </div>
    <div class="form-group">
      <label class="form-label">Requirements</label>
      <div class="space-y-2">
        <label class="flex items-center">
          <input type="checkbox" name="requireUppercase" value="true" checked class="form-checkbox">
          <span class="ml-2">Require uppercase letters</span>
        </label>
        <label class="flex items-center">
          <input type="checkbox" name="requireLowercase" value="true" checked class="form-checkbox">
          <span class="ml-2">Require lowercase letters</span>
        </label>
        <label class="flex items-center">
          <input type="checkbox" name="requireNumbers" value="true" checked class="form-checkbox">
          <span class="ml-2">Require numbers</span>
        </label>
        <label class="flex items-center">
          <input type="checkbox" name="requireSpecial" value="true" checked class="form-checkbox">
          <span class="ml-2">Require special characters</span>
        </label>
      </div>
    </div>
    <div class="grid grid-cols-2 gap-4">
      <div class="form-group">
        <label class="form-label">Password Max Age (days)</label>
        <input type="number" name="maxAge" value="90" min="1" class="form-input">
      </div>
      <div class="form-group">
        <label class="form-label">Password History</label>
        <input type="number" name="historyCount" value="5" min="0" class="form-input">
      </div>
    </div>
    <div class="grid grid-cols-2 gap-4">
      <div class="form-group">
        <label class="form-label">Lockout Attempts</label>
        <input type="number" name="lockoutAttempts" value="5" min="1" class="form-input">
      </div>
      <div class="form-group">
        <label class="form-label">Lockout Duration (min)</label>
        <input type="number" name="lockoutDuration" value="30" min="1" class="form-input">
      </div>
    </div>
    <div class="modal-footer">
      <button type="submit" formaction="/admin/password-policy/action/cancel" formnovalidate class="btn btn-secondary">Cancel</button>
      <button type="submit" class="btn btn-primary">Create Policy</button>
    </div>
  </form>
</div>`))

// Render shows the active policy card and the policy history table.
func (m *PasswordPolicy) Render(ctx context.Context) {
	var activeResp visionhub.PolicyResponse
	var allResp visionhub.PoliciesResponse
	errActive := m.app.API().Get(ctx, "/password-policies/active", &activeResp)
	errAll := m.app.API().Get(ctx, "/password-policies", &allResp)
	if errActive != nil || errAll != nil {
		if errActive != nil {
			logActionErr("render-password-policies", errActive)
		} else {
			logActionErr("render-password-policies", errAll)
		}
		m.app.Container().SetError("Error loading password policies")
		return
	}

	var active *visionhub.PasswordPolicy
	if activeResp.Success {
		active = activeResp.Policy
	}
	var policies []visionhub.PasswordPolicy
	if allResp.Success {
		policies = allResp.Policies
	}

	render(m.app.Container(), policyViewTmpl, struct {
		Active   *visionhub.PasswordPolicy
		Policies []visionhub.PasswordPolicy
	}{active, policies})
}

// HandleAction routes password policy actions.
func (m *PasswordPolicy) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "show-form":
		renderModal(m.app, policyFormTmpl, nil)
	case "save":
		m.save(ctx, form)
	case "cancel":
		m.app.HideModal()
		m.Render(ctx)
	default:
		m.Render(ctx)
	}
}

func (m *PasswordPolicy) save(ctx context.Context, form url.Values) {
	atoi := func(key string) int {
		n, _ := strconv.Atoi(form.Get(key))
		return n
	}
	payload := map[string]any{
		"name":                     form.Get("name"),
		"min_length":               atoi("minLength"),
		"require_uppercase":        form.Get("requireUppercase") == "true",
		"require_lowercase":        form.Get("requireLowercase") == "true",
		"require_numbers":          form.Get("requireNumbers") == "true",
		"require_special_chars":    form.Get("requireSpecial") == "true",
		"max_age_days":             atoi("maxAge"),
		"history_count":            atoi("historyCount"),
		"lockout_attempts":         atoi("lockoutAttempts"),
		"lockout_duration_minutes": atoi("lockoutDuration"),
	}

	if err := m.app.API().Post(ctx, "/password-policies", payload, nil); err != nil {
		logActionErr("save-password-policy", err)
		m.app.ShowToast("Error creating password policy", "error")
		return
	}
	m.app.ShowToast("Password policy created and activated successfully", "success")
	m.app.HideModal()
	m.Render(ctx)
}
