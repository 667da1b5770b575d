package modules

import (
	"context"
	"html/template"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// Users manages user accounts: listing, creation, role toggling, password
// changes and profile edits.
type Users struct {
	app console.App
}

// NewUsers constructs the user management module.
func NewUsers(app console.App) *Users {
	return &Users{app: app}
}

var usersTableTmpl = template.Must(template.New("users").Funcs(tmplFuncs).Parse(`
<div class="flex justify-end mb-4">
  <form method="post" action="/admin/users/action/show-form">
    <button type="submit" class="btn btn-primary">Add New User</button>
  </form>
</div>
<div class="table-container">
  <table class="table">
    <thead>
      <tr><th>Username</th><th>Role</th><th>Created</th><th class="text-right">Actions</th></tr>
    </thead>
    <tbody>
      {{range .}}
      <tr>
        <td class="font-medium">{{.Username}}</td>
        <td><span class="badge {{if eq .Role "admin"}}badge-admin{{else}}badge-user{{end}}">{{upper .Role}}</span></td>
        <td>{{date .CreatedAt}}</td>
        <td class="text-right">
          <div class="action-buttons">
            <form method="post" action="/admin/users/action/change-role" class="inline">
              <input type="hidden" name="username" value="{{.Username}}">
              <input type="hidden" name="role" value="{{.Role}}">
              <button type="submit" class="btn btn-sm btn-secondary">Change Role</button>
            </form>
            <form method="post" action="/admin/users/action/show-password-form" class="inline">
              <input type="hidden" name="username" value="{{.Username}}">
              <button type="submit" class="btn btn-sm btn-warning">Change Password</button>
            </form>
            <form method="post" action="/admin/users/action/show-profile-form" class="inline">
              <input type="hidden" name="username" value="{{.Username}}">
              <button type="submit" class="btn btn-sm btn-info">Manage Profile</button>
            </form>
          </div>
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
</div>`))

var userFormTmpl = template.Must(template.New("userForm").Parse(`
<div class="modal-content">
  <h3 class="modal-title">{{if .Existing}}Edit User{{else}}Add New User{{end}}</h3>
  <form method="post" action="/admin/users/action/save" class="space-y-4">
    <input type="hidden" name="existing" value="{{.Existing}}">
    <div class="form-group">
      <label class="form-label">Username</label>
      <input type="text" name="username" value="{{.Existing}}" class="form-input" required {{if .Existing}}readonly{{end}}>
    </div>
    <div class="form-group">
      <label class="form-label">Password</label>
      <input type="password" name="password" class="form-input" required>
    </div>
    <div class="form-group">
      <label class="form-label">Role</label>
      <select name="role" class="form-select" required>
        <option value="user" {{if eq .Role "user"}}selected{{end}}>User</option>
        <option value="admin" {{if eq .Role "admin"}}selected{{end}}>Admin</option>
      </select>
    </div>
    <div class="modal-footer">
      <button type="submit" formaction="/admin/users/action/cancel" formnovalidate class="btn btn-secondary">Cancel</button>
      <button type="submit" class="btn btn-primary">Save</button>
    </div>
  </form>
</div>`))

var passwordFormTmpl = template.Must(template.New("passwordForm").Parse(`
<div class="modal-content">
  <h3 class="modal-title">Change Password for {{.}}</h3>
  <form method="post" action="/admin/users/action/change-password" class="space-y-4">
    <input type="hidden" name="username" value="{{.}}">
    <div class="form-group">
      <label class="form-label">New Password</label>
      <input type="password" name="password" class="form-input" required minlength="6">
      <small class="text-muted">Password must be at least 6 characters</small>
    </div>
    <div class="form-group">
      <label class="form-label">Confirm Password</label>
      <input type="password" name="confirm" class="form-input" required>
    </div>
    <div class="modal-footer">
      <button type="submit" formaction="/admin/users/action/cancel" formnovalidate class="btn btn-secondary">Cancel</button>
      <button type="submit" class="btn btn-primary">Change Password</button>
    </div>
  </form>
</div>`))

var profileFormTmpl = template.Must(template.New("profileForm").Parse(`
<div class="modal-content">
  <h3 class="modal-title">Manage Profile for {{.Username}}</h3>
  <form method="post" action="/admin/users/action/save-profile" class="space-y-4">
    <input type="hidden" name="username" value="{{.Username}}">
    <div class="form-group">
      <label class="form-label">Full Name</label>
      <input type="text" name="fullName" value="{{.FullName}}" class="form-input" placeholder="Enter full name">
    </div>
    <div class="form-group">
      <label class="form-label">Department</label>
      <input type="text" name="department" value="{{.Department}}" class="form-input" placeholder="Enter department">
    </div>
    <div class="form-group">
      <label class="form-label">Employee ID</label>
      <input type="text" name="employeeId" value="{{.EmployeeID}}" class="form-input" placeholder="Enter employee ID">
    </div>
    <div class="form-group">
      <label class="form-label">Email</label>
      <input type="email" name="email" value="{{.Email}}" class="form-input" placeholder="Enter email address">
    </div>
    <div class="form-group">
      <label class="form-label">Phone Number</label>
      <input type="tel" name="phone" value="{{.Phone}}" class="form-input" placeholder="Enter phone number">
    </div>
    <div class="modal-footer">
      <button type="submit" formaction="/admin/users/action/cancel" formnovalidate class="btn btn-secondary">Cancel</button>
      <button type="submit" class="btn btn-primary">Save Profile</button>
    </div>
  </form>
</div>`))

// Render fetches all users and replaces the container with the table view.
func (m *Users) Render(ctx context.Context) {
	var resp visionhub.UsersResponse
	if err := m.app.API().Get(ctx, "/users", &resp); err != nil || !resp.Success {
		if err != nil {
			log.Error().Err(err).Msg("Error rendering user management")
		}
		m.app.Container().SetError("Error loading users")
		return
	}
	render(m.app.Container(), usersTableTmpl, resp.Users)
}

// HandleAction routes the user management actions.
func (m *Users) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "show-form":
		m.showUserForm("", "user")
	case "save":
		m.saveUser(ctx, form)
	case "change-role":
		m.changeRole(ctx, form.Get("username"), form.Get("role"))
	case "show-password-form":
		renderModal(m.app, passwordFormTmpl, form.Get("username"))
	case "change-password":
		m.changePassword(ctx, form)
	case "show-profile-form":
		m.showProfileForm(ctx, form.Get("username"))
	case "save-profile":
		m.saveProfile(ctx, form)
	case "cancel":
		m.app.HideModal()
		m.Render(ctx)
	default:
		m.Render(ctx)
	}
}

func (m *Users) showUserForm(existing, role string) {
	renderModal(m.app, userFormTmpl, struct {
		Existing string
		Role     string
	}{existing, role})
}

// saveUser chooses create vs update based on whether the form carried an
// existing username.
func (m *Users) saveUser(ctx context.Context, form url.Values) {
	existing := form.Get("existing")
	payload := map[string]string{
		"password": form.Get("password"),
		"role":     form.Get("role"),
	}

	var err error
	if existing != "" {
		err = m.app.API().Put(ctx, "/users/"+url.PathEscape(existing), payload, nil)
	} else {
		payload["username"] = form.Get("username")
		err = m.app.API().Post(ctx, "/users", payload, nil)
	}
	if err != nil {
		logActionErr("save-user", err)
		m.app.ShowToast("Error saving user", "error")
		return
	}
	if existing != "" {
		m.app.ShowToast("User updated successfully", "success")
	} else {
		m.app.ShowToast("User created successfully", "success")
	}
	m.app.HideModal()
	m.Render(ctx)
}

// changeRole toggles between admin and user behind a confirmation.
func (m *Users) changeRole(ctx context.Context, username, currentRole string) {
	newRole := "admin"
	if currentRole == "admin" {
		newRole = "user"
	}
	m.app.ShowConfirmationModal(
		"Are you sure you want to change the role of "+username+" to "+newRole+"?",
		func(ctx context.Context) {
			err := m.app.API().Patch(ctx, "/users/"+url.PathEscape(username)+"/role", map[string]string{"role": newRole}, nil)
			if err != nil {
				logActionErr("change-role", err)
				m.app.ShowToast("Error changing user role", "error")
				return
			}
			m.app.ShowToast("Changed role of "+username+" to "+newRole, "success")
			m.Render(ctx)
		},
	)
}

func (m *Users) changePassword(ctx context.Context, form url.Values) {
	username := form.Get("username")
	if form.Get("password") != form.Get("confirm") {
		m.app.ShowToast("Passwords do not match", "error")
		return
	}
	err := m.app.API().Patch(ctx, "/users/"+url.PathEscape(username),
		map[string]string{"password": form.Get("password")}, nil)
	if err != nil {
		logActionErr("change-password", err)
		m.app.ShowToast("Error changing password", "error")
		return
	}
	m.app.ShowToast("Password changed successfully for "+username, "success")
	m.app.HideModal()
	m.Render(ctx)
}

func (m *Users) showProfileForm(ctx context.Context, username string) {
	var resp visionhub.UserResponse
	if err := m.app.API().Get(ctx, "/users/"+url.PathEscape(username), &resp); err != nil {
		logActionErr("show-profile-form", err)
		m.app.ShowToast("Error loading user profile", "error")
		return
	}
	user := resp.User
	user.Username = username
	renderModal(m.app, profileFormTmpl, user)
}

func (m *Users) saveProfile(ctx context.Context, form url.Values) {
	username := form.Get("username")
	payload := map[string]string{
		"fullName":   form.Get("fullName"),
		"department": form.Get("department"),
		"employeeId": form.Get("employeeId"),
		"email":      form.Get("email"),
		"phone":      form.Get("phone"),
	}
	if err := m.app.API().Patch(ctx, "/users/"+url.PathEscape(username), payload, nil); err != nil {
		logActionErr("save-profile", err)
		m.app.ShowToast("Error updating profile", "error")
		return
	}
	m.app.ShowToast("Profile updated successfully for "+username, "success")
	m.app.HideModal()
	m.Render(ctx)
}
