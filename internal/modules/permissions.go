package modules

import (
	"context"
	"html/template"
	"net/url"
	"sort"
	"sync"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// Permissions renders the read-only permission matrix grouped by category.
// The per-user and per-group assignment flows are stubs pending backend
// support, same as the management modals they open.
type Permissions struct {
	app console.App
}

// NewPermissions constructs the permissions module.
func NewPermissions(app console.App) *Permissions {
	return &Permissions{app: app}
}

type permissionCategory struct {
	Name        string
	Permissions []visionhub.Permission
}

var permissionsTmpl = template.Must(template.New("permissions").Parse(`
<div class="space-y-6">
  <div class="flex justify-between items-center">
    <h3 class="text-xl font-bold">Permission Matrix</h3>
    <div class="flex gap-2">
      <form method="post" action="/admin/permissions/action/manage-users" class="inline">
        <button type="submit" class="btn btn-secondary">Manage User Permissions</button>
      </form>
      <form method="post" action="/admin/permissions/action/manage-groups" class="inline">
        <button type="submit" class="btn btn-secondary">Manage Group Permissions</button>
      </form>
    </div>
  </div>
  {{range .}}
  <div class="card">
    <h4 class="text-lg font-semibold mb-3 capitalize">{{.Name}} Permissions</h4>
    <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-3">
      {{range .Permissions}}
      <div class="permission-item p-3 border rounded-lg">
        <div class="font-medium">{{.Name}}</div>
        <div class="text-sm text-muted">{{.Description}}</div>
      </div>
      {{end}}
    </div>
  </div>
  {{end}}
</div>`))

var permissionsStubTmpl = template.Must(template.New("permissionsStub").Parse(`
<div class="modal-content">
  <h3 class="modal-title">{{.Title}}</h3>
  <div class="space-y-4">
    <p>{{.Body}}</p>
  </div>
  <div class="modal-footer">
    <form method="post" action="/admin/permissions/action/cancel" class="inline">
      <button type="submit" class="btn btn-secondary">Close</button>
    </form>
  </div>
</div>`))

// Render fetches the matrix alongside the groups and users the assignment
// modals will need, then lays out one card per category in stable order.
func (m *Permissions) Render(ctx context.Context) {
	var (
		resp       visionhub.PermissionsResponse
		groupsResp visionhub.GroupsResponse
		usersResp  visionhub.UsersResponse

		permsErr, groupsErr, usersErr error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		permsErr = m.app.API().Get(ctx, "/permissions", &resp)
	}()
	go func() {
		defer wg.Done()
		groupsErr = m.app.API().Get(ctx, "/groups", &groupsResp)
	}()
	go func() {
		defer wg.Done()
		usersErr = m.app.API().Get(ctx, "/users", &usersResp)
	}()
	wg.Wait()

	for _, err := range []error{permsErr, groupsErr, usersErr} {
		if err != nil {
			logActionErr("render-permissions", err)
			m.app.Container().SetError("Error loading permissions")
			return
		}
	}
	if !resp.Success {
		logActionErr("render-permissions", nil)
		m.app.Container().SetError("Error loading permissions")
		return
	}

	categories := make([]permissionCategory, 0, len(resp.Permissions))
	for name, perms := range resp.Permissions {
		categories = append(categories, permissionCategory{Name: name, Permissions: perms})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })

	render(m.app.Container(), permissionsTmpl, categories)
}

// HandleAction routes permission actions.
func (m *Permissions) HandleAction(ctx context.Context, action string, _ url.Values) {
	switch action {
	case "manage-users":
		renderModal(m.app, permissionsStubTmpl, map[string]string{
			"Title": "Manage User Permissions",
			"Body":  "User permissions functionality would be implemented here",
		})
	case "manage-groups":
		renderModal(m.app, permissionsStubTmpl, map[string]string{
			"Title": "Manage Group Permissions",
			"Body":  "Group permissions functionality would be implemented here",
		})
	case "cancel":
		m.app.HideModal()
		m.Render(ctx)
	default:
		m.Render(ctx)
	}
}
