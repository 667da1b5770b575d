package modules

import (
	"context"
	"html/template"
	"net/url"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// Groups manages teams of users.
type Groups struct {
	app console.App
}

// NewGroups constructs the groups and teams module.
func NewGroups(app console.App) *Groups {
	return &Groups{app: app}
}

var groupsTableTmpl = template.Must(template.New("groups").Funcs(tmplFuncs).Parse(`
<div class="flex justify-between items-center mb-4">
  <h3 class="text-xl font-bold">Groups &amp; Teams Management</h3>
  <form method="post" action="/admin/groups/action/show-form" class="inline">
    <button type="submit" class="btn btn-primary">Create New Group</button>
  </form>
</div>
<div class="table-container">
  <table class="table">
    <thead>
      <tr><th>Group Name</th><th>Description</th><th>Members</th><th>Created</th><th class="text-right">Actions</th></tr>
    </thead>
    <tbody>
      {{range .}}
      <tr>
        <td>
          <div class="flex items-center">
            <div class="w-4 h-4 rounded-full mr-2" style="background-color: {{.Color}}"></div>
            <span class="font-medium">{{.Name}}</span>
          </div>
        </td>
        <td class="text-sm text-muted">{{if .Description}}{{.Description}}{{else}}No description{{end}}</td>
        <td><span class="badge badge-user">{{.MemberCount}} members</span></td>
        <td>{{date .CreatedAt}}</td>
        <td class="text-right">
          <div class="action-buttons">
            <form method="post" action="/admin/groups/action/show-members" class="inline">
              <input type="hidden" name="id" value="{{.ID}}">
              <button type="submit" class="btn btn-sm btn-info">Members</button>
            </form>
            <form method="post" action="/admin/groups/action/show-form" class="inline">
              <input type="hidden" name="id" value="{{.ID}}">
              <button type="submit" class="btn btn-sm btn-secondary">Edit</button>
            </form>
            <form method="post" action="/admin/groups/action/delete" class="inline">
              <input type="hidden" name="id" value="{{.ID}}">
              <button type="submit" class="btn btn-sm btn-danger">Delete</button>
            </form>
          </div>
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
</div>`))

var groupFormTmpl = template.Must(template.New("groupForm").Parse(`
<div class="modal-content">
  <h3 class="modal-title">{{if .ID}}Edit Group{{else}}Create New Group{{end}}</h3>
  <form method="post" action="/admin/groups/action/save" class="space-y-4">
    <input type="hidden" name="id" value="{{if .ID}}{{.ID}}{{end}}">
    <div class="form-group">
      <label class="form-label">Group Name</label>
      <input type="text" name="name" value="{{.Name}}" class="form-input" required>
    </div>
    <div class="form-group">
      <label class="form-label">Description</label>
      <textarea name="description" class="form-textarea" rows="3">{{.Description}}</textarea>
    </div>
    <div class="form-group">
      <label class="form-label">Group Color</label>
      <input type="color" name="color" value="{{if .Color}}{{.Color}}{{else}}#2a9d8f{{end}}" class="form-input">
    </div>
    <div class="modal-footer">
      <button type="submit" formaction="/admin/groups/action/cancel" formnovalidate class="btn btn-secondary">Cancel</button>
      <button type="submit" class="btn btn-primary">Save Group</button>
    </div>
  </form>
</div>`))

var groupMembersTmpl = template.Must(template.New("groupMembers").Parse(`
<div class="modal-content">
  <h3 class="modal-title">Members of {{.Name}}</h3>
  <div class="space-y-2">
    <p>Group member functionality would be implemented here</p>
  </div>
  <div class="modal-footer">
    <form method="post" action="/admin/groups/action/cancel" class="inline">
      <button type="submit" class="btn btn-secondary">Close</button>
    </form>
  </div>
</div>`))

// Render lists all groups.
func (m *Groups) Render(ctx context.Context) {
	var resp visionhub.GroupsResponse
	if err := m.app.API().Get(ctx, "/groups", &resp); err != nil || !resp.Success {
		logActionErr("render-groups", err)
		m.app.Container().SetError("Error loading groups")
		return
	}
	render(m.app.Container(), groupsTableTmpl, resp.Groups)
}

// HandleAction routes group actions.
func (m *Groups) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "show-form":
		m.showForm(ctx, form.Get("id"))
	case "show-members":
		m.showMembers(ctx, form.Get("id"))
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

func (m *Groups) showForm(ctx context.Context, id string) {
	group := visionhub.Group{}
	if id != "" {
		var resp visionhub.GroupResponse
		if err := m.app.API().Get(ctx, "/groups/"+url.PathEscape(id), &resp); err != nil || !resp.Success {
			logActionErr("show-group-form", err)
			m.app.ShowToast("Error loading group", "error")
			return
		}
		group = resp.Group
	}
	renderModal(m.app, groupFormTmpl, group)
}

func (m *Groups) showMembers(ctx context.Context, id string) {
	var resp visionhub.GroupResponse
	if err := m.app.API().Get(ctx, "/groups/"+url.PathEscape(id), &resp); err != nil || !resp.Success {
		logActionErr("show-group-members", err)
		m.app.ShowToast("Error loading group members", "error")
		return
	}
	renderModal(m.app, groupMembersTmpl, resp.Group)
}

func (m *Groups) save(ctx context.Context, form url.Values) {
	id := form.Get("id")
	payload := map[string]any{
		"name":        form.Get("name"),
		"description": form.Get("description"),
		"color":       form.Get("color"),
	}

	var err error
	if id != "" {
		err = m.app.API().Put(ctx, "/groups/"+url.PathEscape(id), payload, nil)
	} else {
		err = m.app.API().Post(ctx, "/groups", payload, nil)
	}
	if err != nil {
		logActionErr("save-group", err)
		m.app.ShowToast("Error saving group", "error")
		return
	}
	if id != "" {
		m.app.ShowToast("Group updated successfully", "success")
	} else {
		m.app.ShowToast("Group created successfully", "success")
	}
	m.app.HideModal()
	m.Render(ctx)
}

func (m *Groups) delete(ctx context.Context, id string) {
	m.app.ShowConfirmationModal(
		"Are you sure you want to delete this group? All group memberships will be removed.",
		func(ctx context.Context) {
			if err := m.app.API().Delete(ctx, "/groups/"+url.PathEscape(id), nil); err != nil {
				logActionErr("delete-group", err)
				m.app.ShowToast("Error deleting group", "error")
				return
			}
			m.app.ShowToast("Group deleted successfully", "success")
			m.Render(ctx)
		},
	)
}
