package handler

import (
	"html/template"

	"github.com/visionhub/console/internal/console"
)

// navTags fixes the sidebar order; map iteration order would shuffle it
// between renders.
var navTags = []string{
	"users",
	"videos",
	"categories",
	"groups",
	"permissions",
	"reports",
	"report-reasons",
	"password-policy",
	"ai-features",
	"ai-settings",
	"video-compression",
	"system-health",
	"backup-system",
	"settings",
}

type navItem struct {
	Tag    string
	Name   string
	Active bool
}

// pageData feeds the console shell template for one render.
type pageData struct {
	Title        string
	Operator     string
	Nav          []navItem
	ActiveTag    string
	Content      template.HTML
	Toasts       []console.Toast
	Modal        template.HTML
	ModalOpen    bool
	ConfirmText  string
	ConfirmToken string
	HasConfirm   bool
}

func buildNav(active string) []navItem {
	items := make([]navItem, 0, len(navTags))
	for _, tag := range navTags {
		items = append(items, navItem{
			Tag:    tag,
			Name:   console.DisplayName(tag),
			Active: tag == active,
		})
	}
	return items
}

var shellTmpl = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} - VisionHub Admin</title>
  <link rel="stylesheet" href="/static/admin.css">
</head>
<body>
  <div class="admin-layout">
    <nav class="admin-nav">
      <div class="nav-brand">VisionHub Admin</div>
      <ul>
        {{range .Nav}}
        <li><a href="/admin/{{.Tag}}" class="nav-link{{if .Active}} active{{end}}">{{.Name}}</a></li>
        {{end}}
      </ul>
      <form method="post" action="/logout" class="nav-logout">
        {{if .Operator}}<div class="nav-operator">{{.Operator}}</div>{{end}}
        <button type="submit" class="btn btn-sm btn-secondary">Log out</button>
      </form>
    </nav>
    <main class="admin-main">
      {{if .Toasts}}
      <div class="toast-stack">
        {{range .Toasts}}<div class="toast toast-{{.Kind}}">{{.Message}}</div>{{end}}
      </div>
      {{end}}
      <div id="admin-content">{{.Content}}</div>
    </main>
  </div>

  {{if .ModalOpen}}
  <div class="modal-overlay">{{.Modal}}</div>
  {{end}}

  {{if .HasConfirm}}
  <div class="modal-overlay">
    <div class="modal-content">
      <h3 class="modal-title">Confirm</h3>
      <p>{{.ConfirmText}}</p>
      <form method="post" action="/admin/{{.ActiveTag}}/confirm" class="modal-footer">
        <input type="hidden" name="token" value="{{.ConfirmToken}}">
        <button type="submit" name="confirmed" value="false" class="btn btn-secondary">Cancel</button>
        <button type="submit" name="confirmed" value="true" class="btn btn-danger">Confirm</button>
      </form>
    </div>
  </div>
  {{end}}
</body>
</html>`))

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Sign in - VisionHub Admin</title>
  <link rel="stylesheet" href="/static/admin.css">
</head>
<body>
  <div class="login-layout">
    <form method="post" action="/login" class="login-card space-y-4">
      <h1 class="text-xl font-bold">VisionHub Admin</h1>
      {{if .Error}}<div class="text-error">{{.Error}}</div>{{end}}
      <div class="form-group">
        <label class="form-label">Username</label>
        <input type="text" name="username" class="form-input" required autofocus>
      </div>
      <div class="form-group">
        <label class="form-label">Password</label>
        <input type="password" name="password" class="form-input" required>
      </div>
      <button type="submit" class="btn btn-primary w-full">Sign in</button>
    </form>
  </div>
</body>
</html>`))
