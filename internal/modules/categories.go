package modules

import (
	"context"
	"html/template"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// Categories manages video categories. The per-category video count comes
// from the shared video snapshot, matching the list view's source data.
type Categories struct {
	app console.App
}

// NewCategories constructs the category management module.
func NewCategories(app console.App) *Categories {
	return &Categories{app: app}
}

type categoryRow struct {
	visionhub.Category
	VideoCount int
}

var categoriesTableTmpl = template.Must(template.New("categories").Funcs(tmplFuncs).Parse(`
<div class="flex justify-end mb-4">
  <form method="post" action="/admin/categories/action/show-form">
    <button type="submit" class="btn btn-primary">Add New Category</button>
  </form>
</div>
<div class="table-container">
  <table class="table">
    <thead>
      <tr><th>Category Name</th><th>Videos</th><th>Created</th><th class="text-right">Actions</th></tr>
    </thead>
    <tbody>
      {{range .}}
      <tr>
        <td class="font-medium">{{.Name}}</td>
        <td>{{.VideoCount}}</td>
        <td>{{date .CreatedAt}}</td>
        <td class="text-right">
          <div class="action-buttons">
            <form method="post" action="/admin/categories/action/show-form" class="inline">
              <input type="hidden" name="id" value="{{.ID}}">
              <button type="submit" class="btn btn-sm btn-secondary">Edit</button>
            </form>
            <form method="post" action="/admin/categories/action/delete" class="inline">
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

var categoryFormTmpl = template.Must(template.New("categoryForm").Parse(`
<div class="modal-content">
  <h3 class="modal-title">{{if .ID}}Edit Category{{else}}Add New Category{{end}}</h3>
  <form method="post" action="/admin/categories/action/save" class="space-y-4">
    <input type="hidden" name="id" value="{{if .ID}}{{.ID}}{{end}}">
    <div class="form-group">
      <label class="form-label">Category Name</label>
      <input type="text" name="name" value="{{.Name}}" class="form-input" required>
    </div>
    <div class="modal-footer">
      <button type="submit" formaction="/admin/categories/action/cancel" formnovalidate class="btn btn-secondary">Cancel</button>
      <button type="submit" class="btn btn-primary">Save</button>
    </div>
  </form>
</div>`))

// Render fetches categories and joins video counts from the snapshot.
func (m *Categories) Render(ctx context.Context) {
	var resp visionhub.CategoriesResponse
	if err := m.app.API().Get(ctx, "/categories", &resp); err != nil || !resp.Success {
		if err != nil {
			log.Error().Err(err).Msg("Error rendering category management")
		}
		m.app.Container().SetError("Error loading categories")
		return
	}

	videos := m.app.Videos(ctx)
	rows := make([]categoryRow, 0, len(resp.Categories))
	for _, cat := range resp.Categories {
		count := 0
		for _, v := range videos {
			if v.CategoryID != nil && *v.CategoryID == cat.ID {
				count++
			}
		}
		rows = append(rows, categoryRow{Category: cat, VideoCount: count})
	}
	render(m.app.Container(), categoriesTableTmpl, rows)
}

// HandleAction routes category actions.
func (m *Categories) HandleAction(ctx context.Context, action string, form url.Values) {
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

func (m *Categories) showForm(ctx context.Context, id string) {
	category := visionhub.Category{}
	if id != "" {
		var resp visionhub.CategoryResponse
		if err := m.app.API().Get(ctx, "/categories/"+url.PathEscape(id), &resp); err != nil || !resp.Success {
			logActionErr("show-category-form", err)
			m.app.ShowToast("Error loading category", "error")
			return
		}
		category = resp.Category
	}
	renderModal(m.app, categoryFormTmpl, category)
}

func (m *Categories) save(ctx context.Context, form url.Values) {
	id := form.Get("id")
	payload := map[string]string{"name": form.Get("name")}

	var err error
	if id != "" {
		err = m.app.API().Put(ctx, "/categories/"+url.PathEscape(id), payload, nil)
	} else {
		err = m.app.API().Post(ctx, "/categories", payload, nil)
	}
	if err != nil {
		logActionErr("save-category", err)
		m.app.ShowToast("Error saving category", "error")
		return
	}
	if id != "" {
		m.app.ShowToast("Category updated successfully", "success")
	} else {
		m.app.ShowToast("Category created successfully", "success")
	}
	m.app.HideModal()
	if err := m.app.ReloadVideos(ctx); err != nil {
		log.Error().Err(err).Msg("Error reloading videos")
	}
	m.Render(ctx)
}

func (m *Categories) delete(ctx context.Context, id string) {
	m.app.ShowConfirmationModal(
		"Are you sure you want to delete this category?",
		func(ctx context.Context) {
			if err := m.app.API().Delete(ctx, "/categories/"+url.PathEscape(id), nil); err != nil {
				logActionErr("delete-category", err)
				m.app.ShowToast("Error deleting category", "error")
				return
			}
			m.app.ShowToast("Category deleted successfully", "success")
			if err := m.app.ReloadVideos(ctx); err != nil {
				log.Error().Err(err).Msg("Error reloading videos")
			}
			m.Render(ctx)
		},
	)
}
