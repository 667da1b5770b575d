package modules

import (
	"context"
	"html/template"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// Videos manages catalog entries. The table renders from the shared video
// snapshot; mutations invalidate it so every view sees fresh data.
type Videos struct {
	app console.App
}

// NewVideos constructs the video management module.
func NewVideos(app console.App) *Videos {
	return &Videos{app: app}
}

var videosTableTmpl = template.Must(template.New("videos").Funcs(tmplFuncs).Parse(`
<div class="flex justify-end mb-4">
  <form method="post" action="/admin/videos/action/show-form">
    <button type="submit" class="btn btn-primary">Add New Video</button>
  </form>
</div>
<div class="table-container">
  <table class="table">
    <thead>
      <tr><th>Video</th><th>Category</th><th>Views</th><th>Status</th><th class="text-right">Actions</th></tr>
    </thead>
    <tbody>
      {{range .}}
      <tr>
        <td>
          <div class="flex items-center space-x-3">
            <img class="video-thumbnail" src="{{.ThumbnailURL}}" alt="{{.Title}}">
            <span class="font-medium">{{.Title}}</span>
          </div>
        </td>
        <td>{{.CategoryName}}</td>
        <td>{{.Views}}</td>
        <td><span class="badge {{if .IsFeatured}}badge-featured{{else}}badge-regular{{end}}">{{if .IsFeatured}}Featured{{else}}Regular{{end}}</span></td>
        <td class="text-right">
          <div class="action-buttons">
            <form method="post" action="/admin/videos/action/show-form" class="inline">
              <input type="hidden" name="id" value="{{.ID}}">
              <button type="submit" class="btn btn-sm btn-secondary">Edit</button>
            </form>
            <form method="post" action="/admin/videos/action/delete" class="inline">
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

var videoFormTmpl = template.Must(template.New("videoForm").Funcs(tmplFuncs).Parse(`
<div class="modal-content" style="max-width: 40rem;">
  <h3 class="modal-title">{{if .Video.ID}}Edit Video{{else}}Add New Video{{end}}</h3>
  <form method="post" action="/admin/videos/action/save" class="space-y-4">
    <input type="hidden" name="id" value="{{if .Video.ID}}{{.Video.ID}}{{end}}">
    <div class="form-group">
      <label class="form-label">Video Title</label>
      <input type="text" name="title" value="{{.Video.Title}}" class="form-input" required>
    </div>
    <div class="form-group">
      <label class="form-label">Description</label>
      <textarea name="description" class="form-textarea" rows="3">{{.Video.Description}}</textarea>
    </div>
    <div class="form-group">
      <label class="form-label">Video URL</label>
      <input type="url" name="videoUrl" value="{{.Video.VideoURL}}" class="form-input" required>
      <small class="text-muted">Supports YouTube, Google Drive, OneDrive, SharePoint, or direct video URLs</small>
    </div>
    <div class="form-group">
      <label class="form-label">Thumbnail URL</label>
      <input type="url" name="thumbnailUrl" value="{{.Video.ThumbnailURL}}" class="form-input">
    </div>
    <div class="form-group">
      <label class="form-label">Category</label>
      <select name="categoryId" class="form-select" required>
        {{$selected := .Video.CategoryID}}
        {{range .Categories}}
        <option value="{{.ID}}" {{if and $selected (eq .ID (deref $selected))}}selected{{end}}>{{.Name}}</option>
        {{end}}
      </select>
    </div>
    <div class="form-group">
      <label class="flex items-center">
        <input type="checkbox" name="isFeatured" value="true" {{if .Video.IsFeatured}}checked{{end}} class="form-checkbox">
        <span class="ml-2">Featured video</span>
      </label>
    </div>
    <div class="modal-footer">
      <button type="submit" formaction="/admin/videos/action/cancel" formnovalidate class="btn btn-secondary">Cancel</button>
      <button type="submit" class="btn btn-primary">Save</button>
    </div>
  </form>
</div>`))

// Render shows the video table from the shared snapshot.
func (m *Videos) Render(ctx context.Context) {
	render(m.app.Container(), videosTableTmpl, m.app.Videos(ctx))
}

// HandleAction routes video actions.
func (m *Videos) HandleAction(ctx context.Context, action string, form url.Values) {
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

func (m *Videos) showForm(ctx context.Context, id string) {
	var resp visionhub.CategoriesResponse
	if err := m.app.API().Get(ctx, "/categories", &resp); err != nil || !resp.Success {
		logActionErr("show-video-form", err)
		m.app.ShowToast("Error loading categories", "error")
		return
	}
	if len(resp.Categories) == 0 {
		m.app.ShowToast("No categories found. Please create a category first.", "warning")
		return
	}

	video := visionhub.Video{}
	if id != "" {
		wanted, _ := strconv.Atoi(id)
		for _, v := range m.app.Videos(ctx) {
			if v.ID == wanted {
				video = v
				break
			}
		}
	}
	renderModal(m.app, videoFormTmpl, struct {
		Video      visionhub.Video
		Categories []visionhub.Category
	}{video, resp.Categories})
}

func (m *Videos) save(ctx context.Context, form url.Values) {
	id := form.Get("id")
	categoryID, _ := strconv.Atoi(form.Get("categoryId"))
	payload := map[string]any{
		"title":        form.Get("title"),
		"description":  form.Get("description"),
		"videoUrl":     form.Get("videoUrl"),
		"thumbnailUrl": form.Get("thumbnailUrl"),
		"categoryId":   categoryID,
		"isFeatured":   form.Get("isFeatured") == "true",
	}

	var err error
	if id != "" {
		err = m.app.API().Put(ctx, "/videos/"+url.PathEscape(id), payload, nil)
	} else {
		err = m.app.API().Post(ctx, "/videos", payload, nil)
	}
	if err != nil {
		logActionErr("save-video", err)
		m.app.ShowToast("Error saving video", "error")
		return
	}
	if id != "" {
		m.app.ShowToast("Video updated successfully", "success")
	} else {
		m.app.ShowToast("Video created successfully", "success")
	}
	m.app.HideModal()
	if err := m.app.ReloadVideos(ctx); err != nil {
		log.Error().Err(err).Msg("Error reloading videos")
	}
	m.Render(ctx)
}

func (m *Videos) delete(ctx context.Context, id string) {
	m.app.ShowConfirmationModal(
		"Are you sure you want to delete this video?",
		func(ctx context.Context) {
			if err := m.app.API().Delete(ctx, "/videos/"+url.PathEscape(id), nil); err != nil {
				logActionErr("delete-video", err)
				m.app.ShowToast("Error deleting video", "error")
				return
			}
			m.app.ShowToast("Video deleted successfully", "success")
			if err := m.app.ReloadVideos(ctx); err != nil {
				log.Error().Err(err).Msg("Error reloading videos")
			}
			m.Render(ctx)
		},
	)
}
