package modules

import (
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// VideoCompression drives the server-side optimization tools: per-video
// web optimization, thumbnail generation and batch compression. The last
// run's result panel stays on screen until the next run replaces it.
type VideoCompression struct {
	app        console.App
	lastResult *compressionResult
}

// NewVideoCompression constructs the video compression module.
func NewVideoCompression(app console.App) *VideoCompression {
	return &VideoCompression{app: app}
}

type compressionResult struct {
	Title        string
	Success      bool
	Optimization *visionhub.OptimizationResult
	ThumbnailURL string
	Message      string
	Error        string
}

type compressionView struct {
	Status visionhub.CompressionStatus
	Videos []visionhub.Video
	Result *compressionResult
}

var compressionTmpl = template.Must(template.New("videoCompression").Funcs(tmplFuncs).Parse(`
<div class="space-y-6">
  <div class="flex justify-between items-center">
    <h3 class="text-xl font-bold">Video Compression & Optimization</h3>
    <div class="flex gap-2">
      <form method="post" action="/admin/video-compression/action/show-batch" class="inline">
        <button type="submit" class="btn btn-secondary">Batch Compress Videos</button>
      </form>
      <form method="post" action="/admin/video-compression/action/refresh" class="inline">
        <button type="submit" class="btn btn-info">Refresh Status</button>
      </form>
    </div>
  </div>

  <div class="card {{if .Status.Enabled}}border-success{{else}}border-warning{{end}}">
    <div class="flex items-center mb-3">
      <span class="badge {{if .Status.Enabled}}badge-success{{else}}badge-warning{{end}} mr-2">{{if .Status.Enabled}}ENABLED{{else}}DISABLED{{end}}</span>
      <h4 class="text-lg font-semibold">Video Compression Service</h4>
    </div>
    <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-4 gap-4">
      <div class="feature-status">
        <label class="text-sm font-medium">Supported Formats</label>
        <p>{{if .Status.SupportedFormats}}{{join .Status.SupportedFormats ", "}}{{else}}N/A{{end}}</p>
      </div>
      <div class="feature-status">
        <label class="text-sm font-medium">Uploads Path</label>
        <p>{{if .Status.UploadsPath}}{{.Status.UploadsPath}}{{else}}N/A{{end}}</p>
      </div>
      <div class="feature-status">
        <label class="text-sm font-medium">Max File Size</label>
        <p>{{if .Status.MaxFileSize}}{{.Status.MaxFileSize}}{{else}}N/A{{end}}</p>
      </div>
      <div class="feature-status">
        <label class="text-sm font-medium">Service Status</label>
        <p class="flex items-center">
          <span class="w-2 h-2 rounded-full mr-2 {{if .Status.Enabled}}bg-green-500{{else}}bg-red-500{{end}}"></span>
          {{if .Status.Enabled}}Active{{else}}Inactive{{end}}
        </p>
      </div>
    </div>
  </div>

  <div class="grid grid-cols-1 md:grid-cols-2 gap-6">
    {{$videos := .Videos}}
    {{$enabled := .Status.Enabled}}
    <div class="card">
      <h4 class="text-lg font-semibold mb-3">Optimize Video for Web</h4>
      <form method="post" action="/admin/video-compression/action/optimize" class="space-y-3">
        <div class="form-group">
          <label class="form-label">Select Video</label>
          <select name="videoId" class="form-select" required>
            <option value="">Choose a video...</option>
            {{range $videos}}<option value="{{.ID}}">{{.Title}}</option>{{end}}
          </select>
        </div>
        <button type="submit" class="btn btn-primary w-full" {{if not $enabled}}disabled{{end}}>Optimize Video</button>
      </form>
    </div>
    <div class="card">
      <h4 class="text-lg font-semibold mb-3">Generate Thumbnail</h4>
      <form method="post" action="/admin/video-compression/action/thumbnail" class="space-y-3">
        <div class="form-group">
          <label class="form-label">Select Video</label>
          <select name="videoId" class="form-select" required>
            <option value="">Choose a video...</option>
            {{range $videos}}<option value="{{.ID}}">{{.Title}}</option>{{end}}
          </select>
        </div>
        <div class="form-group">
          <label class="form-label">Timestamp (HH:MM:SS)</label>
          <input type="text" name="timestamp" class="form-input" value="00:00:01" placeholder="00:00:01">
        </div>
        <button type="submit" class="btn btn-primary w-full" {{if not $enabled}}disabled{{end}}>Generate Thumbnail</button>
      </form>
    </div>
  </div>

  {{with .Result}}
  <div class="card">
    <h4 class="text-lg font-semibold mb-3">Compression Results</h4>
    <h5 class="font-semibold mb-2">{{.Title}} Results</h5>
    {{if .Success}}
    <div class="bg-green-100 border border-green-400 text-green-700 px-4 py-3 rounded mb-3">
      <p class="font-bold">Success!</p>
      {{with .Optimization}}
      <p>Original Size: <span class="font-semibold">{{mb .OriginalSize}} MB</span></p>
      <p>Optimized Size: <span class="font-semibold">{{mb .OptimizedSize}} MB</span></p>
      <p>Space Saved: <span class="font-semibold">{{mb .Savings}} MB ({{printf "%.0f" .CompressionRatio}}%)</span></p>
      {{if .OptimizedURL}}<p>Optimized URL: <span class="font-mono text-sm">{{.OptimizedURL}}</span></p>{{end}}
      {{end}}
      {{if .ThumbnailURL}}<p>Thumbnail generated at: <span class="font-mono text-sm">{{.ThumbnailURL}}</span></p>{{end}}
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

var compressionBatchTmpl = template.Must(template.New("compressionBatch").Parse(`
<div class="modal-content">
  <div class="modal-header">
    <h3 class="modal-title">Batch Compress Videos</h3>
  </div>
  <div class="modal-body">
    <form method="post" action="/admin/video-compression/action/batch">
      <p class="mb-4">Select videos to compress in batch:</p>
      <div class="max-h-60 overflow-y-auto">
        {{range .}}
        <div class="flex items-center mb-2">
          <input type="checkbox" name="videoIds" value="{{.ID}}" id="video-{{.ID}}" class="mr-2">
          <label for="video-{{.ID}}">{{.Title}}</label>
        </div>
        {{end}}
      </div>
      <div class="mt-4 flex justify-end gap-2">
        <button type="submit" formaction="/admin/video-compression/action/cancel" class="btn btn-secondary">Cancel</button>
        <button type="submit" class="btn btn-primary">Compress Selected</button>
      </div>
    </form>
  </div>
</div>`))

// Render fetches the compression service status and lays out the tool
// cards. A failed envelope degrades to a disabled service card.
func (m *VideoCompression) Render(ctx context.Context) {
	var resp visionhub.CompressionStatusResponse
	if err := m.app.API().Get(ctx, "/video-compression/status", &resp); err != nil {
		logActionErr("render-video-compression", err)
		m.app.Container().SetError("Error loading video compression features")
		return
	}

	var status visionhub.CompressionStatus
	if resp.Success {
		status = resp.Compression
	}
	render(m.app.Container(), compressionTmpl, compressionView{
		Status: status,
		Videos: m.app.Videos(ctx),
		Result: m.lastResult,
	})
}

// HandleAction routes compression actions.
func (m *VideoCompression) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "optimize":
		m.optimize(ctx, form.Get("videoId"))
	case "thumbnail":
		m.thumbnail(ctx, form.Get("videoId"), form.Get("timestamp"))
	case "show-batch":
		renderModal(m.app, compressionBatchTmpl, m.app.Videos(ctx))
	case "batch":
		m.batch(ctx, form["videoIds"])
	case "refresh":
		m.app.ShowLoading(true, "Refreshing status...")
		m.Render(ctx)
		m.app.ShowToast("Status refreshed", "success")
	case "cancel":
		m.app.HideModal()
		m.Render(ctx)
	default:
		m.Render(ctx)
	}
}

func (m *VideoCompression) optimize(ctx context.Context, videoID string) {
	if videoID == "" {
		m.Render(ctx)
		return
	}
	m.app.ShowLoading(true, "Optimizing video...")

	var resp visionhub.OptimizeResponse
	if err := m.app.API().Post(ctx, "/video-compression/optimize/"+videoID, nil, &resp); err != nil {
		logActionErr("optimize-video", err)
		m.app.ShowToast("Error optimizing video", "error")
		m.Render(ctx)
		return
	}

	m.lastResult = &compressionResult{
		Title:   "Video Optimization",
		Success: resp.Success,
		Message: resp.Message,
		Error:   resp.Error,
	}
	if resp.Success {
		m.lastResult.Optimization = &resp.Optimization
		if err := m.app.ReloadVideos(ctx); err != nil {
			log.Error().Err(err).Msg("Error reloading videos")
		}
		m.app.ShowToast("Video optimized successfully!", "success")
	}
	m.Render(ctx)
}

func (m *VideoCompression) thumbnail(ctx context.Context, videoID, timestamp string) {
	if videoID == "" {
		m.Render(ctx)
		return
	}
	m.app.ShowLoading(true, "Generating thumbnail...")

	var resp visionhub.ThumbnailResponse
	body := map[string]any{"timestamp": timestamp}
	if err := m.app.API().Post(ctx, "/video-compression/thumbnail/"+videoID, body, &resp); err != nil {
		logActionErr("generate-thumbnail", err)
		m.app.ShowToast("Error generating thumbnail", "error")
		m.Render(ctx)
		return
	}

	m.lastResult = &compressionResult{
		Title:        "Thumbnail Generation",
		Success:      resp.Success,
		ThumbnailURL: resp.Thumbnail.ThumbnailURL,
		Error:        resp.Error,
	}
	if resp.Success {
		if err := m.app.ReloadVideos(ctx); err != nil {
			log.Error().Err(err).Msg("Error reloading videos")
		}
		m.app.ShowToast("Thumbnail generated successfully!", "success")
	}
	m.Render(ctx)
}

func (m *VideoCompression) batch(ctx context.Context, videoIDs []string) {
	if len(videoIDs) == 0 {
		m.app.ShowToast("Please select at least one video", "warning")
		m.Render(ctx)
		return
	}
	m.app.ShowLoading(true, fmt.Sprintf("Compressing %d videos...", len(videoIDs)))

	var resp visionhub.BatchOptimizeResponse
	if err := m.app.API().Post(ctx, "/video-compression/batch-optimize", map[string]any{"videoIds": videoIDs}, &resp); err != nil {
		logActionErr("batch-compress", err)
		m.app.ShowToast("Error during batch compression", "error")
		m.Render(ctx)
		return
	}
	if resp.Success {
		m.app.HideModal()
		if err := m.app.ReloadVideos(ctx); err != nil {
			log.Error().Err(err).Msg("Error reloading videos")
		}
		m.lastResult = &compressionResult{Title: "Batch Compression", Success: true}
		m.app.ShowToast(fmt.Sprintf("%d videos compressed successfully!", resp.BatchOptimization.SuccessCount), "success")
	}
	m.Render(ctx)
}
