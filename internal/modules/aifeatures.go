package modules

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// AIFeatures drives the Gemini-backed catalog tools: auto-categorization,
// tag generation, content analysis, summaries and batch processing. The
// last tool result stays on screen until the next run replaces it.
type AIFeatures struct {
	app        console.App
	lastResult *aiResult
}

// NewAIFeatures constructs the AI features module.
func NewAIFeatures(app console.App) *AIFeatures {
	return &AIFeatures{app: app}
}

type aiResult struct {
	Title           string
	Success         bool
	Category        string
	Tags            []string
	Summary         string
	QualityScore    float64
	DifficultyLevel string
	Message         string
	Error           string
}

type aiView struct {
	Connected bool
	Available bool
	Features  []string
	Videos    []visionhub.Video
	Result    *aiResult
}

// aiFeatureNames are the Gemini-backed capabilities; availability tracks
// the single initialized flag. Transcription is listed separately since
// it needs Google Cloud.
var aiFeatureNames = []string{
	"Auto-Categorization",
	"Tag Generation",
	"Content Analysis",
	"Summary Generation",
	"Metadata Generation",
}

var aiFeaturesTmpl = template.Must(template.New("aiFeatures").Parse(`
<div class="space-y-6">
  <div class="flex justify-between items-center">
    <h3 class="text-xl font-bold">AI Features Management</h3>
    <div class="flex gap-2">
      <form method="post" action="/admin/ai-features/action/show-batch" class="inline">
        <button type="submit" class="btn btn-secondary">Batch Process Videos</button>
      </form>
      <form method="post" action="/admin/ai-features/action/test" class="inline">
        <button type="submit" class="btn btn-info">Test AI Connection</button>
      </form>
    </div>
  </div>

  <div class="card {{if .Connected}}border-success{{else}}border-warning{{end}}">
    <div class="flex items-center mb-3">
      <span class="badge {{if .Connected}}badge-success{{else}}badge-warning{{end}} mr-2">{{if .Connected}}CONNECTED{{else}}NOT CONFIGURED{{end}}</span>
      <h4 class="text-lg font-semibold">Google Gemini AI Status</h4>
    </div>
    <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-4">
      {{$available := .Available}}
      {{range .Features}}
      <div class="feature-status">
        <label class="text-sm font-medium">{{.}}</label>
        <p class="flex items-center">
          <span class="w-2 h-2 rounded-full mr-2 {{if $available}}bg-green-500{{else}}bg-red-500{{end}}"></span>
          {{if $available}}Available{{else}}Unavailable{{end}}
        </p>
      </div>
      {{end}}
      <div class="feature-status">
        <label class="text-sm font-medium">Transcription</label>
        <p class="flex items-center">
          <span class="w-2 h-2 rounded-full mr-2 bg-red-500"></span>
          Requires Google Cloud
        </p>
      </div>
    </div>
  </div>

  <div class="grid grid-cols-1 md:grid-cols-2 gap-6">
    {{$videos := .Videos}}
    <div class="card">
      <h4 class="text-lg font-semibold mb-3">Auto-Categorize Video</h4>
      <form method="post" action="/admin/ai-features/action/categorize" class="space-y-3">
        <div class="form-group">
          <label class="form-label">Select Video</label>
          <select name="videoId" class="form-select" required>
            <option value="">Choose a video...</option>
            {{range $videos}}<option value="{{.ID}}">{{.Title}}</option>{{end}}
          </select>
        </div>
        <button type="submit" class="btn btn-primary w-full" {{if not $available}}disabled{{end}}>Categorize Video</button>
      </form>
    </div>
    <div class="card">
      <h4 class="text-lg font-semibold mb-3">Generate Tags</h4>
      <form method="post" action="/admin/ai-features/action/tags" class="space-y-3">
        <div class="form-group">
          <label class="form-label">Select Video</label>
          <select name="videoId" class="form-select" required>
            <option value="">Choose a video...</option>
            {{range $videos}}<option value="{{.ID}}">{{.Title}}</option>{{end}}
          </select>
        </div>
        <button type="submit" class="btn btn-primary w-full" {{if not $available}}disabled{{end}}>Generate Tags</button>
      </form>
    </div>
    <div class="card">
      <h4 class="text-lg font-semibold mb-3">Analyze Content</h4>
      <form method="post" action="/admin/ai-features/action/analyze" class="space-y-3">
        <div class="form-group">
          <label class="form-label">Select Video</label>
          <select name="videoId" class="form-select" required>
            <option value="">Choose a video...</option>
            {{range $videos}}<option value="{{.ID}}">{{.Title}}</option>{{end}}
          </select>
        </div>
        <button type="submit" class="btn btn-primary w-full" {{if not $available}}disabled{{end}}>Analyze Content</button>
      </form>
    </div>
    <div class="card">
      <h4 class="text-lg font-semibold mb-3">Generate Summary</h4>
      <form method="post" action="/admin/ai-features/action/summary" class="space-y-3">
        <div class="form-group">
          <label class="form-label">Select Video</label>
          <select name="videoId" class="form-select" required>
            <option value="">Choose a video...</option>
            {{range $videos}}<option value="{{.ID}}">{{.Title}}</option>{{end}}
          </select>
        </div>
        <div class="form-group">
          <label class="flex items-center">
            <input type="checkbox" name="updateDescription" value="true" class="form-checkbox">
            <span class="ml-2">Update video description with generated summary</span>
          </label>
        </div>
        <button type="submit" class="btn btn-primary w-full" {{if not $available}}disabled{{end}}>Generate Summary</button>
      </form>
    </div>
  </div>

  {{with .Result}}
  <div class="card">
    <h4 class="text-lg font-semibold mb-3">AI Results</h4>
    <h5 class="font-semibold mb-2">{{.Title}} Results</h5>
    {{if .Success}}
    <div class="bg-green-100 border border-green-400 text-green-700 px-4 py-3 rounded mb-3">
      <p class="font-bold">Success!</p>
      {{if .Category}}<p>Category: <span class="font-semibold">{{.Category}}</span></p>{{end}}
      {{if .Tags}}
      <p>Generated Tags:</p>
      <div class="flex flex-wrap gap-1 mt-2">
        {{range .Tags}}<span class="badge badge-success">{{.}}</span>{{end}}
      </div>
      {{end}}
      {{if .Summary}}<p>Summary: <span class="italic">{{.Summary}}</span></p>{{end}}
      {{if .QualityScore}}<p>Content Quality: <span class="font-semibold">{{.QualityScore}}/10</span></p>{{end}}
      {{if .DifficultyLevel}}<p>Difficulty Level: <span class="font-semibold">{{.DifficultyLevel}}</span></p>{{end}}
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

var aiBatchTmpl = template.Must(template.New("aiBatch").Parse(`
<div class="modal-content">
  <div class="modal-header">
    <h3 class="modal-title">Batch Process Videos with AI</h3>
  </div>
  <div class="modal-body">
    <form method="post" action="/admin/ai-features/action/batch">
      <p class="mb-4">Select videos to process in batch:</p>
      <div class="max-h-60 overflow-y-auto">
        {{range .}}
        <div class="flex items-center mb-2">
          <input type="checkbox" name="videoIds" value="{{.ID}}" id="video-{{.ID}}" class="mr-2">
          <label for="video-{{.ID}}">{{.Title}}</label>
        </div>
        {{end}}
      </div>
      <div class="mt-4 flex justify-end gap-2">
        <button type="submit" formaction="/admin/ai-features/action/cancel" class="btn btn-secondary">Cancel</button>
        <button type="submit" class="btn btn-primary">Process Selected</button>
      </div>
    </form>
  </div>
</div>`))

// Render fetches AI status and lays out the tool cards.
func (m *AIFeatures) Render(ctx context.Context) {
	var resp visionhub.AIStatusResponse
	if err := m.app.API().Get(ctx, "/ai/status", &resp); err != nil {
		logActionErr("render-ai-features", err)
		m.app.Container().SetError("Error loading AI features")
		return
	}

	var status visionhub.AIStatus
	if resp.Success {
		status = resp.AI
	}
	render(m.app.Container(), aiFeaturesTmpl, aiView{
		Connected: status.Initialized && status.HasAPIKey,
		Available: status.Initialized,
		Features:  aiFeatureNames,
		Videos:    m.app.Videos(ctx),
		Result:    m.lastResult,
	})
}

// HandleAction routes AI tool actions.
func (m *AIFeatures) HandleAction(ctx context.Context, action string, form url.Values) {
	switch action {
	case "categorize":
		m.categorize(ctx, form.Get("videoId"))
	case "tags":
		m.generateTags(ctx, form.Get("videoId"))
	case "analyze":
		m.analyze(ctx, form.Get("videoId"))
	case "summary":
		m.summarize(ctx, form.Get("videoId"), form.Get("updateDescription") == "true")
	case "show-batch":
		renderModal(m.app, aiBatchTmpl, m.app.Videos(ctx))
	case "batch":
		m.batch(ctx, form["videoIds"])
	case "test":
		m.test(ctx)
	case "cancel":
		m.app.HideModal()
		m.Render(ctx)
	default:
		m.Render(ctx)
	}
}

func (m *AIFeatures) categorize(ctx context.Context, videoID string) {
	if videoID == "" {
		m.Render(ctx)
		return
	}
	m.app.ShowLoading(true, "Categorizing video...")

	id, _ := strconv.Atoi(videoID)
	var resp visionhub.AICategorizeResponse
	if err := m.app.API().Post(ctx, "/ai/categorize", map[string]any{"videoId": id}, &resp); err != nil {
		logActionErr("ai-categorize", err)
		m.app.ShowToast("Error categorizing video", "error")
		m.Render(ctx)
		return
	}

	m.lastResult = &aiResult{
		Title:    "Auto-Categorization",
		Success:  resp.Success,
		Category: resp.Categorization.Category,
		Error:    resp.Error,
	}
	if resp.Success && resp.Categorization.Success {
		if err := m.app.ReloadVideos(ctx); err != nil {
			log.Error().Err(err).Msg("Error reloading videos")
		}
		m.app.ShowToast("Video categorized successfully!", "success")
	}
	m.Render(ctx)
}

func (m *AIFeatures) generateTags(ctx context.Context, videoID string) {
	if videoID == "" {
		m.Render(ctx)
		return
	}
	m.app.ShowLoading(true, "Generating tags...")

	id, _ := strconv.Atoi(videoID)
	var resp visionhub.AITagsResponse
	if err := m.app.API().Post(ctx, "/ai/tags", map[string]any{"videoId": id}, &resp); err != nil {
		logActionErr("ai-tags", err)
		m.app.ShowToast("Error generating tags", "error")
		m.Render(ctx)
		return
	}

	m.lastResult = &aiResult{
		Title:   "Tag Generation",
		Success: resp.Success,
		Tags:    resp.Tags.Tags,
		Error:   resp.Error,
	}
	if resp.Success && resp.Tags.Success {
		m.app.ShowToast("Tags generated successfully!", "success")
	}
	m.Render(ctx)
}

func (m *AIFeatures) analyze(ctx context.Context, videoID string) {
	if videoID == "" {
		m.Render(ctx)
		return
	}
	m.app.ShowLoading(true, "Analyzing content...")

	id, _ := strconv.Atoi(videoID)
	var resp visionhub.AIAnalyzeResponse
	if err := m.app.API().Post(ctx, "/ai/analyze", map[string]any{"videoId": id}, &resp); err != nil {
		logActionErr("ai-analyze", err)
		m.app.ShowToast("Error analyzing content", "error")
		m.Render(ctx)
		return
	}

	m.lastResult = &aiResult{
		Title:           "Content Analysis",
		Success:         resp.Success,
		QualityScore:    resp.Analysis.Analysis.QualityScore,
		DifficultyLevel: resp.Analysis.Analysis.DifficultyLevel,
		Error:           resp.Error,
	}
	if resp.Success && resp.Analysis.Success {
		m.app.ShowToast("Content analyzed successfully!", "success")
	}
	m.Render(ctx)
}

func (m *AIFeatures) summarize(ctx context.Context, videoID string, updateDescription bool) {
	if videoID == "" {
		m.Render(ctx)
		return
	}
	m.app.ShowLoading(true, "Generating summary...")

	id, _ := strconv.Atoi(videoID)
	var resp visionhub.AISummaryResponse
	body := map[string]any{"videoId": id, "updateDescription": updateDescription}
	if err := m.app.API().Post(ctx, "/ai/summary", body, &resp); err != nil {
		logActionErr("ai-summary", err)
		m.app.ShowToast("Error generating summary", "error")
		m.Render(ctx)
		return
	}

	m.lastResult = &aiResult{
		Title:   "Summary Generation",
		Success: resp.Success,
		Summary: resp.Summary.Summary,
		Error:   resp.Error,
	}
	if resp.Success && resp.Summary.Success {
		if err := m.app.ReloadVideos(ctx); err != nil {
			log.Error().Err(err).Msg("Error reloading videos")
		}
		m.app.ShowToast("Summary generated successfully!", "success")
	}
	m.Render(ctx)
}

func (m *AIFeatures) batch(ctx context.Context, videoIDs []string) {
	if len(videoIDs) == 0 {
		m.app.ShowToast("Please select at least one video", "warning")
		m.Render(ctx)
		return
	}
	m.app.ShowLoading(true, fmt.Sprintf("Processing %d videos with AI...", len(videoIDs)))

	ids := make([]int, 0, len(videoIDs))
	for _, raw := range videoIDs {
		if id, err := strconv.Atoi(raw); err == nil {
			ids = append(ids, id)
		}
	}

	var resp visionhub.AIBatchResponse
	if err := m.app.API().Post(ctx, "/ai/batch", map[string]any{"videoIds": ids}, &resp); err != nil {
		logActionErr("ai-batch", err)
		m.app.ShowToast("Error during batch processing", "error")
		m.Render(ctx)
		return
	}
	if resp.Success {
		m.app.HideModal()
		if err := m.app.ReloadVideos(ctx); err != nil {
			log.Error().Err(err).Msg("Error reloading videos")
		}
		m.lastResult = &aiResult{Title: "Batch Processing", Success: true}
		m.app.ShowToast(fmt.Sprintf("%d videos processed successfully!", resp.ProcessedCount), "success")
	}
	m.Render(ctx)
}

// test runs a categorization against the first catalog video as a
// connectivity probe, downgrading quota exhaustion to a warning.
func (m *AIFeatures) test(ctx context.Context) {
	m.app.ShowLoading(true, "Testing AI connection...")

	body := map[string]any{"title": "Test Video", "description": "This is a test for AI connectivity"}
	if videos := m.app.Videos(ctx); len(videos) > 0 {
		body = map[string]any{"videoId": videos[0].ID}
	}

	var resp visionhub.AICategorizeResponse
	err := m.app.API().Post(ctx, "/ai/categorize", body, &resp)
	switch {
	case err == nil && resp.Success && resp.Categorization.Success:
		m.app.ShowToast("AI connection successful!", "success")
		m.lastResult = &aiResult{
			Title:    "AI Connection Test",
			Success:  true,
			Category: resp.Categorization.Category,
			Message:  "Google Gemini AI is working correctly",
		}
	default:
		errMsg := resp.Error
		if err != nil {
			errMsg = err.Error()
		}
		if errMsg == "" {
			errMsg = "Unknown error occurred"
		}
		if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") {
			m.app.ShowToast("AI quota exceeded. Please try again later.", "warning")
			m.lastResult = &aiResult{
				Title:   "AI Connection Test",
				Error:   "Quota exceeded: You have reached your daily limit for Google Gemini API. Please try again tomorrow or upgrade your plan.",
				Message: "Quota Limit Reached",
			}
		} else {
			m.app.ShowToast("AI connection failed: "+errMsg, "error")
			m.lastResult = &aiResult{Title: "AI Connection Test", Error: errMsg}
		}
	}
	m.Render(ctx)
}
