package bridge

import (
	"time"

	"github.com/visionhub/console/internal/cache"
	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/internal/modules"
	"github.com/visionhub/console/pkg/visionhub"
)

// Session bundles the per-operator console state: the capability object,
// the module registry and the rendering surface.
type Session struct {
	App       *App
	Registry  *console.Registry
	Surface   *console.Surface
	Container *console.Container
}

// NewSession builds the capability object for one operator and registers
// every feature module with the dispatcher. Registration is explicit; the
// registry tolerates nil entries, so optional modules may be registered
// unconditionally.
func NewSession(client *visionhub.Client, confirmTTL, videoTTL time.Duration) *Session {
	container := console.NewContainer()
	surface := console.NewSurface(confirmTTL)
	videos := cache.NewVideoCache(videoTTL)
	app := NewApp(client, surface, container, videos)

	registry := console.NewRegistry(container)
	registry.Register("users", modules.NewUsers(app))
	registry.Register("videos", modules.NewVideos(app))
	registry.Register("categories", modules.NewCategories(app))
	registry.Register("reports", modules.NewReports(app))
	registry.Register("settings", modules.NewSiteSettings(app))
	registry.Register("groups", modules.NewGroups(app))
	registry.Register("permissions", modules.NewPermissions(app))
	registry.Register("password-policy", modules.NewPasswordPolicy(app))
	registry.Register("report-reasons", modules.NewReportReasons(app))
	registry.Register("ai-features", modules.NewAIFeatures(app))
	registry.Register("ai-settings", modules.NewAISettings(app))
	registry.Register("video-compression", modules.NewVideoCompression(app))
	registry.Register("system-health", modules.NewSystemHealth(app))
	registry.Register("backup-system", modules.NewBackupSystem(app))

	return &Session{
		App:       app,
		Registry:  registry,
		Surface:   surface,
		Container: container,
	}
}
