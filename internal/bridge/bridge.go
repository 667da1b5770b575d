// Package bridge adapts the calling convention the admin modules were
// written against (the "app" capability object) onto the newer primitives:
// the visionhub client facade and the console Surface.
package bridge

import (
	"context"
	"html/template"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/cache"
	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

// MapToastKind collapses the legacy four-valued toast kind space onto the
// Surface's three-valued palette. Anything not explicitly success, error
// or danger is neutral.
func MapToastKind(legacy string) console.ToastKind {
	switch legacy {
	case "success":
		return console.KindSuccess
	case "error", "danger":
		return console.KindError
	default:
		return console.KindNeutral
	}
}

// App is the single console.App implementation. It prefixes API paths with
// /api, converts non-2xx responses into status-text errors, and forwards
// UI calls to the Surface with the legacy quirks preserved.
type App struct {
	client    *visionhub.Client
	surface   *console.Surface
	container *console.Container
	videos    *cache.VideoCache
}

// NewApp wires the capability object for one operator session.
func NewApp(client *visionhub.Client, surface *console.Surface, container *console.Container, videos *cache.VideoCache) *App {
	return &App{client: client, surface: surface, container: container, videos: videos}
}

// API returns the legacy resource-path API surface.
func (a *App) API() console.API {
	return legacyAPI{client: a.client}
}

// Container returns the shared content container.
func (a *App) Container() *console.Container {
	return a.container
}

// Surface exposes the underlying notification surface to the host.
func (a *App) Surface() *console.Surface {
	return a.surface
}

// ShowLoading has no true overlay to drive; it approximates one with an
// informational toast. Hiding is deliberately a no-op.
func (a *App) ShowLoading(show bool, message string) {
	if !show {
		return
	}
	if message == "" {
		message = "Loading..."
	}
	a.surface.PushToast(message, console.KindNeutral)
}

// ShowToast maps the legacy kind and queues the toast.
func (a *App) ShowToast(message string, legacyKind string) {
	a.surface.PushToast(message, MapToastKind(legacyKind))
}

// ShowModal opens the generic modal.
func (a *App) ShowModal(html template.HTML) {
	a.surface.ShowModal(html)
}

// HideModal closes the generic modal.
func (a *App) HideModal() {
	a.surface.HideModal()
}

// ShowConfirmationModal injects the custom message into the confirm modal
// (whose template otherwise carries hardcoded copy) and forwards only a
// confirmed outcome to onConfirm.
func (a *App) ShowConfirmationModal(message string, onConfirm func(ctx context.Context)) {
	a.surface.SetConfirmText(message)
	a.surface.ShowConfirm(func(ctx context.Context, confirmed bool) {
		if confirmed {
			onConfirm(ctx)
		}
	})
}

// Videos returns the shared video snapshot, refetching when stale. On
// fetch failure it returns the empty list; callers render what they get.
func (a *App) Videos(ctx context.Context) []visionhub.Video {
	if videos, ok := a.videos.Snapshot(); ok {
		return videos
	}
	if err := a.ReloadVideos(ctx); err != nil {
		log.Error().Err(err).Msg("Error loading videos")
		return nil
	}
	videos, _ := a.videos.Snapshot()
	return videos
}

// ReloadVideos refetches the full video list into the cache.
func (a *App) ReloadVideos(ctx context.Context) error {
	var resp visionhub.VideosResponse
	if err := a.API().Get(ctx, "/videos", &resp); err != nil {
		return err
	}
	if !resp.Success {
		a.videos.Store(nil)
		return nil
	}
	a.videos.Store(resp.Videos)
	return nil
}

// legacyAPI prefixes resource paths with /api and delegates to the facade.
type legacyAPI struct {
	client *visionhub.Client
}

func (l legacyAPI) Get(ctx context.Context, path string, result any) error {
	return l.client.DoJSON(ctx, http.MethodGet, "/api"+path, nil, result)
}

func (l legacyAPI) Post(ctx context.Context, path string, body, result any) error {
	return l.client.DoJSON(ctx, http.MethodPost, "/api"+path, body, result)
}

func (l legacyAPI) Put(ctx context.Context, path string, body, result any) error {
	return l.client.DoJSON(ctx, http.MethodPut, "/api"+path, body, result)
}

func (l legacyAPI) Patch(ctx context.Context, path string, body, result any) error {
	return l.client.DoJSON(ctx, http.MethodPatch, "/api"+path, body, result)
}

func (l legacyAPI) Delete(ctx context.Context, path string, result any) error {
	return l.client.DoJSON(ctx, http.MethodDelete, "/api"+path, nil, result)
}

// Starter performs the bridge's one-time initialization once the host
// signals readiness. It replaces the old fixed-interval poll for a global
// capability object with an explicit readiness channel.
type Starter struct {
	once sync.Once
}

// Run blocks until ready is closed (or ctx is done), then runs init
// exactly once across all callers.
func (s *Starter) Run(ctx context.Context, ready <-chan struct{}, init func()) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ready:
	}
	s.once.Do(func() {
		init()
		log.Info().Msg("Admin modules initialized via bridge")
	})
	return nil
}
