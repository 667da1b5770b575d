package console

import (
	"context"
	"html/template"
	"net/url"

	"github.com/visionhub/console/pkg/visionhub"
)

// API is the resource-path calling convention the admin modules were
// written against: paths are relative ("/users"), bodies and results are
// plain JSON values.
type API interface {
	Get(ctx context.Context, path string, result any) error
	Post(ctx context.Context, path string, body, result any) error
	Put(ctx context.Context, path string, body, result any) error
	Patch(ctx context.Context, path string, body, result any) error
	Delete(ctx context.Context, path string, result any) error
}

// App is the single capability object every feature module is constructed
// with. The bridge provides the one implementation, adapting this legacy
// convention onto the client facade and the Surface primitives.
type App interface {
	API() API
	Container() *Container

	// ShowLoading approximates a loading overlay. Hiding is a no-op by
	// documented behavior, only show=true emits anything.
	ShowLoading(show bool, message string)

	// ShowToast accepts the legacy four-valued kind space
	// (info/success/error/danger, plus unknowns) and maps it onto the
	// Surface's three-valued palette.
	ShowToast(message string, legacyKind string)

	ShowModal(html template.HTML)
	HideModal()

	// ShowConfirmationModal displays message verbatim and invokes
	// onConfirm only when the operator confirms.
	ShowConfirmationModal(message string, onConfirm func(ctx context.Context))

	// Videos returns the shared video snapshot, fetching it when stale.
	// ReloadVideos forces a refetch after a mutation.
	Videos(ctx context.Context) []visionhub.Video
	ReloadVideos(ctx context.Context) error
}

// Module is the uniform render lifecycle. Render replaces the container
// content; fetch failures are contained inside the module and never escape.
type Module interface {
	Render(ctx context.Context)
}

// ActionModule is implemented by modules exposing row or toolbar actions.
type ActionModule interface {
	Module
	HandleAction(ctx context.Context, action string, form url.Values)
}
