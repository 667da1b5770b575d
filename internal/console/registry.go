package console

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
)

// displayNames maps module tags to the human-readable names used when a
// tag resolves to nothing.
var displayNames = map[string]string{
	"ai-features":       "AI Features",
	"ai-settings":       "AI Settings",
	"video-compression": "Video Compression",
	"system-health":  "System Health",
	"backup-system":  "Backup System",
	"report-reasons": "Report Reasons",
	"password-policy": "Password Policy",
	"users":          "User Management",
	"videos":         "Video Management",
	"categories":     "Category Management",
	"reports":        "Reports & Logs",
	"groups":         "Groups & Teams",
	"permissions":    "Permissions",
	"settings":       "Site Settings",
}

// Registry holds the instantiated feature modules keyed by tag and
// dispatches renders into the shared container behind a failure boundary.
type Registry struct {
	container *Container
	modules   map[string]Module
}

// NewRegistry constructs an empty registry rendering into container.
func NewRegistry(container *Container) *Registry {
	return &Registry{
		container: container,
		modules:   make(map[string]Module),
	}
}

// Register adds a module under tag. A nil module is tolerated silently so
// startup code can register optional implementations unconditionally.
func (r *Registry) Register(tag string, module Module) {
	if module == nil {
		return
	}
	r.modules[tag] = module
}

// GetModule returns the module registered under tag, or nil.
func (r *Registry) GetModule(tag string) Module {
	return r.modules[tag]
}

// Tags returns the registered tags.
func (r *Registry) Tags() []string {
	out := make([]string, 0, len(r.modules))
	for tag := range r.modules {
		out = append(out, tag)
	}
	return out
}

// DisplayName maps a tag to its display name, falling back to the raw tag.
func DisplayName(tag string) string {
	if name, ok := displayNames[tag]; ok {
		return name
	}
	return tag
}

// Dispatch resolves tag and invokes the module's render lifecycle. The
// container first shows a loading placeholder, then either the module's
// output or a scoped error naming the failing module. No failure escapes
// to the caller.
func (r *Registry) Dispatch(ctx context.Context, tag string) {
	r.container.SetLoading()

	module, ok := r.modules[tag]
	if !ok {
		r.container.SetError(fmt.Sprintf(
			`Module %q not found or not properly loaded. Please check that all required modules are registered.`,
			DisplayName(tag)))
		return
	}

	r.invoke(tag, func() { module.Render(ctx) })
}

// DispatchAction routes an action to the module registered under tag,
// inside the same failure boundary as Dispatch. Modules without actions
// fall back to a plain render.
func (r *Registry) DispatchAction(ctx context.Context, tag, action string, form url.Values) {
	module, ok := r.modules[tag]
	if !ok {
		r.container.SetError(fmt.Sprintf(
			`Module %q not found or not properly loaded. Please check that all required modules are registered.`,
			DisplayName(tag)))
		return
	}

	r.invoke(tag, func() {
		if am, ok := module.(ActionModule); ok {
			am.HandleAction(ctx, action, form)
			return
		}
		module.Render(ctx)
	})
}

// invoke runs fn and converts a panic into the per-module error block.
func (r *Registry) invoke(tag string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("module", tag).Interface("panic", rec).Msg("Error rendering module")
			r.container.SetError(fmt.Sprintf("Error loading module: %v", rec))
		}
	}()
	fn()
}
