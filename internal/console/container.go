package console

import (
	"html/template"
	"strings"
	"sync"
)

var containerErrTmpl = template.Must(template.New("err").Parse(
	`<div class="text-center text-error">{{.}}</div>`))

// Container is the shared content area a dispatched module renders into.
// It is owned by whichever render last wrote to it; there is no diffing,
// every write replaces the whole fragment.
type Container struct {
	mu   sync.Mutex
	html template.HTML
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{}
}

// SetHTML replaces the container content with an already-escaped fragment.
func (c *Container) SetHTML(html template.HTML) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.html = html
}

// SetLoading shows the transient placeholder the dispatcher installs before
// invoking a module.
func (c *Container) SetLoading() {
	c.SetHTML(`<div class="text-center">Loading admin module...</div>`)
}

// SetError replaces the content with a scoped error block. The message is
// escaped so untrusted text cannot break out of the fragment.
func (c *Container) SetError(message string) {
	var b strings.Builder
	if err := containerErrTmpl.Execute(&b, message); err != nil {
		c.SetHTML(`<div class="text-center text-error">Error</div>`)
		return
	}
	c.SetHTML(template.HTML(b.String()))
}

// HTML returns the current fragment.
func (c *Container) HTML() template.HTML {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.html
}
