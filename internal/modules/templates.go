// Package modules contains the admin feature modules. Each owns one admin
// area, renders its fragment into the shared container and mutates backend
// state through the app capability object, re-rendering after every
// mutation rather than patching locally.
package modules

import (
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/console"
)

// tmplFuncs are shared across the module templates.
var tmplFuncs = template.FuncMap{
	"date":     formatDate,
	"datetime": formatDateTime,
	"upper":    strings.ToUpper,
	"kb":       toKB,
	"mb":       toMB,
	"hours":    secondsToHours,
	"deref":    func(p *int) int { return *p },
	"join":     strings.Join,
}

// formatDate renders a backend timestamp as a short date, passing the raw
// value through when it cannot be parsed.
func formatDate(raw string) string {
	if t, ok := parseTime(raw); ok {
		return t.Format("Jan 2, 2006")
	}
	return raw
}

// formatDateTime renders a backend timestamp with time of day.
func formatDateTime(raw string) string {
	if t, ok := parseTime(raw); ok {
		return t.Format("Jan 2, 2006 15:04")
	}
	return raw
}

func parseTime(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toKB(size int64) int64 {
	return (size + 512) / 1024
}

// toMB renders a byte count as megabytes with two decimals.
func toMB(size int64) float64 {
	return math.Round(float64(size)/1024/1024*100) / 100
}

func secondsToHours(seconds float64) int {
	return int(seconds / 3600)
}

// exportFilename names a downloaded health report after the current date.
func exportFilename() string {
	return "health_report_" + time.Now().Format("2006-01-02") + ".csv"
}

// render executes tmpl into the container; a template failure is a
// programming error surfaced through the dispatcher's boundary.
func render(c *console.Container, tmpl *template.Template, data any) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		panic(err)
	}
	c.SetHTML(template.HTML(b.String()))
}

// renderModal executes tmpl and opens the result in the generic modal.
func renderModal(app console.App, tmpl *template.Template, data any) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		panic(err)
	}
	app.ShowModal(template.HTML(b.String()))
}

// logActionErr records a failed backend action; the operator sees a toast,
// the log keeps the cause.
func logActionErr(action string, err error) {
	log.Error().Err(err).Str("action", action).Msg("Admin action failed")
}
