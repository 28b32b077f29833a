package main

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"clientListWebsite/internal/models"
	"clientListWebsite/internal/utils"
)

//go:embed templates static
var assets embed.FS

// staticFS returns the embedded static directory rooted at its contents
func staticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplateCache holds parsed templates with inheritance support
type TemplateCache struct {
	files     fs.FS
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateCache creates a new template cache reading from files
func NewTemplateCache(files fs.FS) *TemplateCache {
	return &TemplateCache{
		files:     files,
		templates: make(map[string]*template.Template),
	}
}

// GetTemplate returns a cached template or loads it if not cached
func (tc *TemplateCache) GetTemplate(name string) (*template.Template, error) {
	tc.mutex.RLock()
	tmpl, exists := tc.templates[name]
	tc.mutex.RUnlock()

	if exists {
		return tmpl, nil
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	// Double-check after acquiring write lock
	if tmpl, exists := tc.templates[name]; exists {
		return tmpl, nil
	}

	tmpl, err := template.New("").Funcs(CreateTemplateFuncMap()).ParseFS(tc.files, "templates/base.html", "templates/"+name+".html")
	if err != nil {
		AppLogger.WithError(err).WithField("template", name).Error("Failed to parse template")
		return nil, err
	}

	tc.templates[name] = tmpl
	return tmpl, nil
}

// RenderTemplate renders a template with the given data. Output is buffered
// so that a failing template never sends a partial page.
func (tc *TemplateCache) RenderTemplate(w http.ResponseWriter, name string, data interface{}) error {
	tmpl, err := tc.GetTemplate(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_, err = buf.WriteTo(w)
	return err
}

// FormatDate renders a timestamp like "Mar 5, 2024"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// StatusBadge returns the CSS class of a status pill
func StatusBadge(status models.ClientStatus) string {
	switch status {
	case models.ClientStatusActive:
		return "badge badge-active"
	case models.ClientStatusInactive:
		return "badge badge-inactive"
	case models.ClientStatusPending:
		return "badge badge-pending"
	default:
		return "badge"
	}
}

// DirectionLabel describes a direction for the sort editor's toggle
func DirectionLabel(field models.SortField, direction models.SortDirection) string {
	switch field {
	case models.SortFieldCreatedAt, models.SortFieldUpdatedAt:
		if direction == models.SortDesc {
			return "Newest to Oldest"
		}
		return "Oldest to Newest"
	default:
		if direction == models.SortDesc {
			return "Z-A"
		}
		return "A-Z"
	}
}

// FieldOption is one entry of the sort field select
type FieldOption struct {
	Value    models.SortField
	Label    string
	Selected bool
}

// FieldOptions lists every sortable field, marking selected
func FieldOptions(selected models.SortField) []FieldOption {
	options := make([]FieldOption, 0, len(models.SortFields))
	for _, f := range models.SortFields {
		options = append(options, FieldOption{Value: f, Label: f.Label(), Selected: f == selected})
	}
	return options
}

// Title capitalises a tag value for display
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// CreateTemplateFuncMap creates a function map for templates
func CreateTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate":     FormatDate,
		"statusBadge":    StatusBadge,
		"directionLabel": DirectionLabel,
		"fieldOptions":   FieldOptions,
		"title":          Title,
		"add":            func(a, b int) int { return a + b },
	}
}

// TemplateData represents the common data structure for all templates
type TemplateData struct {
	Title     string
	CSRFToken string
	PageData  interface{}
}

// RenderTemplateWithContext renders a template with automatic context data
func (app *App) RenderTemplateWithContext(w http.ResponseWriter, r *http.Request, templateName, title string, pageData interface{}) error {
	data := &TemplateData{
		Title:    title,
		PageData: pageData,
	}
	data.CSRFToken, _ = utils.GetCSRFToken(r)

	return app.Templates.RenderTemplate(w, templateName, data)
}
