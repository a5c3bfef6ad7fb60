package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"restaurant-cms/models"
)

var statusLabels = map[models.AvailabilityStatus]string{
	models.StatusOutOfStock:             "Out of Stock",
	models.StatusSeasonal:               "Seasonal",
	models.StatusTemporarilyUnavailable: "Temporarily Unavailable",
}

// StatusLabel returns the display text for an availability status.
// Unrecognized codes read "Unavailable".
func StatusLabel(status models.AvailabilityStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return "Unavailable"
}

var socialIcons = map[string]string{
	"facebook":  "📘",
	"instagram": "📷",
	"twitter":   "🐦",
	"tiktok":    "🎵",
}

func socialIcon(platform string) string {
	if icon, ok := socialIcons[platform]; ok {
		return icon
	}
	return "🔗"
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04"}

// formatDate renders a stored date as "Jan 2, 2006". Dates in an unknown
// layout are shown as stored.
func formatDate(value string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return value
}

func price(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

// label capitalizes a mapping key for display. Casers keep state, so each
// call gets its own.
func label(key string) string {
	return cases.Title(language.English).String(key)
}

func statusClass(status models.AvailabilityStatus) string {
	if status == "" {
		return "unavailable"
	}
	return string(status)
}

func newTemplates(md goldmark.Markdown) *template.Template {
	funcs := template.FuncMap{
		"price":       price,
		"label":       label,
		"date":        formatDate,
		"statusLabel": StatusLabel,
		"statusClass": statusClass,
		"socialIcon":  socialIcon,
		"markdown": func(src string) (template.HTML, error) {
			var buf bytes.Buffer
			if err := md.Convert([]byte(src), &buf); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	}
	return template.Must(template.New("render").Funcs(funcs).Parse(fragments))
}

const fragments = `
{{define "menuItem"}}<div class="menu-item{{if not .Item.Available}} cms-unavailable{{end}}" data-category="{{.Item.Category}}">
{{- if .Item.Image}}<div class="item-image"><img src="{{.Item.Image}}" alt="{{.Item.Name}}" onerror="this.src={{.DefaultImage}}"></div>{{end -}}
<div class="item-content">
<h3 class="item-name">{{.Item.Name}}
{{- if .Item.IsSpicy}} <span class="cms-badge cms-spicy">🌶️</span>{{end}}
{{- if .Item.IsVegetarian}} <span class="cms-badge cms-vegetarian">🌱</span>{{end -}}
</h3>
<p class="item-description">{{.Item.Description}}</p>
<div class="item-footer"><span class="item-price">{{price .Item.Price}}</span>
{{- if .Item.PreparationTime}}<span class="prep-time">⏱️ {{.Item.PreparationTime}}</span>{{end -}}
</div>
{{- if not .Item.Available}}
<div class="cms-stock-status cms-status-{{statusClass .Item.AvailabilityStatus}}">
<span class="cms-status-badge">{{statusLabel .Item.AvailabilityStatus}}</span>
{{- if .Item.UnavailableReason}}<p class="cms-reason">{{.Item.UnavailableReason}}</p>{{end}}
{{- if .Item.EstimatedBackDate}}<p class="cms-return-date">Expected: {{date .Item.EstimatedBackDate}}</p>{{end -}}
</div>
{{- end}}
</div>
</div>
{{end}}

{{define "filters"}}<div class="cms-menu-filters">
<button class="cms-filter-btn active" data-category="all">All</button>
{{- range .}}
<button class="cms-filter-btn" data-category="{{.}}">{{.}}</button>
{{- end}}
</div>{{end}}

{{define "announcements"}}{{range .}}<div class="cms-announcement cms-priority-{{.Priority}}">
<h4>{{.Title}}</h4>
{{markdown .Content}}
{{- if .ExpiryDate}}<small>Valid until: {{date .ExpiryDate}}</small>{{end}}
</div>
{{end}}{{end}}

{{define "hours"}}<div class="cms-hours-list">
{{- range .}}
<div class="cms-hours-item"><span class="cms-day">{{label .Key}}</span><span class="cms-hours">{{.Value}}</span></div>
{{- end}}
</div>{{end}}

{{define "social"}}{{range .}}<a href="{{.Value}}" target="_blank" rel="noopener" class="cms-social-link cms-{{.Key}}">{{socialIcon .Key}} {{label .Key}}</a>
{{end}}{{end}}

{{define "ordering"}}<div class="cms-ordering-grid">
{{- range .}}
<a href="{{.Value}}" target="_blank" rel="noopener" class="cms-ordering-link cms-{{.Key}}"><span class="cms-platform-name">{{label .Key}}</span><span class="cms-order-text">Order Now</span></a>
{{- end}}
</div>{{end}}

{{define "adminLink"}}<a href="{{.}}" class="cms-admin-link">Admin</a>{{end}}
`
