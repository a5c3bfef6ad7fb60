// Package render writes a restaurant document into an existing HTML page.
// Each view replaces the contents of every element its selector matches and
// leaves the rest of the page alone.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"restaurant-cms/models"
)

const DefaultImagePath = "/images/default-dish.jpg"

type Options struct {
	// ShowUnavailable keeps unavailable items in the menu view with their
	// status block instead of hiding them.
	ShowUnavailable bool
	// AdminURL, when set, appends a discreet admin link to the page body.
	AdminURL string
	// DefaultImagePath replaces menu images that fail to load.
	DefaultImagePath string
}

type Renderer struct {
	sel  Selectors
	opts Options
	tmpl *template.Template
}

func New(sel Selectors, opts Options) *Renderer {
	if opts.DefaultImagePath == "" {
		opts.DefaultImagePath = DefaultImagePath
	}
	return &Renderer{
		sel:  sel,
		opts: opts,
		tmpl: newTemplates(goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		)),
	}
}

// RenderPage parses page, renders doc into it and returns the resulting HTML.
func (r *Renderer) RenderPage(page []byte, doc *models.Document) ([]byte, error) {
	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	if err := r.RenderAll(dom, doc); err != nil {
		return nil, err
	}
	out, err := dom.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize page: %w", err)
	}
	return []byte(out), nil
}

// RenderAll renders all five views and, if configured, the admin link.
func (r *Renderer) RenderAll(page *goquery.Document, doc *models.Document) error {
	steps := []func(*goquery.Document, *models.Document) error{
		r.RenderMenu,
		r.RenderAnnouncements,
		r.RenderHours,
		r.RenderSocialLinks,
		r.RenderOrderingLinks,
	}
	for _, step := range steps {
		if err := step(page, doc); err != nil {
			return err
		}
	}
	return r.addAdminLink(page)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf strings.Builder
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// fill replaces the contents of every element matching selector.
func fill(page *goquery.Document, selector, html string) {
	page.Find(selector).Each(func(_ int, s *goquery.Selection) {
		s.SetHtml(html)
	})
}

// MenuItemHTML renders one menu item card, including the status block for
// unavailable items.
func (r *Renderer) MenuItemHTML(item models.MenuItem) (string, error) {
	return r.execute("menuItem", struct {
		Item         models.MenuItem
		DefaultImage string
	}{item, r.opts.DefaultImagePath})
}

func (r *Renderer) RenderMenu(page *goquery.Document, doc *models.Document) error {
	containers := page.Find(r.sel.Menu)
	if containers.Length() == 0 || doc.MenuItems == nil {
		return nil
	}

	var html strings.Builder
	for _, item := range doc.MenuItems {
		if !item.Available && !r.opts.ShowUnavailable {
			continue
		}
		card, err := r.MenuItemHTML(item)
		if err != nil {
			return err
		}
		html.WriteString(card)
	}
	fill(page, r.sel.Menu, html.String())

	return r.addCategoryFilters(page, doc)
}

// addCategoryFilters inserts filter buttons before the first menu container
// unless the page already has a filter bar.
func (r *Renderer) addCategoryFilters(page *goquery.Document, doc *models.Document) error {
	if page.Find(filterContainers).Length() > 0 || doc.Categories == nil {
		return nil
	}
	html, err := r.execute("filters", doc.Categories)
	if err != nil {
		return err
	}
	page.Find(r.sel.Menu).First().BeforeHtml(html)
	return nil
}

// FilterMenuByCategory hides menu items outside category ("all" shows every
// item) and marks the matching filter button active.
func FilterMenuByCategory(page *goquery.Document, category string) {
	page.Find(".menu-item[data-category]").Each(func(_ int, s *goquery.Selection) {
		if category == "all" || s.AttrOr("data-category", "") == category {
			s.RemoveAttr("style")
		} else {
			s.SetAttr("style", "display: none")
		}
	})

	buttons := page.Find(filterContainers).Find(".cms-filter-btn, [data-category]")
	buttons.RemoveClass("active")
	buttons.Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("data-category", "") == category {
			s.AddClass("active")
		}
	})
}

// RenderAnnouncements shows active announcements. With none active the
// containers keep whatever they had.
func (r *Renderer) RenderAnnouncements(page *goquery.Document, doc *models.Document) error {
	if page.Find(r.sel.Announcements).Length() == 0 {
		return nil
	}

	var active []models.Announcement
	for _, ann := range doc.Announcements {
		if ann.Active {
			active = append(active, ann)
		}
	}
	if len(active) == 0 {
		return nil
	}

	html, err := r.execute("announcements", active)
	if err != nil {
		return err
	}
	fill(page, r.sel.Announcements, html)
	return nil
}

func (r *Renderer) RenderHours(page *goquery.Document, doc *models.Document) error {
	if page.Find(r.sel.Hours).Length() == 0 {
		return nil
	}
	html, err := r.execute("hours", doc.Info.Hours.Entries())
	if err != nil {
		return err
	}
	fill(page, r.sel.Hours, html)
	return nil
}

func nonEmpty(entries []models.Entry) []models.Entry {
	var out []models.Entry
	for _, e := range entries {
		if e.Value != "" {
			out = append(out, e)
		}
	}
	return out
}

// RenderSocialLinks lists the platforms that have a URL. With none set the
// containers are emptied.
func (r *Renderer) RenderSocialLinks(page *goquery.Document, doc *models.Document) error {
	links := nonEmpty(doc.Info.SocialLinks.Entries())
	if page.Find(r.sel.Social).Length() == 0 {
		return nil
	}
	html, err := r.execute("social", links)
	if err != nil {
		return err
	}
	fill(page, r.sel.Social, html)
	return nil
}

// RenderOrderingLinks lists the delivery platforms that have a URL. With none
// set the containers hold an empty grid.
func (r *Renderer) RenderOrderingLinks(page *goquery.Document, doc *models.Document) error {
	links := nonEmpty(doc.OrderingLinks.Entries())
	if page.Find(r.sel.Ordering).Length() == 0 {
		return nil
	}
	html, err := r.execute("ordering", links)
	if err != nil {
		return err
	}
	fill(page, r.sel.Ordering, html)
	return nil
}

func (r *Renderer) addAdminLink(page *goquery.Document) error {
	if r.opts.AdminURL == "" || page.Find(".cms-admin-link").Length() > 0 {
		return nil
	}
	html, err := r.execute("adminLink", r.opts.AdminURL)
	if err != nil {
		return err
	}
	page.Find("body").AppendHtml(html)
	return nil
}
