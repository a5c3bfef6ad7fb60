package render

import (
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"restaurant-cms/actions"
	"restaurant-cms/models"
)

const testPage = `<!DOCTYPE html>
<html><head><title>Milford India Spice</title></head><body>
<section class="menu"><div id="menu-container"><p class="static">Loading menu</p></div></section>
<div class="announcements"><p class="old">Old news</p></div>
<div id="hours"></div>
<div id="social"></div>
<div id="delivery"></div>
</body></html>`

func parsePage(t *testing.T, html string) *goquery.Document {
	t.Helper()
	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	return page
}

func newRenderer() *Renderer {
	return New(DefaultSelectors(), Options{})
}

func sampleDocument() *models.Document {
	doc := models.DefaultDocument()
	doc.MenuItems = []models.MenuItem{
		{ID: 1, Name: "Samosa", Price: 5.5, Category: "Appetizer", Available: true, AvailabilityStatus: models.StatusAvailable, IsVegetarian: true, PreparationTime: "10 mins"},
		{ID: 2, Name: "Vindaloo", Price: 16, Category: "Main Dish", Available: true, AvailabilityStatus: models.StatusAvailable, IsSpicy: true},
		{ID: 3, Name: "Mango Lassi", Price: 4, Category: "Beverages", Available: false, AvailabilityStatus: models.StatusOutOfStock, UnavailableReason: "Out of mangoes"},
	}
	return doc
}

func TestStatusLabel(t *testing.T) {
	tests := map[models.AvailabilityStatus]string{
		models.StatusOutOfStock:             "Out of Stock",
		models.StatusSeasonal:               "Seasonal",
		models.StatusTemporarilyUnavailable: "Temporarily Unavailable",
		models.StatusAvailable:              "Unavailable",
		"discontinued":                      "Unavailable",
		"":                                  "Unavailable",
	}
	for status, want := range tests {
		if got := StatusLabel(status); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestMenuItemHTMLStatusBlock(t *testing.T) {
	r := newRenderer()

	html, err := r.MenuItemHTML(models.MenuItem{
		Name:               "Lamb Biryani",
		Price:              18,
		Available:          false,
		AvailabilityStatus: models.StatusOutOfStock,
		UnavailableReason:  "Supplier delay",
		EstimatedBackDate:  "2024-03-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Out of Stock", "cms-status-out-of-stock", "cms-unavailable", "Supplier delay", "Expected: Mar 15, 2024", "$18.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in %s", want, html)
		}
	}

	html, err = r.MenuItemHTML(models.MenuItem{Name: "Kulfi", Available: false, AvailabilityStatus: "melted"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, ">Unavailable<") {
		t.Errorf("expected fallback label, got %s", html)
	}
}

func TestMenuItemHTMLAvailable(t *testing.T) {
	html, err := newRenderer().MenuItemHTML(models.MenuItem{
		Name:            "Paneer Tikka",
		Price:           12.5,
		Available:       true,
		IsSpicy:         true,
		IsVegetarian:    true,
		PreparationTime: "20 mins",
		Image:           "https://cdn.example.com/paneer.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "cms-stock-status") {
		t.Errorf("available item should have no status block: %s", html)
	}
	for _, want := range []string{"$12.50", "cms-spicy", "cms-vegetarian", "⏱️ 20 mins", `src="https://cdn.example.com/paneer.jpg"`} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in %s", want, html)
		}
	}
}

func TestMenuItemHTMLEscapesContent(t *testing.T) {
	html, err := newRenderer().MenuItemHTML(models.MenuItem{Name: "<b>Naan</b>", Available: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<b>") {
		t.Errorf("expected item name to be escaped: %s", html)
	}
}

func TestRenderMenuHidesUnavailable(t *testing.T) {
	page := parsePage(t, testPage)
	if err := newRenderer().RenderMenu(page, sampleDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := page.Find("#menu-container .menu-item")
	if items.Length() != 2 {
		t.Fatalf("expected 2 items, got %d", items.Length())
	}
	if page.Find(".static").Length() != 0 {
		t.Error("expected container contents to be replaced")
	}
	if strings.Contains(page.Find("#menu-container").Text(), "Mango Lassi") {
		t.Error("unavailable item should be hidden")
	}
}

func TestRenderMenuShowUnavailable(t *testing.T) {
	page := parsePage(t, testPage)
	r := New(DefaultSelectors(), Options{ShowUnavailable: true})
	if err := r.RenderMenu(page, sampleDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := page.Find(".menu-item").Length(); n != 3 {
		t.Fatalf("expected 3 items, got %d", n)
	}
	if page.Find(".cms-stock-status .cms-status-badge").Text() != "Out of Stock" {
		t.Error("expected status badge for the unavailable item")
	}
}

func TestCategoryFiltersInserted(t *testing.T) {
	page := parsePage(t, testPage)
	if err := newRenderer().RenderMenu(page, sampleDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bar := page.Find("#menu-container").Prev()
	if !bar.HasClass("cms-menu-filters") {
		t.Fatal("expected filter bar before the menu container")
	}
	buttons := bar.Find(".cms-filter-btn")
	if buttons.Length() != len(models.DefaultCategories)+1 {
		t.Errorf("expected %d buttons, got %d", len(models.DefaultCategories)+1, buttons.Length())
	}
	first := buttons.First()
	if first.Text() != "All" || !first.HasClass("active") || first.AttrOr("data-category", "") != "all" {
		t.Errorf("unexpected first button: %s", first.Text())
	}
}

func TestCategoryFiltersRespectExisting(t *testing.T) {
	html := strings.Replace(testPage, `<section class="menu">`, `<section class="menu"><div class="menu-filters"><button data-category="all">Everything</button></div>`, 1)
	page := parsePage(t, html)
	if err := newRenderer().RenderMenu(page, sampleDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Find(".cms-menu-filters").Length() != 0 {
		t.Error("existing filter bar should prevent insertion")
	}

	doc := sampleDocument()
	doc.Categories = nil
	page = parsePage(t, testPage)
	if err := newRenderer().RenderMenu(page, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Find(".cms-menu-filters").Length() != 0 {
		t.Error("no categories should mean no filter bar")
	}
}

func TestFilterMenuByCategory(t *testing.T) {
	page := parsePage(t, testPage)
	if err := newRenderer().RenderMenu(page, sampleDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	FilterMenuByCategory(page, "Appetizer")
	page.Find(".menu-item").Each(func(_ int, s *goquery.Selection) {
		hidden := s.AttrOr("style", "") == "display: none"
		if appetizer := s.AttrOr("data-category", "") == "Appetizer"; hidden == appetizer {
			t.Errorf("item in %s: hidden=%v", s.AttrOr("data-category", ""), hidden)
		}
	})
	active := page.Find(".cms-filter-btn.active")
	if active.Length() != 1 || active.AttrOr("data-category", "") != "Appetizer" {
		t.Errorf("expected Appetizer button active, got %q", active.Text())
	}

	FilterMenuByCategory(page, "all")
	if page.Find(".menu-item[style]").Length() != 0 {
		t.Error("all should show every item")
	}
}

func TestRenderAnnouncements(t *testing.T) {
	doc := sampleDocument()
	doc.Announcements = []models.Announcement{
		{ID: 1, Title: "Diwali Special", Content: "**Half off** all sweets", Active: true, Priority: models.PriorityHigh, ExpiryDate: "2024-11-05"},
		{ID: 2, Title: "Hidden", Content: "draft", Active: false, Priority: models.PriorityLow},
		{ID: 3, Title: "Careful", Content: "<script>alert(1)</script>", Active: true, Priority: models.PriorityMedium},
	}

	page := parsePage(t, testPage)
	if err := newRenderer().RenderAnnouncements(page, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	anns := page.Find(".announcements .cms-announcement")
	if anns.Length() != 2 {
		t.Fatalf("expected 2 active announcements, got %d", anns.Length())
	}
	first := anns.First()
	if !first.HasClass("cms-priority-high") {
		t.Error("expected priority class")
	}
	if first.Find("strong").Text() != "Half off" {
		t.Error("expected markdown to be rendered")
	}
	if first.Find("small").Text() != "Valid until: Nov 5, 2024" {
		t.Errorf("unexpected expiry text %q", first.Find("small").Text())
	}
	if page.Find(".announcements script").Length() != 0 {
		t.Error("raw HTML in content must not be rendered")
	}
}

func TestRenderAnnouncementsNoneActive(t *testing.T) {
	doc := sampleDocument()
	doc.Announcements = []models.Announcement{{ID: 1, Title: "Off", Active: false}}

	page := parsePage(t, testPage)
	if err := newRenderer().RenderAnnouncements(page, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Find(".announcements .old").Length() != 1 {
		t.Error("containers should be untouched when nothing is active")
	}
}

func TestRenderHours(t *testing.T) {
	page := parsePage(t, testPage)
	if err := newRenderer().RenderHours(page, sampleDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := page.Find("#hours .cms-hours-list .cms-day")
	if days.Length() != 7 {
		t.Fatalf("expected 7 days, got %d", days.Length())
	}
	want := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	days.Each(func(i int, s *goquery.Selection) {
		if s.Text() != want[i] {
			t.Errorf("day %d: got %q, want %q", i, s.Text(), want[i])
		}
	})

	doc := sampleDocument()
	doc.Info.Hours = models.Hours{}
	page = parsePage(t, testPage)
	if err := newRenderer().RenderHours(page, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Find("#hours .cms-hours-item").Length() != 7 {
		t.Errorf("expected 7 empty hour rows, got %d", page.Find("#hours .cms-hours-item").Length())
	}
	page.Find("#hours .cms-hours").Each(func(i int, s *goquery.Selection) {
		if s.Text() != "" {
			t.Errorf("row %d: expected empty hours, got %q", i, s.Text())
		}
	})
}

func TestRenderLinks(t *testing.T) {
	doc := sampleDocument()
	doc.Info.SocialLinks = models.SocialLinks{Instagram: "https://instagram.com/milford", TikTok: "https://tiktok.com/@milford"}
	doc.OrderingLinks = models.OrderingLinks{UberEats: "https://ubereats.com/milford", Website: "https://milford.example.com/order"}

	page := parsePage(t, testPage)
	r := newRenderer()
	if err := r.RenderSocialLinks(page, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.RenderOrderingLinks(page, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	social := page.Find("#social .cms-social-link")
	if social.Length() != 2 {
		t.Fatalf("expected 2 social links, got %d", social.Length())
	}
	if !social.First().HasClass("cms-instagram") || !strings.Contains(social.First().Text(), "📷 Instagram") {
		t.Errorf("unexpected first social link %q", social.First().Text())
	}
	if !strings.Contains(social.Last().Text(), "🎵 Tiktok") {
		t.Errorf("unexpected last social link %q", social.Last().Text())
	}

	ordering := page.Find("#delivery .cms-ordering-grid .cms-ordering-link")
	if ordering.Length() != 2 {
		t.Fatalf("expected 2 ordering links, got %d", ordering.Length())
	}
	if ordering.First().Find(".cms-platform-name").Text() != "Ubereats" {
		t.Errorf("unexpected platform name %q", ordering.First().Find(".cms-platform-name").Text())
	}
	if href, _ := ordering.Last().Attr("href"); href != "https://milford.example.com/order" {
		t.Errorf("unexpected href %q", href)
	}
}

func TestEmptyViewsReplaceExistingMarkup(t *testing.T) {
	const staticPage = `<html><body>
<div id="hours"><p>Mon-Fri 9-5</p></div>
<div id="social"><a href="https://facebook.com/old">Old Facebook</a></div>
<div id="delivery"><a href="https://grubhub.com/old">Old Grubhub</a></div>
</body></html>`

	doc := models.DefaultDocument()
	doc.Info.Hours = models.Hours{}
	out, err := newRenderer().RenderPage([]byte(staticPage), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(out)
	for _, stale := range []string{"Mon-Fri 9-5", "Old Facebook", "Old Grubhub"} {
		if strings.Contains(html, stale) {
			t.Errorf("expected %q to be replaced", stale)
		}
	}

	page := parsePage(t, html)
	if page.Find("#hours .cms-hours-item").Length() != 7 {
		t.Errorf("expected 7 hour rows, got %d", page.Find("#hours .cms-hours-item").Length())
	}
	if page.Find("#social").Children().Length() != 0 {
		t.Error("expected social container to be emptied")
	}
	grid := page.Find("#delivery .cms-ordering-grid")
	if grid.Length() != 1 || grid.Children().Length() != 0 {
		t.Errorf("expected one empty ordering grid, got %d grids", grid.Length())
	}
}

func TestSocialIconFallback(t *testing.T) {
	if socialIcon("myspace") != "🔗" {
		t.Error("expected fallback icon")
	}
	if socialIcon("facebook") != "📘" {
		t.Error("expected facebook icon")
	}
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2024-03-15":           "Mar 15, 2024",
		"2024-12-01T10:00:00Z": "Dec 1, 2024",
		"next Tuesday":         "next Tuesday",
	}
	for in, want := range tests {
		if got := formatDate(in); got != want {
			t.Errorf("formatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderAllWithoutContainers(t *testing.T) {
	const bare = `<html><head></head><body><main><p>Nothing here</p></main></body></html>`
	out, err := newRenderer().RenderPage([]byte(bare), sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := parsePage(t, string(out))
	if page.Find("main p").Text() != "Nothing here" || page.Find(".cms-menu-filters").Length() != 0 {
		t.Errorf("page should be unchanged, got %s", out)
	}
}

func TestAdminLink(t *testing.T) {
	r := New(DefaultSelectors(), Options{AdminURL: "/admin"})
	out, err := r.RenderPage([]byte(testPage), sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err = r.RenderPage(out, sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	links := parsePage(t, string(out)).Find("body > .cms-admin-link")
	if links.Length() != 1 {
		t.Fatalf("expected exactly one admin link, got %d", links.Length())
	}
	if href, _ := links.Attr("href"); href != "/admin" {
		t.Errorf("unexpected href %q", href)
	}
}

func TestAdminLinkTemplateErrorIsReturned(t *testing.T) {
	r := New(DefaultSelectors(), Options{AdminURL: "/admin"})
	r.tmpl = template.Must(template.New("empty").Parse(""))

	page := parsePage(t, `<html><body><p>No containers</p></body></html>`)
	if err := r.RenderAll(page, sampleDocument()); err == nil {
		t.Fatal("expected admin link render error")
	}
	if _, err := r.RenderPage([]byte(`<html><body></body></html>`), sampleDocument()); err == nil {
		t.Fatal("expected RenderPage to surface the admin link error")
	}
}

func TestLoadSelectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	if err := os.WriteFile(path, []byte("menu: \"#dishes\"\nhours: \".opening-times\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write selectors: %v", err)
	}

	sel, err := LoadSelectors(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Menu != "#dishes" || sel.Hours != ".opening-times" {
		t.Errorf("overrides not applied: %+v", sel)
	}
	if sel.Social != DefaultSelectors().Social {
		t.Errorf("missing keys should keep defaults, got %q", sel.Social)
	}

	if _, err := LoadSelectors(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if sel, err := LoadSelectors(""); err != nil || sel != DefaultSelectors() {
		t.Error("empty path should return defaults")
	}
}

// A freshly added item shows in the full menu and is hidden by an
// Appetizer filter.
func TestAddedItemRendersAndFilters(t *testing.T) {
	doc := models.DefaultDocument()
	in, ok := actions.Parse("add_menu_item", url.Values{
		"item_name":     {"Chicken Tikka"},
		"item_price":    {"14.99"},
		"item_category": {"Main Dish"},
	})
	if !ok {
		t.Fatal("add_menu_item should be a known action")
	}
	updated := actions.Apply(*doc, in, actions.NewIDGenerator())

	if len(updated.MenuItems) != 1 {
		t.Fatalf("expected 1 menu item, got %d", len(updated.MenuItems))
	}
	item := updated.MenuItems[0]
	if item.Price != 14.99 || !item.Available || item.AvailabilityStatus != models.StatusAvailable {
		t.Fatalf("unexpected item %+v", item)
	}

	page := parsePage(t, testPage)
	if err := newRenderer().RenderAll(page, &updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	card := page.Find(`.menu-item[data-category="Main Dish"]`)
	if card.Length() != 1 || card.Find(".item-name").Text() != "Chicken Tikka" {
		t.Fatalf("expected Chicken Tikka card, got %q", card.Text())
	}
	if _, hidden := card.Attr("style"); hidden {
		t.Error("item should be visible in the all view")
	}

	FilterMenuByCategory(page, "Appetizer")
	if card.AttrOr("style", "") != "display: none" {
		t.Error("item should be hidden under the Appetizer filter")
	}
}
