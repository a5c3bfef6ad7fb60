package actions

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"restaurant-cms/models"
)

var (
	floatPrefix = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^\s*[+-]?\d+`)
)

// parseFloat reads the longest numeric prefix of s. Anything unreadable is 0.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(floatPrefix.FindString(s)), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt reads the longest integer prefix of s. Anything unreadable is 0.
func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(intPrefix.FindString(s)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// value returns the submitted value for key, or def when the key was not sent
// at all. A key sent empty stays empty.
func value(form url.Values, key, def string) string {
	if vals, ok := form[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return def
}

// present follows checkbox semantics: sent with any value means checked.
func present(form url.Values, key string) bool {
	_, ok := form[key]
	return ok
}

func parseSaveInfo(form url.Values) SaveInfoInput {
	in := SaveInfoInput{
		Name:    form.Get("name"),
		Tagline: form.Get("tagline"),
		Phone:   form.Get("phone"),
		Address: form.Get("address"),
		Email:   form.Get("email"),
	}
	for _, day := range models.Weekdays {
		in.Hours.Set(day, form.Get("hours_"+day))
	}
	for _, platform := range models.SocialPlatforms {
		in.SocialLinks.Set(platform, form.Get("social_"+platform))
	}
	return in
}

func parseAddMenuItem(form url.Values) AddMenuItemInput {
	price := parseFloat(form.Get("item_price"))
	if price < 0 {
		price = 0
	}
	return AddMenuItemInput{
		Name:            form.Get("item_name"),
		Price:           price,
		Description:     form.Get("item_description"),
		Category:        value(form, "item_category", "Main Dish"),
		IsSpicy:         present(form, "item_spicy"),
		IsVegetarian:    present(form, "item_vegetarian"),
		Allergens:       form.Get("item_allergens"),
		PreparationTime: value(form, "item_prep_time", "15-20 mins"),
	}
}

func parseUpdateStock(form url.Values) UpdateStockInput {
	return UpdateStockInput{
		ItemID:            parseInt(form.Get("item_id")),
		Available:         form.Get("available") == "true",
		Status:            models.AvailabilityStatus(value(form, "status", string(models.StatusAvailable))),
		Reason:            form.Get("reason"),
		EstimatedBackDate: form.Get("back_date"),
	}
}

func parseAddAnnouncement(form url.Values) AddAnnouncementInput {
	return AddAnnouncementInput{
		Title:      form.Get("ann_title"),
		Content:    form.Get("ann_content"),
		Active:     present(form, "ann_active"),
		Priority:   models.Priority(value(form, "ann_priority", string(models.PriorityMedium))),
		ExpiryDate: form.Get("ann_expiry"),
	}
}

func parseUpdateOrdering(form url.Values) UpdateOrderingInput {
	var in UpdateOrderingInput
	for _, platform := range models.OrderingPlatforms {
		in.Links.Set(platform, form.Get("ordering_"+platform))
	}
	return in
}
