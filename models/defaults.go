package models

var DefaultCategories = []string{"Appetizer", "Soup", "Main Dish", "Biryani", "Chicken", "Vegetarian", "Dessert", "Beverages"}

func defaultHours() Hours {
	return Hours{
		Monday:    "11:00 AM - 9:00 PM",
		Tuesday:   "11:00 AM - 9:00 PM",
		Wednesday: "11:00 AM - 9:00 PM",
		Thursday:  "11:00 AM - 9:00 PM",
		Friday:    "11:00 AM - 11:00 PM",
		Saturday:  "11:00 AM - 10:00 PM",
		Sunday:    "12:00 PM - 9:00 PM",
	}
}

// DefaultDocument is the document seeded when nothing has been saved yet.
func DefaultDocument() *Document {
	return &Document{
		Info: Info{
			Name:    "Milford India Spice",
			Tagline: "Authentic Indian Cuisine",
			Phone:   "(508) 478-5800",
			Address: "123 Main Street, Milford, MA 01757",
			Email:   "info@milfordindispice.com",
			Hours:   defaultHours(),
		},
		MenuItems:     []MenuItem{},
		Categories:    append([]string{}, DefaultCategories...),
		Announcements: []Announcement{},
	}
}

// FallbackDocument is what the site renders when no data source answers,
// so the page is never left blank.
func FallbackDocument() *Document {
	return &Document{
		Info: Info{
			Name:    "Milford India Spice",
			Tagline: "Authentic Indian Cuisine",
			Phone:   "(508) 478-5800",
			Hours:   defaultHours(),
		},
		MenuItems:     []MenuItem{},
		Announcements: []Announcement{},
	}
}
