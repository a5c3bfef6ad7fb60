package models

// Document is the single record holding all restaurant content.
type Document struct {
	Info          Info           `json:"info"`
	MenuItems     []MenuItem     `json:"menuItems"`
	Categories    []string       `json:"categories"`
	Announcements []Announcement `json:"announcements"`
	OrderingLinks OrderingLinks  `json:"orderingLinks"`
}

type Info struct {
	Name        string      `json:"name"`
	Tagline     string      `json:"tagline"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	Email       string      `json:"email"`
	Hours       Hours       `json:"hours"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// Entry is one key of a fixed-key mapping, in serialization order.
type Entry struct {
	Key   string
	Value string
}

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type Hours struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

func (h Hours) Entries() []Entry {
	return []Entry{
		{"monday", h.Monday},
		{"tuesday", h.Tuesday},
		{"wednesday", h.Wednesday},
		{"thursday", h.Thursday},
		{"friday", h.Friday},
		{"saturday", h.Saturday},
		{"sunday", h.Sunday},
	}
}

// Set assigns the hours for day. Unknown days are ignored.
func (h *Hours) Set(day, value string) {
	switch day {
	case "monday":
		h.Monday = value
	case "tuesday":
		h.Tuesday = value
	case "wednesday":
		h.Wednesday = value
	case "thursday":
		h.Thursday = value
	case "friday":
		h.Friday = value
	case "saturday":
		h.Saturday = value
	case "sunday":
		h.Sunday = value
	}
}

var SocialPlatforms = []string{"facebook", "instagram", "twitter", "tiktok"}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	TikTok    string `json:"tiktok"`
}

func (s SocialLinks) Entries() []Entry {
	return []Entry{
		{"facebook", s.Facebook},
		{"instagram", s.Instagram},
		{"twitter", s.Twitter},
		{"tiktok", s.TikTok},
	}
}

func (s *SocialLinks) Set(platform, url string) {
	switch platform {
	case "facebook":
		s.Facebook = url
	case "instagram":
		s.Instagram = url
	case "twitter":
		s.Twitter = url
	case "tiktok":
		s.TikTok = url
	}
}

var OrderingPlatforms = []string{"ubereats", "doordash", "grubhub", "website"}

type OrderingLinks struct {
	UberEats string `json:"ubereats"`
	DoorDash string `json:"doordash"`
	Grubhub  string `json:"grubhub"`
	Website  string `json:"website"`
}

func (o OrderingLinks) Entries() []Entry {
	return []Entry{
		{"ubereats", o.UberEats},
		{"doordash", o.DoorDash},
		{"grubhub", o.Grubhub},
		{"website", o.Website},
	}
}

func (o *OrderingLinks) Set(platform, url string) {
	switch platform {
	case "ubereats":
		o.UberEats = url
	case "doordash":
		o.DoorDash = url
	case "grubhub":
		o.Grubhub = url
	case "website":
		o.Website = url
	}
}

// Clone returns a copy that shares no slices with d.
func (d *Document) Clone() Document {
	out := *d
	if d.MenuItems != nil {
		out.MenuItems = append([]MenuItem{}, d.MenuItems...)
	}
	if d.Categories != nil {
		out.Categories = append([]string{}, d.Categories...)
	}
	if d.Announcements != nil {
		out.Announcements = append([]Announcement{}, d.Announcements...)
	}
	return out
}
