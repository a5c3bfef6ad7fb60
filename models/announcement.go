package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Announcement is shown on the site while Active. ExpiryDate is informational
// only; nothing deactivates an announcement once it passes.
type Announcement struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Active     bool     `json:"active"`
	Priority   Priority `json:"priority"`
	ExpiryDate string   `json:"expiryDate"`
}
