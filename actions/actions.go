// Package actions turns admin form submissions into document mutations.
//
// Form values are parsed once, at the boundary, into a typed input per
// action. Applying an input never touches the document passed in; it returns
// the mutated copy and leaves persistence to the caller.
package actions

import (
	"net/url"

	"restaurant-cms/models"
)

type Action string

const (
	SaveInfo        Action = "save_info"
	AddMenuItem     Action = "add_menu_item"
	UpdateStock     Action = "update_stock"
	DeleteMenuItem  Action = "delete_menu_item"
	AddAnnouncement Action = "add_announcement"
	UpdateOrdering  Action = "update_ordering"
)

var messages = map[Action]string{
	SaveInfo:        "Restaurant information updated successfully!",
	AddMenuItem:     "Menu item added successfully!",
	UpdateStock:     "Stock status updated successfully!",
	DeleteMenuItem:  "Menu item deleted successfully!",
	AddAnnouncement: "Announcement added successfully!",
	UpdateOrdering:  "Ordering links updated successfully!",
}

// Message is the confirmation shown after action ran. Unknown actions have none.
func Message(action Action) string {
	return messages[action]
}

// Input is the parsed form of one action.
type Input interface {
	Action() Action
	apply(doc *models.Document, ids *IDGenerator)
}

// Parse reads the form for action. It reports false for unknown actions.
func Parse(action string, form url.Values) (Input, bool) {
	switch Action(action) {
	case SaveInfo:
		return parseSaveInfo(form), true
	case AddMenuItem:
		return parseAddMenuItem(form), true
	case UpdateStock:
		return parseUpdateStock(form), true
	case DeleteMenuItem:
		return DeleteMenuItemInput{ItemID: parseInt(form.Get("item_id"))}, true
	case AddAnnouncement:
		return parseAddAnnouncement(form), true
	case UpdateOrdering:
		return parseUpdateOrdering(form), true
	}
	return nil, false
}

// Apply returns a copy of doc with in applied.
func Apply(doc models.Document, in Input, ids *IDGenerator) models.Document {
	out := doc.Clone()
	in.apply(&out, ids)
	return out
}

type SaveInfoInput struct {
	Name        string
	Tagline     string
	Phone       string
	Address     string
	Email       string
	Hours       models.Hours
	SocialLinks models.SocialLinks
}

func (SaveInfoInput) Action() Action { return SaveInfo }

func (in SaveInfoInput) apply(doc *models.Document, _ *IDGenerator) {
	doc.Info = models.Info{
		Name:        in.Name,
		Tagline:     in.Tagline,
		Phone:       in.Phone,
		Address:     in.Address,
		Email:       in.Email,
		Hours:       in.Hours,
		SocialLinks: in.SocialLinks,
	}
}

type AddMenuItemInput struct {
	Name            string
	Price           float64
	Description     string
	Category        string
	IsSpicy         bool
	IsVegetarian    bool
	Allergens       string
	PreparationTime string
}

func (AddMenuItemInput) Action() Action { return AddMenuItem }

func (in AddMenuItemInput) apply(doc *models.Document, ids *IDGenerator) {
	taken := make([]int64, len(doc.MenuItems))
	for i, item := range doc.MenuItems {
		taken[i] = item.ID
	}

	doc.MenuItems = append(doc.MenuItems, models.MenuItem{
		ID:                 ids.Next(taken),
		Name:               in.Name,
		Price:              in.Price,
		Description:        in.Description,
		Category:           in.Category,
		Available:          true,
		AvailabilityStatus: models.StatusAvailable,
		IsSpicy:            in.IsSpicy,
		IsVegetarian:       in.IsVegetarian,
		Allergens:          in.Allergens,
		PreparationTime:    in.PreparationTime,
	})
}

type UpdateStockInput struct {
	ItemID            int64
	Available         bool
	Status            models.AvailabilityStatus
	Reason            string
	EstimatedBackDate string
}

func (UpdateStockInput) Action() Action { return UpdateStock }

// apply updates the first item with the id; a missing id changes nothing.
func (in UpdateStockInput) apply(doc *models.Document, _ *IDGenerator) {
	for i := range doc.MenuItems {
		if doc.MenuItems[i].ID != in.ItemID {
			continue
		}
		doc.MenuItems[i].Available = in.Available
		doc.MenuItems[i].AvailabilityStatus = in.Status
		doc.MenuItems[i].UnavailableReason = in.Reason
		doc.MenuItems[i].EstimatedBackDate = in.EstimatedBackDate
		return
	}
}

type DeleteMenuItemInput struct {
	ItemID int64
}

func (DeleteMenuItemInput) Action() Action { return DeleteMenuItem }

func (in DeleteMenuItemInput) apply(doc *models.Document, _ *IDGenerator) {
	kept := make([]models.MenuItem, 0, len(doc.MenuItems))
	for _, item := range doc.MenuItems {
		if item.ID != in.ItemID {
			kept = append(kept, item)
		}
	}
	doc.MenuItems = kept
}

type AddAnnouncementInput struct {
	Title      string
	Content    string
	Active     bool
	Priority   models.Priority
	ExpiryDate string
}

func (AddAnnouncementInput) Action() Action { return AddAnnouncement }

func (in AddAnnouncementInput) apply(doc *models.Document, ids *IDGenerator) {
	taken := make([]int64, len(doc.Announcements))
	for i, ann := range doc.Announcements {
		taken[i] = ann.ID
	}

	doc.Announcements = append(doc.Announcements, models.Announcement{
		ID:         ids.Next(taken),
		Title:      in.Title,
		Content:    in.Content,
		Active:     in.Active,
		Priority:   in.Priority,
		ExpiryDate: in.ExpiryDate,
	})
}

type UpdateOrderingInput struct {
	Links models.OrderingLinks
}

func (UpdateOrderingInput) Action() Action { return UpdateOrdering }

func (in UpdateOrderingInput) apply(doc *models.Document, _ *IDGenerator) {
	doc.OrderingLinks = in.Links
}
