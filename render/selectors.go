package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors address the containers each view is written into. Each value is
// a CSS selector group; every matching element receives the view.
type Selectors struct {
	Menu          string `yaml:"menu"`
	Announcements string `yaml:"announcements"`
	Hours         string `yaml:"hours"`
	Social        string `yaml:"social"`
	Ordering      string `yaml:"ordering"`
}

// filterContainers are the elements treated as an existing category filter bar.
const filterContainers = ".menu-filters, .category-filters, .cms-menu-filters"

func DefaultSelectors() Selectors {
	return Selectors{
		Menu:          "#menu-container, .menu-items, #menu-grid, .menu-list",
		Announcements: "#announcements, .announcements, #news",
		Hours:         "#hours, .hours, #restaurant-hours",
		Social:        "#social-links, .social-media, #social",
		Ordering:      "#ordering-links, .delivery-links, #delivery",
	}
}

// LoadSelectors reads selector overrides from a YAML file. Keys the file
// leaves out keep their defaults; an empty path returns the defaults.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("failed to read selectors: %w", err)
	}

	var override Selectors
	if err := yaml.Unmarshal(data, &override); err != nil {
		return sel, fmt.Errorf("failed to parse selectors %s: %w", path, err)
	}

	if override.Menu != "" {
		sel.Menu = override.Menu
	}
	if override.Announcements != "" {
		sel.Announcements = override.Announcements
	}
	if override.Hours != "" {
		sel.Hours = override.Hours
	}
	if override.Social != "" {
		sel.Social = override.Social
	}
	if override.Ordering != "" {
		sel.Ordering = override.Ordering
	}
	return sel, nil
}
