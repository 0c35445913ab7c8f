package menu

import "github.com/JordaoGustavo/Whatsfood/internal/models"

// CategoryAll is the sentinel label for the unrestricted catalog view.
const CategoryAll = "All"

// Categories returns the distinct category labels of the catalog, prefixed
// with the "All" sentinel. Labels keep first-seen catalog order, not sorted.
func Categories(catalog []models.MenuItem) []string {
	categories := []string{CategoryAll}
	seen := make(map[string]bool, len(catalog))

	for _, item := range catalog {
		if seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}

	return categories
}

// Filter returns the items matching the selected category, preserving catalog
// order. The "All" sentinel returns the full catalog unchanged.
func Filter(catalog []models.MenuItem, selected string) []models.MenuItem {
	if selected == CategoryAll {
		return catalog
	}

	var filtered []models.MenuItem
	for _, item := range catalog {
		if item.Category == selected {
			filtered = append(filtered, item)
		}
	}

	return filtered
}
