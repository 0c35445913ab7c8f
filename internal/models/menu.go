package models

// MenuItem is a purchasable catalog entry. The catalog is read-only input:
// items are supplied once and never mutated by the storefront.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Category    string `json:"category"`
}
