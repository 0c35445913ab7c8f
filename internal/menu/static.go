package menu

import (
	"context"

	"github.com/JordaoGustavo/Whatsfood/internal/models"
)

// StaticRepository serves a fixed in-memory catalog. Used for tests and for
// running the storefront without a database.
type StaticRepository struct {
	items []models.MenuItem
}

// NewStaticRepository creates a repository over the given items.
func NewStaticRepository(items []models.MenuItem) *StaticRepository {
	return &StaticRepository{items: items}
}

// List returns the items in their original order.
func (r *StaticRepository) List(_ context.Context) ([]models.MenuItem, error) {
	return r.items, nil
}

// DefaultCatalog returns the built-in menu, matching the seed migration.
func DefaultCatalog() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Classic Burger", Description: "Beef patty, lettuce, tomato, onion, mayo", Price: 1299, Category: "Burgers"},
		{ID: "2", Name: "Cheeseburger", Description: "Beef patty, cheese, lettuce, tomato, onion, mayo", Price: 1499, Category: "Burgers"},
		{ID: "3", Name: "Bacon Burger", Description: "Beef patty, bacon, cheese, lettuce, tomato, onion", Price: 1699, Category: "Burgers"},
		{ID: "4", Name: "Margherita Pizza", Description: "Tomato sauce, mozzarella, fresh basil", Price: 1899, Category: "Pizza"},
		{ID: "5", Name: "Pepperoni Pizza", Description: "Tomato sauce, mozzarella, pepperoni", Price: 2299, Category: "Pizza"},
		{ID: "6", Name: "Vegetarian Pizza", Description: "Tomato sauce, mozzarella, bell peppers, mushrooms, olives", Price: 2099, Category: "Pizza"},
		{ID: "7", Name: "Coca Cola", Description: "Classic soft drink - 350ml", Price: 399, Category: "Drinks"},
		{ID: "8", Name: "Fresh Orange Juice", Description: "Freshly squeezed orange juice - 300ml", Price: 599, Category: "Drinks"},
		{ID: "9", Name: "Iced Coffee", Description: "Cold brew coffee with ice - 400ml", Price: 499, Category: "Drinks"},
		{ID: "10", Name: "Chocolate Cake", Description: "Rich chocolate cake with chocolate frosting", Price: 799, Category: "Desserts"},
		{ID: "11", Name: "Ice Cream Sundae", Description: "Vanilla ice cream with chocolate sauce and whipped cream", Price: 699, Category: "Desserts"},
	}
}
