package menu

import (
	"context"
	"fmt"

	"github.com/JordaoGustavo/Whatsfood/internal/database"
	"github.com/JordaoGustavo/Whatsfood/internal/models"
)

// Repository supplies the catalog. Implementations must return items in
// insertion order; the storefront reads the catalog once at startup.
type Repository interface {
	List(ctx context.Context) ([]models.MenuItem, error)
}

// PostgresRepository reads the catalog from the menu_items table.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a catalog repository backed by PostgreSQL.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all menu items ordered by their seeded position.
func (r *PostgresRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, price_minor, category
		 FROM menu_items
		 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		var priceMinor int64
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &priceMinor, &item.Category); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		item.Price = models.Money(priceMinor)
		items = append(items, item)
	}

	return items, rows.Err()
}
