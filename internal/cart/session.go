package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/JordaoGustavo/Whatsfood/internal/models"
)

// Session is the state owned by one storefront visitor: their cart and the
// customer details they have filled in so far. Each session has exactly one
// logical writer; all mutation goes through the cart and customer operations.
type Session struct {
	ID        string              `json:"id"`
	Cart      Cart                `json:"cart"`
	Customer  models.CustomerInfo `json:"customer"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewSession creates an empty session with a fresh ID.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
