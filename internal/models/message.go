package models

import "time"

// OrderComposedLine is one cart line inside a composed-order event.
type OrderComposedLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Subtotal Money  `json:"subtotal"`
}

// OrderComposedMessage is published to the orders exchange whenever a valid
// order has been serialized into a deep link. It is fire-and-forget: the
// storefront does not wait for or observe downstream consumers.
type OrderComposedMessage struct {
	SessionID     string              `json:"session_id"`
	CustomerName  string              `json:"customer_name"`
	Address       string              `json:"address"`
	PaymentMethod string              `json:"payment_method"`
	PhoneNumber   string              `json:"phone_number"`
	Recipient     string              `json:"recipient"` // digits-only phone used in the deep link
	Lines         []OrderComposedLine `json:"lines"`
	TotalAmount   Money               `json:"total_amount"`
	DeepLink      string              `json:"deep_link"`
	ComposedAt    time.Time           `json:"composed_at"`
}
