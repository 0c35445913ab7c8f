package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JordaoGustavo/Whatsfood/internal/cart"
	"github.com/JordaoGustavo/Whatsfood/internal/logger"
	"github.com/JordaoGustavo/Whatsfood/internal/menu"
	"github.com/JordaoGustavo/Whatsfood/internal/metrics"
	"github.com/JordaoGustavo/Whatsfood/internal/models"
	"github.com/JordaoGustavo/Whatsfood/internal/order"
)

// ErrItemNotFound is returned when an add refers to an unknown catalog item.
var ErrItemNotFound = errors.New("menu item not found")

// OrderPublisher publishes composed-order events. Satisfied by
// messaging.Publisher; nil disables publishing.
type OrderPublisher interface {
	PublishOrderComposed(ctx context.Context, msg *models.OrderComposedMessage) error
}

// Service owns the storefront flow: the read-only catalog, per-session carts
// and customer info, and order composition.
type Service struct {
	catalog   []models.MenuItem
	byID      map[string]models.MenuItem
	sessions  cart.Store
	publisher OrderPublisher
	metrics   *metrics.StorefrontMetrics
	logger    *logger.Logger
}

// NewService loads the catalog once and wires the session store, publisher
// and metrics. publisher may be nil.
func NewService(ctx context.Context, repo menu.Repository, sessions cart.Store, publisher OrderPublisher, m *metrics.StorefrontMetrics, log *logger.Logger) (*Service, error) {
	catalog, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	byID := make(map[string]models.MenuItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	return &Service{
		catalog:   catalog,
		byID:      byID,
		sessions:  sessions,
		publisher: publisher,
		metrics:   m,
		logger:    log,
	}, nil
}

// Categories returns the catalog's category labels, "All" first.
func (s *Service) Categories() []string {
	return menu.Categories(s.catalog)
}

// Menu returns the catalog filtered by category ("All" or empty returns the
// full catalog).
func (s *Service) Menu(category string) []models.MenuItem {
	if category == "" {
		category = menu.CategoryAll
	}
	return menu.Filter(s.catalog, category)
}

// CreateSession starts a new empty cart session.
func (s *Service) CreateSession(ctx context.Context) (*cart.Session, error) {
	session, err := s.sessions.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.metrics.RecordSessionStarted()
	return session, nil
}

// Session loads an existing session.
func (s *Service) Session(ctx context.Context, sessionID string) (*cart.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// AddToCart adds one unit of the catalog item to the session's cart.
func (s *Service) AddToCart(ctx context.Context, sessionID, itemID string) (*cart.Session, error) {
	item, ok := s.byID[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Cart.Add(item)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.RecordCartAdd()
	return session, nil
}

// RemoveFromCart removes one unit of the item from the session's cart.
// Removing an item that is not in the cart is a no-op, not an error.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID, itemID string) (*cart.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Cart.Remove(itemID)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.RecordCartRemove()
	return session, nil
}

// UpdateCustomer sets one customer info field, keyed by the closed field
// enumeration.
func (s *Service) UpdateCustomer(ctx context.Context, sessionID, field, value string) (*cart.Session, error) {
	parsed, err := models.ParseCustomerField(field)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Customer.Set(parsed, value); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// ComposeOrder validates the session's state and, if it passes, serializes
// the order into the deep-link payload. The session is left untouched either
// way: validation is read-only and the composed order is ephemeral.
func (s *Service) ComposeOrder(ctx context.Context, sessionID, requestID string) (*order.Composed, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := order.Validate(&session.Cart, session.Customer); err != nil {
		s.metrics.RecordValidationFailure(validationRule(err))
		return nil, err
	}

	ord := order.NewOrder(&session.Cart, session.Customer)
	composed := order.Compose(ord)

	s.metrics.RecordOrderComposed(float64(ord.Total) / 100)
	s.logger.Info("order_composed", "Order composed", requestID, map[string]interface{}{
		"session_id":   session.ID,
		"total_amount": ord.Total.String(),
		"line_count":   len(ord.Lines),
	})

	s.publishComposed(ctx, session, ord, composed, requestID)

	return &composed, nil
}

// publishComposed emits the composed-order event. Fire-and-forget: failures
// are logged, never surfaced to the customer.
func (s *Service) publishComposed(ctx context.Context, session *cart.Session, ord order.Order, composed order.Composed, requestID string) {
	if s.publisher == nil {
		return
	}

	lines := make([]models.OrderComposedLine, 0, len(ord.Lines))
	for _, line := range ord.Lines {
		lines = append(lines, models.OrderComposedLine{
			ItemID:   line.Item.ID,
			Name:     line.Item.Name,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal(),
		})
	}

	msg := &models.OrderComposedMessage{
		SessionID:     session.ID,
		CustomerName:  session.Customer.Name,
		Address:       session.Customer.Address,
		PaymentMethod: session.Customer.PaymentMethod,
		PhoneNumber:   session.Customer.PhoneNumber,
		Recipient:     composed.Recipient,
		Lines:         lines,
		TotalAmount:   ord.Total,
		DeepLink:      composed.URL,
		ComposedAt:    time.Now().UTC(),
	}

	if err := s.publisher.PublishOrderComposed(ctx, msg); err != nil {
		s.logger.Error("order_publish_failed", "Failed to publish composed order", requestID, err, map[string]interface{}{
			"session_id": session.ID,
		})
	}
}

// HealthCheck reports whether the session store is reachable.
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.sessions.Ping(ctx) == nil
}

// validationRule maps a validation failure to its metric label.
func validationRule(err error) string {
	switch {
	case errors.Is(err, order.ErrCartEmpty):
		return "cart_empty"
	case errors.Is(err, order.ErrNameRequired):
		return "name"
	case errors.Is(err, order.ErrAddressRequired):
		return "address"
	case errors.Is(err, order.ErrPaymentRequired):
		return "payment_method"
	case errors.Is(err, order.ErrPhoneRequired):
		return "phone_number"
	default:
		return "unknown"
	}
}
