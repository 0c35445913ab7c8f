package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordaoGustavo/Whatsfood/internal/cart"
	"github.com/JordaoGustavo/Whatsfood/internal/logger"
	"github.com/JordaoGustavo/Whatsfood/internal/menu"
	"github.com/JordaoGustavo/Whatsfood/internal/metrics"
	"github.com/JordaoGustavo/Whatsfood/internal/models"
)

// capturePublisher records published events instead of talking to a broker.
type capturePublisher struct {
	messages []*models.OrderComposedMessage
}

func (p *capturePublisher) PublishOrderComposed(_ context.Context, msg *models.OrderComposedMessage) error {
	p.messages = append(p.messages, msg)
	return nil
}

func newTestHandler(t *testing.T) (*http.ServeMux, *capturePublisher) {
	t.Helper()

	publisher := &capturePublisher{}
	log := logger.New("storefront-test")

	service, err := NewService(
		context.Background(),
		menu.NewStaticRepository(menu.DefaultCatalog()),
		cart.NewMemoryStore(),
		publisher,
		metrics.New(),
		log,
	)
	require.NoError(t, err)

	return NewHandler(service, log).SetupRoutes(), publisher
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func createSession(t *testing.T, mux *http.ServeMux) string {
	t.Helper()

	rec := doRequest(t, mux, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body.SessionID)
	return body.SessionID
}

func TestMenuEndpoints(t *testing.T) {
	mux, _ := newTestHandler(t)

	rec := doRequest(t, mux, http.MethodGet, "/menu", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var menuBody struct {
		Items []models.MenuItem `json:"items"`
	}
	decodeBody(t, rec, &menuBody)
	assert.Len(t, menuBody.Items, 11)
	assert.Equal(t, "Classic Burger", menuBody.Items[0].Name)

	rec = doRequest(t, mux, http.MethodGet, "/menu?category=Pizza", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &menuBody)
	assert.Len(t, menuBody.Items, 3)
	for _, item := range menuBody.Items {
		assert.Equal(t, "Pizza", item.Category)
	}

	// A category with no items still serializes as an empty array, not null.
	rec = doRequest(t, mux, http.MethodGet, "/menu?category=Sushi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)

	rec = doRequest(t, mux, http.MethodGet, "/menu/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var catBody struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, rec, &catBody)
	assert.Equal(t, []string{"All", "Burgers", "Pizza", "Drinks", "Desserts"}, catBody.Categories)
}

type cartView struct {
	Lines []struct {
		Item     models.MenuItem `json:"item"`
		Quantity int             `json:"quantity"`
	} `json:"lines"`
	Total models.Money `json:"total"`
}

func TestCartFlow(t *testing.T) {
	mux, _ := newTestHandler(t)
	sessionID := createSession(t, mux)

	rec := doRequest(t, mux, http.MethodPost, "/cart/add", sessionID, map[string]string{"item_id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/cart/add", sessionID, map[string]string{"item_id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/cart/add", sessionID, map[string]string{"item_id": "7"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/cart", sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view cartView
	decodeBody(t, rec, &view)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "1", view.Lines[0].Item.ID)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, "7", view.Lines[1].Item.ID)
	assert.Equal(t, 1, view.Lines[1].Quantity)
	assert.Equal(t, models.Money(2997), view.Total)

	rec = doRequest(t, mux, http.MethodPost, "/cart/remove", sessionID, map[string]string{"item_id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &view)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, 1, view.Lines[0].Quantity)
	assert.Equal(t, models.Money(1698), view.Total)

	// Removing an item that is not in the cart is a no-op, not an error.
	rec = doRequest(t, mux, http.MethodPost, "/cart/remove", sessionID, map[string]string{"item_id": "10"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &view)
	assert.Equal(t, models.Money(1698), view.Total)
}

func TestCartErrors(t *testing.T) {
	mux, _ := newTestHandler(t)
	sessionID := createSession(t, mux)

	rec := doRequest(t, mux, http.MethodPost, "/cart/add", "", map[string]string{"item_id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/cart/add", "missing-session", map[string]string{"item_id": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/cart/add", sessionID, map[string]string{"item_id": "999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/cart/add", sessionID, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/cart/add", sessionID, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUpdateCustomer(t *testing.T) {
	mux, _ := newTestHandler(t)
	sessionID := createSession(t, mux)

	rec := doRequest(t, mux, http.MethodPost, "/customer", sessionID, map[string]string{
		"field": "name",
		"value": "Ana",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Customer models.CustomerInfo `json:"customer"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Ana", body.Customer.Name)

	rec = doRequest(t, mux, http.MethodPost, "/customer", sessionID, map[string]string{
		"field": "email",
		"value": "ana@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/customer", sessionID, map[string]string{
		"field": "payment_method",
		"value": "Bitcoin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func setCustomer(t *testing.T, mux *http.ServeMux, sessionID string, info models.CustomerInfo) {
	t.Helper()
	fields := map[string]string{
		"name":           info.Name,
		"address":        info.Address,
		"payment_method": info.PaymentMethod,
		"phone_number":   info.PhoneNumber,
	}
	for field, value := range fields {
		if value == "" {
			continue
		}
		rec := doRequest(t, mux, http.MethodPost, "/customer", sessionID, map[string]string{
			"field": field,
			"value": value,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestComposeOrder(t *testing.T) {
	mux, publisher := newTestHandler(t)
	sessionID := createSession(t, mux)

	for i := 0; i < 2; i++ {
		rec := doRequest(t, mux, http.MethodPost, "/cart/add", sessionID, map[string]string{"item_id": "1"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	setCustomer(t, mux, sessionID, models.CustomerInfo{
		Name:          "Ana",
		Address:       "Rua X, 10",
		PaymentMethod: "PIX",
		PhoneNumber:   "+55 11 99999-0000",
	})

	rec := doRequest(t, mux, http.MethodPost, "/orders/compose", sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var composed struct {
		Message   string `json:"message"`
		Recipient string `json:"recipient"`
		URL       string `json:"url"`
	}
	decodeBody(t, rec, &composed)

	assert.Contains(t, composed.Message, "• 2x Classic Burger - $25.98")
	assert.Contains(t, composed.Message, "*Total: $25.98*")
	assert.Equal(t, "5511999990000", composed.Recipient)
	assert.Contains(t, composed.URL, "https://wa.me/5511999990000?text=")

	// The composed-order event was published fire-and-forget.
	require.Len(t, publisher.messages, 1)
	msg := publisher.messages[0]
	assert.Equal(t, sessionID, msg.SessionID)
	assert.Equal(t, "Ana", msg.CustomerName)
	assert.Equal(t, "5511999990000", msg.Recipient)
	assert.Equal(t, models.Money(2598), msg.TotalAmount)
	require.Len(t, msg.Lines, 1)
	assert.Equal(t, 2, msg.Lines[0].Quantity)

	// Composing again yields byte-identical output.
	rec = doRequest(t, mux, http.MethodPost, "/orders/compose", sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var again struct {
		Message   string `json:"message"`
		Recipient string `json:"recipient"`
		URL       string `json:"url"`
	}
	decodeBody(t, rec, &again)
	assert.Equal(t, composed, again)
}

func TestComposeOrderValidationOrder(t *testing.T) {
	mux, publisher := newTestHandler(t)
	sessionID := createSession(t, mux)

	// Empty cart is reported first, regardless of customer info.
	rec := doRequest(t, mux, http.MethodPost, "/orders/compose", sessionID, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var errBody struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &errBody)
	assert.Equal(t, "Your cart is empty!", errBody.Error)

	rec = doRequest(t, mux, http.MethodPost, "/cart/add", sessionID, map[string]string{"item_id": "4"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/orders/compose", sessionID, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	decodeBody(t, rec, &errBody)
	assert.Equal(t, "Please enter your name!", errBody.Error)

	setCustomer(t, mux, sessionID, models.CustomerInfo{Name: "Ana", Address: "Rua X, 10"})

	rec = doRequest(t, mux, http.MethodPost, "/orders/compose", sessionID, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	decodeBody(t, rec, &errBody)
	assert.Equal(t, "Please select a payment method!", errBody.Error)

	// Nothing was published for rejected submissions.
	assert.Empty(t, publisher.messages)
}

func TestSessionEndpointMethods(t *testing.T) {
	mux, _ := newTestHandler(t)

	rec := doRequest(t, mux, http.MethodGet, "/sessions", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	mux, _ := newTestHandler(t)

	rec := doRequest(t, mux, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Healthy bool   `json:"healthy"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.Healthy)
}
