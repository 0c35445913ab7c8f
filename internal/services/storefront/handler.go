package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JordaoGustavo/Whatsfood/internal/cart"
	"github.com/JordaoGustavo/Whatsfood/internal/logger"
	"github.com/JordaoGustavo/Whatsfood/internal/models"
	"github.com/JordaoGustavo/Whatsfood/internal/order"
)

// SessionHeader carries the cart session ID on every session-scoped request.
const SessionHeader = "X-Session-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// Handler handles HTTP requests for the storefront service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new storefront handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/sessions", h.withLogging(h.CreateSession))
	mux.HandleFunc("/menu", h.withLogging(h.Menu))
	mux.HandleFunc("/menu/categories", h.withLogging(h.Categories))
	mux.HandleFunc("/cart", h.withLogging(h.ViewCart))
	mux.HandleFunc("/cart/add", h.withLogging(h.AddToCart))
	mux.HandleFunc("/cart/remove", h.withLogging(h.RemoveFromCart))
	mux.HandleFunc("/customer", h.withLogging(h.UpdateCustomer))
	mux.HandleFunc("/orders/compose", h.withLogging(h.ComposeOrder))
	mux.HandleFunc("/health", h.withLogging(h.HealthCheck))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// CreateSession handles POST /sessions requests
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	session, err := h.service.CreateSession(r.Context())
	if err != nil {
		h.logger.Error("session_create_failed", "Failed to create session", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": session.ID,
	}, requestID)
}

// Menu handles GET /menu requests with an optional ?category= filter
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	category := r.URL.Query().Get("category")
	items := h.service.Menu(category)
	if items == nil {
		items = []models.MenuItem{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	}, requestID)
}

// Categories handles GET /menu/categories requests
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.service.Categories(),
	}, requestID)
}

// ViewCart handles GET /cart requests
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	session, err := h.service.Session(r.Context(), sessionID)
	if err != nil {
		h.writeSessionError(w, err, requestID)
		return
	}

	h.writeCart(w, session, requestID)
}

type cartItemRequest struct {
	ItemID string `json:"item_id"`
}

// AddToCart handles POST /cart/add requests
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, h.service.AddToCart)
}

// RemoveFromCart handles POST /cart/remove requests
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, h.service.RemoveFromCart)
}

// mutateCart is the shared add/remove flow: decode the item reference, apply
// the operation, return the updated cart.
func (h *Handler) mutateCart(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (*cart.Session, error)) {
	requestID := requestIDFrom(r)

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	var req cartItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	if req.ItemID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "item_id is required", requestID)
		return
	}

	session, err := op(r.Context(), sessionID, req.ItemID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, err.Error(), requestID)
			return
		}
		h.writeSessionError(w, err, requestID)
		return
	}

	h.writeCart(w, session, requestID)
}

type customerUpdateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateCustomer handles POST /customer requests
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	var req customerUpdateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	session, err := h.service.UpdateCustomer(r.Context(), sessionID, req.Field, req.Value)
	if err != nil {
		if errors.Is(err, cart.ErrSessionNotFound) {
			h.writeSessionError(w, err, requestID)
			return
		}
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"customer": session.Customer,
	}, requestID)
}

// ComposeOrder handles POST /orders/compose requests
func (h *Handler) ComposeOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	composed, err := h.service.ComposeOrder(r.Context(), sessionID, requestID)
	if err != nil {
		if order.IsValidationError(err) {
			// The validation text is the user-facing notification.
			h.writeErrorResponse(w, http.StatusUnprocessableEntity, err.Error(), requestID)
			return
		}
		h.writeSessionError(w, err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, composed, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "storefront",
		"healthy":   healthy,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	h.writeJSON(w, status, response, requestID)
}

// sessionID extracts the session header, writing a 400 when it is missing.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request, requestID string) (string, bool) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("%s header is required", SessionHeader), requestID)
		return "", false
	}
	return sessionID, true
}

// writeSessionError maps session lookup failures to HTTP statuses.
func (h *Handler) writeSessionError(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, cart.ErrSessionNotFound) {
		h.writeErrorResponse(w, http.StatusNotFound, "Session not found", requestID)
		return
	}
	h.logger.Error("session_lookup_failed", "Failed to access session", requestID, err, nil)
	h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
}

// writeCart writes the cart view: lines plus the freshly computed total.
func (h *Handler) writeCart(w http.ResponseWriter, session *cart.Session, requestID string) {
	lines := session.Cart.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines": lines,
		"total": session.Cart.Total(),
	}, requestID)
}

// writeJSON writes a JSON response body
func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// requestIDFrom pulls the request ID set by the logging middleware.
func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
