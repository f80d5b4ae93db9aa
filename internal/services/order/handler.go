package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restorder/internal/logger"
	"restorder/internal/models"
	"restorder/internal/services/catalog"
	"restorder/internal/session"
)

// Handler serves the customer-facing endpoints: menu, cart and checkout.
type Handler struct {
	catalog  *catalog.Service
	service  *Service
	sessions *session.Store
	logger   *logger.Logger
}

// NewHandler creates the customer handler.
func NewHandler(catalogSvc *catalog.Service, service *Service, sessions *session.Store, log *logger.Logger) *Handler {
	return &Handler{
		catalog:  catalogSvc,
		service:  service,
		sessions: sessions,
		logger:   log,
	}
}

// Register wires the customer routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/menu", h.Menu)
	mux.HandleFunc("/get-cart", h.GetCart)
	mux.HandleFunc("/add-to-cart", h.AddToCart)
	mux.HandleFunc("/update-cart", h.UpdateCart)
	mux.HandleFunc("/remove-from-cart", h.RemoveFromCart)
	mux.HandleFunc("/checkout", h.Checkout)
	mux.HandleFunc("/order/", h.OrderDetails)
	mux.HandleFunc("/health", h.HealthCheck)
}

type cartItemRequest struct {
	MenuID   int64 `json:"menu_id"`
	Quantity *int  `json:"quantity"`
}

type checkoutRequest struct {
	Note string `json:"note"`
}

// Menu handles GET /menu.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	items := h.catalog.List(r.Context(), requestID)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"menu_items": items,
	})
}

// GetCart handles GET /get-cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sess := h.sessions.Get(w, r)

	var lines []models.CartLine
	var total float64
	sess.Do(func(s *session.Session) {
		lines = append([]models.CartLine{}, s.Cart.Lines...)
		total = s.Cart.Total()
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"cart":  lines,
		"total": total,
		"count": len(lines),
	})
}

// AddToCart handles POST /add-to-cart. The menu item is looked up in the
// catalog and its current price captured into the cart line.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	req, ok := h.decodeCartItemRequest(w, r, requestID)
	if !ok {
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		h.writeErrorResponse(w, http.StatusBadRequest, "quantity must be positive", requestID)
		return
	}

	item, err := h.catalog.Get(r.Context(), req.MenuID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Menu item not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to fetch menu item", requestID, err, map[string]interface{}{
			"menu_id": req.MenuID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	sess := h.sessions.Get(w, r)

	var count int
	sess.Do(func(s *session.Session) {
		count = s.Cart.Add(*item, quantity)
	})

	h.logger.Debug("cart_item_added", "Added item to cart", requestID, map[string]interface{}{
		"menu_id":    req.MenuID,
		"quantity":   quantity,
		"cart_count": count,
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"cart_count": count,
	})
}

// UpdateCart handles POST /update-cart. A quantity of zero or less removes
// the line; updating an absent line is a no-op.
func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	req, ok := h.decodeCartItemRequest(w, r, requestID)
	if !ok {
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	sess := h.sessions.Get(w, r)

	var count int
	sess.Do(func(s *session.Session) {
		s.Cart.SetQuantity(req.MenuID, quantity)
		count = s.Cart.Count()
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"cart_count": count,
	})
}

// RemoveFromCart handles POST /remove-from-cart.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	req, ok := h.decodeCartItemRequest(w, r, requestID)
	if !ok {
		return
	}

	sess := h.sessions.Get(w, r)

	var count int
	sess.Do(func(s *session.Session) {
		s.Cart.Remove(req.MenuID)
		count = s.Cart.Count()
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"cart_count": count,
	})
}

// Checkout handles POST /checkout: the session cart becomes a persisted
// order and the cart is cleared only after the order committed.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	var req checkoutRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	sess := h.sessions.Get(w, r)

	var cart models.Cart
	sess.Do(func(s *session.Session) {
		cart.Lines = append([]models.CartLine{}, s.Cart.Lines...)
	})

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	orderID, err := h.service.Create(ctx, req.Note, &cart, requestID)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			h.writeErrorResponse(w, http.StatusBadRequest, "Cart is empty", requestID)
			return
		}
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to create order", requestID)
		return
	}

	sess.Do(func(s *session.Session) {
		s.Cart.Clear()
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Order placed successfully!",
		"order_id": orderID,
	})
}

// OrderDetails handles GET /order/{id}.
func (h *Handler) OrderDetails(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/order/")
	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order id", requestID)
		return
	}

	details, err := h.service.Details(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to fetch order details", requestID, err, map[string]interface{}{
			"order_id": orderID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   details,
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "restorder",
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	h.writeJSON(w, status, response)
}

// decodeCartItemRequest parses the shared cart mutation payload.
func (h *Handler) decodeCartItemRequest(w http.ResponseWriter, r *http.Request, requestID string) (*cartItemRequest, bool) {
	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return nil, false
	}

	var req cartItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return nil, false
	}
	return &req, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"success":    false,
		"message":    message,
		"request_id": requestID,
	})
}
