package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restorder/internal/logger"
	"restorder/internal/models"
	"restorder/internal/services/order"
	"restorder/internal/session"
)

// Handler serves the employee console: login, order listing and completion.
// Listing and completion require a logged-in session.
type Handler struct {
	service  *Service
	orders   *order.Service
	sessions *session.Store
	logger   *logger.Logger
}

// NewHandler creates the employee handler.
func NewHandler(service *Service, orders *order.Service, sessions *session.Store, log *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		orders:   orders,
		sessions: sessions,
		logger:   log,
	}
}

// Register wires the employee routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.Login)
	mux.HandleFunc("/orders", h.ListOrders)
	mux.HandleFunc("/complete-order/", h.CompleteOrder)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	var req loginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if req.Username == "" || req.Password == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Username and password are required", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ok, err := h.service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.Error("auth_failed", "Authentication lookup failed", requestID, err, map[string]interface{}{
			"username": req.Username,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if !ok {
		h.logger.Debug("login_rejected", "Invalid credentials", requestID, map[string]interface{}{
			"username": req.Username,
		})
		h.writeErrorResponse(w, http.StatusUnauthorized, "Invalid username or password", requestID)
		return
	}

	sess := h.sessions.Get(w, r)
	sess.Do(func(s *session.Session) {
		s.LoggedIn = true
		s.Username = req.Username
	})

	h.logger.Info("login_succeeded", "Employee logged in", requestID, map[string]interface{}{
		"username": req.Username,
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Login successful",
		"redirect": "/orders",
	})
}

// ListOrders handles GET /orders. Requires a logged-in session.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	if _, ok := h.requireLogin(w, r, requestID); !ok {
		return
	}

	orders := h.orders.List(r.Context(), requestID)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// CompleteOrder handles POST /complete-order/{id}. Requires a logged-in
// session.
func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	username, ok := h.requireLogin(w, r, requestID)
	if !ok {
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/complete-order/")
	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order id", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.orders.Complete(ctx, orderID, username, requestID); err != nil {
		h.logger.Error("order_completion_failed", "Failed to complete order", requestID, err, map[string]interface{}{
			"order_id": orderID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to complete order", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order completed",
	})
}

// requireLogin enforces the session gate and returns the logged-in username.
func (h *Handler) requireLogin(w http.ResponseWriter, r *http.Request, requestID string) (string, bool) {
	sess := h.sessions.Get(w, r)

	var loggedIn bool
	var username string
	sess.Do(func(s *session.Session) {
		loggedIn = s.LoggedIn
		username = s.Username
	})

	if !loggedIn {
		h.writeErrorResponse(w, http.StatusUnauthorized, models.ErrAuthRequired.Error(), requestID)
		return "", false
	}
	return username, true
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
