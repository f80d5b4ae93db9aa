package employee

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"restorder/internal/logger"
	"restorder/internal/models"
	"restorder/internal/services/order"
	"restorder/internal/session"
)

// fakeOrderStore implements order.Store for the listing and completion
// paths; the transactional write methods are unused here.
type fakeOrderStore struct {
	orders map[int64]models.Order
	counts map[int64]int
}

func (f *fakeOrderStore) Begin(ctx context.Context) (pgx.Tx, error) {
	panic("not used in employee tests")
}

func (f *fakeOrderStore) InsertOrder(ctx context.Context, tx pgx.Tx, total float64, note string) (int64, time.Time, error) {
	panic("not used in employee tests")
}

func (f *fakeOrderStore) InsertOrderLine(ctx context.Context, tx pgx.Tx, orderID int64, line models.CartLine) error {
	panic("not used in employee tests")
}

func (f *fakeOrderStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrderStore) GetOrderLines(ctx context.Context, id int64) ([]models.OrderDetailLine, error) {
	return nil, nil
}

func (f *fakeOrderStore) CompleteOrder(ctx context.Context, id int64) error {
	if o, ok := f.orders[id]; ok {
		now := time.Now().UTC()
		o.CompletedAt = &now
		f.orders[id] = o
	}
	return nil
}

func (f *fakeOrderStore) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	var out []models.OrderSummary
	for _, o := range f.orders {
		out = append(out, models.OrderSummary{Order: o, ItemCount: f.counts[o.ID]})
	}
	return out, nil
}

func (f *fakeOrderStore) Ping(ctx context.Context) error {
	return nil
}

func newConsoleServer(t *testing.T) (*httptest.Server, *http.Client, *fakeOrderStore) {
	t.Helper()

	log := logger.New("test")
	orderStore := &fakeOrderStore{
		orders: map[int64]models.Order{
			1: {ID: 1, Total: 25.50, Note: "no onions", CreatedAt: time.Now()},
		},
		counts: map[int64]int{1: 2},
	}

	sessions := session.NewStore(time.Minute)
	t.Cleanup(sessions.Close)

	orderService := order.NewService(orderStore, nil, log)
	employeeService := NewService(newUserStore(t, "budi", "rahasia123"), log)

	mux := http.NewServeMux()
	NewHandler(employeeService, orderService, sessions, log).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{Jar: jar}

	return srv, client, orderStore
}

func login(t *testing.T, client *http.Client, url, username, password string) *http.Response {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := client.Post(url+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	resp.Body.Close()
	return resp
}

func TestListOrders_RequiresLogin(t *testing.T) {
	srv, client, _ := newConsoleServer(t)

	resp, err := client.Get(srv.URL + "/orders")
	if err != nil {
		t.Fatalf("GET /orders: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestCompleteOrder_RequiresLogin(t *testing.T) {
	srv, client, store := newConsoleServer(t)

	resp, err := client.Post(srv.URL+"/complete-order/1", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /complete-order/1: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if store.orders[1].CompletedAt != nil {
		t.Fatalf("order completed despite missing login")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv, client, _ := newConsoleServer(t)

	if resp := login(t, client, srv.URL, "budi", "salah"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if resp := login(t, client, srv.URL, "siti", "rahasia123"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	srv, client, _ := newConsoleServer(t)

	if resp := login(t, client, srv.URL, "", "rahasia123"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestConsoleFlow(t *testing.T) {
	srv, client, store := newConsoleServer(t)

	if resp := login(t, client, srv.URL, "budi", "rahasia123"); resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}

	// Listing now succeeds and carries the line count.
	resp, err := client.Get(srv.URL + "/orders")
	if err != nil {
		t.Fatalf("GET /orders: %v", err)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	orders := body["orders"].([]interface{})
	if len(orders) != 1 {
		t.Fatalf("list returned %d orders, want 1", len(orders))
	}
	if count := orders[0].(map[string]interface{})["item_count"].(float64); count != 2 {
		t.Errorf("item_count = %v, want 2", count)
	}

	// Completing stamps the timestamp.
	resp, err = client.Post(srv.URL+"/complete-order/1", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /complete-order/1: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d, want 200", resp.StatusCode)
	}
	if store.orders[1].CompletedAt == nil {
		t.Fatalf("completed_at still nil after completion")
	}
}
