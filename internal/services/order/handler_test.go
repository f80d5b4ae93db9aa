package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"restorder/internal/logger"
	"restorder/internal/models"
	"restorder/internal/services/catalog"
	"restorder/internal/session"
)

// fakeCatalogStore serves a fixed menu.
type fakeCatalogStore struct {
	items map[int64]models.MenuItem
}

func (f *fakeCatalogStore) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeCatalogStore) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &item, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *http.Client, *fakeStore) {
	t.Helper()

	log := logger.New("test")
	catalogStore := &fakeCatalogStore{items: map[int64]models.MenuItem{
		1: {ID: 1, Name: "Nasi Goreng", Price: 10.00},
		2: {ID: 2, Name: "Es Teh", Price: 5.50},
	}}
	store := newFakeStore()

	sessions := session.NewStore(time.Minute)
	t.Cleanup(sessions.Close)

	catalogService := catalog.NewService(catalogStore, log)
	orderService := NewService(store, nil, log)

	mux := http.NewServeMux()
	NewHandler(catalogService, orderService, sessions, log).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{Jar: jar}

	return srv, client, store
}

func postJSON(t *testing.T, client *http.Client, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, client *http.Client, url string) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestCheckoutFlow(t *testing.T) {
	srv, client, _ := newTestServer(t)

	// Add Nasi Goreng (10.00) x2.
	resp, body := postJSON(t, client, srv.URL+"/add-to-cart", map[string]interface{}{"menu_id": 1, "quantity": 2})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add-to-cart status = %d, body %v", resp.StatusCode, body)
	}

	_, body = getJSON(t, client, srv.URL+"/get-cart")
	if total := body["total"].(float64); total != 20.00 {
		t.Fatalf("cart total = %v, want 20.00", total)
	}

	// Add Es Teh (5.50) x1.
	postJSON(t, client, srv.URL+"/add-to-cart", map[string]interface{}{"menu_id": 2, "quantity": 1})

	_, body = getJSON(t, client, srv.URL+"/get-cart")
	if total := body["total"].(float64); total != 25.50 {
		t.Fatalf("cart total = %v, want 25.50", total)
	}

	// Setting Nasi Goreng's quantity to zero removes it.
	postJSON(t, client, srv.URL+"/update-cart", map[string]interface{}{"menu_id": 1, "quantity": 0})

	_, body = getJSON(t, client, srv.URL+"/get-cart")
	if count := body["count"].(float64); count != 1 {
		t.Fatalf("cart count = %v, want 1", count)
	}
	if total := body["total"].(float64); total != 5.50 {
		t.Fatalf("cart total = %v, want 5.50", total)
	}

	// Checkout with a note.
	resp, body = postJSON(t, client, srv.URL+"/checkout", map[string]interface{}{"note": "no onions"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout status = %d, body %v", resp.StatusCode, body)
	}
	orderID := int64(body["order_id"].(float64))

	// The order is queryable and matches the cart at checkout time.
	resp, body = getJSON(t, client, fmt.Sprintf("%s/order/%d", srv.URL, orderID))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("order details status = %d, body %v", resp.StatusCode, body)
	}
	order := body["order"].(map[string]interface{})
	if total := order["total"].(float64); total != 5.50 {
		t.Errorf("order total = %v, want 5.50", total)
	}
	if note := order["note"].(string); note != "no onions" {
		t.Errorf("order note = %q, want %q", note, "no onions")
	}
	if completedAt := order["completed_at"]; completedAt != nil {
		t.Errorf("completed_at = %v, want null", completedAt)
	}
	if lines := order["order_items"].([]interface{}); len(lines) != 1 {
		t.Errorf("order has %d lines, want 1", len(lines))
	}

	// Checkout cleared the cart.
	_, body = getJSON(t, client, srv.URL+"/get-cart")
	if count := body["count"].(float64); count != 0 {
		t.Errorf("cart count after checkout = %v, want 0", count)
	}
}

func TestAddToCart_UnknownMenuItem(t *testing.T) {
	srv, client, _ := newTestServer(t)

	resp, body := postJSON(t, client, srv.URL+"/add-to-cart", map[string]interface{}{"menu_id": 99, "quantity": 1})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %v)", resp.StatusCode, body)
	}
	if body["success"].(bool) {
		t.Errorf("success = true, want false")
	}
}

func TestAddToCart_DefaultQuantity(t *testing.T) {
	srv, client, _ := newTestServer(t)

	// Quantity omitted defaults to one.
	postJSON(t, client, srv.URL+"/add-to-cart", map[string]interface{}{"menu_id": 1})

	_, body := getJSON(t, client, srv.URL+"/get-cart")
	if total := body["total"].(float64); total != 10.00 {
		t.Fatalf("cart total = %v, want 10.00", total)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	srv, client, _ := newTestServer(t)

	resp, body := postJSON(t, client, srv.URL+"/checkout", map[string]interface{}{"note": ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %v)", resp.StatusCode, body)
	}
}

func TestOrderDetails_NotFound(t *testing.T) {
	srv, client, _ := newTestServer(t)

	resp, _ := getJSON(t, client, srv.URL+"/order/12345")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestMenu(t *testing.T) {
	srv, client, _ := newTestServer(t)

	resp, body := getJSON(t, client, srv.URL+"/menu")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if items := body["menu_items"].([]interface{}); len(items) != 2 {
		t.Fatalf("menu has %d items, want 2", len(items))
	}
}
