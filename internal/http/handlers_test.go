package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grubdash/internal/domain"
	"grubdash/internal/repository"
	"grubdash/internal/service"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	ids := repository.UUIDGenerator{}
	dishesSvc := service.NewDishService(store, ids)
	ordersSvc := service.NewOrderService(ordersRepo, ids)
	return NewServer(dishesSvc, ordersSvc)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func doRaw(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decode data: %v (%s)", err, w.Body.String())
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return body
}

func dishBody(name, description string, price any, imageURL string) map[string]any {
	return map[string]any{"data": map[string]any{
		"name": name, "description": description, "price": price, "image_url": imageURL,
	}}
}

// End-to-end walk through the dish and order lifecycle.
func TestCatalogFlow(t *testing.T) {
	s := setupServer(t)

	// create dish
	w := doJSON(t, s, http.MethodPost, "/dishes", dishBody("Taco", "d", 5, "u"))
	if w.Code != http.StatusCreated {
		t.Fatalf("create dish: %v (%s)", w.Code, w.Body.String())
	}
	var dish domain.Dish
	decodeData(t, w, &dish)
	if dish.ID == "" || dish.Name != "Taco" || dish.Price != 5 || dish.ImageURL != "u" {
		t.Fatalf("created dish: %+v", dish)
	}

	// update with an invalid price
	w = doJSON(t, s, http.MethodPut, "/dishes/"+dish.ID, dishBody("Taco", "d", -1, "u"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad price update: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "Dish must have a price that is an integer greater than 0" {
		t.Fatalf("bad price message: %q", e.Message)
	}

	// create an order referencing the dish
	w = doJSON(t, s, http.MethodPost, "/orders", map[string]any{"data": map[string]any{
		"deliverTo":    "1 Main Street",
		"mobileNumber": "555-0100",
		"status":       "pending",
		"dishes":       []map[string]any{{"dishId": dish.ID, "quantity": 2}},
	}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %v (%s)", w.Code, w.Body.String())
	}
	var order domain.Order
	decodeData(t, w, &order)
	if order.ID == "" || order.Status != domain.OrderStatusPending {
		t.Fatalf("created order: %+v", order)
	}

	// delivered is not a valid update target
	w = doJSON(t, s, http.MethodPut, "/orders/"+order.ID, map[string]any{"data": map[string]any{
		"deliverTo":    "1 Main Street",
		"mobileNumber": "555-0100",
		"status":       "delivered",
		"dishes":       []map[string]any{{"dishId": dish.ID, "quantity": 2}},
	}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("delivered update: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "Order must have a status of pending, preparing, out-for-delivery, delivered" {
		t.Fatalf("delivered update message: %q", e.Message)
	}

	// pending orders may be deleted
	w = doJSON(t, s, http.MethodDelete, "/orders/"+order.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete order: %v", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("delete body not empty: %q", w.Body.String())
	}
}

func TestDish_ZeroPriceMessage(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/dishes", dishBody("Taco", "d", 0, "u"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "Dish must include a price" {
		t.Fatalf("message: %q", e.Message)
	}
}

func TestDish_FractionalPriceMessage(t *testing.T) {
	s := setupServer(t)
	w := doRaw(t, s, http.MethodPost, "/dishes",
		`{"data":{"name":"Taco","description":"d","price":2.5,"image_url":"u"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "Dish must have a price that is an integer greater than 0" {
		t.Fatalf("message: %q", e.Message)
	}
}

func TestDish_UpdateBodyIDMismatch(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/dishes", dishBody("Taco", "d", 5, "u"))
	var dish domain.Dish
	decodeData(t, w, &dish)

	body := dishBody("Taco", "d", 5, "u")
	body["data"].(map[string]any)["id"] = "other"
	w = doJSON(t, s, http.MethodPut, "/dishes/"+dish.ID, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code: %v", w.Code)
	}
	want := fmt.Sprintf("Dish id does not match route id. Dish: other, Route: %s", dish.ID)
	if e := decodeError(t, w); e.Message != want {
		t.Fatalf("message: %q", e.Message)
	}
}

func TestNotFoundMessagesNameTheID(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/dishes/xyz", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("dish code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Status != 404 || e.Message != "Dish id not found: xyz" {
		t.Fatalf("dish body: %+v", e)
	}

	w = doJSON(t, s, http.MethodGet, "/orders/xyz", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("order code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "Order id not found: xyz" {
		t.Fatalf("order body: %+v", e)
	}
}

func TestOrder_QuantityIndexMessage(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/orders", map[string]any{"data": map[string]any{
		"deliverTo":    "1 Main Street",
		"mobileNumber": "555-0100",
		"dishes": []map[string]any{
			{"dishId": "a", "quantity": 0},
			{"dishId": "b", "quantity": 1},
			{"dishId": "c", "quantity": -3},
		},
	}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "Dishes 2 must have a quantity greater than 0" {
		t.Fatalf("message: %q", e.Message)
	}
}

func TestOrder_EmptyDishesMessage(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/orders", map[string]any{"data": map[string]any{
		"deliverTo":    "1 Main Street",
		"mobileNumber": "555-0100",
		"dishes":       []any{},
	}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "Order must include at least one dish" {
		t.Fatalf("message: %q", e.Message)
	}
}

func TestOrder_DeleteNonPending(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/orders", map[string]any{"data": map[string]any{
		"deliverTo":    "1 Main Street",
		"mobileNumber": "555-0100",
		"status":       "preparing",
		"dishes":       []map[string]any{{"dishId": "a", "quantity": 1}},
	}})
	var order domain.Order
	decodeData(t, w, &order)

	w = doJSON(t, s, http.MethodDelete, "/orders/"+order.ID, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "An order cannot be deleted unless it is pending." {
		t.Fatalf("message: %q", e.Message)
	}
}

// A missing request body behaves like an empty payload: the field rules
// answer, not a decode failure.
func TestMissingBodyHitsFieldRules(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/dishes", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Message != "A name is required" {
		t.Fatalf("message: %q", e.Message)
	}
}

func TestMalformedJSON(t *testing.T) {
	s := setupServer(t)
	w := doRaw(t, s, http.MethodPost, "/dishes", `{"data":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code: %v", w.Code)
	}
	if e := decodeError(t, w); e.Status != 400 || e.Message != "invalid json" {
		t.Fatalf("body: %+v", e)
	}
}

func TestListEnvelopes(t *testing.T) {
	s := setupServer(t)

	// empty collections answer an empty array, not null
	w := doJSON(t, s, http.MethodGet, "/dishes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code: %v", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"data":[]}` {
		t.Fatalf("empty list body: %s", got)
	}

	doJSON(t, s, http.MethodPost, "/dishes", dishBody("A", "d", 1, "u"))
	doJSON(t, s, http.MethodPost, "/dishes", dishBody("B", "d", 2, "u"))

	w = doJSON(t, s, http.MethodGet, "/dishes", nil)
	var dishes []domain.Dish
	decodeData(t, w, &dishes)
	if len(dishes) != 2 || dishes[0].Name != "A" || dishes[1].Name != "B" {
		t.Fatalf("list: %+v", dishes)
	}
}

func TestHealth(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("code: %v", w.Code)
	}
}
