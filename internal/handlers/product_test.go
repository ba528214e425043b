package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"ecommerce/internal/models"
)

func TestCreateProductNegativePriceNamesField(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/products", map[string]any{
		"name": "Widget", "price": -1.5,
	})
	assertStatus(t, w, http.StatusBadRequest)

	body := decodeBody(t, w)
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("expected a fields map, got %v", body)
	}
	if _, ok := fields["price"]; !ok {
		t.Fatalf("expected a price violation, got %v", fields)
	}
}

func TestCreateProductZeroPriceAllowed(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/products", map[string]any{
		"name": "Freebie", "price": 0,
	})
	assertStatus(t, w, http.StatusCreated)
}

func TestSearchProductsCaseInsensitiveSubstring(t *testing.T) {
	r, db := setupRouter(t)
	seedProduct(t, db, "Super Widget", 9.99)
	seedProduct(t, db, "Gadget", 19.99)

	w := doJSON(t, r, http.MethodGet, "/products/search?name=wIdGeT", nil)
	assertStatus(t, w, http.StatusOK)

	var products []models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
		t.Fatalf("decode search result: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Super Widget" {
		t.Fatalf("expected only the widget to match, got %+v", products)
	}
}

func TestSearchProductsNoMatchIsEmptyArray(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/products/search?name=nothing", nil)
	assertStatus(t, w, http.StatusOK)
	if w.Body.String() != "[]" {
		t.Fatalf("expected an empty array, got %s", w.Body.String())
	}
}

func TestUpdateProductFullReplace(t *testing.T) {
	r, db := setupRouter(t)
	product := seedProduct(t, db, "Widget", 9.99)

	w := doJSON(t, r, http.MethodPut, "/products/1", map[string]any{
		"name": "Deluxe Widget", "price": 24.99,
	})
	assertStatus(t, w, http.StatusOK)

	var updated models.Product
	if err := db.First(&updated, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if updated.Name != "Deluxe Widget" || updated.Price != 24.99 {
		t.Fatalf("expected both fields replaced, got %+v", updated)
	}
}

func TestDeleteProductRemovesAssociationRows(t *testing.T) {
	r, db := setupRouter(t)
	customer := seedCustomer(t, db, "Ada", "ada@x.com")
	product := seedProduct(t, db, "Widget", 9.99)
	order := seedOrder(t, db, customer.ID, product)

	w := doJSON(t, r, http.MethodDelete, "/products/1", nil)
	assertStatus(t, w, http.StatusOK)

	if links := countAssociationRows(t, db, order.ID); links != 0 {
		t.Fatalf("expected association rows removed with the product, got %d", links)
	}

	// The order itself survives, now with an empty product set.
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected the order row to survive, got %d", count)
	}
}

func TestGetProductNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/products/42", nil)
	assertStatus(t, w, http.StatusNotFound)
}
