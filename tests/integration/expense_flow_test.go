package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestExpenseFlow_Lifecycle(t *testing.T) {
	app := setupApp(t)

	// Step 1: Create an expense with every field set
	rec := app.request("POST", "/api/expenses",
		`{"amount":"12.50","description":"Lunch at cafe","category":"food","date":"2024-03-15"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating expense, got %d: %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)
	if created["amount"] != "12.50" {
		t.Errorf("expected amount '12.50', got %v", created["amount"])
	}
	if created["category"] != "Food" {
		t.Errorf("expected category 'Food' after normalization, got %v", created["category"])
	}
	if created["date"] != "2024-03-15T00:00:00Z" {
		t.Errorf("expected date '2024-03-15T00:00:00Z', got %v", created["date"])
	}
	expenseID := created["id"].(float64)

	// Step 2: Fetch it back by ID
	rec = app.request("GET", fmt.Sprintf("/api/expenses/%.0f", expenseID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	fetched := parseJSON(t, rec)
	if fetched["description"] != "Lunch at cafe" {
		t.Errorf("expected description 'Lunch at cafe', got %v", fetched["description"])
	}

	// Step 3: Update only the amount
	rec = app.request("PUT", fmt.Sprintf("/api/expenses/%.0f", expenseID),
		`{"amount":"20.00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)
	if updated["amount"] != "20.00" {
		t.Errorf("expected amount '20.00' after update, got %v", updated["amount"])
	}
	if updated["description"] != "Lunch at cafe" {
		t.Errorf("expected description unchanged, got %v", updated["description"])
	}
	if updated["id"].(float64) != expenseID {
		t.Errorf("expected id %.0f unchanged, got %.0f", expenseID, updated["id"].(float64))
	}

	// Step 4: Delete it
	rec = app.request("DELETE", fmt.Sprintf("/api/expenses/%.0f", expenseID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body on delete, got %s", rec.Body.String())
	}

	// Step 5: Verify it is gone
	rec = app.request("GET", fmt.Sprintf("/api/expenses/%.0f", expenseID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after deletion, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND code, got %s", code)
	}
}

func TestExpenseFlow_Defaults(t *testing.T) {
	app := setupApp(t)

	// Omit category and date entirely
	rec := app.request("POST", "/api/expenses",
		`{"amount":"7.25","description":"Bus ticket"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)
	if created["category"] != "Uncategorized" {
		t.Errorf("expected default category 'Uncategorized', got %v", created["category"])
	}
	if created["date"] == nil || created["date"] == "" {
		t.Errorf("expected date to default to now, got %v", created["date"])
	}

	// Unknown body fields are ignored rather than rejected
	rec = app.request("POST", "/api/expenses",
		`{"amount":"3.00","description":"Coffee","id":999,"nonsense":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with unknown fields ignored, got %d: %s", rec.Code, rec.Body.String())
	}
	created = parseJSON(t, rec)
	if created["id"].(float64) == 999 {
		t.Errorf("expected server-assigned id, got client-supplied 999")
	}
}

func TestExpenseFlow_ListingAndPagination(t *testing.T) {
	app := setupApp(t)

	// Five expenses across two categories and distinct dates
	app.createExpense(t, `{"amount":"10.00","description":"Groceries","category":"Food","date":"2024-03-01"}`)
	app.createExpense(t, `{"amount":"25.00","description":"Dinner","category":"Food","date":"2024-03-02"}`)
	app.createExpense(t, `{"amount":"5.00","description":"Bus","category":"Transport","date":"2024-03-03"}`)
	app.createExpense(t, `{"amount":"15.00","description":"Taxi","category":"Transport","date":"2024-03-04"}`)
	app.createExpense(t, `{"amount":"8.00","description":"Snacks","category":"Food","date":"2024-03-05"}`)

	// Default listing: newest first
	rec := app.request("GET", "/api/expenses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	expenses := result["expenses"].([]interface{})
	if len(expenses) != 5 {
		t.Fatalf("expected 5 expenses, got %d", len(expenses))
	}
	first := expenses[0].(map[string]interface{})
	if first["description"] != "Snacks" {
		t.Errorf("expected newest expense first, got %v", first["description"])
	}
	meta := result["pagination"].(map[string]interface{})
	if meta["total_count"].(float64) != 5 {
		t.Errorf("expected total_count 5, got %.0f", meta["total_count"].(float64))
	}

	// Page 2 of size 2
	rec = app.request("GET", "/api/expenses?page=2&per_page=2", "")
	result = parseJSON(t, rec)
	expenses = result["expenses"].([]interface{})
	if len(expenses) != 2 {
		t.Errorf("expected 2 expenses on page 2, got %d", len(expenses))
	}
	meta = result["pagination"].(map[string]interface{})
	if meta["total_pages"].(float64) != 3 {
		t.Errorf("expected 3 total pages, got %.0f", meta["total_pages"].(float64))
	}
	if meta["has_next"].(bool) != true {
		t.Errorf("expected has_next true on page 2 of 3")
	}
	if meta["has_prev"].(bool) != true {
		t.Errorf("expected has_prev true on page 2")
	}

	// Beyond the last page: empty list, real total
	rec = app.request("GET", "/api/expenses?page=9&per_page=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 beyond last page, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	if len(result["expenses"].([]interface{})) != 0 {
		t.Errorf("expected empty page beyond the end")
	}
	if result["pagination"].(map[string]interface{})["total_count"].(float64) != 5 {
		t.Errorf("expected total_count 5 beyond the end")
	}

	// Category filter
	rec = app.request("GET", "/api/expenses?category=Transport", "")
	result = parseJSON(t, rec)
	expenses = result["expenses"].([]interface{})
	if len(expenses) != 2 {
		t.Fatalf("expected 2 Transport expenses, got %d", len(expenses))
	}
	for _, e := range expenses {
		if e.(map[string]interface{})["category"] != "Transport" {
			t.Errorf("expected only Transport expenses, got %v", e.(map[string]interface{})["category"])
		}
	}

	// Date range filter with inclusive bounds
	rec = app.request("GET", "/api/expenses?start_date=2024-03-02&end_date=2024-03-04", "")
	result = parseJSON(t, rec)
	if got := len(result["expenses"].([]interface{})); got != 3 {
		t.Errorf("expected 3 expenses in range, got %d", got)
	}

	// Sort by amount, ascending by default for non-date fields
	rec = app.request("GET", "/api/expenses?sort_by=amount", "")
	result = parseJSON(t, rec)
	expenses = result["expenses"].([]interface{})
	if expenses[0].(map[string]interface{})["amount"] != "5.00" {
		t.Errorf("expected cheapest first, got %v", expenses[0].(map[string]interface{})["amount"])
	}
	if expenses[4].(map[string]interface{})["amount"] != "25.00" {
		t.Errorf("expected priciest last, got %v", expenses[4].(map[string]interface{})["amount"])
	}
}

func TestExpenseFlow_ValidationErrors(t *testing.T) {
	app := setupApp(t)

	// Negative amount
	rec := app.request("POST", "/api/expenses",
		`{"amount":"-5.00","description":"Refund"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative amount, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", code)
	}

	// Missing description surfaces a field-scoped detail
	rec = app.request("POST", "/api/expenses", `{"amount":"5.00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing description, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	details, ok := result["error"].(map[string]interface{})["details"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected details in validation error, got %s", rec.Body.String())
	}
	if _, ok := details["description"]; !ok {
		t.Errorf("expected description detail, got %v", details)
	}

	// Malformed JSON
	rec = app.request("POST", "/api/expenses", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "INVALID_JSON" {
		t.Errorf("expected INVALID_JSON, got %s", code)
	}

	// Bad pagination parameter
	rec = app.request("GET", "/api/expenses?page=0", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for page=0, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", code)
	}

	// Inverted date range
	rec = app.request("GET", "/api/expenses?start_date=2024-03-10&end_date=2024-03-01", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rec.Code)
	}

	// Empty update payload
	id := app.createExpense(t, `{"amount":"9.99","description":"Book"}`)
	rec = app.request("PUT", fmt.Sprintf("/api/expenses/%.0f", id), `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty update, got %d: %s", rec.Code, rec.Body.String())
	}

	// Unknown expense
	rec = app.request("GET", "/api/expenses/99999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown expense, got %d", rec.Code)
	}

	// Deleting twice only works once
	rec = app.request("DELETE", fmt.Sprintf("/api/expenses/%.0f", id), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on first delete, got %d", rec.Code)
	}
	rec = app.request("DELETE", fmt.Sprintf("/api/expenses/%.0f", id), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}
