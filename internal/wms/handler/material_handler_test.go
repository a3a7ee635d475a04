package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/myapp2768/DSAS/internal/wms/testutil"
)

func TestMaterialCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)
	token := testutil.DefaultTestToken()

	// Create with auto-generated code
	body := map[string]interface{}{
		"category":   "化肥",
		"name":       "磷酸二铵",
		"brand":      "云天化",
		"unit":       "kg",
		"unit_price": 3.6066,
	}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/materials", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)
	if created["internal_code"] != "XS-0001" {
		t.Fatalf("expected auto code XS-0001, got %v", created["internal_code"])
	}
	id := int64(created["id"].(float64))

	// Get by id and by code
	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/materials/%d", id), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/materials/code/XS-0001", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 by code, got %d: %s", w.Code, w.Body.String())
	}

	// Update
	body["name"] = "磷酸二铵(大袋)"
	body["unit_price"] = 3.7
	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/materials/%d", id), body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := testutil.ParseResponse(w)
	if updated["name"] != "磷酸二铵(大袋)" {
		t.Fatalf("expected updated name, got %v", updated["name"])
	}

	// List
	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/materials?keyword=磷酸", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	list := testutil.ParseResponse(w)
	if int(list["total"].(float64)) != 1 {
		t.Fatalf("expected 1 result, got %v", list["total"])
	}

	// Delete, then 404 with the error envelope
	w = testutil.DoRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/materials/%d", id), nil, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/materials/%d", id), nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	envelope := testutil.ParseResponse(w)
	for _, field := range []string{"timestamp", "status", "error", "message", "path"} {
		if _, ok := envelope[field]; !ok {
			t.Fatalf("error envelope missing %q: %v", field, envelope)
		}
	}
	if envelope["status"].(float64) != 404 || envelope["error"] != "Not Found" {
		t.Fatalf("unexpected envelope: %v", envelope)
	}
	if envelope["path"] != fmt.Sprintf("/api/v1/materials/%d", id) {
		t.Fatalf("unexpected path in envelope: %v", envelope["path"])
	}
}

func TestMaterialCodeEndpoints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)
	token := testutil.DefaultTestToken()

	testutil.SeedMaterial(t, db, "XS-0001", "尿素", 2.5)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/materials/generate-code", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["internal_code"] != "XS-0002" {
		t.Fatalf("expected XS-0002, got %v", resp["internal_code"])
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/materials/check-code/XS-0001", nil, token)
	resp = testutil.ParseResponse(w)
	if resp["available"] != false {
		t.Fatalf("expected XS-0001 unavailable, got %v", resp["available"])
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/materials/check-code/XS-0042", nil, token)
	resp = testutil.ParseResponse(w)
	if resp["available"] != true {
		t.Fatalf("expected XS-0042 available, got %v", resp["available"])
	}
}

func TestMaterialBatchDeleteAndToggle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)
	token := testutil.DefaultTestToken()

	a := testutil.SeedMaterial(t, db, "XS-0001", "地膜", 1.1)
	b := testutil.SeedMaterial(t, db, "XS-0002", "滴灌带", 0.8)

	// Toggle
	w := testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/materials/%d/toggle-status", a.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if testutil.ParseResponse(w)["active"] != false {
		t.Fatal("expected material inactive after toggle")
	}

	// Batch delete with one bad id reports failure
	w = testutil.DoRequest(router, http.MethodDelete, "/api/v1/materials/batch",
		map[string]interface{}{"ids": []int64{a.ID, b.ID, 999999}}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if testutil.ParseResponse(w)["success"] != false {
		t.Fatal("expected success=false with a missing id in the batch")
	}
}

func TestMaterialRequiresAuth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/materials", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestMaterialValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)
	token := testutil.DefaultTestToken()

	// Missing required name
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/materials",
		map[string]interface{}{"category": "化肥"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate code
	testutil.SeedMaterial(t, db, "XS-0001", "尿素", 2.5)
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/materials",
		map[string]interface{}{"internal_code": "XS-0001", "category": "化肥", "name": "尿素2"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate code, got %d: %s", w.Code, w.Body.String())
	}
}
