package handler_test

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/myapp2768/DSAS/internal/wms/testutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestStockInOutFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)
	token := testutil.DefaultTestToken()

	m := testutil.SeedMaterial(t, db, "XS-0001", "磷酸二铵", 3.6066)

	// Inbound 800, pending
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/inventory/stock-in",
		map[string]interface{}{"material_id": m.ID, "quantity": 800, "supplier": "农资批发站"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	in := testutil.ParseResponse(w)
	if in["status"] != "PENDING" {
		t.Fatalf("expected PENDING, got %v", in["status"])
	}
	if !almostEqual(in["total_amount"].(float64), 2885.28) {
		t.Fatalf("expected total 2885.28, got %v", in["total_amount"])
	}
	inID := int64(in["id"].(float64))

	// Complete
	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/inventory/stock-in/%d/complete", inID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Stock shows 800
	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/inventory/stocks/material/%d", m.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	stock := testutil.ParseResponse(w)
	if !almostEqual(stock["current_quantity"].(float64), 800) {
		t.Fatalf("expected 800 on hand, got %v", stock["current_quantity"])
	}

	// Outbound 3.5, complete
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/inventory/stock-out",
		map[string]interface{}{"material_id": m.ID, "quantity": 3.5, "outbound_type": "SALE", "customer_name": "李家农场"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	outID := int64(testutil.ParseResponse(w)["id"].(float64))

	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/inventory/stock-out/%d/complete", outID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/inventory/stocks/material/%d", m.ID), nil, token)
	stock = testutil.ParseResponse(w)
	if !almostEqual(stock["current_quantity"].(float64), 796.5) {
		t.Fatalf("expected 796.5 on hand, got %v", stock["current_quantity"])
	}

	// Two history rows
	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/inventory/records/material/%d", m.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	records := testutil.ParseResponse(w)["items"].([]interface{})
	if len(records) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(records))
	}

	// Completing again is an invalid state
	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/inventory/stock-in/%d/complete", inID), nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for double complete, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStockOutInsufficient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)
	token := testutil.DefaultTestToken()

	m := testutil.SeedMaterial(t, db, "XS-0001", "尿素", 2.5)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/inventory/stock-out",
		map[string]interface{}{"material_id": m.ID, "quantity": 10, "outbound_type": "USE"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty stock, got %d: %s", w.Code, w.Body.String())
	}

	// Invalid outbound type is caught by binding
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/inventory/stock-out",
		map[string]interface{}{"material_id": m.ID, "quantity": 10, "outbound_type": "GIFT"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad outbound type, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAlertsAndStatistics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)
	token := testutil.DefaultTestToken()

	m := testutil.SeedMaterial(t, db, "XS-0001", "复合肥", 3.2)

	// Bring in 50, then require 100 as safety stock
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/inventory/stock-in",
		map[string]interface{}{"material_id": m.ID, "quantity": 50}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	inID := int64(testutil.ParseResponse(w)["id"].(float64))
	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/inventory/stock-in/%d/complete", inID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, http.MethodPut,
		fmt.Sprintf("/api/v1/inventory/stocks/%d/safety-stock?safetyStock=100", m.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/inventory/stocks/low-stock", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	low := testutil.ParseResponse(w)["items"].([]interface{})
	if len(low) != 1 {
		t.Fatalf("expected 1 low-stock item, got %d", len(low))
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/inventory/alerts", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	alerts := testutil.ParseResponse(w)
	if len(alerts["lowStockItems"].([]interface{})) != 1 {
		t.Fatalf("expected 1 low-stock alert, got %v", alerts["lowStockItems"])
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/inventory/statistics", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	stats := testutil.ParseResponse(w)
	if !almostEqual(stats["totalQuantity"].(float64), 50) {
		t.Fatalf("expected total quantity 50, got %v", stats["totalQuantity"])
	}
	if stats["lowStockCount"].(float64) != 1 {
		t.Fatalf("expected lowStockCount 1, got %v", stats["lowStockCount"])
	}

	w = testutil.DoRequest(router, http.MethodGet,
		fmt.Sprintf("/api/v1/inventory/statistics/material/%d", m.ID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	ms := testutil.ParseResponse(w)
	if !almostEqual(ms["totalInbound"].(float64), 50) || ms["recordCount"].(float64) != 1 {
		t.Fatalf("unexpected material statistics: %v", ms)
	}
}

func TestTimeRangeReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)
	token := testutil.DefaultTestToken()

	m := testutil.SeedMaterial(t, db, "XS-0001", "钾肥", 3.9)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/inventory/stock-in",
		map[string]interface{}{"material_id": m.ID, "quantity": 40}, token)
	inID := int64(testutil.ParseResponse(w)["id"].(float64))
	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/inventory/stock-in/%d/complete", inID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	start := time.Now().Add(-time.Hour).Format(time.RFC3339)
	end := time.Now().Add(time.Hour).Format(time.RFC3339)
	path := "/api/v1/inventory/reports?startTime=" + url.QueryEscape(start) + "&endTime=" + url.QueryEscape(end)

	w = testutil.DoRequest(router, http.MethodGet, path, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	report := testutil.ParseResponse(w)
	if !almostEqual(report["totalInboundQuantity"].(float64), 40) {
		t.Fatalf("expected inbound 40, got %v", report["totalInboundQuantity"])
	}
	if !almostEqual(report["totalOutboundQuantity"].(float64), 0) {
		t.Fatalf("expected outbound 0, got %v", report["totalOutboundQuantity"])
	}
	if len(report["inventoryRecords"].([]interface{})) != 1 {
		t.Fatalf("expected 1 history row in range, got %v", report["inventoryRecords"])
	}

	// An empty window reports zeros, not an error
	farStart := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	farEnd := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	path = "/api/v1/inventory/reports?startTime=" + url.QueryEscape(farStart) + "&endTime=" + url.QueryEscape(farEnd)
	w = testutil.DoRequest(router, http.MethodGet, path, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	report = testutil.ParseResponse(w)
	if !almostEqual(report["totalInboundQuantity"].(float64), 0) {
		t.Fatalf("expected empty window to sum to 0, got %v", report["totalInboundQuantity"])
	}

	// Export endpoints answer with attachments
	path = "/api/v1/inventory/reports/export?startTime=" + url.QueryEscape(start) + "&endTime=" + url.QueryEscape(end)
	w = testutil.DoRequest(router, http.MethodGet, path, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from xlsx export, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected non-empty xlsx body")
	}

	path = "/api/v1/inventory/reports/csv?startTime=" + url.QueryEscape(start) + "&endTime=" + url.QueryEscape(end)
	w = testutil.DoRequest(router, http.MethodGet, path, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from csv export, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected non-empty csv body")
	}
}
