package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinehub/resto-api/models"
	"github.com/dinehub/resto-api/router"
	"github.com/dinehub/resto-api/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndOrderFlow walks the whole pipeline:
// 1. Login (demo mode) -> token
// 2. Create a menu item
// 3. Build a cart: same item twice
// 4. Submit the order -> pending, total frozen
// 5. Mark it completed
// 6. Check the analytics summary sees one fully completed order
func TestEndToEndOrderFlow(t *testing.T) {
	db := setupIntegrationDB(t, "integration")
	r := router.SetupRouter(db, nil)

	token := loginTest(t, r)
	menuID := createMenuItemTest(t, r, token)
	sessionID := buildCartTest(t, r, menuID)
	orderID := submitOrderTest(t, r, sessionID)
	completeOrderTest(t, r, token, orderID)
	checkAnalyticsTest(t, r, token)
}

// TestRateLimiterCapsBurstTraffic drives a burst through the full router and
// expects the per-IP limiter to start returning 429 once the window fills.
func TestRateLimiterCapsBurstTraffic(t *testing.T) {
	db := setupIntegrationDB(t, "ratelimit")
	r := router.SetupRouter(db, nil)

	var limited bool
	for i := 0; i < 60; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if i == 0 {
			assert.Equal(t, http.StatusOK, w.Code)
		}
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "burst traffic from one IP should be rate limited")
}

func setupIntegrationDB(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    "waiter@example.com",
		"password": "opensesame",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	token, _ := dataField(t, w)["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func createMenuItemTest(t *testing.T, r *gin.Engine, token string) int {
	w := doJSON(t, r, http.MethodPost, "/staff/menus", token, map[string]interface{}{
		"name":        "Grilled Chicken Burger",
		"price":       12.99,
		"category":    "Main Course",
		"description": "Juicy grilled chicken with fresh lettuce and tomato",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	id, ok := dataField(t, w)["id"].(float64)
	assert.True(t, ok)
	return int(id)
}

func buildCartTest(t *testing.T, r *gin.Engine, menuID int) string {
	w := doJSON(t, r, http.MethodPost, "/cart/sessions", "", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	sessionID, _ := dataField(t, w)["session_id"].(string)
	assert.NotEmpty(t, sessionID)

	for i := 0; i < 2; i++ {
		w = doJSON(t, r, http.MethodPost, "/cart/"+sessionID+"/items", "", map[string]interface{}{
			"menu_item_id": menuID,
		})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/cart/"+sessionID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	total, _ := dataField(t, w)["total_price"].(float64)
	assert.InDelta(t, 25.98, total, 0.001)

	return sessionID
}

func submitOrderTest(t *testing.T, r *gin.Engine, sessionID string) int {
	w := doJSON(t, r, http.MethodPost, "/orders", "", map[string]interface{}{
		"session_id":    sessionID,
		"table_number":  5,
		"customer_name": "John",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := dataField(t, w)
	assert.Equal(t, "pending", data["status"])
	total, _ := data["total"].(float64)
	assert.InDelta(t, 25.98, total, 0.001)

	id, _ := data["id"].(float64)
	return int(id)
}

func completeOrderTest(t *testing.T, r *gin.Engine, token string, orderID int) {
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/staff/orders/%d/status", orderID), token, map[string]string{
		"status": "completed",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", dataField(t, w)["status"])
}

func checkAnalyticsTest(t *testing.T, r *gin.Engine, token string) {
	w := doJSON(t, r, http.MethodGet, "/staff/analytics/summary", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataField(t, w)
	totalOrders, _ := data["total_orders"].(float64)
	completionRate, _ := data["completion_rate"].(float64)
	totalRevenue, _ := data["total_revenue"].(float64)

	assert.Equal(t, float64(1), totalOrders)
	assert.InDelta(t, 1.0, completionRate, 0.001)
	assert.InDelta(t, 25.98, totalRevenue, 0.001)
}
