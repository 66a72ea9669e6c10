package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinehub/resto-api/controllers"
	"github.com/dinehub/resto-api/models"
	"github.com/dinehub/resto-api/utils"
)

func setupTestDBForCart(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.CartItem{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupCartRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	cartCtrl := controllers.NewCartController(db)
	router.POST("/cart/sessions", cartCtrl.StartSession)
	router.GET("/cart/:session_id", cartCtrl.GetCart)
	router.POST("/cart/:session_id/items", cartCtrl.AddToCart)
	router.DELETE("/cart/:session_id/items/:menu_item_id", cartCtrl.RemoveOneFromCart)
	router.DELETE("/cart/:session_id", cartCtrl.ClearCart)
	return router
}

func addToCart(t *testing.T, router *gin.Engine, sessionID string, menuItemID uint) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(map[string]interface{}{"menu_item_id": menuItemID})
	req, _ := http.NewRequest("POST", "/cart/"+sessionID+"/items", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getCartTotal(t *testing.T, router *gin.Engine, sessionID string) (float64, []models.CartItem) {
	req, _ := http.NewRequest("GET", "/cart/"+sessionID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items      []models.CartItem `json:"items"`
			TotalPrice float64           `json:"total_price"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.TotalPrice, resp.Data.Items
}

func TestCartAccumulation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t, "cartaccum")
	router := setupCartRouter(db)

	burger := models.MenuItem{Name: "Grilled Chicken Burger", Price: 12.99, Category: "Main Course", Available: true}
	salad := models.MenuItem{Name: "Caesar Salad", Price: 8.99, Category: "Appetizer", Available: true}
	assert.NoError(t, db.Create(&burger).Error)
	assert.NoError(t, db.Create(&salad).Error)

	// Session ids come from the service.
	req, _ := http.NewRequest("POST", "/cart/sessions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	var sessResp struct {
		Data struct {
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessResp))
	sessionID := sessResp.Data.SessionID
	assert.NotEmpty(t, sessionID)

	// Same item twice folds into one line with quantity 2.
	assert.Equal(t, http.StatusOK, addToCart(t, router, sessionID, burger.ID).Code)
	assert.Equal(t, http.StatusOK, addToCart(t, router, sessionID, burger.ID).Code)
	assert.Equal(t, http.StatusOK, addToCart(t, router, sessionID, salad.ID).Code)

	total, items := getCartTotal(t, router, sessionID)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 2*12.99+8.99, total, 0.001)

	// Cart lines are snapshots: a catalog price edit does not touch them.
	assert.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", burger.ID).Update("price", 99.0).Error)
	total, _ = getCartTotal(t, router, sessionID)
	assert.InDelta(t, 2*12.99+8.99, total, 0.001)
}

func TestCartRemoveRoundTrip(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t, "cartremove")
	router := setupCartRouter(db)

	cake := models.MenuItem{Name: "Chocolate Cake", Price: 6.99, Category: "Dessert", Available: true}
	assert.NoError(t, db.Create(&cake).Error)

	sessionID := "roundtrip-session"

	// add then remove with quantity 1 -> cart back to empty
	assert.Equal(t, http.StatusOK, addToCart(t, router, sessionID, cake.ID).Code)
	req, _ := http.NewRequest("DELETE", "/cart/"+sessionID+"/items/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	total, items := getCartTotal(t, router, sessionID)
	assert.Empty(t, items)
	assert.Zero(t, total)

	// quantity 2 decrements to 1
	assert.Equal(t, http.StatusOK, addToCart(t, router, sessionID, cake.ID).Code)
	assert.Equal(t, http.StatusOK, addToCart(t, router, sessionID, cake.ID).Code)
	req, _ = http.NewRequest("DELETE", "/cart/"+sessionID+"/items/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	_, items = getCartTotal(t, router, sessionID)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	// removing an item that is not in the cart is a 404
	req, _ = http.NewRequest("DELETE", "/cart/"+sessionID+"/items/42", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// clear empties the cart
	req, _ = http.NewRequest("DELETE", "/cart/"+sessionID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	_, items = getCartTotal(t, router, sessionID)
	assert.Empty(t, items)
}

func TestCartRejectsUnknownOrUnavailableItems(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCart(t, "cartreject")
	router := setupCartRouter(db)

	offMenu := models.MenuItem{Name: "Seasonal Special", Price: 19.99, Category: "Main Course", Available: false}
	assert.NoError(t, db.Create(&offMenu).Error)

	assert.Equal(t, http.StatusBadRequest, addToCart(t, router, "s1", 9999).Code)
	assert.Equal(t, http.StatusBadRequest, addToCart(t, router, "s1", offMenu.ID).Code)

	total, items := getCartTotal(t, router, "s1")
	assert.Empty(t, items)
	assert.Zero(t, total)
}
