package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/resto-api/controllers"
	"github.com/dinehub/resto-api/events"
	"github.com/dinehub/resto-api/middlewares"
)

func SetupRouter(db *gorm.DB, producer *events.Producer) *gin.Engine {
	r := gin.Default()

	// Middleware must be attached before any route is registered or gin
	// never runs it for those routes.
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db, producer)
	analyticsCtrl := controllers.NewAnalyticsController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	inventoryCtrl := controllers.NewInventoryController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Customers browse the menu and build a cart without logging in.
	r.GET("/menus", menuCtrl.GetAllMenuItems)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuItemByID)

	r.POST("/cart/sessions", cartCtrl.StartSession)
	r.GET("/cart/:session_id", cartCtrl.GetCart)
	r.POST("/cart/:session_id/items", cartCtrl.AddToCart)
	r.DELETE("/cart/:session_id/items/:menu_item_id", cartCtrl.RemoveOneFromCart)
	r.DELETE("/cart/:session_id", cartCtrl.ClearCart)

	r.POST("/orders", orderCtrl.SubmitOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/staff")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// MENU CATALOG
	auth.POST("/menus", menuCtrl.CreateMenuItem)
	auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenuItem)
	auth.DELETE("/menus/:menu_id", menuCtrl.DeleteMenuItem)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

	// ANALYTICS
	auth.GET("/analytics/summary", analyticsCtrl.GetSummary)
	auth.GET("/analytics/revenue-by-day", analyticsCtrl.GetRevenueByDay)
	auth.GET("/analytics/popular-items", analyticsCtrl.GetPopularItems)
	auth.GET("/analytics/status-distribution", analyticsCtrl.GetStatusDistribution)

	// DASHBOARD
	auth.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)

	// INVENTORY
	auth.GET("/inventory", inventoryCtrl.GetAllInventoryItems)
	auth.POST("/inventory", inventoryCtrl.CreateInventoryItem)
	auth.PATCH("/inventory/:item_id", inventoryCtrl.UpdateInventoryItem)
	auth.DELETE("/inventory/:item_id", inventoryCtrl.DeleteInventoryItem)
	auth.POST("/inventory/:item_id/adjust", inventoryCtrl.AdjustStock)
	auth.GET("/inventory/low-stock", inventoryCtrl.GetLowStockItems)
	auth.GET("/inventory/summary", inventoryCtrl.GetInventorySummary)

	// Live updates over websocket for staff dashboards.
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.EventsHandler)
	}

	return r
}
