package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/resto-api/events"
	"github.com/dinehub/resto-api/models"
	"github.com/dinehub/resto-api/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type recentOrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type recentOrder struct {
	OrderID      uint               `json:"order_id"`
	TableNumber  int                `json:"table_number"`
	CustomerName string             `json:"customer_name"`
	Total        float64            `json:"total"`
	Status       models.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	Items        []recentOrderLine  `json:"items"`
}

// GetDashboardStats -> today's headline numbers plus the latest orders.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	// Today is the half-open local range [midnight, midnight+24h); see the
	// same bucketing in the analytics controller.
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	var stats struct {
		TotalOrders     int64         `json:"total_orders"`
		TodayOrders     int64         `json:"today_orders"`
		TodayRevenue    float64       `json:"today_revenue"`
		PendingOrders   int64         `json:"pending_orders"`
		PreparingOrders int64         `json:"preparing_orders"`
		RecentOrders    []recentOrder `json:"recent_orders"`
	}

	dc.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	dc.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", todayStart, todayEnd).
		Count(&stats.TodayOrders)
	dc.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", todayStart, todayEnd).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodayRevenue)
	dc.DB.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&stats.PendingOrders)
	dc.DB.Model(&models.Order{}).Where("status = ?", models.StatusPreparing).Count(&stats.PreparingOrders)

	var orders []models.Order
	if err := dc.DB.Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(10).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats.RecentOrders = make([]recentOrder, 0, len(orders))
	for _, order := range orders {
		lines := make([]recentOrderLine, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, recentOrderLine{
				Name:     item.Name,
				Quantity: item.Quantity,
			})
		}
		stats.RecentOrders = append(stats.RecentOrders, recentOrder{
			OrderID:      order.ID,
			TableNumber:  order.TableNumber,
			CustomerName: order.CustomerName,
			Total:        order.Total,
			Status:       order.Status,
			CreatedAt:    order.CreatedAt,
			Items:        lines,
		})
	}

	events.BroadcastStatsUpdate(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
