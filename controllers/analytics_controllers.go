package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/resto-api/models"
	"github.com/dinehub/resto-api/utils"
)

// AnalyticsController serves read-only reporting views. Every figure is
// recomputed from the order store on each request; nothing is cached.
type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// GetSummary -> total revenue, order count, average order value and
// completion rate. Averages and rates are defined as 0 on an empty store.
func (ac *AnalyticsController) GetSummary(c *gin.Context) {
	var summary struct {
		TotalRevenue      float64 `json:"total_revenue"`
		TotalOrders       int64   `json:"total_orders"`
		AverageOrderValue float64 `json:"average_order_value"`
		CompletedOrders   int64   `json:"completed_orders"`
		CompletionRate    float64 `json:"completion_rate"`
	}

	ac.DB.Model(&models.Order{}).Count(&summary.TotalOrders)
	ac.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&summary.TotalRevenue)
	ac.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusCompleted).Count(&summary.CompletedOrders)

	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
		summary.CompletionRate = float64(summary.CompletedOrders) / float64(summary.TotalOrders)
	}

	utils.RespondJSON(c, http.StatusOK, "Analytics summary", summary)
}

type dayRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// GetRevenueByDay -> one bucket per calendar day for the last N days
// (today included), oldest first.
// GET /analytics/revenue-by-day?days=7
func (ac *AnalyticsController) GetRevenueByDay(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	// Buckets are half-open [midnight, midnight) ranges in server-local time.
	// SQL DATE() buckets offset-bearing timestamps by their UTC day, which
	// drifts off the local labels around midnight.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	buckets := make([]dayRevenue, 0, days)
	for i := days - 1; i >= 0; i-- {
		dayStart := midnight.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var bucket dayRevenue
		bucket.Date = dayStart.Format("2006-01-02")
		ac.DB.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Count(&bucket.Orders)
		ac.DB.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Select("COALESCE(SUM(total), 0)").Row().Scan(&bucket.Revenue)

		buckets = append(buckets, bucket)
	}

	utils.RespondJSON(c, http.StatusOK, "Revenue by day", buckets)
}

// GetPopularItems -> item names ranked by total quantity ordered, across all
// orders' snapshots. Ties go to the item that appeared first.
// GET /analytics/popular-items?limit=5
func (ac *AnalyticsController) GetPopularItems(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	var popular []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := ac.DB.Raw(`
		SELECT name, SUM(quantity) AS count
		FROM order_items
		GROUP BY name
		ORDER BY count DESC, MIN(id) ASC
		LIMIT ?
	`, limit).Scan(&popular).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Popular items", popular)
}

// GetStatusDistribution -> order count per status value present in the store.
func (ac *AnalyticsController) GetStatusDistribution(c *gin.Context) {
	var rows []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	if err := ac.DB.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	distribution := make(map[string]int64, len(rows))
	for _, row := range rows {
		distribution[row.Status] = row.Count
	}

	utils.RespondJSON(c, http.StatusOK, "Status distribution", distribution)
}
