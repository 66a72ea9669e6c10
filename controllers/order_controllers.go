package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/resto-api/events"
	"github.com/dinehub/resto-api/models"
	"github.com/dinehub/resto-api/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func NewOrderController(db *gorm.DB, producer *events.Producer) *OrderController {
	return &OrderController{DB: db, Producer: producer}
}

// GetAllOrders -> list orders with items, newest first.
// GET /orders?status=<optional filter>
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Order("created_at DESC, id DESC")

	if status := c.Query("status"); status != "" {
		if !models.IsValidOrderStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status: %s", status))
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// SubmitOrder turns a cart into an order. The cart must be non-empty and the
// request must name a table and a customer; otherwise nothing is mutated.
// The total is computed once here and never recomputed afterwards.
func (oc *OrderController) SubmitOrder(c *gin.Context) {
	var req struct {
		SessionID    string `json:"session_id" binding:"required"`
		TableNumber  int    `json:"table_number"`
		CustomerName string `json:"customer_name"`
		WaiterID     *uint  `json:"waiter_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table_number is required"))
		return
	}
	if req.CustomerName == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("customer_name is required"))
		return
	}

	var cartItems []models.CartItem
	if err := oc.DB.Where("session_id = ?", req.SessionID).Order("id asc").Find(&cartItems).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(cartItems) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}

	var total float64
	for _, line := range cartItems {
		total += line.Subtotal()
	}

	order := models.Order{
		TableNumber:  req.TableNumber,
		Status:       models.StatusPending,
		Total:        total,
		CustomerName: req.CustomerName,
		WaiterID:     req.WaiterID,
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range cartItems {
			item := models.OrderItem{
				OrderID:      order.ID,
				MenuItemID:   line.MenuItemID,
				Name:         line.Name,
				Price:        line.Price,
				Category:     line.Category,
				ImageURL:     line.ImageURL,
				Description:  line.Description,
				Quantity:     line.Quantity,
				Instructions: line.Instructions,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}

		// The cart is discarded once it becomes an order.
		return tx.Where("session_id = ?", req.SessionID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d submitted for table %d (total=%.2f)", order.ID, order.TableNumber, order.Total)

	events.BroadcastOrderCreated(order)
	if err := oc.Producer.PublishOrderEvent(c.Request.Context(), events.EventOrderCreated, order); err != nil {
		utils.ErrorLogger.Printf("failed to publish order_created for #%d: %v", order.ID, err)
	}

	utils.RespondJSON(c, http.StatusCreated, "Order submitted", order)
}

// GetOrderByID -> detail of one order.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus replaces the status field and nothing else. Any valid
// status can follow any other, so staff can reopen or correct an order.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status: %s", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if err := oc.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	order.Status = models.OrderStatus(req.Status)

	utils.InfoLogger.Printf("Order #%d status -> %s", order.ID, order.Status)

	events.BroadcastOrderUpdate(order)
	if err := oc.Producer.PublishOrderEvent(c.Request.Context(), "order_status_changed", order); err != nil {
		utils.ErrorLogger.Printf("failed to publish status change for #%d: %v", order.ID, err)
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
