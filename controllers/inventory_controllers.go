package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/resto-api/models"
	"github.com/dinehub/resto-api/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// GetAllInventoryItems
func (ic *InventoryController) GetAllInventoryItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := ic.DB.Order("id asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of inventory items", items)
}

// CreateInventoryItem
func (ic *InventoryController) CreateInventoryItem(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		CurrentStock *int   `json:"current_stock" binding:"required"`
		MinStock     *int   `json:"min_stock" binding:"required"`
		MaxStock     *int   `json:"max_stock" binding:"required"`
		Unit         string `json:"unit" binding:"required"`
		Category     string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if *req.CurrentStock < 0 || *req.MinStock < 0 || *req.MaxStock <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("stock levels must not be negative"))
		return
	}

	item := models.InventoryItem{
		Name:         req.Name,
		CurrentStock: *req.CurrentStock,
		MinStock:     *req.MinStock,
		MaxStock:     *req.MaxStock,
		Unit:         req.Unit,
		Category:     req.Category,
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", item)
}

// UpdateInventoryItem merges only provided fields.
func (ic *InventoryController) UpdateInventoryItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var item models.InventoryItem
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("inventory item not found"))
		return
	}

	var req struct {
		Name         *string `json:"name"`
		CurrentStock *int    `json:"current_stock"`
		MinStock     *int    `json:"min_stock"`
		MaxStock     *int    `json:"max_stock"`
		Unit         *string `json:"unit"`
		Category     *string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.CurrentStock != nil {
		item.CurrentStock = *req.CurrentStock
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.MaxStock != nil {
		item.MaxStock = *req.MaxStock
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Category != nil {
		item.Category = *req.Category
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", item)
}

// DeleteInventoryItem
func (ic *InventoryController) DeleteInventoryItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	if err := ic.DB.Delete(&models.InventoryItem{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item deleted", gin.H{"item_id": id})
}

// AdjustStock applies a signed delta to an item's stock. Stock never goes
// below zero.
func (ic *InventoryController) AdjustStock(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var req struct {
		Delta *int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.InventoryItem
	if err := ic.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("inventory item not found"))
		return
	}

	item.CurrentStock += *req.Delta
	if item.CurrentStock < 0 {
		item.CurrentStock = 0
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if item.IsLowStock() {
		utils.InfoLogger.Printf("Low stock: %s at %d %s (min %d)", item.Name, item.CurrentStock, item.Unit, item.MinStock)
	}

	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", item)
}

// GetLowStockItems -> items at or below their minimum stock level.
func (ic *InventoryController) GetLowStockItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := ic.DB.Where("current_stock <= min_stock").Order("id asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock items", items)
}

// GetInventorySummary -> headline counts for the inventory page.
func (ic *InventoryController) GetInventorySummary(c *gin.Context) {
	var summary struct {
		TotalItems    int64            `json:"total_items"`
		LowStockItems int64            `json:"low_stock_items"`
		Categories    map[string]int64 `json:"categories"`
	}

	ic.DB.Model(&models.InventoryItem{}).Count(&summary.TotalItems)
	ic.DB.Model(&models.InventoryItem{}).Where("current_stock <= min_stock").Count(&summary.LowStockItems)

	var rows []struct {
		Category string
		Count    int64
	}
	ic.DB.Model(&models.InventoryItem{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows)

	summary.Categories = make(map[string]int64, len(rows))
	for _, row := range rows {
		summary.Categories[row.Category] = row.Count
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory summary", summary)
}
