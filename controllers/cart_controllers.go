package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinehub/resto-api/models"
	"github.com/dinehub/resto-api/utils"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// StartSession hands out a fresh cart session id. Carts are transient and
// scoped to one ordering session; submitting or clearing discards them.
func (cc *CartController) StartSession(c *gin.Context) {
	utils.RespondJSON(c, http.StatusCreated, "Cart session created", gin.H{
		"session_id": uuid.NewString(),
	})
}

// GetCart -> the session's lines plus the running total.
func (cc *CartController) GetCart(c *gin.Context) {
	sessionID := c.Param("session_id")

	var items []models.CartItem
	if err := cc.DB.Where("session_id = ?", sessionID).Order("id asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}

	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"items":       items,
		"total_price": total,
	})
}

// AddToCart adds one unit of a menu item to the session's cart. If the item
// is already in the cart its quantity goes up by one; otherwise a new line is
// created with a snapshot of the current catalog fields, so later menu edits
// leave the cart (and any order made from it) untouched.
func (cc *CartController) AddToCart(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req struct {
		MenuItemID   uint   `json:"menu_item_id" binding:"required"`
		Instructions string `json:"special_instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menuItem models.MenuItem
	if err := cc.DB.First(&menuItem, req.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu item not found"))
		return
	}
	if !menuItem.Available {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu item is not available"))
		return
	}

	var line models.CartItem
	err := cc.DB.Where("session_id = ? AND menu_item_id = ?", sessionID, req.MenuItemID).First(&line).Error
	switch {
	case err == nil:
		line.Quantity++
		if req.Instructions != "" {
			line.Instructions = req.Instructions
		}
		if err := cc.DB.Save(&line).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{
			SessionID:    sessionID,
			MenuItemID:   menuItem.ID,
			Name:         menuItem.Name,
			Price:        menuItem.Price,
			Category:     menuItem.Category,
			ImageURL:     menuItem.ImageURL,
			Description:  menuItem.Description,
			Quantity:     1,
			Instructions: req.Instructions,
		}
		if err := cc.DB.Create(&line).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", line)
}

// RemoveOneFromCart decrements a line by one unit, removing the line
// entirely when the quantity reaches zero.
func (cc *CartController) RemoveOneFromCart(c *gin.Context) {
	sessionID := c.Param("session_id")
	itemIDStr := c.Param("menu_item_id")
	itemID, _ := strconv.Atoi(itemIDStr)

	var line models.CartItem
	if err := cc.DB.Where("session_id = ? AND menu_item_id = ?", sessionID, itemID).First(&line).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not in cart"))
		return
	}

	if line.Quantity > 1 {
		line.Quantity--
		if err := cc.DB.Save(&line).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Item quantity decreased", line)
		return
	}

	if err := cc.DB.Delete(&line).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", gin.H{"menu_item_id": itemID})
}

// ClearCart empties the session's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := cc.DB.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", gin.H{"session_id": sessionID})
}
