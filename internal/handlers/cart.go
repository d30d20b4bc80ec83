package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/togongs/goods-shop/internal/models"
)

type CartHandler struct {
	DB *gorm.DB
}

type cartLine struct {
	Quantity uint         `json:"quantity"`
	Goods    models.Goods `json:"goods"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return ErrorResponse(c, http.StatusUnauthorized, UnauthenticatedMessage)
	}

	var items []models.CartItem
	if err := h.DB.Where("user_id = ?", user.ID).Order("goods_id").Find(&items).Error; err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	goodsIDs := make([]uint, 0, len(items))
	for _, item := range items {
		goodsIDs = append(goodsIDs, item.GoodsID)
	}

	// One batched lookup instead of a query per line.
	goodsByID := make(map[uint]models.Goods, len(goodsIDs))
	if len(goodsIDs) > 0 {
		var goods []models.Goods
		if err := h.DB.Where("id IN ?", goodsIDs).Find(&goods).Error; err != nil {
			return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
		}
		for _, g := range goods {
			goodsByID[g.ID] = g
		}
	}

	cart := make([]cartLine, 0, len(items))
	for _, item := range items {
		cart = append(cart, cartLine{Quantity: item.Quantity, Goods: goodsByID[item.GoodsID]})
	}

	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}

// PutCart overwrites the quantity for (user, goods), creating the
// entry on first use. Last write wins.
func (h *CartHandler) PutCart(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return ErrorResponse(c, http.StatusUnauthorized, UnauthenticatedMessage)
	}

	goodsID, err := strconv.Atoi(c.Param("goodsId"))
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	var req struct {
		Quantity uint `json:"quantity" form:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	var item models.CartItem
	err = h.DB.Where("user_id = ? AND goods_id = ?", user.ID, goodsID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity = req.Quantity
		if err := h.DB.Save(&item).Error; err != nil {
			return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:   user.ID,
			GoodsID:  uint(goodsID),
			Quantity: req.Quantity,
		}
		if err := h.DB.Create(&item).Error; err != nil {
			return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
		}
	default:
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	return c.JSON(http.StatusOK, echo.Map{})
}

// DeleteCart removes the entry if present. Deleting an absent entry
// still succeeds.
func (h *CartHandler) DeleteCart(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return ErrorResponse(c, http.StatusUnauthorized, UnauthenticatedMessage)
	}

	goodsID, err := strconv.Atoi(c.Param("goodsId"))
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	if err := h.DB.Where("user_id = ? AND goods_id = ?", user.ID, goodsID).
		Delete(&models.CartItem{}).Error; err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	return c.JSON(http.StatusOK, echo.Map{})
}
