package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/togongs/goods-shop/internal/models"
)

type GoodsHandler struct {
	DB *gorm.DB
}

// GetGoodsList returns the whole catalog, newest first, optionally
// narrowed to one category.
func (h *GoodsHandler) GetGoodsList(c echo.Context) error {
	q := h.DB.Model(&models.Goods{}).Order("id DESC")
	if category := c.QueryParam("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	goods := make([]models.Goods, 0)
	if err := q.Find(&goods).Error; err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	return c.JSON(http.StatusOK, echo.Map{"goods": goods})
}

func (h *GoodsHandler) GetGoods(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("goodsId"))
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	var goods models.Goods
	if err := h.DB.First(&goods, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{})
		}
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	return c.JSON(http.StatusOK, echo.Map{"goods": goods})
}
