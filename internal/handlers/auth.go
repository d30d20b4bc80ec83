package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/togongs/goods-shop/internal/models"
	"github.com/togongs/goods-shop/internal/mykafka"
	"github.com/togongs/goods-shop/internal/service"
)

type AuthHandler struct {
	DB       *gorm.DB
	Tokens   *service.TokenService
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Email           string `json:"email"           form:"email"`
		Nickname        string `json:"nickname"        form:"nickname"`
		Password        string `json:"password"        form:"password"`
		ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	}

	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	if req.Password != req.ConfirmPassword {
		return ErrorResponse(c, http.StatusBadRequest, "password does not match the confirmation")
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ? OR nickname = ?", req.Email, req.Nickname).
		Count(&count).Error; err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}
	if count > 0 {
		return ErrorResponse(c, http.StatusBadRequest, "email or nickname is already registered")
	}

	user := models.User{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_registered",
		"userId":   user.ID,
		"nickname": user.Nickname,
	})

	return c.JSON(http.StatusCreated, echo.Map{})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"    form:"email"`
		Password string `json:"password" form:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	// Passwords are stored and compared in clear form. This mirrors
	// the storefront it serves and is not fit for production use.
	var user models.User
	if err := h.DB.Where("email = ? AND password = ?", req.Email, req.Password).
		First(&user).Error; err != nil {
		return ErrorResponse(c, http.StatusBadRequest, "email or password is incorrect")
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_logged_in",
		"userId":   user.ID,
		"nickname": user.Nickname,
	})

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return ErrorResponse(c, http.StatusUnauthorized, UnauthenticatedMessage)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"email":    user.Email,
			"nickname": user.Nickname,
		},
	})
}
