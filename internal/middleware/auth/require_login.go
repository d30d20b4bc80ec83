package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/togongs/goods-shop/internal/handlers"
	"github.com/togongs/goods-shop/internal/models"
	"github.com/togongs/goods-shop/internal/service"
)

// RequireLogin guards every route except registration and login. It
// accepts only `Authorization: Bearer <token>`, verifies the token and
// resolves the embedded user id against the user table. A token whose
// user row no longer exists does not authenticate.
func RequireLogin(db *gorm.DB, tokens *service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, raw, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !found || scheme != "Bearer" {
				return handlers.ErrorResponse(c, http.StatusUnauthorized, handlers.UnauthenticatedMessage)
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				return handlers.ErrorResponse(c, http.StatusUnauthorized, handlers.UnauthenticatedMessage)
			}

			var user models.User
			if err := db.First(&user, userID).Error; err != nil {
				return handlers.ErrorResponse(c, http.StatusUnauthorized, handlers.UnauthenticatedMessage)
			}

			c.Set("user", &user)
			return next(c)
		}
	}
}
