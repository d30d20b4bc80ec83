package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/togongs/goods-shop/internal/models"
)

const (
	// Generic message for malformed bodies and unexpected storage
	// failures, nothing more specific leaks to the client.
	BadRequestMessage = "the requested data format is not valid"

	UnauthenticatedMessage = "please log in"
)

func ErrorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"errorMessage": msg})
}

// CurrentUser returns the user the auth gate attached to the request.
func CurrentUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get("user").(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}
