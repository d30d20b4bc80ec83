package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/togongs/goods-shop/internal/handlers"
	"github.com/togongs/goods-shop/internal/ws"
)

type Deps struct {
	AuthHandler   *handlers.AuthHandler
	GoodsHandler  *handlers.GoodsHandler
	CartHandler   *handlers.CartHandler
	SearchHandler *handlers.SearchHandler
	Hub           *ws.Hub
	RequireLogin  echo.MiddlewareFunc
	AssetsDir     string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/users", d.AuthHandler.Register)
	api.POST("/auth", d.AuthHandler.Login)

	guarded := api.Group("", d.RequireLogin)

	guarded.GET("/users/me", d.AuthHandler.Me)
	guarded.GET("/goods", d.GoodsHandler.GetGoodsList)
	guarded.GET("/goods/cart", d.CartHandler.GetCart)
	guarded.PUT("/goods/:goodsId/cart", d.CartHandler.PutCart)
	guarded.DELETE("/goods/:goodsId/cart", d.CartHandler.DeleteCart)
	guarded.GET("/goods/:goodsId", d.GoodsHandler.GetGoods)
	if d.SearchHandler != nil {
		guarded.GET("/goods/search", d.SearchHandler.Search)
	}

	e.GET("/ws", d.Hub.Handler)

	e.Static("/", d.AssetsDir)
}
