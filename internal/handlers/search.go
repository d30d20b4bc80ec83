package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/togongs/goods-shop/internal/service/search"
	"github.com/togongs/goods-shop/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func NewSearchHandler(es *elasticsearch.Client, index string) *SearchHandler {
	return &SearchHandler{
		ES:    es,
		Index: index,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return ErrorResponse(c, http.StatusBadRequest, "search query is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	ctx := c.Request().Context()

	total, goods, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, BadRequestMessage)
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "goods": goods})
}
