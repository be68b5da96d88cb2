package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cryptotrack/portfolio-api/internal/core/ports"
)

// PriceHandler proxies live market quotes. No auth, matching the upstream
// dashboard behaviour; responses are cached server-side for a short window.
type PriceHandler struct {
	service ports.PriceService
}

func NewPriceHandler(service ports.PriceService) *PriceHandler {
	return &PriceHandler{service: service}
}

// Get returns current quotes for the requested coin ids.
//
// @Summary      Get live prices
// @Tags         prices
// @Produce      json
// @Param        ids                  query  string  true   "Comma-separated coin ids (e.g. bitcoin,ethereum)"
// @Param        include_24hr_change  query  string  false  "Set to true to include 24h change"
// @Success      200  {object}  map[string]map[string]float64
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /prices [get]
func (h *PriceHandler) Get(c echo.Context) error {
	rawIDs := c.QueryParam("ids")
	if rawIDs == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing ids parameter")
	}

	ids := make([]string, 0)
	for _, id := range strings.Split(rawIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	include24h := c.QueryParam("include_24hr_change") == "true"

	quotes, err := h.service.GetPrices(c.Request().Context(), ids, include24h)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, quotes)
}
