package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/backend"
	"github.com/GenaM19021977/teplomarket/internal/logging"
	"github.com/GenaM19021977/teplomarket/internal/models"
)

// InfoHandler serves the non-critical reference pages. A backend
// failure here degrades to an empty list, never an error page.
type InfoHandler struct {
	Backend *backend.Client
}

func (h *InfoHandler) GetDelivery(c echo.Context) error {
	opts, err := h.Backend.Delivery(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("delivery fetch failed", "error", err)
		opts = []models.DeliveryOption{}
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *InfoHandler) GetManufacturers(c echo.Context) error {
	brands, err := h.Backend.Manufacturers(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("manufacturers fetch failed", "error", err)
		brands = []models.Manufacturer{}
	}
	return c.JSON(http.StatusOK, brands)
}
