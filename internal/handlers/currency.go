package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/currency"
)

type CurrencyHandler struct {
	Selection *currency.Selection
}

func (h *CurrencyHandler) GetCurrency(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"currency":  h.Selection.Current(),
		"available": currency.Codes,
	})
}

func (h *CurrencyHandler) SetCurrency(c echo.Context) error {
	var req struct {
		Currency string `json:"currency"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if !h.Selection.Set(req.Currency) {
		return echo.NewHTTPError(http.StatusBadRequest, "неизвестная валюта")
	}
	return c.JSON(http.StatusOK, echo.Map{"currency": h.Selection.Current()})
}
