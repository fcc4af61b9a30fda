package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/backend"
	"github.com/GenaM19021977/teplomarket/internal/cart"
	"github.com/GenaM19021977/teplomarket/internal/catalog"
	"github.com/GenaM19021977/teplomarket/internal/guard"
	"github.com/GenaM19021977/teplomarket/internal/models"
)

type CartHandler struct {
	Cart    *cart.Store
	Catalog *catalog.Cache
	Backend *backend.Client
	Pricing *Pricing
}

type cartLine struct {
	models.CartItem
	PriceDisplay string `json:"price_display"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	items := h.Cart.Items()
	lines := make([]cartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, cartLine{
			CartItem:     it,
			PriceDisplay: h.Pricing.Format(it.Price),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": lines,
		"count": h.Cart.Count(),
		"total": h.Pricing.FormatAmount(h.Cart.TotalBYN()),
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, ok := h.Catalog.Product(req.ProductID)
	if !ok {
		// cache may still be cold right after start
		p, err := h.Backend.Boiler(c.Request().Context(), req.ProductID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "товар не найден")
		}
		product = *p
	}

	if !h.Cart.AddIfAuth(product, req.Quantity) {
		return c.JSON(http.StatusUnauthorized, Response{
			Status:  "error",
			Message: guard.AuthRequiredMessage,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": h.Cart.Count()})
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	h.Cart.UpdateQuantity(uint(id), req.Quantity)
	return h.GetCart(c)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.Cart.Remove(uint(id))
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	h.Cart.Clear()
	return c.NoContent(http.StatusNoContent)
}
