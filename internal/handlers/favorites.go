package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/backend"
	"github.com/GenaM19021977/teplomarket/internal/catalog"
	"github.com/GenaM19021977/teplomarket/internal/favorites"
	"github.com/GenaM19021977/teplomarket/internal/guard"
	"github.com/GenaM19021977/teplomarket/internal/models"
)

type FavoritesHandler struct {
	Favorites *favorites.Store
	Catalog   *catalog.Cache
	Backend   *backend.Client
	Pricing   *Pricing
}

type favoriteLine struct {
	models.FavoriteItem
	PriceDisplay string `json:"price_display"`
}

func (h *FavoritesHandler) GetFavorites(c echo.Context) error {
	items := h.Favorites.Items()
	lines := make([]favoriteLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, favoriteLine{
			FavoriteItem: it,
			PriceDisplay: h.Pricing.Format(it.Price),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": lines,
		"count": h.Favorites.Count(),
	})
}

func (h *FavoritesHandler) AddToFavorites(c echo.Context) error {
	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	product, ok := h.Catalog.Product(req.ProductID)
	if !ok {
		p, err := h.Backend.Boiler(c.Request().Context(), req.ProductID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "товар не найден")
		}
		product = *p
	}

	if !h.Favorites.AddIfAuth(product) {
		return c.JSON(http.StatusUnauthorized, Response{
			Status:  "error",
			Message: guard.AuthRequiredMessage,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": h.Favorites.Count()})
}

func (h *FavoritesHandler) RemoveFromFavorites(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	h.Favorites.Remove(uint(id))
	return c.NoContent(http.StatusNoContent)
}
