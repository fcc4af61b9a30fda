package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/cart"
	"github.com/GenaM19021977/teplomarket/internal/favorites"
	"github.com/GenaM19021977/teplomarket/internal/session"
)

// HeaderHandler serves what the chrome re-reads after every
// cart-updated / favorites-updated / auth-changed event: the badge
// counters and the auth state.
type HeaderHandler struct {
	Cart      *cart.Store
	Favorites *favorites.Store
	Session   *session.Store
}

func (h *HeaderHandler) GetHeader(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"auth":            h.Session.State(),
		"cart_count":      h.Cart.Count(),
		"favorites_count": h.Favorites.Count(),
	})
}
