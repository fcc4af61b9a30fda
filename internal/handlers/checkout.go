package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/backend"
	"github.com/GenaM19021977/teplomarket/internal/cart"
)

const (
	deliveryPickup  = "pickup"
	deliveryCourier = "courier"
)

type CheckoutHandler struct {
	Cart    *cart.Store
	Backend *backend.Client
	Pricing *Pricing
}

// GetCheckout shows the order summary. The phone field is prefilled
// from the profile when the backend still accepts our token.
func (h *CheckoutHandler) GetCheckout(c echo.Context) error {
	items := h.Cart.Items()
	if len(items) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"empty":   true,
			"message": "Корзина пуста. Добавьте товары для оформления заказа.",
		})
	}

	phone := ""
	if profile, err := h.Backend.Me(c.Request().Context()); err == nil {
		phone = strings.TrimSpace(profile.Phone)
	}

	var options []string
	if opts, err := h.Backend.Delivery(c.Request().Context()); err == nil {
		for _, o := range opts {
			options = append(options, o.Name)
		}
	}
	if len(options) == 0 {
		options = []string{deliveryPickup, deliveryCourier}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"total":    h.Pricing.FormatAmount(h.Cart.TotalBYN()),
		"phone":    phone,
		"delivery": options,
	})
}

// SubmitCheckout validates the form; the actual order step does not
// exist yet and the backend has no endpoint for it.
func (h *CheckoutHandler) SubmitCheckout(c echo.Context) error {
	var req struct {
		Phone    string `json:"phone"`
		Delivery string `json:"delivery"`
		Comment  string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if len(h.Cart.Items()) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone != "" && !phoneRegex.MatchString(phone) {
		return errorResponse(c, http.StatusBadRequest, errors.New(phoneErrorMessage))
	}

	return c.JSON(http.StatusOK, Response{
		Status:  "ok",
		Message: "Следующий шаг оформления — в разработке.",
	})
}
