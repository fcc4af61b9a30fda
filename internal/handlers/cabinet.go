package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/backend"
	"github.com/GenaM19021977/teplomarket/internal/session"
)

type CabinetHandler struct {
	Backend *backend.Client
	Session *session.Store
}

func (h *CabinetHandler) GetProfile(c echo.Context) error {
	profile, err := h.Backend.Me(c.Request().Context())
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			// session is already cleared, send the visitor back in
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return errorResponse(c, http.StatusBadGateway, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *CabinetHandler) UpdateProfile(c echo.Context) error {
	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if phone, ok := fields["phone"].(string); ok && phone != "" && !phoneRegex.MatchString(phone) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"errors": map[string][]string{"phone": {phoneErrorMessage}},
		})
	}

	profile, err := h.Backend.UpdateProfile(c.Request().Context(), fields)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "сессия истекла")
		}
		var verr *backend.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Fields})
		}
		return errorResponse(c, http.StatusBadGateway, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *CabinetHandler) ChangePassword(c echo.Context) error {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := h.Backend.ChangePassword(c.Request().Context(), req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "сессия истекла")
		}
		var verr *backend.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Fields})
		}
		return errorResponse(c, http.StatusBadGateway, err)
	}
	return c.JSON(http.StatusOK, Response{Status: "ok", Message: "Пароль успешно изменён"})
}
