package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/backend"
	"github.com/GenaM19021977/teplomarket/internal/session"
)

type AuthHandler struct {
	Backend *backend.Client
	Session *session.Store
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	pair, err := h.Backend.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "неверный email или пароль")
		}
		return errorResponse(c, http.StatusBadGateway, err)
	}

	h.Session.SetTokens(pair.Access, pair.Refresh)
	return c.JSON(http.StatusOK, h.Session.State())
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req backend.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"errors": map[string][]string{"email": {emailErrorMessage}},
		})
	}
	if req.Phone != "" && !phoneRegex.MatchString(strings.TrimSpace(req.Phone)) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"errors": map[string][]string{"phone": {phoneErrorMessage}},
		})
	}

	pair, err := h.Backend.Register(c.Request().Context(), req)
	if err != nil {
		var verr *backend.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Fields})
		}
		return errorResponse(c, http.StatusBadGateway, err)
	}

	h.Session.SetTokens(pair.Access, pair.Refresh)
	return c.JSON(http.StatusCreated, h.Session.State())
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.Session.Clear()
	return c.JSON(http.StatusOK, h.Session.State())
}
