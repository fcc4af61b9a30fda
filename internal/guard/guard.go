package guard

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthRequiredMessage is shown in place of gated purchase content.
const AuthRequiredMessage = "Для совершения покупки в нашем магазине зарегистрируйтесь или авторизуйтесь!"

const loginPath = "/login"

// Session is the token-presence check the guards run. No validation
// happens here; an expired token still passes and the backend rejects
// it on the next call.
type Session interface {
	IsAuthenticated() bool
}

// RequireAuth hard-gates a route: visitors without a token are sent to
// the login view.
func RequireAuth(s Session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !s.IsAuthenticated() {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}

// SoftGate substitutes a login/register call-to-action for the gated
// content instead of redirecting, for cart and checkout views.
func SoftGate(s Session, message string) echo.MiddlewareFunc {
	if message == "" {
		message = AuthRequiredMessage
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !s.IsAuthenticated() {
				return c.JSON(http.StatusOK, echo.Map{
					"gated":    true,
					"message":  message,
					"login":    loginPath,
					"register": "/register",
				})
			}
			return next(c)
		}
	}
}
