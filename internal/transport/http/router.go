package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/guard"
	"github.com/GenaM19021977/teplomarket/internal/handlers"
	"github.com/GenaM19021977/teplomarket/internal/session"
)

type Deps struct {
	Session          *session.Store
	AuthHandler      *handlers.AuthHandler
	CatalogHandler   *handlers.CatalogHandler
	CartHandler      *handlers.CartHandler
	FavoritesHandler *handlers.FavoritesHandler
	CheckoutHandler  *handlers.CheckoutHandler
	CabinetHandler   *handlers.CabinetHandler
	CurrencyHandler  *handlers.CurrencyHandler
	HeaderHandler    *handlers.HeaderHandler
	InfoHandler      *handlers.InfoHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/login", d.AuthHandler.Login)
	e.POST("/register", d.AuthHandler.Register)
	e.POST("/logout", d.AuthHandler.Logout)

	e.GET("/header", d.HeaderHandler.GetHeader)
	e.GET("/currency", d.CurrencyHandler.GetCurrency)
	e.POST("/currency", d.CurrencyHandler.SetCurrency)

	e.GET("/catalog", d.CatalogHandler.GetProducts)
	e.GET("/catalog/:id", d.CatalogHandler.GetProduct)
	e.POST("/catalog/refresh", d.CatalogHandler.RefreshCatalog)
	e.GET("/search", d.CatalogHandler.Search)

	e.GET("/delivery", d.InfoHandler.GetDelivery)
	e.GET("/brands", d.InfoHandler.GetManufacturers)

	e.GET("/favorites", d.FavoritesHandler.GetFavorites)
	e.POST("/favorites", d.FavoritesHandler.AddToFavorites)
	e.DELETE("/favorites/:id", d.FavoritesHandler.RemoveFromFavorites)

	// покупка: мягкая защита, вместо контента — приглашение войти
	purchase := e.Group("", guard.SoftGate(d.Session, ""))
	purchase.GET("/cart", d.CartHandler.GetCart)
	purchase.GET("/checkout", d.CheckoutHandler.GetCheckout)
	purchase.POST("/checkout", d.CheckoutHandler.SubmitCheckout)

	e.POST("/cart", d.CartHandler.AddToCart)
	e.PATCH("/cart/:id", d.CartHandler.UpdateQuantity)
	e.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)
	e.DELETE("/cart", d.CartHandler.ClearCart)

	// личный кабинет: жёсткая защита, неавторизованных уводим на логин
	cabinet := e.Group("/cabinet", guard.RequireAuth(d.Session))
	cabinet.GET("", d.CabinetHandler.GetProfile)
	cabinet.PATCH("", d.CabinetHandler.UpdateProfile)
	cabinet.POST("/password", d.CabinetHandler.ChangePassword)
}
