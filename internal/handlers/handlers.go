package handlers

import (
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/currency"
	"github.com/GenaM19021977/teplomarket/internal/price"
)

// Валидация телефона: + и ровно 12 цифр.
var phoneRegex = regexp.MustCompile(`^\+[0-9]{12}$`)

const (
	phoneErrorMessage = "Некорректный ввод номера телефона."
	emailErrorMessage = "Некорректный адрес электронной почты!"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Pricing renders prices in the visitor's display currency.
type Pricing struct {
	Rates     currency.Rates
	Selection *currency.Selection
}

func (p *Pricing) convert() (string, price.ConvertFunc) {
	code := p.Selection.Current()
	return code, func(amount float64) float64 {
		return currency.Convert(amount, code, p.Rates)
	}
}

// Format renders a raw catalog price, passing free-text prices through
// untouched.
func (p *Pricing) Format(raw price.Raw) string {
	code, conv := p.convert()
	return price.FormatWithCurrency(raw, code, conv)
}

// FormatAmount renders an amount held in BYN.
func (p *Pricing) FormatAmount(amount float64) string {
	code, conv := p.convert()
	return price.FormatAmount(amount, code, conv)
}
