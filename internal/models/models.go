package models

import (
	"github.com/GenaM19021977/teplomarket/internal/price"
)

// Product is a catalog entry as the backend serves it. Price comes
// back as parsed supplier text, so it can be a number or free text.
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       price.Raw `json:"price"`
	Image1      string    `json:"image_1"`
	Image2      string    `json:"image_2"`
	Image3      string    `json:"image_3"`
	ProductURL  string    `json:"product_url"`
}

// Image returns the card image the way the original cards picked it:
// image_2 first, then image_1, then image_3.
func (p Product) Image() string {
	if p.Image2 != "" {
		return p.Image2
	}
	if p.Image1 != "" {
		return p.Image1
	}
	return p.Image3
}

type CartItem struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Price      price.Raw `json:"price"`
	Quantity   uint      `json:"quantity"`
	Image      string    `json:"image_1"`
	ProductURL string    `json:"product_url"`
}

type FavoriteItem struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Price      price.Raw `json:"price"`
	Image      string    `json:"image_1"`
	ProductURL string    `json:"product_url"`
}

type Profile struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Avatar    string `json:"avatar"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	City      string `json:"city"`
	Street    string `json:"street"`
}

type Manufacturer struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type DeliveryOption struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
