package handlers

import (
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/GenaM19021977/teplomarket/internal/catalog"
	"github.com/GenaM19021977/teplomarket/internal/favorites"
	"github.com/GenaM19021977/teplomarket/internal/models"
	"github.com/GenaM19021977/teplomarket/internal/search"
	"github.com/GenaM19021977/teplomarket/internal/util"
)

type CatalogHandler struct {
	Catalog   *catalog.Cache
	Favorites *favorites.Store
	Pricing   *Pricing
	ES        *elasticsearch.Client
	ESIndex   string
}

type productCard struct {
	models.Product
	PriceDisplay string `json:"price_display"`
	Image        string `json:"image"`
	InFavorites  bool   `json:"in_favorites"`
}

func (h *CatalogHandler) card(p models.Product) productCard {
	return productCard{
		Product:      p,
		PriceDisplay: h.Pricing.Format(p.Price),
		Image:        p.Image(),
		InFavorites:  h.Favorites.Contains(p.ID),
	}
}

func (h *CatalogHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	products := h.Catalog.Products()
	total := len(products)

	end := offset + limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	cards := make([]productCard, 0, end-offset)
	for _, p := range products[offset:end] {
		cards = append(cards, h.card(p))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": cards,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + limit - 1) / limit,
			"has_prev":    page > 1,
			"has_next":    end < total,
		},
	})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	p, ok := h.Catalog.Product(uint(id))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "товар не найден")
	}
	return c.JSON(http.StatusOK, h.card(p))
}

// RefreshCatalog is the refocus hook: the page calls it when its tab
// becomes visible again and the cache refetches out of band.
func (h *CatalogHandler) RefreshCatalog(c echo.Context) error {
	h.Catalog.Kick()
	return c.NoContent(http.StatusAccepted)
}

func (h *CatalogHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	if h.ES == nil {
		// degraded search over the cached snapshot
		matched := search.Filter(h.Catalog.Products(), q)
		total := len(matched)
		end := from + size
		if from > total {
			from = total
		}
		if end > total {
			end = total
		}
		cards := make([]productCard, 0, end-from)
		for _, p := range matched[from:end] {
			cards = append(cards, h.card(p))
		}
		return c.JSON(http.StatusOK, echo.Map{"total": total, "products": cards})
	}

	total, products, err := search.Search(c.Request().Context(), h.ES, h.ESIndex, q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, h.card(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": cards})
}
