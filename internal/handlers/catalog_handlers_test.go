package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenaM19021977/teplomarket/internal/models"
)

func newCatalogEnv(t *testing.T) (*testEnv, *CatalogHandler) {
	t.Helper()
	env := newTestEnv(t, backendWithCatalog(t))
	require.NoError(t, env.Catalog.Refresh(context.Background()))
	h := &CatalogHandler{Catalog: env.Catalog, Favorites: env.Favorites, Pricing: env.Pricing}
	return env, h
}

func TestGetProducts(t *testing.T) {
	env, h := newCatalogEnv(t)
	env.signIn(1)
	env.Favorites.Add(models.Product{ID: 2, Name: "Котёл Bosch"})

	rec, c := env.doJSONRequest(http.MethodGet, "/catalog", nil)
	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			ID           uint   `json:"id"`
			PriceDisplay string `json:"price_display"`
			Image        string `json:"image"`
			InFavorites  bool   `json:"in_favorites"`
		} `json:"data"`
		Meta struct {
			Page       int  `json:"page"`
			Total      int  `json:"total"`
			TotalPages int  `json:"total_pages"`
			HasNext    bool `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)

	// у первого товара есть image_2, карточка выбирает его
	assert.Equal(t, "v2.jpg", resp.Data[0].Image)
	assert.Equal(t, "2 500,00 BYN", resp.Data[0].PriceDisplay)
	assert.False(t, resp.Data[0].InFavorites)
	assert.True(t, resp.Data[1].InFavorites)

	// цена без цифр отображается как есть
	assert.Equal(t, "По запросу", resp.Data[2].PriceDisplay)

	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.TotalPages)
	assert.False(t, resp.Meta.HasNext)
}

func TestGetProducts_Pagination(t *testing.T) {
	env, h := newCatalogEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/catalog?page=2&size=2", nil)
	c.QueryParams().Set("page", "2")
	c.QueryParams().Set("size", "2")
	require.NoError(t, h.GetProducts(c))

	var resp struct {
		Data []json.RawMessage `json:"data"`
		Meta struct {
			HasPrev bool `json:"has_prev"`
			HasNext bool `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.True(t, resp.Meta.HasPrev)
	assert.False(t, resp.Meta.HasNext)
}

func TestGetProduct(t *testing.T) {
	env, h := newCatalogEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/catalog/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var card struct {
		Name         string `json:"name"`
		PriceDisplay string `json:"price_display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	assert.Equal(t, "Котёл Viessmann", card.Name)
	assert.Equal(t, "2 500,00 BYN", card.PriceDisplay)
}

func TestGetProduct_NotFound(t *testing.T) {
	env, h := newCatalogEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/catalog/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := h.GetProduct(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCatalogPricesFollowSelectedCurrency(t *testing.T) {
	env, h := newCatalogEnv(t)
	require.True(t, env.Selection.Set("USD"))

	rec, c := env.doJSONRequest(http.MethodGet, "/catalog/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetProduct(c))

	var card struct {
		PriceDisplay string `json:"price_display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	// 2500 BYN по резервному курсу 3.27
	assert.Equal(t, "764,53 USD", card.PriceDisplay)
}

func TestSearch_DegradedWithoutES(t *testing.T) {
	env, h := newCatalogEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/search?q=bosch", nil)
	c.QueryParams().Set("q", "bosch")
	require.NoError(t, h.Search(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total    int `json:"total"`
		Products []struct {
			Name string `json:"name"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Котёл Bosch", resp.Products[0].Name)
}

func TestSearch_EmptyQuery(t *testing.T) {
	env, h := newCatalogEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/search", nil)
	err := h.Search(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRefreshCatalog(t *testing.T) {
	env, h := newCatalogEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/catalog/refresh", nil)
	require.NoError(t, h.RefreshCatalog(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
