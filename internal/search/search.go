package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/GenaM19021977/teplomarket/internal/models"
)

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}

	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		log.Printf("Elasticsearch error response: %s", body)
		return nil, fmt.Errorf("elasticsearch error: %s", res.Status())
	}

	return client, nil
}

// Index writes each catalog snapshot into one Elasticsearch index so
// the selection page can search it.
type Index struct {
	ES   *elasticsearch.Client
	Name string
}

func (x *Index) IndexProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("index %d: %w", p.ID, err)
		}
		res, err := x.ES.Index(
			x.Name,
			bytes.NewReader(data),
			x.ES.Index.WithDocumentID(fmt.Sprint(p.ID)),
			x.ES.Index.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("index %d: %w", p.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index %d: %s", p.ID, res.Status())
		}
	}
	return nil
}

// Search runs a fuzzy multi-field query over the product index.
func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}

	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

// Filter is the degraded search used when Elasticsearch is not
// configured: a case-insensitive substring match over the cached
// catalog.
func Filter(products []models.Product, query string) []models.Product {
	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}
