package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GenaM19021977/teplomarket/internal/models"
)

// ErrUnauthorized is returned when the backend rejects the bearer
// token. The client has already invoked the auth-failure hook by then.
var ErrUnauthorized = errors.New("backend: unauthorized")

// publicEndpoints never carry the Authorization header.
var publicEndpoints = []string{"register/", "login/"}

// ValidationError carries per-field messages from a 400 response, the
// shape the registration form shows inline.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("backend: validation failed on %d field(s)", len(e.Fields))
}

type TokenSource interface {
	AccessToken() (string, bool)
}

// Client talks to the shop backend. Every call except the public
// allowlist carries "Authorization: Bearer <token>"; a 401 anywhere
// clears the session through onAuthFailure and surfaces
// ErrUnauthorized.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthFailure func()
}

func NewClient(baseURL string, tokens TokenSource, onAuthFailure func()) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		tokens:        tokens,
		onAuthFailure: onAuthFailure,
	}
}

func isPublic(path string) bool {
	for _, e := range publicEndpoints {
		if strings.Contains(path, e) {
			return true
		}
	}
	return false
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if !isPublic(path) {
		if tok, ok := c.tokens.AccessToken(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		var fields map[string][]string
		if err := json.NewDecoder(resp.Body).Decode(&fields); err == nil && len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
		return fmt.Errorf("backend: %s %s: status %d", method, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("backend: %s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// TokenPair is what login and register hand back.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "login/", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenPair, error) {
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "register/", req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) Me(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "me/", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile patches only the fields present in the map.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPatch, "me/update_profile/", fields, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return c.do(ctx, http.MethodPost, "me/change_password/", body, nil)
}

func (c *Client) Boilers(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "boilers/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Boiler(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("boilers/%d/", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Delivery(ctx context.Context) ([]models.DeliveryOption, error) {
	var opts []models.DeliveryOption
	if err := c.do(ctx, http.MethodGet, "delivery/", nil, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (c *Client) Manufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	var out []models.Manufacturer
	if err := c.do(ctx, http.MethodGet, "manufacturers/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
