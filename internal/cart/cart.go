package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/GenaM19021977/teplomarket/internal/events"
	"github.com/GenaM19021977/teplomarket/internal/kvstore"
	"github.com/GenaM19021977/teplomarket/internal/models"
	"github.com/GenaM19021977/teplomarket/internal/price"
	"github.com/GenaM19021977/teplomarket/internal/token"
)

const keyPrefix = "teplomarket_cart_"

// TokenSource yields the current access token, when there is one.
type TokenSource interface {
	AccessToken() (string, bool)
}

// Store is the per-user cart. Each user id decoded from the access
// token gets its own key in the profile store; without a decodable id
// every read is empty and every mutation is a no-op. Mutations persist
// first and then publish cart-updated on the bus.
type Store struct {
	kv  kvstore.Store
	bus *events.Bus
	tok TokenSource
	log *slog.Logger
}

func New(kv kvstore.Store, bus *events.Bus, tok TokenSource, log *slog.Logger) *Store {
	return &Store{kv: kv, bus: bus, tok: tok, log: log}
}

func (s *Store) storageKey() (string, uint, bool) {
	raw, ok := s.tok.AccessToken()
	if !ok {
		return "", 0, false
	}
	id, ok := token.DecodeUserID(raw)
	if !ok {
		return "", 0, false
	}
	return fmt.Sprintf("%s%d", keyPrefix, id), id, true
}

// Items returns the persisted cart for the current user, empty when
// unauthenticated or when the stored value does not parse.
func (s *Store) Items() []models.CartItem {
	key, _, ok := s.storageKey()
	if !ok {
		return nil
	}
	raw, ok := s.kv.Get(key)
	if !ok {
		return nil
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func (s *Store) save(key string, userID uint, items []models.CartItem) {
	data, err := json.Marshal(items)
	if err != nil {
		s.log.Error("cart: marshal failed", "error", err)
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.log.Error("cart: save failed", "error", err)
		return
	}
	s.bus.Publish(events.Event{Topic: events.CartUpdated, UserID: userID})
}

// IsAuth reports whether an access token is present at all.
func (s *Store) IsAuth() bool {
	_, ok := s.tok.AccessToken()
	return ok
}

// AddIfAuth adds only for an authenticated user and tells the caller
// whether the product went in.
func (s *Store) AddIfAuth(p models.Product, quantity int) bool {
	if !s.IsAuth() {
		return false
	}
	s.Add(p, quantity)
	return true
}

// Add puts quantity of the product in the cart, bumping the existing
// line when the product is already there.
func (s *Store) Add(p models.Product, quantity int) {
	key, userID, ok := s.storageKey()
	if !ok {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	items := s.Items()
	for i := range items {
		if items[i].ID == p.ID {
			q := items[i].Quantity
			if q == 0 {
				q = 1
			}
			items[i].Quantity = q + uint(quantity)
			s.save(key, userID, items)
			return
		}
	}
	items = append(items, models.CartItem{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   uint(quantity),
		Image:      p.Image1,
		ProductURL: p.ProductURL,
	})
	s.save(key, userID, items)
}

func (s *Store) Remove(productID uint) {
	key, userID, ok := s.storageKey()
	if !ok {
		return
	}
	items := s.Items()
	kept := items[:0]
	for _, it := range items {
		if it.ID != productID {
			kept = append(kept, it)
		}
	}
	s.save(key, userID, kept)
}

// UpdateQuantity sets the line quantity. A value below 1 is stored as
// exactly 0; the line stays in the cart. Absent ids are ignored.
func (s *Store) UpdateQuantity(productID uint, quantity int) {
	key, userID, ok := s.storageKey()
	if !ok {
		return
	}
	items := s.Items()
	for i := range items {
		if items[i].ID == productID {
			if quantity < 1 {
				items[i].Quantity = 0
			} else {
				items[i].Quantity = uint(quantity)
			}
			s.save(key, userID, items)
			return
		}
	}
}

func (s *Store) Clear() {
	key, userID, ok := s.storageKey()
	if !ok {
		return
	}
	s.save(key, userID, []models.CartItem{})
}

// Count is the badge number: the sum of line quantities.
func (s *Store) Count() int {
	total := 0
	for _, it := range s.Items() {
		total += int(it.Quantity)
	}
	return total
}

// TotalBYN sums the cart in the canonical currency. Lines whose
// quantity was clamped to 0 still count once, as on the original
// checkout page.
func (s *Store) TotalBYN() float64 {
	var total float64
	for _, it := range s.Items() {
		q := it.Quantity
		if q < 1 {
			q = 1
		}
		total += price.Parse(string(it.Price)) * float64(q)
	}
	return total
}
