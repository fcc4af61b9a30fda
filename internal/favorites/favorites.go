package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/GenaM19021977/teplomarket/internal/events"
	"github.com/GenaM19021977/teplomarket/internal/kvstore"
	"github.com/GenaM19021977/teplomarket/internal/models"
	"github.com/GenaM19021977/teplomarket/internal/token"
)

const keyPrefix = "teplomarket_favorites_"

type TokenSource interface {
	AccessToken() (string, bool)
}

// Store is the per-user favorites list, keyed the same way the cart
// is. Adding an already-present product is a no-op.
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

func (s *Store) Items() []models.FavoriteItem {
	key, _, ok := s.storageKey()
	if !ok {
		return nil
	}
	raw, ok := s.kv.Get(key)
	if !ok {
		return nil
	}
	var items []models.FavoriteItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func (s *Store) save(key string, userID uint, items []models.FavoriteItem) {
	data, err := json.Marshal(items)
	if err != nil {
		s.log.Error("favorites: marshal failed", "error", err)
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.log.Error("favorites: save failed", "error", err)
		return
	}
	s.bus.Publish(events.Event{Topic: events.FavoritesUpdated, UserID: userID})
}

func (s *Store) Contains(productID uint) bool {
	for _, it := range s.Items() {
		if it.ID == productID {
			return true
		}
	}
	return false
}

// AddIfAuth adds for an authenticated user with a decodable user id
// and reports whether the product ended up (or already was) in the
// list.
func (s *Store) AddIfAuth(p models.Product) bool {
	_, _, ok := s.storageKey()
	if !ok {
		return false
	}
	s.Add(p)
	return true
}

func (s *Store) Add(p models.Product) {
	key, userID, ok := s.storageKey()
	if !ok {
		return
	}
	items := s.Items()
	for _, it := range items {
		if it.ID == p.ID {
			return
		}
	}
	items = append(items, models.FavoriteItem{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
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

func (s *Store) Count() int {
	return len(s.Items())
}
