package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/GenaM19021977/teplomarket/internal/events"
	"github.com/GenaM19021977/teplomarket/internal/kvstore"
	"github.com/GenaM19021977/teplomarket/internal/token"
)

const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// State is the auth state derived from the stored token: either an
// authenticated user id, or anonymous.
type State struct {
	Authenticated bool `json:"authenticated"`
	UserID        uint `json:"user_id,omitempty"`
}

// Store keeps the bearer tokens in the profile store. Presence of an
// access token is the whole of authentication on this side; validity
// is the backend's call, and a 401 from it ends the session via Clear.
type Store struct {
	kv  kvstore.Store
	log *slog.Logger
}

func New(kv kvstore.Store, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

func (s *Store) SetTokens(access, refresh string) {
	if err := s.kv.Set(AccessTokenKey, access); err != nil {
		s.log.Error("session: не удалось сохранить access token", "error", err)
		return
	}
	if refresh != "" {
		if err := s.kv.Set(RefreshTokenKey, refresh); err != nil {
			s.log.Error("session: не удалось сохранить refresh token", "error", err)
		}
	}
}

func (s *Store) AccessToken() (string, bool) {
	v, ok := s.kv.Get(AccessTokenKey)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// IsAuthenticated is a token-presence check only.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.AccessToken()
	return ok
}

func (s *Store) UserID() (uint, bool) {
	raw, ok := s.AccessToken()
	if !ok {
		return 0, false
	}
	return token.DecodeUserID(raw)
}

func (s *Store) State() State {
	if id, ok := s.UserID(); ok {
		return State{Authenticated: true, UserID: id}
	}
	return State{Authenticated: s.IsAuthenticated()}
}

// Clear drops both tokens: logout, or the 401 path.
func (s *Store) Clear() {
	s.kv.Remove(AccessTokenKey)
	s.kv.Remove(RefreshTokenKey)
}

// Watch polls token presence and publishes an auth-changed event when
// it flips, so the header re-reads its state the way the original one
// did on its timer.
func (s *Store) Watch(ctx context.Context, interval time.Duration, bus *events.Bus) {
	last := s.IsAuthenticated()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			now := s.IsAuthenticated()
			if now != last {
				last = now
				bus.Publish(events.Event{
					Topic: events.AuthChanged,
					Data:  map[string]any{"authenticated": now},
				})
			}
		}
	}
}

// StaticToken adapts a literal token string to the cart and backend
// token source interfaces, used by tests.
type StaticToken string

func (t StaticToken) AccessToken() (string, bool) {
	return string(t), t != ""
}
