package currency

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/GenaM19021977/teplomarket/internal/events"
	"github.com/GenaM19021977/teplomarket/internal/kvstore"
)

// NBRB daily official rates, quoted against BYN.
const DefaultURL = "https://api.nbrb.by/exrates/rates?periodicity=0"

const (
	Canonical   = "BYN"
	selectedKey = "teplomarket_currency"
	defaultCode = "RUB"
)

var Codes = []string{"BYN", "RUB", "USD", "EUR"}

type Rate struct {
	Rate  float64 `json:"rate"`
	Scale float64 `json:"scale"`
}

type Rates map[string]Rate

// Fallback is the static table used whenever the NBRB fetch fails.
func Fallback() Rates {
	return Rates{
		"USD": {Rate: 3.27, Scale: 1},
		"EUR": {Rate: 3.52, Scale: 1},
		"RUB": {Rate: 3.45, Scale: 100},
	}
}

type Service struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func New(url string, log *slog.Logger) *Service {
	if url == "" {
		url = DefaultURL
	}
	return &Service{
		url: url,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

type nbrbRate struct {
	Abbreviation string  `json:"Cur_Abbreviation"`
	OfficialRate float64 `json:"Cur_OfficialRate"`
	Scale        float64 `json:"Cur_Scale"`
}

// FetchRates loads the USD/EUR/RUB rates once. Any transport, status
// or decoding failure degrades to the fallback table; the caller never
// sees an error.
func (s *Service) FetchRates(ctx context.Context) Rates {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		s.log.Warn("currency: bad rates request", "error", err)
		return Fallback()
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("currency: rates fetch failed", "error", err)
		return Fallback()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("currency: rates fetch failed", "status", resp.StatusCode)
		return Fallback()
	}

	var records []nbrbRate
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		s.log.Warn("currency: rates decode failed", "error", err)
		return Fallback()
	}

	out := Rates{}
	for _, rec := range records {
		switch rec.Abbreviation {
		case "USD":
			out["USD"] = Rate{Rate: rec.OfficialRate, Scale: scaleOr(rec.Scale, 1)}
		case "EUR":
			out["EUR"] = Rate{Rate: rec.OfficialRate, Scale: scaleOr(rec.Scale, 1)}
		case "RUB":
			out["RUB"] = Rate{Rate: rec.OfficialRate, Scale: scaleOr(rec.Scale, 100)}
		}
	}
	return out
}

func scaleOr(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Convert turns an amount in BYN into the target currency. BYN, zero
// or NaN amounts, and currencies without a rate entry all come back
// unchanged.
func Convert(amountBYN float64, target string, rates Rates) float64 {
	if target == Canonical || amountBYN == 0 || math.IsNaN(amountBYN) {
		return amountBYN
	}
	r, ok := rates[target]
	if !ok {
		return amountBYN
	}
	return amountBYN / (r.Rate / r.Scale)
}

// Selection persists the display currency the visitor picked.
type Selection struct {
	kv  kvstore.Store
	bus *events.Bus
}

func NewSelection(kv kvstore.Store, bus *events.Bus) *Selection {
	return &Selection{kv: kv, bus: bus}
}

func (s *Selection) Current() string {
	if v, ok := s.kv.Get(selectedKey); ok && valid(v) {
		return v
	}
	return defaultCode
}

// Set stores a display currency; unknown codes are rejected.
func (s *Selection) Set(code string) bool {
	if !valid(code) {
		return false
	}
	if err := s.kv.Set(selectedKey, code); err != nil {
		return false
	}
	s.bus.Publish(events.Event{
		Topic: events.CurrencyUpdated,
		Data:  map[string]any{"currency": code},
	})
	return true
}

func valid(code string) bool {
	for _, c := range Codes {
		if c == code {
			return true
		}
	}
	return false
}
