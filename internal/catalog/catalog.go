package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/GenaM19021977/teplomarket/internal/events"
	"github.com/GenaM19021977/teplomarket/internal/models"
)

type Lister interface {
	Boilers(ctx context.Context) ([]models.Product, error)
}

// Indexer receives each fresh snapshot, e.g. for full-text search.
type Indexer interface {
	IndexProducts(ctx context.Context, products []models.Product) error
}

// Cache holds the last good catalog snapshot and refreshes it on a
// fixed interval. Kick forces an immediate refresh, the way the
// original page refetched when its tab regained focus. A failed fetch
// keeps the previous snapshot. A new refresh cancels the one still in
// flight, so the newest response always wins.
type Cache struct {
	lister   Lister
	indexer  Indexer
	bus      *events.Bus
	log      *slog.Logger
	interval time.Duration

	mu       sync.RWMutex
	products []models.Product

	kick chan struct{}

	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

func New(lister Lister, indexer Indexer, bus *events.Bus, log *slog.Logger, interval time.Duration) *Cache {
	return &Cache{
		lister:   lister,
		indexer:  indexer,
		bus:      bus,
		log:      log,
		interval: interval,
		kick:     make(chan struct{}, 1),
	}
}

func (c *Cache) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) Product(id uint) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Refresh fetches the catalog once. The previous in-flight refresh, if
// any, is cancelled first.
func (c *Cache) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelMu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.cancelMu.Unlock()

	products, err := c.lister.Boilers(ctx)
	if err != nil {
		c.log.Warn("catalog: refresh failed", "error", err)
		return err
	}

	c.mu.Lock()
	c.products = products
	c.mu.Unlock()

	if c.indexer != nil {
		if err := c.indexer.IndexProducts(ctx, products); err != nil {
			c.log.Warn("catalog: index failed", "error", err)
		}
	}

	c.bus.Publish(events.Event{
		Topic: events.CatalogUpdated,
		Data:  map[string]any{"count": len(products)},
	})
	return nil
}

// Kick schedules an immediate refresh; extra kicks while one is
// pending are collapsed.
func (c *Cache) Kick() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Run refreshes on the interval until ctx is done.
func (c *Cache) Run(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = c.Refresh(ctx)
		case <-c.kick:
			_ = c.Refresh(ctx)
		}
	}
}
