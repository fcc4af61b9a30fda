package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenaM19021977/teplomarket/internal/events"
	"github.com/GenaM19021977/teplomarket/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeLister struct {
	products []models.Product
	err      error
	calls    int
}

func (f *fakeLister) Boilers(ctx context.Context) ([]models.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakeIndexer struct {
	indexed []models.Product
	err     error
}

func (f *fakeIndexer) IndexProducts(ctx context.Context, products []models.Product) error {
	f.indexed = products
	return f.err
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{products: []models.Product{
		{ID: 1, Name: "Котёл один", Price: "2500"},
		{ID: 2, Name: "Котёл два", Price: "По запросу"},
	}}
	bus := events.NewBus()
	ch, unsubscribe := bus.Subscribe(events.CatalogUpdated)
	defer unsubscribe()

	c := New(lister, nil, bus, testLogger(), time.Hour)
	require.NoError(t, c.Refresh(context.Background()))

	assert.Len(t, c.Products(), 2)

	p, ok := c.Product(2)
	require.True(t, ok)
	assert.Equal(t, "Котёл два", p.Name)

	_, ok = c.Product(99)
	assert.False(t, ok)

	ev := <-ch
	assert.Equal(t, 2, ev.Data["count"])
}

func TestRefresh_FailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{products: []models.Product{{ID: 1}}}
	c := New(lister, nil, events.NewBus(), testLogger(), time.Hour)
	require.NoError(t, c.Refresh(context.Background()))

	lister.err = errors.New("backend недоступен")
	require.Error(t, c.Refresh(context.Background()))

	assert.Len(t, c.Products(), 1)
}

func TestRefresh_FeedsIndexer(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{products: []models.Product{{ID: 1}, {ID: 2}}}
	indexer := &fakeIndexer{}
	c := New(lister, indexer, events.NewBus(), testLogger(), time.Hour)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, indexer.indexed, 2)
}

func TestRefresh_IndexerFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{products: []models.Product{{ID: 1}}}
	indexer := &fakeIndexer{err: errors.New("es недоступен")}
	c := New(lister, indexer, events.NewBus(), testLogger(), time.Hour)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Products(), 1)
}

func TestProducts_ReturnsCopy(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{products: []models.Product{{ID: 1, Name: "original"}}}
	c := New(lister, nil, events.NewBus(), testLogger(), time.Hour)
	require.NoError(t, c.Refresh(context.Background()))

	got := c.Products()
	got[0].Name = "mutated"

	assert.Equal(t, "original", c.Products()[0].Name)
}

func TestRun_KickTriggersRefresh(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{products: []models.Product{{ID: 1}}}
	c := New(lister, nil, events.NewBus(), testLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	c.Kick()
	require.Eventually(t, func() bool {
		return len(c.Products()) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
