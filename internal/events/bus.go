package events

import "sync"

type Topic string

const (
	CartUpdated      Topic = "cart-updated"
	FavoritesUpdated Topic = "favorites-updated"
	CurrencyUpdated  Topic = "currency-updated"
	CatalogUpdated   Topic = "catalog-updated"
	AuthChanged      Topic = "auth-changed"
)

type Event struct {
	Topic  Topic          `json:"topic"`
	UserID uint           `json:"user_id,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Bus is the in-process change-notification channel between the state
// layer and mounted views. Publish returns after every subscriber has
// been offered the event; a subscriber that stopped draining its
// channel misses events instead of blocking the mutation.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]chan Event)}
}

// Subscribe returns a channel of events for one topic and a function
// that cancels the subscription.
func (b *Bus) Subscribe(topic Topic) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		chans := b.subs[topic]
		for i, c := range chans {
			if c == ch {
				b.subs[topic] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
	}
	return ch, unsubscribe
}

func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[ev.Topic] {
		select {
		case ch <- ev:
		default:
		}
	}
}
