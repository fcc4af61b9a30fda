package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

var relayTopics = map[Topic]string{
	CartUpdated:      "cart_events",
	FavoritesUpdated: "favorites_events",
}

// Relay forwards cart and favorites change events to Kafka so other
// storefront processes sharing the same profile store learn about the
// write, the way a second browser tab saw the storage event. Delivery
// failures are logged and dropped.
type Relay struct {
	writer *kafka.Writer
	log    *slog.Logger
}

func NewRelay(address string, log *slog.Logger) *Relay {
	w := &kafka.Writer{
		Addr:         kafka.TCP(address),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}
	return &Relay{writer: w, log: log}
}

// Run consumes the bus until ctx is done.
func (r *Relay) Run(ctx context.Context, bus *Bus) {
	carts, unsubCarts := bus.Subscribe(CartUpdated)
	defer unsubCarts()
	favs, unsubFavs := bus.Subscribe(FavoritesUpdated)
	defer unsubFavs()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-carts:
			r.publish(ctx, ev)
		case ev := <-favs:
			r.publish(ctx, ev)
		}
	}
}

func (r *Relay) publish(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		r.log.Error("kafka: json.Marshal failed", "error", err)
		return
	}

	msg := kafka.Message{
		Topic: relayTopics[ev.Topic],
		Key:   []byte(fmt.Sprint(ev.UserID)),
		Value: data,
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.writer.WriteMessages(writeCtx, msg); err != nil {
		r.log.Error("kafka: delivery failed", "topic", msg.Topic, "error", err)
	}
}

func (r *Relay) Close() error {
	return r.writer.Close()
}
