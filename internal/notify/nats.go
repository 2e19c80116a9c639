package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

type envelope struct {
	Event   Event   `json:"event"`
	Payload Payload `json:"payload"`
}

// NATS publishes each event on <prefix>.<event>, e.g. bazaar.order.paid.
type NATS struct {
	conn   *nats.Conn
	prefix string
}

func NewNATS(conn *nats.Conn, prefix string) *NATS {
	return &NATS{conn: conn, prefix: prefix}
}

func (n *NATS) Subject(event Event) string {
	if n.prefix == "" {
		return string(event)
	}
	return n.prefix + "." + string(event)
}

func (n *NATS) Notify(ctx context.Context, event Event, p Payload) error {
	data, err := json.Marshal(envelope{Event: event, Payload: p})
	if err != nil {
		return err
	}
	if err := n.conn.Publish(n.Subject(event), data); err != nil {
		return fmt.Errorf("nats publish %s: %w", event, err)
	}
	return nil
}

func (n *NATS) Close() {
	n.conn.Close()
}
