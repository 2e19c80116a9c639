package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQP publishes events to a durable topic exchange with the event name as
// routing key, so consumers can bind e.g. "order.*".
type AMQP struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

func NewAMQP(conn *amqp.Connection, exchange string) (*AMQP, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq: exchange declare failed: %w", err)
	}
	return &AMQP{ch: ch, exchange: exchange}, nil
}

func (a *AMQP) Notify(ctx context.Context, event Event, p Payload) error {
	body, err := json.Marshal(envelope{Event: event, Payload: p})
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ch.PublishWithContext(ctx, a.exchange, string(event), false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", event, err)
	}
	return nil
}

func (a *AMQP) Close() error {
	return a.ch.Close()
}
