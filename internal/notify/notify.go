// Package notify delivers domain events after a transition commits. Delivery
// is fire-and-forget: the engine never fails a transition because a sink did.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event string

const (
	ListingApproved Event = "listing.approved"
	ListingRejected Event = "listing.rejected"
	ListingHidden   Event = "listing.hidden"
	ListingUnhidden Event = "listing.unhidden"
	ListingDeleted  Event = "listing.deleted"

	OrderCreated   Event = "order.created"
	OrderPaid      Event = "order.paid"
	OrderShipped   Event = "order.shipped"
	OrderDelivered Event = "order.delivered"
	OrderCancelled Event = "order.cancelled"

	UserRegistered Event = "user.registered"
	UserBanned     Event = "user.banned"
	UserUnbanned   Event = "user.unbanned"
	UserDeleted    Event = "user.deleted"
)

type Payload struct {
	EntityID     int64     `json:"entity_id"`
	ActorID      int64     `json:"actor_id"`
	RecipientIDs []int64   `json:"recipient_ids"`
	Status       string    `json:"status,omitempty"`
	Reference    string    `json:"reference,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Dispatcher interface {
	Notify(ctx context.Context, event Event, p Payload) error
}

type DispatcherFunc func(ctx context.Context, event Event, p Payload) error

func (f DispatcherFunc) Notify(ctx context.Context, event Event, p Payload) error {
	return f(ctx, event, p)
}

// Nop drops every event.
var Nop Dispatcher = DispatcherFunc(func(context.Context, Event, Payload) error { return nil })

// Multi sends to every sink and joins their errors.
type Multi []Dispatcher

func (m Multi) Notify(ctx context.Context, event Event, p Payload) error {
	var errs []error
	for _, d := range m {
		if err := d.Notify(ctx, event, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Async hands each event to a goroutine and returns immediately. Failures are
// logged, never returned.
type Async struct {
	next    Dispatcher
	logger  *zap.SugaredLogger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(next Dispatcher, logger *zap.SugaredLogger, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Async{next: next, logger: logger, timeout: timeout}
}

func (a *Async) Notify(ctx context.Context, event Event, p Payload) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.logger.Errorw("notification panicked", "event", event, "entity_id", p.EntityID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if err := a.next.Notify(ctx, event, p); err != nil {
			a.logger.Warnw("notification failed", "event", event, "entity_id", p.EntityID, "error", err)
		}
	}()
	return nil
}

// Wait blocks until in-flight deliveries finish. Call it on shutdown.
func (a *Async) Wait() { a.wg.Wait() }

type Notification struct {
	Event   Event
	Payload Payload
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *Recorder) Notify(_ context.Context, event Event, p Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Notification{Event: event, Payload: p})
	return nil
}

func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Event)
	}
	return out
}
