// Package engine drives every state transition of the marketplace: it asks
// the role gate, applies the state machine, persists under a version check,
// then notifies. Each operation takes the acting user explicitly.
package engine

import (
	"context"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/storage"
	"bazaar/internal/notify"

	"go.uber.org/zap"
)

const (
	DefaultOpTimeout       = 5 * time.Second
	DefaultBulkConcurrency = 8
)

// ListingCache is the read-through cache for public listings. Set must not
// replace a newer version, and Invalidate should keep a racing Set from
// restoring the entry it just removed.
type ListingCache interface {
	Get(ctx context.Context, id int64) (*listings.Listing, error)
	Set(ctx context.Context, l *listings.Listing) error
	Invalidate(ctx context.Context, ids ...int64) error
}

type Observer interface {
	Observe(operation, outcome string, took time.Duration)
	BulkTarget(action, outcome string)
}

type nopObserver struct{}

func (nopObserver) Observe(string, string, time.Duration) {}
func (nopObserver) BulkTarget(string, string)             {}

type Service struct {
	store           storage.Store
	numbers         *orders.NumberGenerator
	logger          *zap.SugaredLogger
	notifier        notify.Dispatcher
	cache           ListingCache
	observer        Observer
	opTimeout       time.Duration
	bulkConcurrency int
	now             func() time.Time
}

type Option func(*Service)

func WithNotifier(d notify.Dispatcher) Option {
	return func(s *Service) { s.notifier = d }
}

func WithListingCache(c ListingCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithOpTimeout bounds every single-entity operation, including each target
// of a bulk call.
func WithOpTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.opTimeout = d
		}
	}
}

func WithBulkConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.bulkConcurrency = n
		}
	}
}

func New(store storage.Store, numbers *orders.NumberGenerator, logger *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		store:           store,
		numbers:         numbers,
		logger:          logger,
		notifier:        notify.Nop,
		observer:        nopObserver{},
		opTimeout:       DefaultOpTimeout,
		bulkConcurrency: DefaultBulkConcurrency,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// run bounds fn by the operation timeout, classifies its error and records the
// outcome.
func (s *Service) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	err := apperr.Normalize("engine."+op, fn(ctx))
	kind := apperr.KindOf(err)
	s.observer.Observe(op, string(kind), time.Since(start))

	switch kind {
	case "":
	case apperr.KindInternal:
		s.logger.Errorw("engine operation failed", "op", op, "error", err)
	case apperr.KindTimeout:
		s.logger.Warnw("engine operation timed out", "op", op, "timeout", s.opTimeout, "error", err)
	}
	return err
}

func authorize(op string, actor rolegate.Actor, action rolegate.Action, target rolegate.Target) error {
	d, err := rolegate.CanPerform(actor, action, target)
	if err != nil {
		return apperr.Wrap(apperr.KindInvalidInput, op, err)
	}
	if !d.Allowed {
		return apperr.New(apperr.KindDenied, op, string(d.Reason))
	}
	return nil
}

// dispatch hands an event to the notifier after commit. Its failure is logged
// and never reaches the caller.
func (s *Service) dispatch(ctx context.Context, event notify.Event, p notify.Payload) {
	p.OccurredAt = s.now().UTC()
	if err := s.notifier.Notify(context.WithoutCancel(ctx), event, p); err != nil {
		s.logger.Warnw("notification dispatch failed", "event", event, "entity_id", p.EntityID, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context, ids ...int64) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), ids...); err != nil {
		s.logger.Warnw("listing cache invalidation failed", "listing_ids", ids, "error", err)
	}
}

func recipients(actorID int64, ids ...int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := map[int64]bool{actorID: true}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
