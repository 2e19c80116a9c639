package engine

import (
	"context"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/rolegate"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type BulkOutcome struct {
	TargetID int64       `json:"target_id"`
	Success  bool        `json:"success"`
	Kind     apperr.Kind `json:"kind,omitempty"`
	Reason   string      `json:"reason,omitempty"`
}

// BulkResult is the itemized answer to one bulk call. FailureCount > 0 is a
// partial failure, not an error.
type BulkResult struct {
	ID           string          `json:"id"`
	Action       rolegate.Action `json:"action"`
	Outcomes     []BulkOutcome   `json:"outcomes"`
	SuccessCount int             `json:"success_count"`
	FailureCount int             `json:"failure_count"`
	// Cancelled is set when the call was cancelled before every target was
	// dispatched.
	Cancelled bool `json:"cancelled"`
}

func bulkAllowed(action rolegate.Action) bool {
	switch action {
	case rolegate.ListingApprove, rolegate.ListingReject, rolegate.ListingHide,
		rolegate.ListingUnhide, rolegate.ListingDelete,
		rolegate.UserBan, rolegate.UserUnban, rolegate.UserDelete:
		return true
	}
	return false
}

// ApplyBulk applies one action to every target independently and
// concurrently. A failing target never rolls back or blocks the others.
// Duplicate ids are applied once. Outcomes follow the order of first
// appearance in targetIDs.
//
// Cancelling ctx stops further dispatch only. Targets already dispatched run
// to completion under their own operation timeout and are recorded; the rest
// are reported with kind cancelled.
func (s *Service) ApplyBulk(ctx context.Context, actor rolegate.Actor, action rolegate.Action, targetIDs []int64) (*BulkResult, error) {
	const op = "ApplyBulk"
	if !bulkAllowed(action) {
		return nil, apperr.Newf(apperr.KindInvalidInput, "engine."+op, "action %q cannot be applied in bulk", action)
	}

	ids := dedupe(targetIDs)
	res := &BulkResult{
		ID:       uuid.NewString(),
		Action:   action,
		Outcomes: make([]BulkOutcome, len(ids)),
	}

	var g errgroup.Group
	sem := make(chan struct{}, s.bulkConcurrency)
	detached := context.WithoutCancel(ctx)

	for i, id := range ids {
		res.Outcomes[i].TargetID = id
		if !s.acquire(ctx, sem) {
			for j := i; j < len(ids); j++ {
				res.Outcomes[j] = BulkOutcome{
					TargetID: ids[j],
					Kind:     apperr.KindCancelled,
					Reason:   "not dispatched before cancellation",
				}
			}
			res.Cancelled = true
			break
		}

		g.Go(func() error {
			defer func() { <-sem }()
			err := s.applyOne(detached, actor, action, id)
			if err == nil {
				res.Outcomes[i].Success = true
				return nil
			}
			res.Outcomes[i].Kind = apperr.KindOf(err)
			res.Outcomes[i].Reason = apperr.ReasonOf(err)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range res.Outcomes {
		outcome := "success"
		if o.Success {
			res.SuccessCount++
		} else {
			res.FailureCount++
			outcome = string(o.Kind)
		}
		s.observer.BulkTarget(string(action), outcome)
	}

	s.logger.Infow("bulk action applied",
		"bulk_id", res.ID,
		"action", action,
		"targets", len(ids),
		"succeeded", res.SuccessCount,
		"failed", res.FailureCount,
		"cancelled", res.Cancelled,
		"actor_id", actor.ID,
	)
	return res, nil
}

// acquire takes a dispatch slot, or reports false once ctx is done.
func (s *Service) acquire(ctx context.Context, sem chan struct{}) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case sem <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Service) applyOne(ctx context.Context, actor rolegate.Actor, action rolegate.Action, id int64) error {
	if la, ok := listings.ActionFromGate(action); ok {
		_, err := s.ModerateListing(ctx, actor, id, la)
		return err
	}

	var err error
	switch action {
	case rolegate.UserBan:
		_, err = s.BanUser(ctx, actor, id)
	case rolegate.UserUnban:
		_, err = s.UnbanUser(ctx, actor, id)
	case rolegate.UserDelete:
		_, err = s.DeleteUser(ctx, actor, id)
	}
	return err
}

func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
