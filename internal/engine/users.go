package engine

import (
	"context"
	"errors"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/businesses"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/storage"
	"bazaar/internal/domain/users"
	"bazaar/internal/notify"
)

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     rolegate.Role
	// Business is required when Role is business.
	Business *businesses.Business
}

type UserQuery struct {
	Role           rolegate.Role
	Active         *bool
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// Authenticate resolves a token subject into an Actor. Banned and deleted
// users are refused even when their token is still valid.
func (s *Service) Authenticate(ctx context.Context, userID int64) (rolegate.Actor, error) {
	const op = "Authenticate"
	var actor rolegate.Actor

	err := s.run(ctx, op, func(ctx context.Context) error {
		u, err := s.store.Repos().Users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if !u.CanAct() {
			return apperr.New(apperr.KindDenied, op, "account is disabled")
		}
		actor = u.Actor()
		return nil
	})
	return actor, err
}

// Register signs up a customer or a business. Admins are never created here.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*users.User, error) {
	const op = "Register"

	u := &users.User{
		Email:  strings.ToLower(strings.TrimSpace(in.Email)),
		Name:   strings.TrimSpace(in.Name),
		Role:   in.Role,
		Active: true,
	}

	err := s.run(ctx, op, func(ctx context.Context) error {
		switch {
		case in.Role != rolegate.Customer && in.Role != rolegate.Business:
			return apperr.Newf(apperr.KindInvalidInput, op, "cannot register with role %q", in.Role)
		case u.Email == "":
			return apperr.New(apperr.KindInvalidInput, op, "email is required")
		case len(in.Password) < 8:
			return apperr.New(apperr.KindInvalidInput, op, "password must be at least 8 characters")
		case in.Role == rolegate.Business && (in.Business == nil || strings.TrimSpace(in.Business.Name) == ""):
			return apperr.New(apperr.KindInvalidInput, op, "business name is required")
		}
		if err := u.Password.Set(in.Password); err != nil {
			return err
		}

		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			if err := r.Users.Create(ctx, u); err != nil {
				return err
			}
			if u.Role != rolegate.Business {
				return nil
			}
			b := *in.Business
			b.UserID = u.ID
			if b.ContactEmail == "" {
				b.ContactEmail = u.Email
			}
			return r.Businesses.Create(ctx, &b)
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user registered", "user_id", u.ID, "role", u.Role)
	s.dispatch(ctx, notify.UserRegistered, notify.Payload{
		EntityID:     u.ID,
		ActorID:      u.ID,
		RecipientIDs: []int64{u.ID},
		Status:       string(u.Role),
	})
	return u, nil
}

// Login checks credentials. A wrong email and a wrong password are reported
// the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*users.User, error) {
	const op = "Login"
	var out *users.User

	err := s.run(ctx, op, func(ctx context.Context) error {
		u, err := s.store.Repos().Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.New(apperr.KindDenied, op, "invalid credentials")
		}
		if err != nil {
			return err
		}
		if err := u.Password.Compare(password); err != nil {
			return apperr.New(apperr.KindDenied, op, "invalid credentials")
		}
		if !u.CanAct() {
			return apperr.New(apperr.KindDenied, op, "account is disabled")
		}
		out = u
		return nil
	})
	return out, err
}

func (s *Service) BanUser(ctx context.Context, actor rolegate.Actor, id int64) (*users.User, error) {
	return s.userAction(ctx, "BanUser", actor, rolegate.UserBan, id)
}

func (s *Service) UnbanUser(ctx context.Context, actor rolegate.Actor, id int64) (*users.User, error) {
	return s.userAction(ctx, "UnbanUser", actor, rolegate.UserUnban, id)
}

func (s *Service) DeleteUser(ctx context.Context, actor rolegate.Actor, id int64) (*users.User, error) {
	return s.userAction(ctx, "DeleteUser", actor, rolegate.UserDelete, id)
}

var userEvents = map[rolegate.Action]notify.Event{
	rolegate.UserBan:    notify.UserBanned,
	rolegate.UserUnban:  notify.UserUnbanned,
	rolegate.UserDelete: notify.UserDeleted,
}

// userAction applies ban, unban or delete. All three are idempotent: repeating
// one on a user already in that state succeeds without a write or an event.
// A deleted user is not-found for ban and unban.
func (s *Service) userAction(ctx context.Context, op string, actor rolegate.Actor, action rolegate.Action, id int64) (*users.User, error) {
	var out *users.User
	changed := false

	err := s.run(ctx, op, func(ctx context.Context) error {
		// role check before the load, so a denial says nothing about id
		if err := authorize(op, actor, action, rolegate.Target{}); err != nil {
			return err
		}
		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			u, err := r.Users.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := authorize(op, actor, action, rolegate.Target{OwnerID: u.ID, Role: u.Role}); err != nil {
				return err
			}

			expected := u.Version
			switch action {
			case rolegate.UserDelete:
				if !u.Deleted() {
					now := s.now().UTC()
					u.DeletedAt = &now
					u.Active = false
					changed = true
				}
			case rolegate.UserBan, rolegate.UserUnban:
				if u.Deleted() {
					return apperr.Newf(apperr.KindNotFound, op, "user %d", id)
				}
				active := action == rolegate.UserUnban
				if u.Active != active {
					u.Active = active
					changed = true
				}
			}

			out = u
			if !changed {
				return nil
			}
			return r.Users.SetState(ctx, u, expected)
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user action applied", "action", action, "user_id", id, "changed", changed, "actor_id", actor.ID)
	if changed {
		s.dispatch(ctx, userEvents[action], notify.Payload{
			EntityID:     id,
			ActorID:      actor.ID,
			RecipientIDs: recipients(actor.ID, id),
			Status:       string(action),
		})
	}
	return out, nil
}

func (s *Service) ListUsers(ctx context.Context, actor rolegate.Actor, q UserQuery) ([]users.User, error) {
	const op = "ListUsers"
	var out []users.User

	err := s.run(ctx, op, func(ctx context.Context) error {
		if err := authorize(op, actor, rolegate.UserList, rolegate.Target{}); err != nil {
			return err
		}
		var err error
		out, err = s.store.Repos().Users.List(ctx, users.Filter{
			Role:          q.Role,
			Active:        q.Active,
			IncludeDelete: q.IncludeDeleted,
			Limit:         q.Limit,
			Offset:        q.Offset,
		})
		return err
	})
	return out, err
}

// Directory resolves user ids to mail contacts. Unknown, deleted and banned
// users are left out.
type Directory struct {
	store storage.Store
}

func NewDirectory(store storage.Store) *Directory {
	return &Directory{store: store}
}

func (d *Directory) Contacts(ctx context.Context, userIDs []int64) (map[int64]notify.Contact, error) {
	out := make(map[int64]notify.Contact, len(userIDs))
	repos := d.store.Repos()
	for _, id := range userIDs {
		u, err := repos.Users.Get(ctx, id)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !u.CanAct() {
			continue
		}
		out[id] = notify.Contact{Name: u.Name, Email: u.Email}
	}
	return out, nil
}
