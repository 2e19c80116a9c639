package users

import (
	"context"
	"errors"
	"time"

	"bazaar/internal/domain/rolegate"

	"golang.org/x/crypto/bcrypt"
)

var QueryTimeoutDuration = time.Second * 5

type User struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Password  Password      `json:"-"`
	Role      rolegate.Role `json:"role"`
	Active    bool          `json:"active"`
	Verified  bool          `json:"verified"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty"`
	Version   int64         `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Deleted reports whether the user carries a tombstone. Tombstoned users are
// kept so that repeating a delete is a no-op instead of not-found.
func (u *User) Deleted() bool { return u.DeletedAt != nil }

// CanAct reports whether the user may authenticate and drive transitions.
func (u *User) CanAct() bool { return u.Active && !u.Deleted() }

func (u *User) Actor() rolegate.Actor {
	return rolegate.Actor{ID: u.ID, Role: u.Role}
}

type Password struct {
	text *string
	hash []byte
}

func (p *Password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.text = &text
	p.hash = hash
	return nil
}

// Compare returns nil if text matches the stored hash.
func (p *Password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

func (p *Password) Hash() []byte { return p.hash }

func (p *Password) SetHash(hash []byte) { p.hash = hash }

var ErrDuplicateEmail = errors.New("a user with that email already exists")

type Filter struct {
	Role          rolegate.Role
	Active        *bool
	IncludeDelete bool
	Limit         int
	Offset        int
}

type Store interface {
	Create(ctx context.Context, u *User) error
	// Get returns the user even when tombstoned.
	Get(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// SetState persists Active and DeletedAt if the stored version still equals
	// expectedVersion, bumping u.Version on success.
	SetState(ctx context.Context, u *User, expectedVersion int64) error
	List(ctx context.Context, f Filter) ([]User, error)
}
