package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("load listing: %w", New(KindNotFound, "listings.Get", "listing 7"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "listing 7", ReasonOf(err))
}

func TestKindOfDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	wrapped := Wrap(KindInternal, "orders.Get", ctx.Err())
	assert.Equal(t, KindTimeout, KindOf(wrapped))
	assert.Equal(t, KindTimeout, KindOf(fmt.Errorf("query: %w", ctx.Err())))
}

func TestKindOfPlainErrors(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindCancelled, KindOf(context.Canceled))
}

func TestNormalize(t *testing.T) {
	assert.NoError(t, Normalize("op", nil))

	typed := New(KindConflict, "listings.Update", "version 3")
	assert.Same(t, typed, Normalize("engine", typed))

	n := Normalize("engine.Checkout", errors.New("connection reset"))
	assert.Equal(t, KindInternal, KindOf(n))
	assert.Contains(t, n.Error(), "engine.Checkout")
}

func TestErrorMessage(t *testing.T) {
	err := New(KindDenied, "engine.ModerateListing", "wrong-role")
	assert.Equal(t, "engine.ModerateListing: authorization-denied: wrong-role", err.Error())
}
