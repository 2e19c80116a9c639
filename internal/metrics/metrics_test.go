package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New("bazaar")

	m.Observe("checkout", "", 10*time.Millisecond)
	m.Observe("checkout", "insufficient-stock", time.Millisecond)
	m.Observe("checkout", "", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("checkout", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("checkout", "insufficient-stock")))
}

func TestBulkTarget(t *testing.T) {
	m := New("bazaar")
	m.BulkTarget("listing.approve", "")
	m.BulkTarget("listing.approve", "not-found")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bulkTargets.WithLabelValues("listing.approve", "not-found")))
}
