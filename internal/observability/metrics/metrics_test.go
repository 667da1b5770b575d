package metrics

import (
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/visionhub/console/pkg/visionhub"
)

// The client facade reports status codes as ints while the histogram
// label is a string; the observer closure owns the conversion.
func TestBackendObserverMatchesClientSignature(t *testing.T) {
	opt := visionhub.WithObserver(func(method string, status int, elapsed time.Duration) {
		ObserveBackendRequest(method, strconv.Itoa(status), elapsed)
	})
	if opt == nil {
		t.Fatal("expected a client option")
	}

	ObserveBackendRequest("GET", strconv.Itoa(200), 5*time.Millisecond)
	if got := testutil.CollectAndCount(backendRequestDuration); got == 0 {
		t.Fatalf("expected backend duration series after observing, got %d", got)
	}
}

func TestSessionGaugeTracksIncrementAndDecrement(t *testing.T) {
	before := testutil.ToFloat64(activeSessions)
	IncrementSessions()
	IncrementSessions()
	DecrementSessions()
	if got := testutil.ToFloat64(activeSessions); got != before+1 {
		t.Fatalf("expected session gauge %v, got %v", before+1, got)
	}
}
