package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAuth("login", "ok")
	c.RecordAuth("login", "ok")
	c.RecordAuth("login", "invalid_credentials")
	c.RecordBooking("ok")
	c.RecordQuote("fallback")

	if got := testutil.ToFloat64(c.auth.WithLabelValues("login", "ok")); got != 2 {
		t.Errorf("login ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.booking.WithLabelValues("ok")); got != 1 {
		t.Errorf("booking ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.quote.WithLabelValues("fallback")); got != 1 {
		t.Errorf("quote fallback = %v, want 1", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg).RecordBooking("slot_taken")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `logotherapy_bookings_total{outcome="slot_taken"} 1`) {
		t.Errorf("metric missing from output:\n%s", body)
	}
}
