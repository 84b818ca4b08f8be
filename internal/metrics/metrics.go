// Package metrics exposes Prometheus counters for auth, booking and content
// activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the services depend on; Nop is used when metrics are off.
type Recorder interface {
	RecordAuth(op, outcome string)
	RecordBooking(outcome string)
	RecordQuote(source string)
}

type Collector struct {
	auth    *prometheus.CounterVec
	booking *prometheus.CounterVec
	quote   *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		auth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logotherapy_auth_total",
			Help: "Register, login and logout attempts by outcome.",
		}, []string{"op", "outcome"}),
		booking: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logotherapy_bookings_total",
			Help: "Booking submissions by outcome.",
		}, []string{"outcome"}),
		quote: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logotherapy_quote_total",
			Help: "Daily quote lookups by source (cache, remote, fallback).",
		}, []string{"source"}),
	}
	reg.MustRegister(c.auth, c.booking, c.quote)
	return c
}

func (c *Collector) RecordAuth(op, outcome string) {
	c.auth.WithLabelValues(op, outcome).Inc()
}

func (c *Collector) RecordBooking(outcome string) {
	c.booking.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordQuote(source string) {
	c.quote.WithLabelValues(source).Inc()
}

// Handler serves the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

type Nop struct{}

func (Nop) RecordAuth(string, string) {}
func (Nop) RecordBooking(string)      {}
func (Nop) RecordQuote(string)        {}
