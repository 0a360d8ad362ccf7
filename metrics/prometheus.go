// Package metrics exports resolver and cache activity to Prometheus.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/krisalay/mvr/types"
)

const subsystem = "resolver"

// FetchBuckets cover a fast registry hit up to the default 30s timeout.
var FetchBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Prometheus implements types.Metrics on a caller-supplied registerer.
type Prometheus struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	evictions     prometheus.Counter
	expirations   prometheus.Counter
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

var _ types.Metrics = (*Prometheus)(nil)

/*
NewPrometheus creates the collectors and registers them on reg.

Fetch outcomes are labeled with types.Outcome: "success" or the error kind,
so the label set stays closed.
*/
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	p := &Prometheus{
		hits:        counter("cache_hits_total", "Cache lookups that returned a valid entry."),
		misses:      counter("cache_misses_total", "Cache lookups that found no valid entry."),
		evictions:   counter("cache_evictions_total", "Entries evicted to stay within capacity."),
		expirations: counter("cache_expired_total", "Expired entries removed by cleanup."),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fetches_total",
			Help:      "Remote registry lookups by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fetch_duration_seconds",
			Help:      "Latency of remote registry lookups, including slot wait.",
			Buckets:   FetchBuckets,
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{p.hits, p.misses, p.evictions, p.expirations, p.fetches, p.fetchDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering resolver metrics: %w", err)
		}
	}
	return p, nil
}

// MustNewPrometheus is NewPrometheus that panics on registration failure.
func MustNewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	p, err := NewPrometheus(reg, namespace)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Prometheus) Hit()      { p.hits.Inc() }
func (p *Prometheus) Miss()     { p.misses.Inc() }
func (p *Prometheus) Eviction() { p.evictions.Inc() }
func (p *Prometheus) Expire()   { p.expirations.Inc() }

func (p *Prometheus) Fetch(outcome string, d time.Duration) {
	p.fetches.WithLabelValues(outcome).Inc()
	p.fetchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
