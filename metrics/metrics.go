// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/quickly-judge/judging"
	"github.com/danielhkuo/quickly-judge/models"
)

const namespace = "quickly_judge"

var _ judging.Recorder = (*Collector)(nil)

// Collector owns a private registry so several routers can coexist in one
// process (tests build many).
type Collector struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	pairsServed     *prometheus.CounterVec
	comparisons     *prometheus.CounterVec
	rubricScores    *prometheus.CounterVec
	finalists       prometheus.Gauge
	phase           *prometheus.GaugeVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		pairsServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pairs_served_total",
				Help:      "Pairs handed to judges, by whether the pair was new to the judge.",
			},
			[]string{"outcome"},
		),
		comparisons: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "comparisons_total",
				Help:      "Comparisons recorded, by whether a winner was chosen.",
			},
			[]string{"result"},
		),
		rubricScores: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rubric_scores_total",
				Help:      "Rubric submissions, split into inserts and overwrites.",
			},
			[]string{"kind"},
		),
		finalists: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "finalists",
				Help:      "Size of the most recently selected finalist set.",
			},
		),
		phase: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "phase",
				Help:      "1 for the active judging phase, 0 otherwise.",
			},
			[]string{"phase"},
		),
	}
}

func (c *Collector) PairServed(outcome string) {
	c.pairsServed.WithLabelValues(outcome).Inc()
}

func (c *Collector) ComparisonRecorded(hasWinner bool) {
	result := "winner"
	if !hasWinner {
		result = "skipped"
	}
	c.comparisons.WithLabelValues(result).Inc()
}

func (c *Collector) RubricSubmitted(updated bool) {
	kind := "insert"
	if updated {
		kind = "update"
	}
	c.rubricScores.WithLabelValues(kind).Inc()
}

func (c *Collector) FinalistsSelected(count int) {
	c.finalists.Set(float64(count))
}

// SetPhase marks p as the active phase.
func (c *Collector) SetPhase(p models.Phase) {
	for _, candidate := range []models.Phase{models.PhaseExpo, models.PhasePanel} {
		v := 0.0
		if candidate == p {
			v = 1
		}
		c.phase.WithLabelValues(string(candidate)).Set(v)
	}
}

func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	c.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
