// Package metrics exports navigation telemetry as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NavigationMetrics = (*Registry)(nil)

// Registry holds the navigation metrics on a private Prometheus registry.
type Registry struct {
	RoutesPlannedTotal   *prometheus.CounterVec
	RouteDistanceMeters  prometheus.Histogram
	SessionsActive       prometheus.Gauge
	NavigationsTotal     *prometheus.CounterVec
	SessionDuration      *prometheus.HistogramVec
	ObstaclesTotal       *prometheus.CounterVec
	LastSessionTimestamp prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every navigation metric registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)

	r.RoutesPlannedTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusnav_routes_planned_total",
			Help: "Total number of route computations",
		},
		[]string{"result"},
	)

	r.RouteDistanceMeters = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "campusnav_route_distance_meters",
			Help:    "Total distance of planned routes in meters",
			Buckets: []float64{5, 10, 20, 40, 80, 160},
		},
	)

	r.SessionsActive = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "campusnav_sessions_active",
			Help: "Number of navigation sessions currently executing",
		},
	)

	r.NavigationsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusnav_navigations_total",
			Help: "Total number of navigate requests by outcome",
		},
		[]string{"status"},
	)

	r.SessionDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campusnav_session_duration_seconds",
			Help:    "Navigation session duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"status"},
	)

	r.ObstaclesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusnav_obstacles_total",
			Help: "Obstacles detected during forward motion",
		},
		[]string{"outcome"},
	)

	r.LastSessionTimestamp = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "campusnav_last_session_timestamp_seconds",
			Help: "Unix time the last navigation finished",
		},
	)

	return r
}

// RoutePlanned records a routing attempt.
func (r *Registry) RoutePlanned(found bool, distance float64) {
	if !found {
		r.RoutesPlannedTotal.WithLabelValues("unreachable").Inc()
		return
	}
	r.RoutesPlannedTotal.WithLabelValues("found").Inc()
	r.RouteDistanceMeters.Observe(distance)
}

// SessionStarted marks an executor run as active.
func (r *Registry) SessionStarted() {
	r.SessionsActive.Inc()
}

// SessionFinished records the end of an executor run.
func (r *Registry) SessionFinished(status domain.NavigationStatus, elapsed time.Duration) {
	r.SessionsActive.Dec()
	r.SessionDuration.WithLabelValues(status.String()).Observe(elapsed.Seconds())
	r.LastSessionTimestamp.SetToCurrentTime()
}

// NavigationRequested counts a navigate request by outcome.
func (r *Registry) NavigationRequested(status domain.NavigationStatus) {
	r.NavigationsTotal.WithLabelValues(status.String()).Inc()
}

// ObstacleEncountered records an obstacle and whether it cleared in time.
func (r *Registry) ObstacleEncountered(cleared bool) {
	if cleared {
		r.ObstaclesTotal.WithLabelValues("cleared").Inc()
		return
	}
	r.ObstaclesTotal.WithLabelValues("blocked").Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
