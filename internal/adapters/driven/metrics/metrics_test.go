package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	require.NotNil(t, r)
	assert.NotNil(t, r.RoutesPlannedTotal)
	assert.NotNil(t, r.SessionsActive)
	assert.NotNil(t, r.ObstaclesTotal)
	assert.NotNil(t, r.registry)
}

func TestRegistry_RoutePlanned(t *testing.T) {
	r := NewRegistry()

	r.RoutePlanned(true, 12.5)
	r.RoutePlanned(true, 4)
	r.RoutePlanned(false, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.RoutesPlannedTotal.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RoutesPlannedTotal.WithLabelValues("unreachable")))

	var m dto.Metric
	require.NoError(t, r.RouteDistanceMeters.Write(&m))
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
	assert.InDelta(t, 16.5, m.GetHistogram().GetSampleSum(), 0.0001)
}

func TestRegistry_SessionLifecycle(t *testing.T) {
	r := NewRegistry()

	r.SessionStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SessionsActive))

	r.SessionFinished(domain.StatusCompleted, 30*time.Second)

	assert.Equal(t, 0.0, testutil.ToFloat64(r.SessionsActive))
	assert.Greater(t, testutil.ToFloat64(r.LastSessionTimestamp), 0.0)

	var m dto.Metric
	h, err := r.SessionDuration.GetMetricWithLabelValues("completed")
	require.NoError(t, err)
	require.NoError(t, h.(interface{ Write(*dto.Metric) error }).Write(&m))
	assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
}

func TestRegistry_NavigationRequested(t *testing.T) {
	r := NewRegistry()

	r.NavigationRequested(domain.StatusUnknownLocation)
	r.NavigationRequested(domain.StatusAlreadyRunning)
	r.NavigationRequested(domain.StatusCompleted)
	r.NavigationRequested(domain.StatusCompleted)

	assert.Equal(t, 0.0, testutil.ToFloat64(r.SessionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.NavigationsTotal.WithLabelValues("unknown_location")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.NavigationsTotal.WithLabelValues("already_running")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.NavigationsTotal.WithLabelValues("completed")))
}

func TestRegistry_ObstacleEncountered(t *testing.T) {
	r := NewRegistry()

	r.ObstacleEncountered(true)
	r.ObstacleEncountered(true)
	r.ObstacleEncountered(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ObstaclesTotal.WithLabelValues("cleared")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ObstaclesTotal.WithLabelValues("blocked")))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.RoutePlanned(true, 10)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `campusnav_routes_planned_total{result="found"} 1`))
}

func TestRegistry_Gatherer(t *testing.T) {
	r := NewRegistry()
	r.SessionStarted()

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "campusnav_sessions_active")
}
