package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncResultsRecorded()
	s.IncResultsRejected("validation")
	s.IncResultsRejected("validation")
	s.IncResultsRejected("forbidden")
	s.IncRatingUpdates(4)
	s.IncEventsFailed()

	assert.Equal(t, 1.0, testutil.ToFloat64(s.ResultsRecorded))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.ResultsRejected.WithLabelValues("validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ResultsRejected.WithLabelValues("forbidden")))
	assert.Equal(t, 4.0, testutil.ToFloat64(s.RatingUpdates))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.EventsFailed))
}

func TestNewMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.IncResultsRecorded()

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "padel_league_results_recorded_total 1"))
}
