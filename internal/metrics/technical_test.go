package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestTechnicalCounters(t *testing.T) {
	path := "/generation"

	before := testutil.ToFloat64(RestRequestsTotal.WithLabelValues(path))
	IncRestRequestsTotal(path)
	require.Equal(t, before+1, testutil.ToFloat64(RestRequestsTotal.WithLabelValues(path)))

	ok := RestEndpointsResponsesTotal.WithLabelValues(path, http.StatusText(http.StatusOK))
	beforeOK := testutil.ToFloat64(ok)
	beforeErrors := testutil.ToFloat64(RestErrorsTotal.WithLabelValues(path, "2xx"))
	IncRestResponsesStatusesTotal(path, http.StatusOK)
	require.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
	require.Equal(t, beforeErrors, testutil.ToFloat64(RestErrorsTotal.WithLabelValues(path, "2xx")))
}

func TestStatusErrorsGroupedByClass(t *testing.T) {
	path := "/generation-errors"

	clientErrors := RestErrorsTotal.WithLabelValues(path, "4xx")
	serverErrors := RestErrorsTotal.WithLabelValues(path, "5xx")
	beforeClient := testutil.ToFloat64(clientErrors)
	beforeServer := testutil.ToFloat64(serverErrors)

	IncRestResponsesStatusesTotal(path, http.StatusUnprocessableEntity)
	IncRestResponsesStatusesTotal(path, http.StatusBadRequest)
	IncRestResponsesStatusesTotal(path, http.StatusInternalServerError)

	require.Equal(t, beforeClient+2, testutil.ToFloat64(clientErrors))
	require.Equal(t, beforeServer+1, testutil.ToFloat64(serverErrors))
	require.Equal(t, "4xx", statusClass(http.StatusRequestEntityTooLarge))
}

func TestResponseDurationInMilliseconds(t *testing.T) {
	path := "/generation-duration"
	IncRestResponsesDuration(path, http.MethodPost, 250*time.Microsecond)

	metric, ok := RestResponseDuration.WithLabelValues(path, http.MethodPost).(prometheus.Metric)
	require.True(t, ok)
	var m dto.Metric
	require.NoError(t, metric.Write(&m))
	require.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
	require.InDelta(t, 0.25, m.GetHistogram().GetSampleSum(), 1e-9)
}
