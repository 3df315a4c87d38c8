package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncUpdate()
	m.IncUpdate()
	m.ObserveCommand("log_water", time.Now())
	m.IncError("validation")
	m.IncSetupCompleted()
	m.SetProfiles(3)

	require.Equal(t, 2.0, testutil.ToFloat64(m.UpdatesProcessed))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("log_water")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("validation")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SetupsCompleted))
	require.Equal(t, 3.0, testutil.ToFloat64(m.ProfilesTotal))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.IncUpdate()
		m.ObserveCommand("faq", time.Now())
		m.IncError("x")
		m.IncSetupCompleted()
		m.SetProfiles(1)
	})
}
