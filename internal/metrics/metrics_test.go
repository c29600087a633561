package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryRegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistry(reg)
	require.NotNil(t, m)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCacheCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistry(reg)

	m.CacheHits.Inc()
	m.CacheMisses.Inc()
	m.CacheMisses.Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheMisses))
}

func TestRequestsTotalLabelsIndependently(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistry(reg)

	m.RequestsTotal.WithLabelValues("/api/stops", "2xx").Inc()
	m.RequestsTotal.WithLabelValues("/api/stops", "2xx").Inc()
	m.RequestsTotal.WithLabelValues("/api/stops", "5xx").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/api/stops", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/api/stops", "5xx")))
}
