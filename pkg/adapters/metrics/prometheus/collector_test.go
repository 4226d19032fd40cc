package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("/api/districts", 200, 3*time.Millisecond)
	c.RecordRequest("/api/districts", 200, time.Millisecond)
	c.RecordRequest("/api/search", 400, time.Millisecond)
	c.RecordDatasetRead("village", true, time.Millisecond)
	c.RecordDatasetRead("village", false, time.Millisecond)
	c.RecordCacheLookup(true)
	c.RecordCacheLookup(false)
	c.RecordCacheLookup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/districts", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/search", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.datasetReads.WithLabelValues("village", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheLookups.WithLabelValues("miss")))
}

func TestCollectorGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.SetDatasetRecords("district", 13)
	c.SetDatasetsHealthy(true)
	assert.Equal(t, 13.0, testutil.ToFloat64(c.datasetRecords.WithLabelValues("district")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.datasetsHealthy))

	c.SetDatasetsHealthy(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.datasetsHealthy))
}

func TestCollectorHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSearch(0)
	c.RecordSearch(12)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "tlregion_search_results" {
			continue
		}
		found = true
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(2), h.GetSampleCount())
		assert.Equal(t, 12.0, h.GetSampleSum())
	}
	assert.True(t, found)
}

func TestCollectorsUseSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector(prometheus.NewRegistry())
		NewCollector(prometheus.NewRegistry())
	})
}
