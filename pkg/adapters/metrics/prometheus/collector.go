package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records API, dataset and cache metrics using Prometheus
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	datasetReads        *prometheus.CounterVec
	datasetReadDuration *prometheus.HistogramVec
	datasetRecords      *prometheus.GaugeVec
	datasetsHealthy     prometheus.Gauge

	searchResults prometheus.Histogram
	cacheLookups  *prometheus.CounterVec
}

// NewCollector creates a collector registered with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlregion_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tlregion_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"route"},
		),
		datasetReads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlregion_dataset_reads_total",
				Help: "Total number of dataset file reads",
			},
			[]string{"dataset", "result"},
		),
		datasetReadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tlregion_dataset_read_duration_seconds",
				Help:    "Dataset file read duration in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"dataset"},
		),
		datasetRecords: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tlregion_dataset_records",
				Help: "Number of records in each dataset at the last check",
			},
			[]string{"dataset"},
		),
		datasetsHealthy: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tlregion_datasets_healthy",
				Help: "1 if every dataset was readable at the last check",
			},
		),
		searchResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tlregion_search_results",
				Help:    "Number of results returned per search",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tlregion_search_cache_lookups_total",
				Help: "Search cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordRequest records a served HTTP request
func (c *Collector) RecordRequest(route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordDatasetRead records a dataset file read
func (c *Collector) RecordDatasetRead(kind string, ok bool, duration time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	c.datasetReads.WithLabelValues(kind, result).Inc()
	c.datasetReadDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordSearch records the size of a search result
func (c *Collector) RecordSearch(results int) {
	c.searchResults.Observe(float64(results))
}

// RecordCacheLookup records a search cache hit or miss
func (c *Collector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// SetDatasetRecords sets the record count of a dataset
func (c *Collector) SetDatasetRecords(kind string, count int) {
	c.datasetRecords.WithLabelValues(kind).Set(float64(count))
}

// SetDatasetsHealthy records the outcome of the last dataset check
func (c *Collector) SetDatasetsHealthy(healthy bool) {
	if healthy {
		c.datasetsHealthy.Set(1)
		return
	}
	c.datasetsHealthy.Set(0)
}
