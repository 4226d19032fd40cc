package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/aescanero/tlregion/internal/application/catalog"
	"go.uber.org/zap"
)

// StatsSource provides dataset statistics
type StatsSource interface {
	Stats(ctx context.Context) (*catalog.Stats, error)
}

// Metrics receives the outcome of each check
type Metrics interface {
	SetDatasetRecords(kind string, count int)
	SetDatasetsHealthy(healthy bool)
}

// StatusSink is notified of health changes, e.g. a gRPC health server
type StatusSink interface {
	SetServing(serving bool)
}

// Status is the result of the most recent check
type Status struct {
	Healthy   bool
	Stats     *catalog.Stats
	Error     string
	Timestamp time.Time
}

// Monitor checks the datasets on a fixed interval
type Monitor struct {
	source   StatsSource
	metrics  Metrics
	sinks    []StatusSink
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	running bool
	last    Status
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewMonitor creates a new dataset monitor
func NewMonitor(source StatsSource, metrics Metrics, interval time.Duration, logger *zap.Logger, sinks ...StatusSink) *Monitor {
	timeout := interval / 2
	if timeout <= 0 || timeout > 10*time.Second {
		timeout = 10 * time.Second
	}
	return &Monitor{
		source:   source,
		metrics:  metrics,
		sinks:    sinks,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start runs a first check immediately, then one per interval
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	go m.run(stopCh, doneCh)
}

// Stop stops the monitor and waits for the loop to exit
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	close(stopCh)
	<-doneCh
}

// run is the main monitoring loop
func (m *Monitor) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(context.Background())

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.Check(context.Background())
		}
	}
}

// Check reads every dataset once and publishes the result
func (m *Monitor) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	status := Status{Timestamp: time.Now()}
	stats, err := m.source.Stats(ctx)
	if err != nil {
		status.Error = err.Error()
		m.logger.Warn("datasets unavailable", zap.Error(err))
	} else {
		status.Healthy = true
		status.Stats = stats
		for _, kind := range catalog.Kinds {
			m.metrics.SetDatasetRecords(string(kind), stats.Count(kind))
		}
		m.logger.Debug("datasets checked",
			zap.Int("districts", stats.Districts),
			zap.Int("subdistricts", stats.Subdistricts),
			zap.Int("villages", stats.Villages))
	}

	m.metrics.SetDatasetsHealthy(status.Healthy)

	m.mu.Lock()
	changed := m.last.Timestamp.IsZero() || m.last.Healthy != status.Healthy
	m.last = status
	m.mu.Unlock()

	if changed {
		m.logger.Info("dataset health changed", zap.Bool("healthy", status.Healthy))
		for _, sink := range m.sinks {
			sink.SetServing(status.Healthy)
		}
	}

	return status
}

// GetStatus returns the result of the most recent check
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}
