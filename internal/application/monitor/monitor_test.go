package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aescanero/tlregion/internal/application/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu    sync.Mutex
	stats *catalog.Stats
	err   error
	calls int
}

func (f *fakeSource) Stats(ctx context.Context) (*catalog.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.stats, f.err
}

func (f *fakeSource) set(stats *catalog.Stats, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats, f.err = stats, err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMetrics struct {
	records map[string]int
	healthy []bool
}

func (f *fakeMetrics) SetDatasetRecords(kind string, count int) { f.records[kind] = count }
func (f *fakeMetrics) SetDatasetsHealthy(healthy bool)          { f.healthy = append(f.healthy, healthy) }

type fakeSink struct {
	states []bool
}

func (f *fakeSink) SetServing(serving bool) { f.states = append(f.states, serving) }

func TestCheckPublishesResults(t *testing.T) {
	src := &fakeSource{stats: &catalog.Stats{Districts: 13, Subdistricts: 65, Villages: 442}}
	metrics := &fakeMetrics{records: make(map[string]int)}
	sink := &fakeSink{}
	m := NewMonitor(src, metrics, time.Hour, zap.NewNop(), sink)

	status := m.Check(context.Background())
	assert.True(t, status.Healthy)
	assert.Equal(t, 13, metrics.records["district"])
	assert.Equal(t, 65, metrics.records["subdistrict"])
	assert.Equal(t, 442, metrics.records["village"])
	assert.Equal(t, []bool{true}, sink.states)
	assert.True(t, m.GetStatus().Healthy)

	// Unchanged health is not re-published to sinks
	m.Check(context.Background())
	assert.Equal(t, []bool{true}, sink.states)

	src.set(nil, errors.New("villages.json missing"))
	status = m.Check(context.Background())
	assert.False(t, status.Healthy)
	assert.Equal(t, "villages.json missing", status.Error)
	assert.Equal(t, []bool{true, false}, sink.states)
	assert.Equal(t, []bool{true, true, false}, metrics.healthy)
	assert.False(t, m.GetStatus().Healthy)
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	src := &fakeSource{stats: &catalog.Stats{}}
	metrics := &fakeMetrics{records: make(map[string]int)}
	m := NewMonitor(src, metrics, time.Hour, zap.NewNop())

	m.Start()
	m.Start()
	require.Eventually(t, func() bool { return src.callCount() == 1 }, time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop()
	assert.Equal(t, 1, src.callCount())
}

func TestTickerRepeatsChecks(t *testing.T) {
	src := &fakeSource{stats: &catalog.Stats{}}
	metrics := &fakeMetrics{records: make(map[string]int)}
	m := NewMonitor(src, metrics, 10*time.Millisecond, zap.NewNop())

	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool { return src.callCount() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestRestartAfterStop(t *testing.T) {
	src := &fakeSource{stats: &catalog.Stats{}}
	metrics := &fakeMetrics{records: make(map[string]int)}
	m := NewMonitor(src, metrics, time.Hour, zap.NewNop())

	m.Start()
	require.Eventually(t, func() bool { return src.callCount() == 1 }, time.Second, 5*time.Millisecond)
	m.Stop()

	m.Start()
	require.Eventually(t, func() bool { return src.callCount() == 2 }, time.Second, 5*time.Millisecond)
	m.Stop()

	assert.Equal(t, 2, src.callCount())
}
