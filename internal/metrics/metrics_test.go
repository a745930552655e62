package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCounter(t *testing.T) {
	r := NewRegistry()

	r.Counter("probes_total", Labels{"host": "10.0.0.1"})
	r.Counter("probes_total", Labels{"host": "10.0.0.1"})
	r.Counter("probes_total", Labels{"host": "10.0.0.2"})

	v, ok := r.Get("probes_total", Labels{"host": "10.0.0.1"})
	require.True(t, ok)
	assert.Equal(t, float64(2), v)

	v, ok = r.Get("probes_total", Labels{"host": "10.0.0.2"})
	require.True(t, ok)
	assert.Equal(t, float64(1), v)
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()

	r.Add("open_ports_total", 3, nil)
	r.Add("open_ports_total", 2, nil)

	v, ok := r.Get("open_ports_total", nil)
	require.True(t, ok)
	assert.Equal(t, float64(5), v)
}

func TestRegistryGauge(t *testing.T) {
	r := NewRegistry()

	r.Gauge("workers", 50, nil)
	r.Gauge("workers", 25, nil)

	v, ok := r.Get("workers", nil)
	require.True(t, ok)
	assert.Equal(t, float64(25), v)
}

func TestRegistryDisabled(t *testing.T) {
	r := NewRegistry()
	r.SetEnabled(false)

	r.Counter("ignored", nil)

	_, ok := r.Get("ignored", nil)
	assert.False(t, ok)
}

func TestMakeKeyLabelOrdering(t *testing.T) {
	r := NewRegistry()

	a := r.makeKey("m", Labels{"a": "1", "b": "2"})
	b := r.makeKey("m", Labels{"b": "2", "a": "1"})

	assert.Equal(t, a, b, "label order must not change the key")
	assert.NotEqual(t, a, r.makeKey("m", Labels{"a": "1"}))
}

func TestTimer(t *testing.T) {
	r := NewRegistry()

	timer := r.NewTimer("scan_duration_seconds", Labels{"host": "h"})
	time.Sleep(5 * time.Millisecond)
	elapsed := timer.Stop()

	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	v, ok := r.Get("scan_duration_seconds", Labels{"host": "h"})
	require.True(t, ok)
	assert.Greater(t, v, 0.0)
}

func TestSnapshotAndReset(t *testing.T) {
	r := NewRegistry()
	r.Counter("a", nil)
	r.Gauge("b", 1, nil)

	assert.Len(t, r.Snapshot(), 2)

	r.Reset()
	assert.Empty(t, r.Snapshot())
}

func TestScanHelpers(t *testing.T) {
	Default().Reset()

	IncrementProbes("10.0.0.1")
	IncrementProbes("10.0.0.1")
	IncrementOpenPorts("10.0.0.1")
	RecordScanDuration("10.0.0.1", 2*time.Second)

	v, ok := Default().Get("probes_total", Labels{"host": "10.0.0.1"})
	require.True(t, ok)
	assert.Equal(t, float64(2), v)

	v, ok = Default().Get("open_ports_total", Labels{"host": "10.0.0.1"})
	require.True(t, ok)
	assert.Equal(t, float64(1), v)

	v, ok = Default().Get("scan_duration_seconds", Labels{"host": "10.0.0.1"})
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}
