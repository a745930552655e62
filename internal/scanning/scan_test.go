package scanning

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber reports open for the configured ports and closed for everything
// else, with no network access.
type fakeProber struct {
	open   map[int]bool
	probes int64
}

func newFakeProber(openPorts ...int) *fakeProber {
	open := make(map[int]bool, len(openPorts))
	for _, p := range openPorts {
		open[p] = true
	}
	return &fakeProber{open: open}
}

func (f *fakeProber) Probe(_ context.Context, _ string, port int) PortResult {
	atomic.AddInt64(&f.probes, 1)
	if f.open[port] {
		return PortResult{Port: port, State: StateOpen}
	}
	return PortResult{Port: port, State: StateClosed}
}

func (f *fakeProber) ProbeCount() int64 {
	return atomic.LoadInt64(&f.probes)
}

// countingProber tracks the maximum number of concurrently in-flight probes.
type countingProber struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
	delay    time.Duration
}

func (c *countingProber) Probe(_ context.Context, _ string, port int) PortResult {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.maxSeen {
		c.maxSeen = c.inFlight
	}
	c.mu.Unlock()

	time.Sleep(c.delay)

	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()

	return PortResult{Port: port, State: StateClosed}
}

func (c *countingProber) MaxInFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxSeen
}

func sortedPorts(results []PortResult) []int {
	ports := make([]int, 0, len(results))
	for _, r := range results {
		ports = append(ports, r.Port)
	}
	sort.Ints(ports)
	return ports
}

func TestScanHost(t *testing.T) {
	ctx := context.Background()

	t.Run("returns one result per requested port", func(t *testing.T) {
		prober := newFakeProber(80, 443)
		scanner := NewScanner(Config{Prober: prober})
		ports := []int{21, 22, 80, 135, 139, 443, 445, 3389}

		result := scanner.ScanHost(ctx, "10.0.0.1", ports, false)

		require.Len(t, result.Ports, len(ports))
		assert.Equal(t, []int{21, 22, 80, 135, 139, 443, 445, 3389}, sortedPorts(result.Ports))
		assert.Equal(t, int64(len(ports)), prober.ProbeCount())

		states := make(map[int]PortState, len(result.Ports))
		for _, r := range result.Ports {
			states[r.Port] = r.State
		}
		assert.Equal(t, StateOpen, states[80])
		assert.Equal(t, StateOpen, states[443])
		for _, closed := range []int{21, 22, 135, 139, 445, 3389} {
			assert.Equal(t, StateClosed, states[closed], "port %d", closed)
		}
	})

	t.Run("suppression retains only open ports but probes everything", func(t *testing.T) {
		prober := newFakeProber(80, 443)
		scanner := NewScanner(Config{Prober: prober})

		ports := make([]int, 0, 1024)
		for p := 1; p <= 1024; p++ {
			ports = append(ports, p)
		}

		result := scanner.ScanHost(ctx, "10.0.0.1", ports, true)

		require.Len(t, result.Ports, 2)
		assert.Equal(t, []int{80, 443}, sortedPorts(result.Ports))
		for _, r := range result.Ports {
			assert.Equal(t, StateOpen, r.State)
		}
		// Every port still costs a probe under suppression.
		assert.Equal(t, int64(1024), prober.ProbeCount())
	})

	t.Run("empty port set issues zero probes", func(t *testing.T) {
		prober := newFakeProber()
		scanner := NewScanner(Config{Prober: prober})

		result := scanner.ScanHost(ctx, "10.0.0.1", nil, false)

		assert.True(t, result.Empty())
		assert.Equal(t, int64(0), prober.ProbeCount())
	})

	t.Run("duplicate ports are probed independently", func(t *testing.T) {
		prober := newFakeProber(80)
		scanner := NewScanner(Config{Prober: prober})

		result := scanner.ScanHost(ctx, "10.0.0.1", []int{80, 80}, false)

		require.Len(t, result.Ports, 2)
		assert.Equal(t, int64(2), prober.ProbeCount())
		for _, r := range result.Ports {
			assert.Equal(t, 80, r.Port)
			assert.Equal(t, StateOpen, r.State)
		}
	})

	t.Run("rescanning an unchanged host yields the same open set", func(t *testing.T) {
		prober := newFakeProber(22, 8080)
		scanner := NewScanner(Config{Prober: prober})
		ports := []int{22, 80, 8080, 9090}

		first := scanner.ScanHost(ctx, "10.0.0.1", ports, true)
		second := scanner.ScanHost(ctx, "10.0.0.1", ports, true)

		assert.Equal(t, sortedPorts(first.Ports), sortedPorts(second.Ports))
		assert.Equal(t, []int{22, 8080}, sortedPorts(second.Ports))
	})

	t.Run("streams open discoveries before aggregation completes", func(t *testing.T) {
		prober := newFakeProber(80, 443)
		var mu sync.Mutex
		var streamed []int

		scanner := NewScanner(Config{
			Prober: prober,
			OnOpen: func(host string, r PortResult) {
				assert.Equal(t, "10.0.0.1", host)
				mu.Lock()
				streamed = append(streamed, r.Port)
				mu.Unlock()
			},
		})

		scanner.ScanHost(ctx, "10.0.0.1", []int{21, 80, 443, 445}, false)

		sort.Ints(streamed)
		assert.Equal(t, []int{80, 443}, streamed)
	})
}

func TestScanHostConcurrencyBound(t *testing.T) {
	prober := &countingProber{delay: 5 * time.Millisecond}
	scanner := NewScanner(Config{Workers: 50, Prober: prober})

	ports := make([]int, 0, 300)
	for p := 1; p <= 300; p++ {
		ports = append(ports, p)
	}

	result := scanner.ScanHost(context.Background(), "10.0.0.1", ports, false)

	require.Len(t, result.Ports, 300)
	assert.LessOrEqual(t, prober.MaxInFlight(), 50)
	assert.Greater(t, prober.MaxInFlight(), 1, "probes should actually run concurrently")
}

func TestNewScannerDefaults(t *testing.T) {
	scanner := NewScanner(Config{})

	assert.Equal(t, DefaultWorkerCount, scanner.workers)
	require.NotNil(t, scanner.prober)
	prober, ok := scanner.prober.(*ConnectProber)
	require.True(t, ok)
	assert.Equal(t, DefaultProbeTimeout, prober.Timeout)
}
