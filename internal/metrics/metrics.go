// Package metrics provides basic monitoring and metrics collection for portsweep.
// It supports counters, gauges, and histograms with label support for tracking
// probe volume, open-port discoveries, and scan durations.
package metrics

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// MetricType represents the type of metric.
type MetricType string

const (
	TypeCounter   MetricType = "counter"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// Labels represents key-value pairs for metric labels.
type Labels map[string]string

// Metric represents a single metric with its metadata.
type Metric struct {
	Name      string
	Type      MetricType
	Value     float64
	Labels    Labels
	Timestamp time.Time
}

// Registry holds all metrics and provides collection functionality.
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]*Metric
	enabled bool
}

// NewRegistry creates a new metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		metrics: make(map[string]*Metric),
		enabled: true,
	}
}

// SetEnabled enables or disables metrics collection.
func (r *Registry) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// IsEnabled returns whether metrics collection is enabled.
func (r *Registry) IsEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

// Counter increments a counter metric.
func (r *Registry) Counter(name string, labels Labels) {
	r.Add(name, 1, labels)
}

// Add increments a counter metric by the given amount.
func (r *Registry) Add(name string, delta float64, labels Labels) {
	if !r.IsEnabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.makeKey(name, labels)
	if metric, exists := r.metrics[key]; exists {
		metric.Value += delta
		metric.Timestamp = time.Now()
	} else {
		r.metrics[key] = &Metric{
			Name:      name,
			Type:      TypeCounter,
			Value:     delta,
			Labels:    labels,
			Timestamp: time.Now(),
		}
	}
}

// Gauge sets a gauge metric value.
func (r *Registry) Gauge(name string, value float64, labels Labels) {
	if !r.IsEnabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.makeKey(name, labels)
	r.metrics[key] = &Metric{
		Name:      name,
		Type:      TypeGauge,
		Value:     value,
		Labels:    labels,
		Timestamp: time.Now(),
	}
}

// Histogram records a value in a histogram metric.
// Simple implementation that tracks the last observed value.
func (r *Registry) Histogram(name string, value float64, labels Labels) {
	if !r.IsEnabled() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.makeKey(name, labels)
	if metric, exists := r.metrics[key]; exists {
		metric.Value = value
		metric.Timestamp = time.Now()
	} else {
		r.metrics[key] = &Metric{
			Name:      name,
			Type:      TypeHistogram,
			Value:     value,
			Labels:    labels,
			Timestamp: time.Now(),
		}
	}
}

// Get returns the current value of a metric, and whether it exists.
func (r *Registry) Get(name string, labels Labels) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metric, ok := r.metrics[r.makeKey(name, labels)]
	if !ok {
		return 0, false
	}
	return metric.Value, true
}

// Snapshot returns a copy of all collected metrics.
func (r *Registry) Snapshot() []Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metric, 0, len(r.metrics))
	for _, m := range r.metrics {
		out = append(out, *m)
	}
	return out
}

// Reset clears all collected metrics.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = make(map[string]*Metric)
}

// makeKey builds a stable registry key from a metric name and its labels.
func (r *Registry) makeKey(name string, labels Labels) string {
	if len(labels) == 0 {
		return name
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(name)
	for _, k := range keys {
		sb.WriteString("{")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(labels[k])
		sb.WriteString("}")
	}
	return sb.String()
}

// Timer measures elapsed time and records it as a histogram on Stop.
type Timer struct {
	registry *Registry
	name     string
	labels   Labels
	start    time.Time
}

// NewTimer starts a timer against the default registry.
func NewTimer(name string, labels Labels) *Timer {
	return defaultRegistry.NewTimer(name, labels)
}

// NewTimer starts a timer against this registry.
func (r *Registry) NewTimer(name string, labels Labels) *Timer {
	return &Timer{
		registry: r,
		name:     name,
		labels:   labels,
		start:    time.Now(),
	}
}

// Stop records the elapsed time in seconds.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.registry.Histogram(t.name, elapsed.Seconds(), t.labels)
	return elapsed
}

// Default registry and package-level helpers.

var defaultRegistry = NewRegistry()

// Default returns the default metrics registry.
func Default() *Registry {
	return defaultRegistry
}

// Counter increments a counter on the default registry.
func Counter(name string, labels Labels) {
	defaultRegistry.Counter(name, labels)
}

// Add increments a counter on the default registry by delta.
func Add(name string, delta float64, labels Labels) {
	defaultRegistry.Add(name, delta, labels)
}

// Gauge sets a gauge on the default registry.
func Gauge(name string, value float64, labels Labels) {
	defaultRegistry.Gauge(name, value, labels)
}

// Histogram records a histogram value on the default registry.
func Histogram(name string, value float64, labels Labels) {
	defaultRegistry.Histogram(name, value, labels)
}

// Scan-specific helpers used by the orchestrator.

// IncrementProbes counts a single issued probe for the given host.
func IncrementProbes(host string) {
	Counter("probes_total", Labels{"host": host})
}

// IncrementOpenPorts counts a single open-port discovery for the given host.
func IncrementOpenPorts(host string) {
	Counter("open_ports_total", Labels{"host": host})
}

// RecordScanDuration records how long a full host scan took.
func RecordScanDuration(host string, d time.Duration) {
	Histogram("scan_duration_seconds", d.Seconds(), Labels{"host": host})
}
