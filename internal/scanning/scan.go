// Package scanning provides the core scanning functionality for portsweep.
// It contains the TCP connect prober, the per-host scatter-gather
// orchestrator, port-list parsing, and the shared result types.
package scanning

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/portsweep/portsweep/internal/logging"
	"github.com/portsweep/portsweep/internal/metrics"
)

// DefaultWorkerCount bounds the number of simultaneously in-flight probes
// per host scan. Probing all 65535 ports fully in parallel would exhaust
// file descriptors and ephemeral ports on typical systems.
const DefaultWorkerCount = 50

// Config holds configuration for a Scanner.
type Config struct {
	// Workers is the concurrency bound per host scan (0 = default 50).
	Workers int
	// Prober performs individual port probes (nil = ConnectProber with
	// the default timeout).
	Prober Prober
	// OnOpen, when set, is invoked for every open-port discovery as soon
	// as its probe completes, before final aggregation.
	OnOpen func(host string, result PortResult)
}

// Scanner orchestrates port scans for one host at a time. Each ScanHost call
// builds a fresh bounded worker pool scoped to that call; no worker state is
// shared across hosts or runs.
type Scanner struct {
	workers int
	prober  Prober
	onOpen  func(host string, result PortResult)
}

// NewScanner creates a Scanner from the given configuration.
func NewScanner(cfg Config) *Scanner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	prober := cfg.Prober
	if prober == nil {
		prober = NewConnectProber(DefaultProbeTimeout)
	}
	return &Scanner{
		workers: workers,
		prober:  prober,
		onOpen:  cfg.OnOpen,
	}
}

// ScanHost probes every port in ports against host through a bounded pool of
// concurrent connect attempts and returns the aggregated result once all
// probes have completed. Completion order across ports is not defined.
//
// When suppressClosed is true, closed entries are dropped from the returned
// HostResult; every port is still probed and its network cost incurred.
// Duplicate ports are probed independently and yield one entry each. An
// empty port set returns immediately without issuing any probes.
func (s *Scanner) ScanHost(ctx context.Context, host string, ports []int, suppressClosed bool) HostResult {
	result := HostResult{Host: host}
	if len(ports) == 0 {
		return result
	}

	scanID := uuid.New().String()
	log := logging.Default().WithScanID(scanID).WithTarget(host)
	log.Debug("starting host scan",
		"port_count", len(ports),
		"workers", s.workers,
		"suppress_closed", suppressClosed)

	start := time.Now()

	jobs := make(chan int)
	results := make(chan PortResult, len(ports))

	workers := s.workers
	if workers > len(ports) {
		workers = len(ports)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := range jobs {
				results <- s.prober.Probe(ctx, host, port)
			}
		}()
	}

	// Dispatcher: enqueue every port, then close the queue and the results
	// channel once all workers have drained it.
	go func() {
		for _, port := range ports {
			jobs <- port
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	retained := make([]PortResult, 0, len(ports))
	openCount := 0
	for res := range results {
		metrics.IncrementProbes(host)
		if res.State == StateOpen {
			openCount++
			metrics.IncrementOpenPorts(host)
			if s.onOpen != nil {
				s.onOpen(host, res)
			}
		}
		if suppressClosed && res.State != StateOpen {
			continue
		}
		retained = append(retained, res)
	}

	elapsed := time.Since(start)
	metrics.RecordScanDuration(host, elapsed)
	log.Info("host scan complete",
		"ports_probed", len(ports),
		"open_ports", openCount,
		"duration", elapsed)

	result.Ports = retained
	return result
}
