package scanning

import (
	"context"
	"net"
	"strconv"
	"time"
)

// Default probe timings.
const (
	DefaultProbeTimeout    = 1 * time.Second
	DefaultLivenessPort    = 80
	DefaultLivenessTimeout = 3 * time.Second
)

// Prober attempts a single TCP connection to one (host, port) pair and
// classifies the outcome. Implementations must not retry and must absorb
// every connection error into StateClosed rather than returning it.
type Prober interface {
	Probe(ctx context.Context, host string, port int) PortResult
}

// ConnectProber is the production Prober. It performs one TCP connect
// attempt per call with a fixed per-attempt timeout and no retries.
type ConnectProber struct {
	Timeout time.Duration
}

// NewConnectProber returns a ConnectProber with the given per-probe timeout,
// falling back to the default when non-positive.
func NewConnectProber(timeout time.Duration) *ConnectProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &ConnectProber{Timeout: timeout}
}

// Probe dials host:port once. A successful connection is closed immediately
// and reported open; timeouts, refusals, and unreachable networks all report
// closed. The distinction is deliberately not surfaced.
func (p *ConnectProber) Probe(ctx context.Context, host string, port int) PortResult {
	dialer := net.Dialer{Timeout: p.Timeout}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return PortResult{Port: port, State: StateClosed}
	}
	_ = conn.Close()
	return PortResult{Port: port, State: StateOpen}
}

// LivenessProbe is a lightweight reachability check: a single TCP connect
// attempt to a well-known port, used to decide whether a host is worth a
// full sweep. It is only invoked when explicitly requested.
type LivenessProbe struct {
	Port    int
	Timeout time.Duration
}

// NewLivenessProbe returns a LivenessProbe with defaults applied.
func NewLivenessProbe(port int, timeout time.Duration) *LivenessProbe {
	if port <= 0 {
		port = DefaultLivenessPort
	}
	if timeout <= 0 {
		timeout = DefaultLivenessTimeout
	}
	return &LivenessProbe{Port: port, Timeout: timeout}
}

// IsAlive reports whether a single connection attempt to the configured
// port succeeds. No retries, no partial-success notion.
func (l *LivenessProbe) IsAlive(ctx context.Context, host string) bool {
	dialer := net.Dialer{Timeout: l.Timeout}
	addr := net.JoinHostPort(host, strconv.Itoa(l.Port))

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
