package scanning

// PortState is the observable outcome of a TCP connect probe. Every failure
// mode (timeout, refusal, unreachable) collapses to closed.
type PortState string

const (
	StateOpen   PortState = "open"
	StateClosed PortState = "closed"
)

// PortResult is the outcome of probing a single (host, port) pair.
type PortResult struct {
	Port  int       `json:"port"`
	State PortState `json:"state"`
}

// HostResult aggregates the probe results for one resolved host.
// Under closed-port suppression it holds only the open entries, although
// every requested port was still probed.
type HostResult struct {
	Host  string       `json:"host"`
	Ports []PortResult `json:"ports"`
}

// Empty reports whether the host scan retained no results.
func (h HostResult) Empty() bool {
	return len(h.Ports) == 0
}

// ResultMap accumulates per-host results across one invocation, keyed by
// resolved IP. A later target resolving to the same IP overwrites the
// earlier entry.
type ResultMap map[string][]PortResult

// Store records a non-empty host result, replacing any previous entry for
// the same host.
func (m ResultMap) Store(result HostResult) {
	if result.Empty() {
		return
	}
	m[result.Host] = result.Ports
}
