package scanning

import (
	"context"
	"time"

	"github.com/portsweep/portsweep/internal/errors"
	"github.com/portsweep/portsweep/internal/logging"
)

// Resolver turns a user-supplied target string into a concrete IP address.
type Resolver interface {
	Resolve(target string) (string, error)
}

// RunConfig describes one scanner invocation: the targets to process, the
// port set and reporting mode (fixed for the whole run), and the
// collaborators that resolve targets and perform the scans.
type RunConfig struct {
	Targets        []string
	Ports          []int
	SuppressClosed bool
	Resolver       Resolver
	Scanner        *Scanner

	// Liveness, when non-nil, pre-filters hosts with a reachability check
	// before the full sweep. Only set when explicitly requested.
	Liveness *LivenessProbe

	// OnHostDone is invoked after each host's scan completes, before the
	// next target is resolved.
	OnHostDone func(result HostResult)

	// OnTargetSkipped is invoked when a target is skipped without a scan,
	// either because it could not be resolved or because it failed the
	// liveness pre-check.
	OnTargetSkipped func(target string, err error)
}

// RunResult is the aggregate outcome of one invocation.
type RunResult struct {
	Results     ResultMap
	TargetCount int
	Duration    time.Duration
}

// Run processes the configured targets strictly in sequence; only the port
// probes within each host run concurrently. A target that fails resolution
// is reported and skipped, never aborting the run. Empty host results are
// not stored.
func Run(ctx context.Context, cfg RunConfig) (*RunResult, error) {
	if cfg.Resolver == nil {
		return nil, errors.NewConfigError(errors.CodeConfiguration, "resolver is required")
	}
	if cfg.Scanner == nil {
		return nil, errors.NewConfigError(errors.CodeConfiguration, "scanner is required")
	}

	start := time.Now()
	results := make(ResultMap)

	for _, target := range cfg.Targets {
		host, err := cfg.Resolver.Resolve(target)
		if err != nil {
			resolveErr := errors.ErrResolveFailed(target, err)
			logging.ErrorScan("target resolution failed", target, resolveErr)
			if cfg.OnTargetSkipped != nil {
				cfg.OnTargetSkipped(target, resolveErr)
			}
			continue
		}

		if cfg.Liveness != nil && !cfg.Liveness.IsAlive(ctx, host) {
			skipErr := errors.NewScanErrorWithTarget(
				errors.CodeHostUnreachable, "Host failed liveness check", target)
			logging.InfoScan("skipping unreachable host", target, "host", host)
			if cfg.OnTargetSkipped != nil {
				cfg.OnTargetSkipped(target, skipErr)
			}
			continue
		}

		hostResult := cfg.Scanner.ScanHost(ctx, host, cfg.Ports, cfg.SuppressClosed)
		results.Store(hostResult)
		if cfg.OnHostDone != nil {
			cfg.OnHostDone(hostResult)
		}
	}

	return &RunResult{
		Results:     results,
		TargetCount: len(cfg.Targets),
		Duration:    time.Since(start),
	}, nil
}
