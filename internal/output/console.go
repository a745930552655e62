// Package output renders scan results: the live open-port stream, the
// end-of-run summary table, and JSON persistence of the result map.
package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/portsweep/portsweep/internal/scanning"
)

// Console streams scan progress to a writer as it happens.
type Console struct {
	w io.Writer
}

// NewConsole creates a console printer writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// OpenPort prints a single open-port discovery. Called from the scan path as
// soon as each probe completes, independent of final aggregation.
func (c *Console) OpenPort(result scanning.PortResult) {
	fmt.Fprintf(c.w, "%d    open\n", result.Port)
}

// HostDone prints the separator after a host's scan completes.
func (c *Console) HostDone(result scanning.HostResult) {
	fmt.Fprintf(c.w, "--------------------------------\n")
}

// TargetSkipped reports a target that was skipped without scanning.
func (c *Console) TargetSkipped(target string, err error) {
	fmt.Fprintf(c.w, "skipping %s: %v\n", target, err)
}

// Summary prints the final run summary line.
func (c *Console) Summary(targetCount int, elapsedSeconds float64) {
	fmt.Fprintf(c.w, "scan finished: %d target(s) in %.2fs\n", targetCount, elapsedSeconds)
}

// RenderTable prints a per-host summary table of the retained results,
// hosts and ports sorted for stable output.
func (c *Console) RenderTable(results scanning.ResultMap) {
	hosts := make([]string, 0, len(results))
	for host := range results {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	table := tablewriter.NewWriter(c.w)
	table.Header("Host", "Port", "State")

	for _, host := range hosts {
		entries := append([]scanning.PortResult(nil), results[host]...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Port < entries[j].Port })
		for _, entry := range entries {
			_ = table.Append([]string{host, strconv.Itoa(entry.Port), string(entry.State)})
		}
	}
	_ = table.Render()
}
