package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/portsweep/portsweep/internal/config"
	"github.com/portsweep/portsweep/internal/errors"
	"github.com/portsweep/portsweep/internal/output"
	"github.com/portsweep/portsweep/internal/scanning"
	"github.com/portsweep/portsweep/internal/target"
)

var (
	scanPorts     string
	scanAllPorts  bool
	scanHostsFile string
	scanOutput    string
	scanLiveness  bool
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan [target]",
	Short: "Scan a target or a list of hosts for open TCP ports",
	Long: `Scan a single target (hostname or IP) or a newline-delimited file of
hosts for open TCP ports.

Without flags a fixed default port set is probed and every result is
reported. An explicit port list (-p) is probed exactly as given, duplicates
included. All-ports mode (--all-ports) and file mode (-f) sweep the full
range 1-65535 and report open ports only; every port is still probed.`,
	Example: `  portsweep scan 192.168.1.10
  portsweep scan example.com -p 22,80,443
  portsweep scan 10.0.0.5 --all-ports
  portsweep scan -f hosts.txt -o results.json
  portsweep scan -f hosts.txt --sn`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanPorts, "ports", "p", "", "comma-separated port list, each in 1-65535")
	scanCmd.Flags().BoolVar(&scanAllPorts, "all-ports", false, "scan the full range 1-65535, report open ports only")
	scanCmd.Flags().StringVarP(&scanHostsFile, "file", "f", "", "newline-delimited host list; forces full-range scan")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "write results as JSON to the given path")
	scanCmd.Flags().BoolVar(&scanLiveness, "sn", false, "liveness pre-check before full sweeps (file mode only)")

	scanCmd.MarkFlagsMutuallyExclusive("ports", "all-ports")
	scanCmd.MarkFlagsMutuallyExclusive("ports", "file")
}

func runScan(cmd *cobra.Command, args []string) {
	if scanHostsFile == "" && len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: a target or a host list file (-f) is required\n\n")
		_ = cmd.Help()
		os.Exit(1)
	}
	if scanHostsFile != "" && len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Error: positional target and -f are mutually exclusive\n")
		os.Exit(1)
	}

	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	targets, err := collectTargets(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ports, suppressClosed, err := resolvePortSet(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Ports must be comma-separated integers between 1 and 65535, e.g. -p 22,80,443\n")
		os.Exit(1)
	}

	console := output.NewConsole(os.Stdout)

	scanner := scanning.NewScanner(scanning.Config{
		Workers: cfg.Scanning.WorkerCount,
		Prober:  scanning.NewConnectProber(cfg.Scanning.ProbeTimeout),
		OnOpen: func(host string, result scanning.PortResult) {
			console.OpenPort(result)
		},
	})

	runCfg := scanning.RunConfig{
		Targets:        targets,
		Ports:          ports,
		SuppressClosed: suppressClosed,
		Resolver:       target.NewResolver(),
		Scanner:        scanner,
		OnHostDone:     console.HostDone,
		OnTargetSkipped: func(t string, err error) {
			console.TargetSkipped(t, err)
		},
	}
	// Liveness is opt-in and only meaningful for bulk sweeps; single-target
	// behavior is never changed by it.
	if scanLiveness && scanHostsFile != "" {
		runCfg.Liveness = scanning.NewLivenessProbe(
			cfg.Scanning.LivenessPort, cfg.Scanning.LivenessTimeout)
	} else if scanLiveness {
		fmt.Fprintf(os.Stderr, "Warning: --sn only applies to file mode, ignoring\n")
	}

	result, err := scanning.Run(context.Background(), runCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	console.Summary(result.TargetCount, result.Duration.Seconds())

	if verbose && len(result.Results) > 0 {
		console.RenderTable(result.Results)
	}

	if scanOutput != "" {
		if err := output.WriteJSON(scanOutput, result.Results); err != nil {
			// Persistence failure only; results were already streamed.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
}

// collectTargets returns the target list for this run: either the single
// positional target or the contents of the host list file.
func collectTargets(args []string) ([]string, error) {
	if scanHostsFile != "" {
		return target.LoadHostsFile(scanHostsFile)
	}
	return []string{args[0]}, nil
}

// resolvePortSet determines the port set and reporting mode for the whole
// run. File input and all-ports mode sweep the full range with closed-port
// suppression; an explicit list is used exactly as given with no
// suppression; otherwise the configured default set applies.
func resolvePortSet(cfg *config.Config) (ports []int, suppressClosed bool, err error) {
	switch {
	case scanHostsFile != "" || scanAllPorts:
		return scanning.FullRange(), true, nil
	case scanPorts != "":
		ports, err = scanning.ParsePortList(scanPorts)
		if err != nil {
			return nil, false, err
		}
		return ports, false, nil
	default:
		ports, err = scanning.ParsePortList(cfg.Scanning.DefaultPorts)
		if err != nil {
			return nil, false, errors.WrapConfigError(
				errors.CodeConfiguration, "invalid default port list", err)
		}
		return ports, false, nil
	}
}
