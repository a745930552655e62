// Package target handles user-supplied scan targets: resolving hostnames and
// IP literals to concrete addresses, and loading newline-delimited host lists
// from files.
package target

import (
	"bufio"
	"net"
	"os"
	"strings"

	"github.com/portsweep/portsweep/internal/errors"
)

// IPResolver resolves targets through the system resolver. It satisfies the
// scanning.Resolver interface.
type IPResolver struct{}

// NewResolver returns the default resolver.
func NewResolver() *IPResolver {
	return &IPResolver{}
}

// Resolve turns a hostname or IP literal into an IP address string, preferring
// IPv4. CIDR-looking input is passed through to resolution unexpanded; it
// fails like any other unresolvable name and the target is skipped upstream.
func (r *IPResolver) Resolve(targetStr string) (string, error) {
	targetStr = strings.TrimSpace(targetStr)
	if targetStr == "" {
		return "", errors.ErrInvalidTarget(targetStr)
	}

	if ip := net.ParseIP(targetStr); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
		return ip.String(), nil
	}

	ips, err := net.LookupIP(targetStr)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	if len(ips) > 0 {
		return ips[0].String(), nil
	}
	return "", errors.ErrResolveFailed(targetStr, nil)
}

// LoadHostsFile reads a newline-delimited host list. Blank lines and lines
// starting with '#' are ignored. A missing or unreadable file is fatal for
// the run and reported before any scanning starts.
func LoadHostsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrHostFileMissing(path, err)
		}
		return nil, errors.WrapFileError(errors.CodeFilePermission, "Failed to open host list file", path, err)
	}
	defer file.Close()

	var targets []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapFileError(errors.CodeUnknown, "Failed to read host list file", path, err)
	}
	return targets, nil
}
