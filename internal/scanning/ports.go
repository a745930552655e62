package scanning

import (
	"strconv"
	"strings"

	"github.com/portsweep/portsweep/internal/errors"
)

// Port range boundaries for validation.
const (
	MinPort = 1
	MaxPort = 65535
)

// ParsePortList parses a comma-separated port list into a PortSet.
// Order is preserved and duplicates are NOT removed: each requested entry
// is probed independently and produces its own result. Any entry outside
// [1, 65535] rejects the whole list.
func ParsePortList(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.ErrInvalidPort("empty port list")
	}

	parts := strings.Split(spec, ",")
	ports := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, errors.ErrInvalidPort(spec)
		}
		port, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.ErrInvalidPort(part)
		}
		if port < MinPort || port > MaxPort {
			return nil, errors.ErrInvalidPort(part)
		}
		ports = append(ports, port)
	}
	return ports, nil
}

// FullRange returns the complete port range 1-65535.
func FullRange() []int {
	ports := make([]int, 0, MaxPort)
	for p := MinPort; p <= MaxPort; p++ {
		ports = append(ports, p)
	}
	return ports
}
