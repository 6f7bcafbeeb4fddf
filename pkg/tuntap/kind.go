//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package tuntap

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind selects the virtual interface family.
type Kind int

const (
	// KindTun carries raw IP packets.
	KindTun Kind = iota
	// KindTap carries raw Ethernet frames.
	KindTap
)

func (k Kind) String() string {
	switch k {
	case KindTun:
		return "tun"
	case KindTap:
		return "tap"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind parses "tun" or "tap".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "tun":
		return KindTun, nil
	case "tap":
		return KindTap, nil
	default:
		return -1, errors.Errorf("unknown device kind: %q", s)
	}
}

// Valid reports whether k is KindTun or KindTap.
func (k Kind) Valid() bool {
	return k == KindTun || k == KindTap
}

// anyIndexSuffix is the template the Linux clone device expands into the
// first free index. The BSD opener treats it as "scan for a free node".
const anyIndexSuffix = "%d"

// DeviceName returns the canonical device name for kind and index, e.g. "tun10".
func DeviceName(kind Kind, index uint) string {
	return kind.String() + strconv.FormatUint(uint64(index), 10)
}

// AnyDeviceName returns the "any index" template for kind, e.g. "tun%d".
func AnyDeviceName(kind Kind) string {
	return kind.String() + anyIndexSuffix
}

// IsAnyIndex reports whether name is a template returned by AnyDeviceName.
func IsAnyIndex(name string) bool {
	return strings.HasSuffix(name, anyIndexSuffix)
}
