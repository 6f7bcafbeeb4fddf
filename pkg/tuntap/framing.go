//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package tuntap

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// HeaderLen is the size of both the Linux packet-information header and the
// BSD address-family word.
const HeaderLen = 4

// Framing describes what precedes each packet on the handle.
type Framing int

const (
	// FramingNone: raw IP packets (TUN) or Ethernet frames (TAP).
	FramingNone Framing = iota
	// FramingPacketInfo: [2 bytes flags][2 bytes protocol], Linux with packet info.
	FramingPacketInfo
	// FramingAddressFamily: [4 bytes big-endian address family], BSD TUN.
	FramingAddressFamily
)

func (f Framing) String() string {
	switch f {
	case FramingPacketInfo:
		return "packet-info"
	case FramingAddressFamily:
		return "address-family"
	default:
		return "none"
	}
}

// HeaderLen returns the prefix size for f.
func (f Framing) HeaderLen() int {
	if f == FramingNone {
		return 0
	}
	return HeaderLen
}

// FramingFor applies the framing rule: platform framing wins over packet info.
func FramingFor(platformFraming, packetInfo bool) Framing {
	switch {
	case platformFraming:
		return FramingAddressFamily
	case packetInfo:
		return FramingPacketInfo
	default:
		return FramingNone
	}
}

// Ethertypes used in the packet-information protocol field.
const (
	EtherTypeIPv4 uint16 = 0x0800
	EtherTypeIPv6 uint16 = 0x86dd
)

// Frame is one unit read from or written to a device, split into its prefix
// fields and payload. Only the fields matching Framing are meaningful.
type Frame struct {
	Framing Framing
	// Flags and Protocol are set for FramingPacketInfo.
	Flags    uint16
	Protocol uint16
	// Family is set for FramingAddressFamily.
	Family  uint32
	Payload []byte
}

// SplitFrame decodes the prefix of b according to f. Payload aliases b.
func SplitFrame(f Framing, b []byte) (Frame, error) {
	fr := Frame{Framing: f}
	if len(b) < f.HeaderLen() {
		return fr, errors.Errorf("short %s frame: %d bytes", f, len(b))
	}
	switch f {
	case FramingPacketInfo:
		fr.Flags = binary.NativeEndian.Uint16(b[0:2])
		fr.Protocol = binary.BigEndian.Uint16(b[2:4])
	case FramingAddressFamily:
		fr.Family = binary.BigEndian.Uint32(b[0:4])
	}
	fr.Payload = b[f.HeaderLen():]
	return fr, nil
}

// AppendHeader appends the prefix of fr to dst. Payload is not appended.
func AppendHeader(dst []byte, fr Frame) []byte {
	switch fr.Framing {
	case FramingPacketInfo:
		dst = binary.NativeEndian.AppendUint16(dst, fr.Flags)
		dst = binary.BigEndian.AppendUint16(dst, fr.Protocol)
	case FramingAddressFamily:
		dst = binary.BigEndian.AppendUint32(dst, fr.Family)
	}
	return dst
}

// FamilyOf returns the host address family (AF_INET/AF_INET6) for an IP
// packet, judged by its version nibble.
func FamilyOf(packet []byte) (uint32, error) {
	if len(packet) == 0 {
		return 0, errors.New("empty packet")
	}
	switch packet[0] >> 4 {
	case 4:
		return unix.AF_INET, nil
	case 6:
		return unix.AF_INET6, nil
	default:
		return 0, errors.Errorf("unknown IP version %d", packet[0]>>4)
	}
}

// EtherTypeOf is FamilyOf for the packet-information protocol field.
func EtherTypeOf(packet []byte) (uint16, error) {
	family, err := FamilyOf(packet)
	if err != nil {
		return 0, err
	}
	if family == unix.AF_INET6 {
		return EtherTypeIPv6, nil
	}
	return EtherTypeIPv4, nil
}

// frameFor builds the header fields a device of framing f needs for payload.
func frameFor(f Framing, kind Kind, payload []byte) (Frame, error) {
	fr := Frame{Framing: f, Payload: payload}
	switch f {
	case FramingAddressFamily:
		family, err := FamilyOf(payload)
		if err != nil {
			return fr, err
		}
		fr.Family = family
	case FramingPacketInfo:
		if kind == KindTap {
			// The kernel takes the ethertype from the Ethernet header for TAP.
			return fr, nil
		}
		proto, err := EtherTypeOf(payload)
		if err != nil {
			return fr, err
		}
		fr.Protocol = proto
	}
	return fr, nil
}
