// Package linkconfig assigns addresses to an opened TUN/TAP interface and
// brings it up, so that traffic is routed to it.
package linkconfig

import (
	"net"

	"github.com/pkg/errors"
)

// Config describes the desired state of an interface.
type Config struct {
	// Address is the local address with its prefix length, e.g. 10.10.10.1/24.
	// Nil leaves addresses untouched.
	Address *net.IPNet
	// Peer is the remote end of a point-to-point link. Optional on Linux.
	Peer net.IP
	// MTU is left untouched when zero.
	MTU int
}

// Validate checks cfg without touching any interface.
func (c Config) Validate() error {
	if c.MTU < 0 {
		return errors.Errorf("got negative mtu %d", c.MTU)
	}
	if c.Peer != nil && c.Address == nil {
		return errors.New("peer requires an address")
	}
	if c.Peer != nil && (c.Peer.To4() == nil) != (c.Address.IP.To4() == nil) {
		return errors.Errorf("address %s and peer %s are of different families", c.Address.IP, c.Peer)
	}
	return nil
}

// Configure applies cfg to the interface named ifname and sets it up.
func Configure(ifname string, cfg Config) error {
	if ifname == "" {
		return errors.New("no interface name is set")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return configure(ifname, cfg)
}
