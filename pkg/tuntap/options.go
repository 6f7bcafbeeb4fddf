//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package tuntap

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// OpenOptions configures a device before it is opened.
// Setters may be chained in any order; each overwrites only its own field.
//
//	dev, name, err := tuntap.Tun().PacketInfo(false).Number(10).Open()
type OpenOptions struct {
	kind Kind
	// index is only meaningful when anyIndex is false.
	index      uint
	anyIndex   bool
	packetInfo bool
	// packetInfoSet records an explicit PacketInfo call.
	packetInfoSet bool
	nonblock      bool
}

// NewOpenOptions returns options for kind with an OS-assigned index,
// packet information enabled (the kernel default) and blocking I/O.
func NewOpenOptions(kind Kind) *OpenOptions {
	return &OpenOptions{
		kind:       kind,
		anyIndex:   true,
		packetInfo: true,
	}
}

// Tun is shorthand for NewOpenOptions(KindTun).
func Tun() *OpenOptions { return NewOpenOptions(KindTun) }

// Tap is shorthand for NewOpenOptions(KindTap).
func Tap() *OpenOptions { return NewOpenOptions(KindTap) }

// Kind sets the device family.
func (o *OpenOptions) Kind(kind Kind) *OpenOptions {
	o.kind = kind
	return o
}

// Number requests interface index n, e.g. 10 for "tun10".
func (o *OpenOptions) Number(n uint) *OpenOptions {
	o.index = n
	o.anyIndex = false
	return o
}

// AnyNumber lets the OS assign the index.
func (o *OpenOptions) AnyNumber() *OpenOptions {
	o.index = 0
	o.anyIndex = true
	return o
}

// PacketInfo toggles the 4-byte flags+protocol header on Linux.
// It has no effect on BSD-family systems.
func (o *OpenOptions) PacketInfo(enabled bool) *OpenOptions {
	o.packetInfo = enabled
	o.packetInfoSet = true
	return o
}

// Nonblock makes Read and Write return ErrWouldBlock instead of waiting.
func (o *OpenOptions) Nonblock() *OpenOptions {
	o.nonblock = true
	return o
}

// Blocking undoes Nonblock.
func (o *OpenOptions) Blocking() *OpenOptions {
	o.nonblock = false
	return o
}

// openRequest is the snapshot of OpenOptions handed to the platform opener.
type openRequest struct {
	kind       Kind
	name       string
	anyIndex   bool
	packetInfo bool
	// packetInfoSet is true when the caller asked for packetInfo explicitly
	// rather than inheriting the default.
	packetInfoSet bool
}

// openResult is what a platform opener hands back.
type openResult struct {
	fd   int
	name string
	// packetInfo is the effective setting, false where the platform ignores it.
	packetInfo      bool
	platformFraming bool
}

// Open creates or binds the interface and returns the device together with
// the name the OS actually assigned. On failure no handle exists.
func (o *OpenOptions) Open() (*Device, string, error) {
	req, err := o.request()
	if err != nil {
		return nil, "", err
	}
	nonblock := o.nonblock
	res, err := openPlatform(req)
	if err != nil {
		return nil, "", err
	}
	if nonblock {
		if err := unix.SetNonblock(res.fd, true); err != nil {
			unix.Close(res.fd)
			return nil, "", wrapErr("set nonblock", res.name, err)
		}
	}
	dev := newDevice(res.fd, deviceInfo{
		name:            res.name,
		kind:            req.kind,
		packetInfo:      res.packetInfo,
		platformFraming: res.platformFraming,
		nonblocking:     nonblock,
	})
	logrus.Debugf("opened %s (requested %s, framing=%s, nonblock=%v)", res.name, req.name, dev.Framing(), nonblock)
	return dev, res.name, nil
}

// request validates o and snapshots it for the platform opener.
func (o *OpenOptions) request() (openRequest, error) {
	if !o.kind.Valid() {
		return openRequest{}, errors.Errorf("unknown device kind %d", int(o.kind))
	}
	req := openRequest{
		kind:          o.kind,
		name:          DeviceName(o.kind, o.index),
		anyIndex:      o.anyIndex,
		packetInfo:    o.packetInfo,
		packetInfoSet: o.packetInfoSet,
	}
	if o.anyIndex {
		req.name = AnyDeviceName(o.kind)
	}
	return req, nil
}
