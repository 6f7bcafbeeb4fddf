//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package tuntap

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type deviceInfo struct {
	name            string
	kind            Kind
	packetInfo      bool
	platformFraming bool
	nonblocking     bool
}

// Device is an open TUN/TAP handle. It owns the file descriptor; Close
// releases it exactly once. Read and Write may be used from different
// goroutines at the same time, but Close must not race with them.
//
// Read returns one unit per call including its prefix, if any (see Framing).
// Write and Writev pass the buffer through unchanged: on platforms with
// address-family framing the caller supplies the prefix, or uses WriteFrame.
type Device struct {
	fd     int
	info   deviceInfo
	closed atomic.Bool
	once   sync.Once
}

func newDevice(fd int, info deviceInfo) *Device {
	d := &Device{fd: fd, info: info}
	runtime.SetFinalizer(d, (*Device).Close)
	return d
}

// Name returns the interface name assigned by the OS, e.g. "tun10".
func (d *Device) Name() string { return d.info.name }

func (d *Device) String() string { return d.info.name }

// Kind returns KindTun or KindTap.
func (d *Device) Kind() Kind { return d.info.kind }

// PacketInfo reports whether the Linux packet-information header is in effect.
func (d *Device) PacketInfo() bool { return d.info.packetInfo }

// PlatformFraming reports whether the platform always prefixes an
// address-family word, regardless of PacketInfo.
func (d *Device) PlatformFraming() bool { return d.info.platformFraming }

// Nonblocking reports whether the device was opened non-blocking.
func (d *Device) Nonblocking() bool { return d.info.nonblocking }

// Framing returns the prefix carried by every unit on this device.
func (d *Device) Framing() Framing {
	return FramingFor(d.info.platformFraming, d.info.packetInfo)
}

// Fd returns the raw descriptor, or -1 after Close. The descriptor stays
// owned by d; do not close it.
func (d *Device) Fd() int {
	if d.closed.Load() {
		return -1
	}
	return d.fd
}

// Read reads one unit into p.
func (d *Device) Read(p []byte) (int, error) {
	if d.closed.Load() {
		return 0, closedErr("read", d.info.name)
	}
	for {
		n, err := unix.Read(d.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, wrapErr("read", d.info.name, err)
		}
		return n, nil
	}
}

// Write writes one unit. The OS delivers it as one packet.
func (d *Device) Write(p []byte) (int, error) {
	if d.closed.Load() {
		return 0, closedErr("write", d.info.name)
	}
	for {
		n, err := unix.Write(d.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, wrapErr("write", d.info.name, err)
		}
		return n, nil
	}
}

// Writev writes bufs as a single unit, equivalent to writing their concatenation.
func (d *Device) Writev(bufs ...[]byte) (int, error) {
	if d.closed.Load() {
		return 0, closedErr("writev", d.info.name)
	}
	for {
		n, err := writev(d.fd, bufs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, wrapErr("writev", d.info.name, err)
		}
		return n, nil
	}
}

// ReadFrame reads one unit into p and splits off its prefix.
func (d *Device) ReadFrame(p []byte) (Frame, error) {
	n, err := d.Read(p)
	if err != nil {
		return Frame{}, err
	}
	return SplitFrame(d.Framing(), p[:n])
}

// WriteFrame prefixes payload as the device's framing requires and writes
// both in one call. It returns the payload bytes written.
func (d *Device) WriteFrame(payload []byte) (int, error) {
	f := d.Framing()
	if f == FramingNone {
		return d.Write(payload)
	}
	fr, err := frameFor(f, d.info.kind, payload)
	if err != nil {
		return 0, err
	}
	hdr := AppendHeader(make([]byte, 0, HeaderLen), fr)
	n, err := d.Writev(hdr, payload)
	if n >= len(hdr) {
		n -= len(hdr)
	} else {
		n = 0
	}
	return n, err
}

// WaitReadable blocks until a unit is queued or timeout elapses. It reports
// whether the device became readable. A negative timeout waits forever.
func (d *Device) WaitReadable(timeout time.Duration) (bool, error) {
	if d.closed.Load() {
		return false, closedErr("poll", d.info.name)
	}
	ms := pollTimeout(timeout)
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, ms)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, wrapErr("poll", d.info.name, err)
		}
		return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
	}
}

// pollTimeout converts timeout to poll(2) milliseconds, rounding up so that
// a short wait never turns into no wait.
func pollTimeout(timeout time.Duration) int {
	if timeout < 0 {
		return -1
	}
	ms := timeout / time.Millisecond
	if timeout%time.Millisecond != 0 {
		ms++
	}
	if ms > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(ms)
}

// Close releases the descriptor. Later calls, and any I/O after the first
// call, return ErrClosed.
func (d *Device) Close() error {
	err := closedErr("close", d.info.name)
	d.once.Do(func() {
		d.closed.Store(true)
		runtime.SetFinalizer(d, nil)
		err = wrapErr("close", d.info.name, unix.Close(d.fd))
		logrus.Debugf("closed %s", d.info.name)
	})
	return err
}
