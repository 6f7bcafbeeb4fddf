//go:build linux

package tuntap

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

func cloneDevicePath() string {
	return filepath.Join(devDir, "net", "tun")
}

// openPlatform opens the clone device and binds it with TUNSETIFF.
// The kernel expands a "tun%d" template to the first free index.
func openPlatform(req openRequest) (openResult, error) {
	path := cloneDevicePath()
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return openResult{}, wrapErr("open", path, err)
	}
	name, err := setIff(fd, req)
	if err != nil {
		unix.Close(fd)
		return openResult{}, err
	}
	return openResult{
		fd:         fd,
		name:       name,
		packetInfo: req.packetInfo,
	}, nil
}

func setIff(fd int, req openRequest) (string, error) {
	ifr, err := unix.NewIfreq(req.name)
	if err != nil {
		return "", wrapErr("ioctl TUNSETIFF", req.name, err)
	}
	var flags uint16 = unix.IFF_TUN
	if req.kind == KindTap {
		flags = unix.IFF_TAP
	}
	if !req.packetInfo {
		flags |= unix.IFF_NO_PI
	}
	ifr.SetUint16(flags)
	if err := unix.IoctlIfreq(fd, unix.TUNSETIFF, ifr); err != nil {
		return "", wrapErr("ioctl TUNSETIFF", req.name, err)
	}
	return ifr.Name(), nil
}
