//go:build freebsd || netbsd || openbsd || dragonfly

package tuntap

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// openPlatform opens the pre-existing character device named after the
// interface. There is no separate control-plane call.
func openPlatform(req openRequest) (openResult, error) {
	warnIgnoredPacketInfo(req)
	open := func(name string) (openResult, error) {
		return openNode(req.kind, name)
	}
	if req.anyIndex {
		return scanFree(req.kind, open)
	}
	return open(req.name)
}

func openNode(kind Kind, name string) (openResult, error) {
	path := filepath.Join(devDir, name)
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return openResult{}, wrapErr("open", path, err)
	}
	return openResult{
		fd:              fd,
		name:            name,
		platformFraming: kind == KindTun && tunAddressFamilyHeader,
	}, nil
}
