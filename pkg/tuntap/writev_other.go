//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package tuntap

import "golang.org/x/sys/unix"

// writev gathers bufs into one write; tun(4) takes one packet per write(2) either way.
func writev(fd int, bufs [][]byte) (int, error) {
	if len(bufs) == 1 {
		return unix.Write(fd, bufs[0])
	}
	var size int
	for _, b := range bufs {
		size += len(b)
	}
	p := make([]byte, 0, size)
	for _, b := range bufs {
		p = append(p, b...)
	}
	return unix.Write(fd, p)
}
