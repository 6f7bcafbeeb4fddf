//go:build !linux && !freebsd && !netbsd && !openbsd && !dragonfly && !darwin

package linkconfig

import "github.com/pkg/errors"

func configure(ifname string, cfg Config) error {
	return errors.Errorf("configuring %s: unsupported platform", ifname)
}
