//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package tuntap

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// devDir holds the device nodes.
var devDir = "/dev"

// maxDevices bounds the scan for a free node when no index is requested.
const maxDevices = 256

// scanFree opens the first node of kind that is not busy, trying indexes
// 0..maxDevices-1 in order. Any error other than AlreadyInUse, such as a
// missing node, ends the scan.
func scanFree(kind Kind, open func(name string) (openResult, error)) (openResult, error) {
	for i := uint(0); i < maxDevices; i++ {
		res, err := open(DeviceName(kind, i))
		if KindOf(err) == KindAlreadyInUse {
			continue
		}
		return res, err
	}
	return openResult{}, &Error{
		Op:   "open",
		Path: filepath.Join(devDir, AnyDeviceName(kind)),
		Kind: KindAlreadyInUse,
		Err:  errors.Errorf("all %d %s devices are in use", maxDevices, kind),
	}
}

// warnIgnoredPacketInfo is called by openers of platforms without the
// packet-information header. Only an explicit request is worth a warning,
// the default is on.
func warnIgnoredPacketInfo(req openRequest) {
	if !req.packetInfo {
		return
	}
	if req.packetInfoSet {
		logrus.Warnf("packet info is not supported on this platform, ignoring it for %s", req.name)
		return
	}
	logrus.Debugf("packet info is not supported on this platform, ignoring it for %s", req.name)
}
