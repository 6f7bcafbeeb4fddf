//go:build linux || freebsd || netbsd || openbsd || dragonfly

package tuntap

import (
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
)

// withDevDir points the openers at dir for the duration of t.
func withDevDir(t *testing.T, dir string) {
	t.Helper()
	old := devDir
	devDir = dir
	t.Cleanup(func() { devDir = old })
}

func TestOpenMissingNode(t *testing.T) {
	withDevDir(t, t.TempDir())
	for _, o := range []*OpenOptions{
		Tun().Number(10),
		Tap().Number(11).PacketInfo(false),
		Tun(),
		Tap().Nonblock(),
	} {
		d, name, err := o.Open()
		assert.Assert(t, errors.Is(err, ErrNotFound), "got %v", err)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Assert(t, d == nil)
		assert.Equal(t, "", name)
	}
}
