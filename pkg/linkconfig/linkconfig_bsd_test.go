//go:build freebsd || netbsd || openbsd || dragonfly || darwin

package linkconfig

import (
	"net"
	"testing"

	"gotest.tools/v3/assert"
)

func TestIfconfigCmds(t *testing.T) {
	cmds := ifconfigCmds("tun10", Config{Address: mustCIDR(t, "10.10.10.1/24"), MTU: 1400})
	expected := [][]string{
		{"ifconfig", "tun10", "mtu", "1400"},
		{"ifconfig", "tun10", "10.10.10.1/24", "10.10.10.2"},
		{"ifconfig", "tun10", "up"},
	}
	assert.DeepEqual(t, expected, cmds)

	cmds = ifconfigCmds("tun10", Config{Address: mustCIDR(t, "10.10.10.1/24"), Peer: net.ParseIP("10.10.10.9")})
	assert.DeepEqual(t, []string{"ifconfig", "tun10", "10.10.10.1/24", "10.10.10.9"}, cmds[0])
}
