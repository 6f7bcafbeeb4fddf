package linkconfig

import (
	"net"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func mustCIDR(t *testing.T, s string) *net.IPNet {
	t.Helper()
	ip, ipnet, err := net.ParseCIDR(s)
	assert.NilError(t, err)
	ipnet.IP = ip
	return ipnet
}

func TestValidate(t *testing.T) {
	assert.NilError(t, Config{}.Validate())
	assert.NilError(t, Config{Address: mustCIDR(t, "10.10.10.1/24"), Peer: net.ParseIP("10.10.10.2"), MTU: 1500}.Validate())
	assert.Check(t, is.ErrorContains(Config{MTU: -1}.Validate(), "negative mtu"))
	assert.Check(t, is.ErrorContains(Config{Peer: net.ParseIP("10.10.10.2")}.Validate(), "requires an address"))
	assert.Check(t, is.ErrorContains(Config{Address: mustCIDR(t, "10.10.10.1/24"), Peer: net.ParseIP("fd00::2")}.Validate(), "different families"))
}

func TestConfigureRequiresName(t *testing.T) {
	assert.Check(t, is.ErrorContains(Configure("", Config{}), "no interface name"))
}
