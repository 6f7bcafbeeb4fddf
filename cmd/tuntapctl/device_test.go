package main

import (
	"flag"
	"strings"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/urfave/cli/v2"
	"gotest.tools/v3/assert"

	"github.com/rootless-containers/utuntap/pkg/tuntap"
)

func newTestContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range deviceFlags() {
		assert.NilError(t, f.Apply(set))
	}
	assert.NilError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestOpenOptionsFromFlags(t *testing.T) {
	_, err := openOptions(newTestContext(t, "--kind", "tap", "--index", "11", "--nonblock"))
	assert.NilError(t, err)

	_, err = openOptions(newTestContext(t, "--kind", "tan"))
	assert.ErrorContains(t, err, "unknown device kind")

	_, err = openOptions(newTestContext(t, "--index", "-5"))
	assert.ErrorContains(t, err, "invalid index -5")
}

func TestLinkConfigFromFlags(t *testing.T) {
	cfg, err := linkConfig(newTestContext(t))
	assert.NilError(t, err)
	assert.Assert(t, cfg == nil)

	cfg, err = linkConfig(newTestContext(t, "--address", "10.10.10.1/24", "--mtu", "1400"))
	assert.NilError(t, err)
	assert.Equal(t, "10.10.10.1", cfg.Address.IP.String())
	assert.Equal(t, "10.10.10.2", cfg.Peer.String())
	assert.Equal(t, 1400, cfg.MTU)

	cfg, err = linkConfig(newTestContext(t, "--address", "10.10.10.1/24", "--peer", "10.10.10.9"))
	assert.NilError(t, err)
	assert.Equal(t, "10.10.10.9", cfg.Peer.String())

	_, err = linkConfig(newTestContext(t, "--address", "10.10.10.1"))
	assert.ErrorContains(t, err, "invalid --address")
	_, err = linkConfig(newTestContext(t, "--address", "10.10.10.1/24", "--peer", "nope"))
	assert.ErrorContains(t, err, "invalid --peer")
}

func TestLinkConfigRejectsInvalidFlags(t *testing.T) {
	testCases := []struct {
		args     []string
		expected string
	}{
		{[]string{"--peer", "10.10.10.2"}, "peer requires an address"},
		{[]string{"--peer", "10.10.10.2", "--mtu", "1400"}, "peer requires an address"},
		{[]string{"--mtu", "-1"}, "negative mtu"},
		{[]string{"--address", "10.10.10.1/24", "--peer", "fd00::2"}, "different families"},
	}
	for _, tc := range testCases {
		cfg, err := linkConfig(newTestContext(t, tc.args...))
		assert.ErrorContains(t, err, tc.expected, "args=%v", tc.args)
		assert.Assert(t, cfg == nil)
	}
}

func TestFormatFlags(t *testing.T) {
	s := formatFlags(deviceFlags())
	assert.Assert(t, strings.Index(s, "  Device:") >= 0, s)
	assert.Assert(t, strings.Index(s, "  Link:") >= 0, s)
	assert.Assert(t, strings.Index(s, "  Device:") < strings.Index(s, "  Link:"), s)
	assert.Assert(t, strings.Index(s, "--packet-info") >= 0, s)
}

func TestSummarize(t *testing.T) {
	ip := testIPv4(layers.IPProtocolUDP)
	udp := &layers.UDP{SrcPort: 2424, DstPort: 4242}
	assert.NilError(t, udp.SetNetworkLayerForChecksum(ip))
	pkt := decode(tuntap.KindTun, serialize(t, ip, udp, gopacket.Payload("abc")))
	assert.Equal(t, "IPv4 10.10.10.1 > 10.10.10.2 UDP 2424 > 4242 len=3", summarize(pkt))
	assert.Equal(t, "[af=2] ", framePrefix(tuntap.Frame{Framing: tuntap.FramingAddressFamily, Family: 2}))
	assert.Equal(t, "[flags=0x0000 proto=0x0800] ", framePrefix(tuntap.Frame{Framing: tuntap.FramingPacketInfo, Protocol: tuntap.EtherTypeIPv4}))
}
