//go:build linux || openbsd

package tuntap

import (
	"net"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"gotest.tools/v3/assert"

	"github.com/rootless-containers/utuntap/pkg/linkconfig"
)

var (
	localIP  = net.IPv4(10, 10, 10, 1).To4()
	remoteIP = net.IPv4(10, 10, 10, 2).To4()
)

const (
	localPort  = 2424
	remotePort = 4242
)

// buildUDP serializes an IPv4/UDP packet carrying payload.
func buildUDP(t *testing.T, src, dst net.IP, srcPort, dstPort int, payload []byte) []byte {
	t.Helper()
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      20,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    src,
		DstIP:    dst,
	}
	udp := &layers.UDP{
		SrcPort: layers.UDPPort(srcPort),
		DstPort: layers.UDPPort(dstPort),
	}
	assert.NilError(t, udp.SetNetworkLayerForChecksum(ip))
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	assert.NilError(t, gopacket.SerializeLayers(buf, opts, ip, udp, gopacket.Payload(payload)))
	return buf.Bytes()
}

type udpPacket struct {
	ip      *layers.IPv4
	udp     *layers.UDP
	payload []byte
}

// parseUDP returns nil if b is not an IPv4/UDP packet.
func parseUDP(b []byte) *udpPacket {
	p := gopacket.NewPacket(b, layers.LayerTypeIPv4, gopacket.Default)
	ip, ok := p.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !ok {
		return nil
	}
	udp, ok := p.Layer(layers.LayerTypeUDP).(*layers.UDP)
	if !ok {
		return nil
	}
	return &udpPacket{ip: ip, udp: udp, payload: udp.Payload}
}

// readUDPTo reads units from d until one holds a UDP datagram for dstPort.
// It returns the full unit, prefix included. Unrelated traffic the kernel
// emits on a fresh interface (IPv6 router solicitations etc.) is skipped.
func readUDPTo(t *testing.T, d *Device, dstPort int) ([]byte, *udpPacket) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	buf := make([]byte, 65536)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Fatalf("timed out waiting for UDP packet to port %d on %s", dstPort, d)
		}
		ok, err := d.WaitReadable(remaining)
		assert.NilError(t, err)
		if !ok {
			continue
		}
		n, err := d.Read(buf)
		assert.NilError(t, err)
		fr, err := SplitFrame(d.Framing(), buf[:n])
		if err != nil {
			continue
		}
		if pkt := parseUDP(fr.Payload); pkt != nil && int(pkt.udp.DstPort) == dstPort {
			return buf[:n], pkt
		}
	}
}

func configureLink(t *testing.T, name string, cidr string) {
	t.Helper()
	ip, ipnet, err := net.ParseCIDR(cidr)
	assert.NilError(t, err)
	ipnet.IP = ip
	assert.NilError(t, linkconfig.Configure(name, linkconfig.Config{Address: ipnet}))
}

func listenUDP(t *testing.T, ip net.IP, port int) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: ip, Port: port})
	assert.NilError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}
