package iputils

import (
	"encoding/binary"
	"math"
	"net"

	"github.com/pkg/errors"
)

func AddIPInt(ip net.IP, i int) (net.IP, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, errors.Errorf("expected IPv4 address, got %s", ip.String())
	}
	ui32 := binary.BigEndian.Uint32(ip4)
	resInt := int64(ui32) + int64(i)
	if resInt > math.MaxUint32 || resInt < 0 {
		return nil, errors.Errorf("%s + %d overflows", ip.String(), i)
	}
	res := make(net.IP, 4)
	binary.BigEndian.PutUint32(res, uint32(resInt))
	return res, nil
}

// DefaultPeer returns the address following ipnet.IP, for use as the remote
// end of a point-to-point link. The result must stay inside ipnet and must
// not be its broadcast address (unless ipnet is a /31 or /32).
func DefaultPeer(ipnet *net.IPNet) (net.IP, error) {
	ones, bits := ipnet.Mask.Size()
	if bits != 32 {
		return nil, errors.Errorf("expected IPv4 network, got %s", ipnet.String())
	}
	peer, err := AddIPInt(ipnet.IP, 1)
	if err != nil {
		return nil, err
	}
	if ones >= 31 {
		return peer, nil
	}
	if !ipnet.Contains(peer) || isBroadcast(peer, ipnet) {
		return nil, errors.Errorf("no peer address left in %s after %s", ipnet.String(), ipnet.IP.String())
	}
	return peer, nil
}

func isBroadcast(ip net.IP, ipnet *net.IPNet) bool {
	ip4 := ip.To4()
	mask := net.IP(ipnet.Mask).To4()
	if ip4 == nil || mask == nil {
		return false
	}
	for i := range ip4 {
		if ip4[i]|mask[i] != 0xff {
			return false
		}
	}
	return true
}
