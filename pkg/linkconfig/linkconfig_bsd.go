//go:build freebsd || netbsd || openbsd || dragonfly || darwin

package linkconfig

import (
	"net"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/rootless-containers/utuntap/pkg/common"
	"github.com/rootless-containers/utuntap/pkg/iputils"
)

func configure(ifname string, cfg Config) error {
	cmds := ifconfigCmds(ifname, cfg)
	if err := common.Execs(os.Stderr, os.Environ(), cmds); err != nil {
		return errors.Wrapf(err, "configuring %s", ifname)
	}
	return nil
}

// ifconfigCmds builds the ifconfig(8) invocations for cfg. A point-to-point
// tun(4) needs a destination address, so the peer defaults to the next address.
func ifconfigCmds(ifname string, cfg Config) [][]string {
	var cmds [][]string
	if cfg.MTU > 0 {
		cmds = append(cmds, []string{"ifconfig", ifname, "mtu", strconv.Itoa(cfg.MTU)})
	}
	if cfg.Address != nil {
		ones, _ := cfg.Address.Mask.Size()
		cmd := []string{"ifconfig", ifname}
		if cfg.Address.IP.To4() == nil {
			cmd = append(cmd, "inet6")
		}
		cmd = append(cmd, cfg.Address.IP.String()+"/"+strconv.Itoa(ones))
		peer := cfg.Peer
		if peer == nil {
			peer = defaultPeer(cfg.Address)
		}
		if peer != nil {
			cmd = append(cmd, peer.String())
		}
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, []string{"ifconfig", ifname, "up"})
	return cmds
}

func defaultPeer(ipnet *net.IPNet) net.IP {
	if ipnet.IP.To4() == nil {
		return nil
	}
	peer, err := iputils.DefaultPeer(ipnet)
	if err != nil {
		return nil
	}
	return peer
}
