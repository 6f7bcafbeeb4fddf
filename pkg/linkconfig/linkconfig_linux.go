package linkconfig

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
)

func configure(ifname string, cfg Config) error {
	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return errors.Wrapf(err, "failed to find interface %s", ifname)
	}
	if cfg.MTU > 0 {
		if err := netlink.LinkSetMTU(link, cfg.MTU); err != nil {
			return errors.Wrapf(err, "setting mtu %d on %s", cfg.MTU, ifname)
		}
	}
	if cfg.Address != nil {
		addr := &netlink.Addr{IPNet: cfg.Address}
		if cfg.Peer != nil {
			addr.Peer = netlink.NewIPNet(cfg.Peer)
		}
		if err := netlink.AddrReplace(link, addr); err != nil {
			return errors.Wrapf(err, "adding %s to %s", cfg.Address, ifname)
		}
	}
	if err := netlink.LinkSetUp(link); err != nil {
		return errors.Wrapf(err, "setting %s up", ifname)
	}
	logrus.Debugf("configured %s: address=%v peer=%v mtu=%d", ifname, cfg.Address, cfg.Peer, cfg.MTU)
	return nil
}
