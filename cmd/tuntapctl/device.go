package main

import (
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rootless-containers/utuntap/pkg/common"
	"github.com/rootless-containers/utuntap/pkg/iputils"
	"github.com/rootless-containers/utuntap/pkg/linkconfig"
	"github.com/rootless-containers/utuntap/pkg/tuntap"
)

// anyIndexFlag is the --index value that lets the OS choose.
const anyIndexFlag = -1

func deviceFlags() []cli.Flag {
	return []cli.Flag{
		Categorize(&cli.StringFlag{
			Name:    "kind",
			Usage:   "device kind: tun (raw IP) or tap (raw Ethernet)",
			Value:   "tun",
			EnvVars: []string{"TUNTAP_KIND"},
		}, CategoryDevice),
		Categorize(&cli.IntFlag{
			Name:    "index",
			Usage:   "interface number, e.g. 10 for tun10 (-1 lets the OS choose)",
			Value:   anyIndexFlag,
			EnvVars: []string{"TUNTAP_INDEX"},
		}, CategoryDevice),
		Categorize(&cli.BoolFlag{
			Name:    "packet-info",
			Usage:   "prefix each packet with the 4-byte flags+protocol header (Linux only)",
			EnvVars: []string{"TUNTAP_PACKET_INFO"},
		}, CategoryDevice),
		Categorize(&cli.BoolFlag{
			Name:    "nonblock",
			Usage:   "open the device in non-blocking mode",
			EnvVars: []string{"TUNTAP_NONBLOCK"},
		}, CategoryDevice),
		Categorize(&cli.StringFlag{
			Name:    "address",
			Usage:   "local address with prefix length, e.g. 10.10.10.1/24 (empty leaves the link unconfigured)",
			EnvVars: []string{"TUNTAP_ADDRESS"},
		}, CategoryLink),
		Categorize(&cli.StringFlag{
			Name:    "peer",
			Usage:   "point-to-point peer address (default: the address following --address)",
			EnvVars: []string{"TUNTAP_PEER"},
		}, CategoryLink),
		Categorize(&cli.IntFlag{
			Name:    "mtu",
			Usage:   "MTU (0 keeps the OS default)",
			EnvVars: []string{"TUNTAP_MTU"},
		}, CategoryLink),
	}
}

func openOptions(clicontext *cli.Context) (*tuntap.OpenOptions, error) {
	kind, err := tuntap.ParseKind(clicontext.String("kind"))
	if err != nil {
		return nil, err
	}
	o := tuntap.NewOpenOptions(kind).PacketInfo(clicontext.Bool("packet-info"))
	switch index := clicontext.Int("index"); {
	case index >= 0:
		o.Number(uint(index))
	case index != anyIndexFlag:
		return nil, errors.Errorf("invalid index %d", index)
	}
	if clicontext.Bool("nonblock") {
		o.Nonblock()
	}
	return o, nil
}

func linkConfig(clicontext *cli.Context) (*linkconfig.Config, error) {
	cfg := &linkconfig.Config{MTU: clicontext.Int("mtu")}
	if s := clicontext.String("address"); s != "" {
		ip, ipnet, err := net.ParseCIDR(s)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --address")
		}
		ipnet.IP = ip
		cfg.Address = ipnet
	}
	if s := clicontext.String("peer"); s != "" {
		cfg.Peer = net.ParseIP(s)
		if cfg.Peer == nil {
			return nil, errors.Errorf("invalid --peer %q", s)
		}
	} else if cfg.Address != nil && cfg.Address.IP.To4() != nil {
		if peer, err := iputils.DefaultPeer(cfg.Address); err == nil {
			cfg.Peer = peer
		} else {
			logrus.Debugf("no default peer: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Address == nil && cfg.MTU == 0 {
		return nil, nil
	}
	return cfg, nil
}

// openDevice opens and configures the device described by the flags.
// The returned cleanup closes it.
func openDevice(clicontext *cli.Context) (*tuntap.Device, func() error, error) {
	var cleanups []func() error
	o, err := openOptions(clicontext)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := linkConfig(clicontext)
	if err != nil {
		return nil, nil, err
	}
	d, name, err := o.Open()
	if err != nil {
		return nil, nil, err
	}
	cleanups = append(cleanups, d.Close)
	if cfg != nil {
		if err := linkconfig.Configure(name, *cfg); err != nil {
			return nil, common.Reverse(cleanups), err
		}
	}
	logrus.Infof("opened %s (framing: %s)", name, d.Framing())
	return d, common.Reverse(cleanups), nil
}
