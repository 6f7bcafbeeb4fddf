package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rootless-containers/utuntap/pkg/tuntap"
)

var echoCommand = cli.Command{
	Name:               "echo",
	Usage:              "Create a TUN interface that answers ICMP echo requests and reflects UDP datagrams",
	ArgsUsage:          "[flags]",
	Flags:              deviceFlags(),
	Description:        formatFlags(deviceFlags()),
	CustomHelpTemplate: commandHelpTemplate,
	Action:             echoAction,
}

func echoAction(clicontext *cli.Context) error {
	if kind, err := tuntap.ParseKind(clicontext.String("kind")); err != nil || kind != tuntap.KindTun {
		return errors.New("echo only supports --kind=tun")
	}
	d, cleanup, err := openDevice(clicontext)
	if cleanup != nil {
		defer func() {
			if cErr := cleanup(); cErr != nil {
				logrus.Warnf("cleanup: %v", cErr)
			}
		}()
	}
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return pump(ctx, d, clicontext.Int("mtu"), func(fr tuntap.Frame) error {
		b, ok, err := reply(fr.Payload)
		if err != nil {
			logrus.Debugf("ignoring packet: %v", err)
			return nil
		}
		if !ok {
			return nil
		}
		if _, err := d.WriteFrame(b); err != nil {
			return errors.Wrapf(err, "writing reply to %s", d)
		}
		return nil
	})
}

// reply builds the answer to an IPv4 ICMP echo request or UDP datagram,
// with addresses (and ports) swapped. ok is false for anything else.
func reply(packet []byte) (b []byte, ok bool, err error) {
	pkt := gopacket.NewPacket(packet, layers.LayerTypeIPv4, gopacket.Default)
	if errLayer := pkt.ErrorLayer(); errLayer != nil {
		return nil, false, errLayer.Error()
	}
	ip, isIPv4 := pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !isIPv4 {
		return nil, false, nil
	}
	outIP := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: ip.Protocol,
		SrcIP:    ip.DstIP,
		DstIP:    ip.SrcIP,
	}
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	buf := gopacket.NewSerializeBuffer()
	switch {
	case pkt.Layer(layers.LayerTypeICMPv4) != nil:
		icmp := pkt.Layer(layers.LayerTypeICMPv4).(*layers.ICMPv4)
		if icmp.TypeCode.Type() != layers.ICMPv4TypeEchoRequest {
			return nil, false, nil
		}
		outICMP := &layers.ICMPv4{
			TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoReply, 0),
			Id:       icmp.Id,
			Seq:      icmp.Seq,
		}
		err = gopacket.SerializeLayers(buf, opts, outIP, outICMP, gopacket.Payload(icmp.Payload))
	case pkt.Layer(layers.LayerTypeUDP) != nil:
		udp := pkt.Layer(layers.LayerTypeUDP).(*layers.UDP)
		outUDP := &layers.UDP{SrcPort: udp.DstPort, DstPort: udp.SrcPort}
		if err := outUDP.SetNetworkLayerForChecksum(outIP); err != nil {
			return nil, false, err
		}
		err = gopacket.SerializeLayers(buf, opts, outIP, outUDP, gopacket.Payload(udp.Payload))
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "serializing reply")
	}
	return buf.Bytes(), true, nil
}
