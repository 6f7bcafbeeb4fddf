package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rootless-containers/utuntap/pkg/tuntap"
)

func dumpFlags() []cli.Flag {
	return append(deviceFlags(),
		Categorize(&cli.IntFlag{
			Name:  "count",
			Usage: "stop after this many packets (0 = unlimited)",
		}, CategoryOutput),
		Categorize(&cli.BoolFlag{
			Name:  "verbose",
			Usage: "print every decoded layer",
		}, CategoryOutput),
	)
}

var dumpCommand = cli.Command{
	Name:               "dump",
	Usage:              "Create an interface and print the packets it receives",
	ArgsUsage:          "[flags]",
	Flags:              dumpFlags(),
	Description:        formatFlags(dumpFlags()),
	CustomHelpTemplate: commandHelpTemplate,
	Action:             dumpAction,
}

var errDone = errors.New("done")

func dumpAction(clicontext *cli.Context) error {
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

	w := clicontext.App.Writer
	count, limit := 0, clicontext.Int("count")
	verbose := clicontext.Bool("verbose")
	err = pump(ctx, d, clicontext.Int("mtu"), func(fr tuntap.Frame) error {
		printFrame(w, d.Kind(), fr, verbose)
		count++
		if limit > 0 && count >= limit {
			return errDone
		}
		return nil
	})
	if err == errDone {
		return nil
	}
	return err
}

func firstLayer(kind tuntap.Kind, payload []byte) gopacket.LayerType {
	if kind == tuntap.KindTap {
		return layers.LayerTypeEthernet
	}
	if len(payload) > 0 && payload[0]>>4 == 6 {
		return layers.LayerTypeIPv6
	}
	return layers.LayerTypeIPv4
}

func decode(kind tuntap.Kind, payload []byte) gopacket.Packet {
	return gopacket.NewPacket(payload, firstLayer(kind, payload), gopacket.Default)
}

func printFrame(w io.Writer, kind tuntap.Kind, fr tuntap.Frame, verbose bool) {
	pkt := decode(kind, fr.Payload)
	fmt.Fprintf(w, "%s%s\n", framePrefix(fr), summarize(pkt))
	if verbose {
		fmt.Fprint(w, pkt.Dump())
	}
}

func framePrefix(fr tuntap.Frame) string {
	switch fr.Framing {
	case tuntap.FramingPacketInfo:
		return fmt.Sprintf("[flags=0x%04x proto=0x%04x] ", fr.Flags, fr.Protocol)
	case tuntap.FramingAddressFamily:
		return fmt.Sprintf("[af=%d] ", fr.Family)
	}
	return ""
}

// summarize renders one line, e.g. "IPv4 10.10.10.1 > 10.10.10.2 UDP 2424 > 4242 len=10".
func summarize(pkt gopacket.Packet) string {
	var parts []string
	for _, l := range pkt.Layers() {
		switch l := l.(type) {
		case *layers.Ethernet:
			parts = append(parts, fmt.Sprintf("Ethernet %s > %s", l.SrcMAC, l.DstMAC))
		case *layers.ARP:
			parts = append(parts, fmt.Sprintf("ARP op=%d", l.Operation))
		case *layers.IPv4:
			parts = append(parts, fmt.Sprintf("IPv4 %s > %s", l.SrcIP, l.DstIP))
		case *layers.IPv6:
			parts = append(parts, fmt.Sprintf("IPv6 %s > %s", l.SrcIP, l.DstIP))
		case *layers.UDP:
			parts = append(parts, fmt.Sprintf("UDP %d > %d len=%d", l.SrcPort, l.DstPort, len(l.Payload)))
		case *layers.TCP:
			parts = append(parts, fmt.Sprintf("TCP %d > %d len=%d", l.SrcPort, l.DstPort, len(l.Payload)))
		case *layers.ICMPv4:
			parts = append(parts, fmt.Sprintf("ICMPv4 %s id=%d seq=%d", l.TypeCode, l.Id, l.Seq))
		case *layers.ICMPv6:
			parts = append(parts, fmt.Sprintf("ICMPv6 %s", l.TypeCode))
		}
	}
	if errLayer := pkt.ErrorLayer(); errLayer != nil {
		parts = append(parts, fmt.Sprintf("(decode error: %v)", errLayer.Error()))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d bytes", len(pkt.Data()))
	}
	return strings.Join(parts, " ")
}
