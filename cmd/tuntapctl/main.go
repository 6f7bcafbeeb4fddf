package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	debug := false
	app := cli.NewApp()
	app.Name = "tuntapctl"
	app.Usage = "create TUN/TAP interfaces and look at what flows through them"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "debug mode",
			EnvVars:     []string{"TUNTAP_DEBUG"},
			Destination: &debug,
		},
	}
	app.Commands = []*cli.Command{
		&openCommand,
		&dumpCommand,
		&echoCommand,
	}
	app.Before = func(clicontext *cli.Context) error {
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		if debug {
			fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
