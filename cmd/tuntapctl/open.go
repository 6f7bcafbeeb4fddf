package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var openCommand = cli.Command{
	Name:               "open",
	Usage:              "Create an interface and hold it open until interrupted",
	ArgsUsage:          "[flags]",
	Flags:              deviceFlags(),
	Description:        formatFlags(deviceFlags()),
	CustomHelpTemplate: commandHelpTemplate,
	Action:             openAction,
}

func openAction(clicontext *cli.Context) error {
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
	fmt.Fprintln(clicontext.App.Writer, d.Name())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	logrus.Debugf("releasing %s", d.Name())
	return nil
}
