package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/rootless-containers/utuntap/pkg/tuntap"
)

// pollInterval bounds how long a reader waits before rechecking ctx.
const pollInterval = 200 * time.Millisecond

// pump reads units from d and hands each one, split per the device framing,
// to handle. It returns when ctx is done, when handle fails, or on a read error.
func pump(ctx context.Context, d *tuntap.Device, mtu int, handle func(tuntap.Frame) error) error {
	if mtu <= 0 {
		mtu = 65535
	}
	g, ctx := errgroup.WithContext(ctx)
	frames := make(chan tuntap.Frame, 64)
	g.Go(func() error {
		defer close(frames)
		for {
			if ctx.Err() != nil {
				return nil
			}
			ok, err := d.WaitReadable(pollInterval)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			buf := make([]byte, mtu+tuntap.HeaderLen)
			fr, err := d.ReadFrame(buf)
			if tuntap.KindOf(err) == tuntap.KindWouldBlock {
				continue
			}
			if err != nil {
				return errors.Wrapf(err, "reading from %s", d)
			}
			select {
			case frames <- fr:
			case <-ctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		for fr := range frames {
			if err := handle(fr); err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}
