package common

import (
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Seq returns a function that calls fns in order and stops at the first error.
func Seq(fns []func() error) func() error {
	return func() error {
		for _, fn := range fns {
			if err := fn(); err != nil {
				return err
			}
		}
		return nil
	}
}

// Reverse is Seq in reverse order, for unwinding cleanups.
func Reverse(fns []func() error) func() error {
	rev := make([]func() error, 0, len(fns))
	for i := len(fns) - 1; i >= 0; i-- {
		rev = append(rev, fns[i])
	}
	return Seq(rev)
}

// Execs runs cmds one after another, sending their output to o.
func Execs(o io.Writer, env []string, cmds [][]string) error {
	for _, cmd := range cmds {
		var args []string
		if len(cmd) > 1 {
			args = cmd[1:]
		}
		x := exec.Command(cmd[0], args...)
		x.Stdin = nil
		x.Stdout = o
		x.Stderr = o
		x.Env = env
		logrus.Debugf("executing %v", cmd)
		if err := x.Run(); err != nil {
			return errors.Wrapf(err, "executing %q", strings.Join(cmd, " "))
		}
	}
	return nil
}
