// Package testutil gates and serializes tests that create real interfaces.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
)

// LockPath is shared by every test binary in the module, so that tests
// binding the same interface index never overlap.
var LockPath = filepath.Join(os.TempDir(), "utuntap-test.lock")

// RequirePrivileged skips t unless it runs as root and every path exists.
func RequirePrivileged(t testing.TB, paths ...string) {
	t.Helper()
	if os.Geteuid() != 0 {
		t.Skip("requires root")
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Skipf("%s is not available: %v", p, err)
		}
	}
}

// EnsureDeps skips t unless every command is in $PATH.
func EnsureDeps(t testing.TB, deps ...string) {
	t.Helper()
	for _, dep := range deps {
		if _, err := exec.LookPath(dep); err != nil {
			t.Skipf("%q not found: %v", dep, err)
		}
	}
}

// Serial takes the cross-process test lock until t finishes.
func Serial(t testing.TB) {
	t.Helper()
	lock := flock.New(LockPath)
	if err := lock.Lock(); err != nil {
		t.Fatalf("failed to lock %s: %v", LockPath, err)
	}
	t.Cleanup(func() {
		if err := lock.Unlock(); err != nil {
			t.Logf("failed to unlock %s: %v", LockPath, err)
		}
	})
}
