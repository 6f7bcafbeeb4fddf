//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package tuntap

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrorKind classifies failures reported by the OS.
type ErrorKind int

const (
	// KindOther is an unclassified OS failure, passed through unmodified.
	KindOther ErrorKind = iota
	// KindNotFound means the device node or the clone device is missing,
	// usually because the kernel module or driver is not loaded.
	KindNotFound
	// KindPermissionDenied means the caller lacks the privilege to create or bind the interface.
	KindPermissionDenied
	// KindAlreadyInUse means the requested index is bound by another handle.
	KindAlreadyInUse
	// KindWouldBlock means a non-blocking handle has no packet queued (or no space).
	KindWouldBlock
	// KindClosed means the handle was already released.
	KindClosed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindAlreadyInUse:
		return "already in use"
	case KindWouldBlock:
		return "would block"
	case KindClosed:
		return "use of closed device"
	default:
		return "other"
	}
}

var (
	ErrNotFound         = errors.New("device not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyInUse     = errors.New("device is already in use")
	ErrWouldBlock       = errors.New("operation would block")
	ErrClosed           = errors.New("use of closed device")
	ErrUnsupported      = errors.New("tun/tap devices are unsupported on this platform")
)

// Error is returned by Open, Read and Write. Err holds the underlying cause,
// typically a unix.Errno.
type Error struct {
	Op   string
	Path string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrNotFound) and friends match on Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrPermissionDenied:
		return e.Kind == KindPermissionDenied
	case ErrAlreadyInUse:
		return e.Kind == KindAlreadyInUse
	case ErrWouldBlock:
		return e.Kind == KindWouldBlock
	case ErrClosed:
		return e.Kind == KindClosed
	}
	return false
}

// Errno returns the raw OS error code, if any.
func (e *Error) Errno() (unix.Errno, bool) {
	var errno unix.Errno
	if errors.As(e.Err, &errno) {
		return errno, true
	}
	return 0, false
}

// KindOf returns the ErrorKind of the first *Error in err's chain.
// Errors that carry no classification are KindOther.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

func classifyErrno(errno unix.Errno) ErrorKind {
	switch errno {
	case unix.ENOENT, unix.ENXIO, unix.ENODEV:
		return KindNotFound
	case unix.EPERM, unix.EACCES:
		return KindPermissionDenied
	case unix.EBUSY, unix.EEXIST:
		return KindAlreadyInUse
	case unix.EAGAIN:
		return KindWouldBlock
	}
	return KindOther
}

// wrapErr classifies err (nil stays nil).
func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	kind := KindOther
	var errno unix.Errno
	if errors.As(err, &errno) {
		kind = classifyErrno(errno)
	}
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

func closedErr(op, path string) error {
	return &Error{Op: op, Path: path, Kind: KindClosed, Err: ErrClosed}
}
