//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package input

import (
	"context"
	"errors"
)

var errUnsupported = errors.New("interactive controls are not supported on this platform")

// TTY is unavailable on this platform.
type TTY struct{}

// OpenTTY always fails on this platform.
func OpenTTY() (*TTY, error) {
	return nil, errUnsupported
}

// Close implements io.Closer.
func (t *TTY) Close() error { return nil }

// Pending implements Source.
func (t *TTY) Pending() (bool, error) { return false, errUnsupported }

// WaitByte implements Source.
func (t *TTY) WaitByte(context.Context) (byte, error) { return 0, errUnsupported }
