//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package input

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollSliceMs bounds how long a blocking read waits before re-checking ctx.
const pollSliceMs = 50

// TTY is the controlling terminal in non-canonical, no-echo mode. Signal
// keys keep working so Ctrl-C still interrupts the process.
type TTY struct {
	file    *os.File
	fd      int
	saved   *unix.Termios
	setMode func(fd int, mode *unix.Termios) error
}

func setTermios(fd int, mode *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, mode)
}

// OpenTTY opens /dev/tty and switches it to character-at-a-time input.
// Close restores the previous mode.
func OpenTTY() (*TTY, error) {
	file, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		_ = file.Close()
		return nil, fmt.Errorf("control channel is not a terminal")
	}
	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to read terminal mode: %w", err)
	}
	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := setTermios(fd, &raw); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to set terminal mode: %w", err)
	}
	return &TTY{file: file, fd: fd, saved: saved, setMode: setTermios}, nil
}

// Close restores the saved terminal mode and releases the device. The device
// is closed even when the restore fails.
func (t *TTY) Close() error {
	restoreErr := t.setMode(t.fd, t.saved)
	closeErr := t.file.Close()
	if restoreErr != nil {
		return fmt.Errorf("failed to restore terminal mode: %w", restoreErr)
	}
	return closeErr
}

// Pending implements Source.
func (t *TTY) Pending() (bool, error) {
	return t.poll(0)
}

// WaitByte implements Source. It waits in short poll slices so a cancelled
// ctx is noticed even when no key is ever pressed.
func (t *TTY) WaitByte(ctx context.Context) (byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ready, err := t.poll(pollSliceMs)
		if err != nil {
			return 0, err
		}
		if !ready {
			continue
		}
		var buf [1]byte
		n, err := unix.Read(t.fd, buf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, fmt.Errorf("failed to read terminal: %w", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

func (t *TTY) poll(timeoutMs int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMs)
		if err == unix.EINTR {
			if timeoutMs == 0 {
				continue
			}
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to poll terminal: %w", err)
		}
		return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0, nil
	}
}
