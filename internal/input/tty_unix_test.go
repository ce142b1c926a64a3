//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package input

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func newPipeTTY(t *testing.T, setMode func(int, *unix.Termios) error) (*TTY, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() {
		_ = w.Close()
	})
	return &TTY{file: r, fd: int(r.Fd()), saved: &unix.Termios{Lflag: unix.ICANON | unix.ECHO}, setMode: setMode}, w
}

func TestCloseRestoresSavedMode(t *testing.T) {
	var restored *unix.Termios
	tty, _ := newPipeTTY(t, func(_ int, mode *unix.Termios) error {
		restored = mode
		return nil
	})
	saved := tty.saved

	if err := tty.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if restored != saved {
		t.Fatalf("expected saved mode to be restored")
	}
	if err := tty.file.Close(); err == nil {
		t.Fatalf("expected device to be closed already")
	}
}

func TestCloseReleasesDeviceWhenRestoreFails(t *testing.T) {
	restoreErr := errors.New("ioctl failed")
	calls := 0
	tty, _ := newPipeTTY(t, func(int, *unix.Termios) error {
		calls++
		return restoreErr
	})

	err := tty.Close()
	if !errors.Is(err, restoreErr) {
		t.Fatalf("expected restore error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one restore attempt, got %d", calls)
	}
	if err := tty.file.Close(); err == nil {
		t.Fatalf("expected device to be closed despite restore failure")
	}
}

func TestWaitByteReadsAndObservesCancel(t *testing.T) {
	tty, w := newPipeTTY(t, func(int, *unix.Termios) error { return nil })
	t.Cleanup(func() {
		_ = tty.Close()
	})

	pending, err := tty.Pending()
	if err != nil || pending {
		t.Fatalf("expected nothing pending, got %v, %v", pending, err)
	}
	if _, err := w.Write([]byte("]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := tty.WaitByte(context.Background())
	if err != nil || b != ']' {
		t.Fatalf("expected ']', got %q, %v", b, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := tty.WaitByte(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
