//go:build linux || darwin || freebsd || netbsd || openbsd

package term

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// MakeRaw switches fd to unbuffered, no-echo input. Signal keys keep
// working so Ctrl-C still interrupts the program.
func MakeRaw(fd int) (*RawMode, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, errors.Wrap(ErrNotTerminal, err.Error())
	}

	saved := *termios
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &state); err != nil {
		return nil, errors.Wrap(err, "entering raw mode")
	}

	return &RawMode{
		fd: fd,
		restore: func() error {
			return unix.IoctlSetTermios(fd, ioctlSetTermios, &saved)
		},
	}, nil
}
