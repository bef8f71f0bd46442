//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package term

// MakeRaw is not supported on this platform.
func MakeRaw(fd int) (*RawMode, error) {
	return nil, ErrNotTerminal
}
