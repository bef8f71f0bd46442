package term

import "github.com/pkg/errors"

// ErrNotTerminal is returned when raw mode is requested on something that
// is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// RawMode holds the terminal state to restore after raw input.
type RawMode struct {
	fd      int
	restore func() error
}

// Restore puts the terminal back into the state it had before MakeRaw.
func (m *RawMode) Restore() error {
	if m == nil || m.restore == nil {
		return nil
	}
	return errors.Wrapf(m.restore(), "restoring terminal %d", m.fd)
}
