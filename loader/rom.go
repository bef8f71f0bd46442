// Package loader provides CHIP-8 ROM image loading.
package loader

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sarchlab/c8sim/emu"
)

// Program represents a ROM image ready for loading into the emulator's
// memory at emu.ProgramStart.
type Program struct {
	// Name identifies the program, usually the base name of the ROM file.
	Name string
	// Data contains the raw program bytes.
	Data []byte
}

// Size returns the program size in bytes.
func (p *Program) Size() int {
	return len(p.Data)
}

// End returns the first address past the loaded program.
func (p *Program) End() uint16 {
	return uint16(emu.ProgramStart + len(p.Data))
}

// Load reads a raw CHIP-8 ROM image from path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open ROM file")
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat ROM file")
	}

	prog, err := LoadReader(f, info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	prog.Name = filepath.Base(path)

	return prog, nil
}

// LoadReader reads a ROM image of the given size from r. Images larger than
// the program area are rejected before anything is read; fewer bytes than
// announced yield ErrRomReadIncomplete.
func LoadReader(r io.Reader, size int64) (*Program, error) {
	if size > emu.MaxProgramSize {
		return nil, errors.Wrapf(emu.ErrRomTooLarge, "%d bytes > %d bytes available",
			size, emu.MaxProgramSize)
	}
	if size < 0 {
		return nil, errors.Errorf("invalid ROM size %d", size)
	}

	data := make([]byte, size)
	n, err := io.ReadFull(r, data)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.Wrap(err, "failed to read ROM")
	}
	if int64(n) != size {
		return nil, errors.Wrapf(emu.ErrRomReadIncomplete, "read %d bytes, expected %d", n, size)
	}

	return &Program{Data: data}, nil
}

// FromBytes wraps an in-memory program.
func FromBytes(name string, data []byte) (*Program, error) {
	if len(data) > emu.MaxProgramSize {
		return nil, errors.Wrapf(emu.ErrRomTooLarge, "%d bytes > %d bytes available",
			len(data), emu.MaxProgramSize)
	}
	return &Program{Name: name, Data: append([]byte(nil), data...)}, nil
}

// Save writes the program as a raw ROM image.
func (p *Program) Save(path string) error {
	if err := os.WriteFile(path, p.Data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write ROM file")
	}
	return nil
}
