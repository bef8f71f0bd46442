package term

import (
	"io"
	"sync"
	"time"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/core"
)

// DefaultHoldTime is how long a key counts as held after its last byte.
// Terminals report no key releases, only auto-repeat.
const DefaultHoldTime = 150 * time.Millisecond

// Input reads key bytes from a terminal and turns them into core events.
// A key stays down while its auto-repeat keeps arriving and is released
// once no byte for it arrived within the hold time.
type Input struct {
	keymap   map[byte]uint8
	holdTime time.Duration
	now      func() time.Time

	mu      sync.Mutex
	pending []byte
	readErr error

	held map[uint8]time.Time
}

// InputOption configures an Input.
type InputOption func(*Input)

// WithKeymap replaces DefaultKeymap.
func WithKeymap(keymap map[byte]uint8) InputOption {
	return func(in *Input) { in.keymap = keymap }
}

// WithHoldTime sets the key hold time.
func WithHoldTime(d time.Duration) InputOption {
	return func(in *Input) { in.holdTime = d }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) InputOption {
	return func(in *Input) { in.now = now }
}

// NewInput creates an Input. Call Start to begin reading from a terminal,
// or Feed to inject bytes directly.
func NewInput(opts ...InputOption) *Input {
	in := &Input{
		keymap:   DefaultKeymap,
		holdTime: DefaultHoldTime,
		now:      time.Now,
		held:     make(map[uint8]time.Time),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Start reads r in a background goroutine until it fails or returns EOF.
func (in *Input) Start(r io.Reader) {
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				in.Feed(buf[:n])
			}
			if err != nil {
				in.mu.Lock()
				if err != io.EOF {
					in.readErr = err
				}
				in.mu.Unlock()
				return
			}
		}
	}()
}

// Feed queues raw bytes as if read from the terminal.
func (in *Input) Feed(b []byte) {
	in.mu.Lock()
	in.pending = append(in.pending, b...)
	in.mu.Unlock()
}

// Poll returns the events for the bytes received since the last call and
// releases keys whose hold time ran out.
func (in *Input) Poll() ([]core.Event, error) {
	in.mu.Lock()
	pending := in.pending
	in.pending = nil
	err := in.readErr
	in.readErr = nil
	in.mu.Unlock()

	now := in.now()
	var events []core.Event

	for _, b := range pending {
		ev, ok := translate(in.keymap, b)
		if !ok {
			continue
		}
		if ev.Kind == core.EventKeyDown {
			_, down := in.held[ev.Key]
			in.held[ev.Key] = now
			if down {
				continue
			}
		}
		events = append(events, ev)
	}

	for key := uint8(0); key < emu.NumKeys; key++ {
		last, down := in.held[key]
		if down && now.Sub(last) >= in.holdTime {
			delete(in.held, key)
			events = append(events, core.Event{Kind: core.EventKeyUp, Key: key})
		}
	}

	return events, err
}
