// Package console turns raw terminal input into key events for headless runs.
// Terminals report characters rather than press/release transitions, so every
// key is delivered as a pulse: pressed on the first byte, held while bytes keep
// arriving (terminal auto-repeat) and released once the pulse expires.
package console

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"golang.org/x/term"
)

const (
	defaultPulse        = 180 * time.Millisecond
	defaultReleaseEvery = 20 * time.Millisecond
	defaultLookStep     = float32(3)

	byteCtrlC     = 3
	byteBackspace = 8
	byteTab       = 9
	byteLF        = 10
	byteCR        = 13
	byteEsc       = 27
	byteDelete    = 127
)

// KeySink receives the key transitions decoded from the terminal.
// input.InputTracker satisfies it.
type KeySink interface {
	AddKey(state common.KeyState)
	RemoveKey(state common.KeyState)
}

// Console reads a terminal and reports keys to a KeySink.
// Modifier state is derived from the input itself: an upper-case letter holds Shift,
// a control byte holds Ctrl and an ESC-prefixed letter holds Alt, each for one pulse.
type Console interface {
	input.ModifierSource

	// Start reads input until the reader is exhausted, a quit sequence arrives or ctx is cancelled, reporting
	// decoded keys to sink. A terminal on stdin is switched to raw mode for the duration
	// and restored on return. Keys still held when Start returns stay held until
	// ReleaseExpired or ReleaseAll.
	//
	// Parameters:
	//   - ctx: cancels the release loop and stops reading after the next byte
	//   - sink: the receiver of decoded key transitions
	//
	// Returns:
	//   - error: nil sink, raw mode or read failure; nil on EOF or cancellation
	Start(ctx context.Context, sink KeySink) error

	// ReleaseExpired releases every key whose pulse ended at or before now.
	// Start calls it periodically; it is exported for deterministic driving.
	//
	// Parameters:
	//   - now: the current time
	ReleaseExpired(now time.Time)

	// ReleaseAll releases every held key immediately.
	ReleaseAll()

	// Output wraps w so that lines end in "\r\n" while Start holds the terminal in raw mode,
	// where a bare "\n" does not return the cursor to column 0. Pass it as the log output
	// of headless runs.
	//
	// Parameters:
	//   - w: the underlying writer, typically os.Stderr
	//
	// Returns:
	//   - io.Writer: the wrapping writer
	Output(w io.Writer) io.Writer
}

// console is the implementation of the Console interface.
type console struct {
	mu *sync.Mutex

	in   io.Reader
	sink KeySink
	now  func() time.Time

	pulse        time.Duration
	releaseEvery time.Duration
	lookStep     float32

	onLook func(dx, dy float32)
	onQuit func()

	// quitting is set by a quit sequence and ends Start's read loop.
	quitting bool
	raw      atomic.Bool

	held       map[common.KeyCode]heldKey
	shiftUntil time.Time
	ctrlUntil  time.Time
	altUntil   time.Time
}

type heldKey struct {
	state common.KeyState
	until time.Time
}

var _ Console = &console{}

// NewConsole creates a Console. Reads os.Stdin unless WithReader is given.
// The console can serve as the tracker's ModifierSource before Start is called.
//
// Parameters:
//   - options: functional options to configure the console
//
// Returns:
//   - Console: the configured console
func NewConsole(options ...ConsoleBuilderOption) Console {
	c := &console{
		mu:           &sync.Mutex{},
		in:           os.Stdin,
		now:          time.Now,
		pulse:        defaultPulse,
		releaseEvery: defaultReleaseEvery,
		lookStep:     defaultLookStep,
		held:         make(map[common.KeyCode]heldKey),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *console) Start(ctx context.Context, sink KeySink) error {
	if sink == nil {
		return errors.New("console: nil key sink")
	}
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()

	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("set terminal raw mode: %w", err)
		}
		c.raw.Store(true)
		defer func() {
			c.raw.Store(false)
			_ = term.Restore(fd, oldState)
			fmt.Print("\r\n")
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	released := make(chan struct{})
	go func() {
		defer close(released)
		c.releaseLoop(ctx)
	}()
	defer func() {
		cancel()
		<-released
	}()

	slog.Debug("console input started", "pulse", c.pulse)
	reader := bufio.NewReader(c.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		b, err := reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		c.handleByte(reader, b)
		if c.quitting {
			return nil
		}
	}
}

func (c *console) releaseLoop(ctx context.Context) {
	ticker := time.NewTicker(c.releaseEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.ReleaseExpired(c.now())
		}
	}
}

// handleByte decodes one input byte, reading the rest of an escape sequence from reader.
func (c *console) handleByte(reader *bufio.Reader, b byte) {
	switch {
	case b == byteCtrlC:
		c.quit()
	case b == byteEsc:
		c.handleEscape(reader)
	case b == byteTab:
		c.press(common.KeyTab, 0)
	case b == byteCR || b == byteLF:
		c.press(common.KeyEnter, 0)
	case b == byteBackspace || b == byteDelete:
		c.press(common.KeyBackspace, 0)
	case b >= 1 && b <= 26:
		// Ctrl+letter arrives as the letter's position in the alphabet
		c.holdModifier(&c.ctrlUntil)
		c.press(common.KeyA+common.KeyCode(b-1), 0)
	case b >= 'a' && b <= 'z':
		c.press(common.KeyCode(b-'a'+'A'), rune(b))
	case b >= 'A' && b <= 'Z':
		c.holdModifier(&c.shiftUntil)
		c.press(common.KeyCode(b), rune(b))
	case b >= '0' && b <= '9', b == ' ':
		c.press(common.KeyCode(b), rune(b))
	}
}

// handleEscape decodes CSI arrow/navigation sequences and Alt+key. A lone ESC quits.
func (c *console) handleEscape(reader *bufio.Reader) {
	if reader.Buffered() == 0 {
		c.quit()
		return
	}
	next, err := reader.ReadByte()
	if err != nil {
		return
	}
	if next != '[' {
		c.holdModifier(&c.altUntil)
		c.handleByte(reader, next)
		return
	}
	code, err := reader.ReadByte()
	if err != nil {
		return
	}
	switch code {
	case 'A':
		c.press(common.KeyUp, 0)
		c.look(0, -c.lookStep)
	case 'B':
		c.press(common.KeyDown, 0)
		c.look(0, c.lookStep)
	case 'C':
		c.press(common.KeyRight, 0)
		c.look(c.lookStep, 0)
	case 'D':
		c.press(common.KeyLeft, 0)
		c.look(-c.lookStep, 0)
	case 'H':
		c.press(common.KeyHome, 0)
	case 'F':
		c.press(common.KeyEnd, 0)
	case '5', '6':
		if tilde, err := reader.ReadByte(); err != nil || tilde != '~' {
			return
		}
		if code == '5' {
			c.press(common.KeyPageUp, 0)
		} else {
			c.press(common.KeyPageDown, 0)
		}
	}
}

// press reports a key down on the first byte of a pulse and extends the pulse on repeats.
func (c *console) press(code common.KeyCode, char rune) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := common.KeyState{Code: code, Char: char}
	if _, ok := c.held[code]; !ok {
		c.sink.AddKey(state)
	}
	c.held[code] = heldKey{state: state, until: c.now().Add(c.pulse)}
}

func (c *console) holdModifier(until *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*until = c.now().Add(c.pulse)
}

func (c *console) look(dx, dy float32) {
	if c.onLook != nil {
		c.onLook(dx, dy)
	}
}

func (c *console) quit() {
	slog.Debug("console quit requested")
	c.quitting = true
	if c.onQuit != nil {
		c.onQuit()
	}
}

func (c *console) ReleaseExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for code, h := range c.held {
		if !now.Before(h.until) {
			c.sink.RemoveKey(h.state)
			delete(c.held, code)
		}
	}
}

func (c *console) ReleaseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for code, h := range c.held {
		c.sink.RemoveKey(h.state)
		delete(c.held, code)
	}
	c.shiftUntil, c.ctrlUntil, c.altUntil = time.Time{}, time.Time{}, time.Time{}
}

func (c *console) IsShiftHeld() bool {
	return c.modifierHeld(&c.shiftUntil)
}

func (c *console) IsCtrlHeld() bool {
	return c.modifierHeld(&c.ctrlUntil)
}

func (c *console) IsAltHeld() bool {
	return c.modifierHeld(&c.altUntil)
}

func (c *console) modifierHeld(until *time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Before(*until)
}

func (c *console) Output(w io.Writer) io.Writer {
	return &rawWriter{c: c, w: w}
}

// rawWriter translates line endings while its console has the terminal in raw mode.
type rawWriter struct {
	c *console
	w io.Writer
}

func (rw *rawWriter) Write(p []byte) (int, error) {
	if !rw.c.raw.Load() || bytes.IndexByte(p, '\n') < 0 {
		return rw.w.Write(p)
	}
	if _, err := rw.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
