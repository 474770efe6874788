// Package term is the terminal I/O service: raw-mode acquisition with
// guaranteed release, key decoding over a cancellable stdin reader,
// column queries and screen control. Everything above it talks in Key
// events and styled writes; no escape-sequence knowledge leaks out
// except through the renderer.
package term

import (
	"bufio"
	"fmt"
	"os"

	"github.com/muesli/cancelreader"
	"github.com/rs/zerolog/log"
	xterm "golang.org/x/term"
)

// Terminal owns stdin and stdout for the duration of one read call.
type Terminal struct {
	cr  cancelreader.CancelReader
	br  *bufio.Reader
	out *os.File
}

// Open wraps stdin in a cancellable reader so a blocked key read can
// be released when the session ends.
func Open() (*Terminal, error) {
	cr, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("wrap stdin: %w", err)
	}
	return &Terminal{
		cr:  cr,
		br:  bufio.NewReader(cr),
		out: os.Stdout,
	}, nil
}

// Close cancels any in-flight read and releases the reader.
func (t *Terminal) Close() error {
	t.cr.Cancel()
	return t.cr.Close()
}

// ReadKey blocks for the next decoded key event.
func (t *Terminal) ReadKey() (Key, error) {
	return ReadKey(t.br)
}

// Write sends raw bytes to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Columns reports the current terminal width, re-queried on every call
// so live resizes are picked up. Falls back to 80 when the size cannot
// be determined.
func (t *Terminal) Columns() int {
	w, _, err := xterm.GetSize(int(t.out.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// ClearScreen erases the display and homes the cursor.
func (t *Terminal) ClearScreen() error {
	_, err := t.out.WriteString("\x1b[2J\x1b[H")
	return err
}

// WithRaw runs fn with the terminal in raw mode. The previous mode is
// restored on every exit path, including a panic inside fn.
func (t *Terminal) WithRaw(fn func() error) error {
	fd := int(os.Stdin.Fd())
	old, err := xterm.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() {
		if err := xterm.Restore(fd, old); err != nil {
			log.Error().Err(err).Msg("term: restore failed")
		}
	}()
	return fn()
}

// InputIsTerminal reports whether stdin is attached to a terminal.
func (t *Terminal) InputIsTerminal() bool {
	return xterm.IsTerminal(int(os.Stdin.Fd()))
}

// OutputIsTerminal reports whether stdout is attached to a terminal.
func (t *Terminal) OutputIsTerminal() bool {
	return xterm.IsTerminal(int(t.out.Fd()))
}

// Drain discards any bytes already buffered on stdin. Password prompts
// call this so a paste aimed at an earlier prompt cannot leak into the
// secret.
func (t *Terminal) Drain() error {
	t.br = bufio.NewReader(t.cr)
	return drain(int(os.Stdin.Fd()))
}

// StdinIsTerminal is the package-level check used before a Terminal
// exists, to pick the non-tty fallback path.
func StdinIsTerminal() bool {
	return xterm.IsTerminal(int(os.Stdin.Fd()))
}

// StdoutIsTerminal reports whether stdout is a terminal.
func StdoutIsTerminal() bool {
	return xterm.IsTerminal(int(os.Stdout.Fd()))
}
