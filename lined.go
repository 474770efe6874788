// Package lined reads a single logical line of input from a terminal
// with inline editing, a mark/cursor selection backed by a one-slot
// kill ring, history navigation, tab completion that races live
// keystrokes, and masked password entry.
//
// The edit engine is a pure state machine (internal/engine), the
// renderer diffs frames against cached metrics (internal/render) and
// the input loop in this package wires them to the terminal service
// (internal/term). When stdin or stdout is not a terminal the readers
// fall back to plain line input with prompt styles stripped.
package lined

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/xonecas/lined/internal/complete"
	"github.com/xonecas/lined/internal/engine"
	"github.com/xonecas/lined/internal/render"
	"github.com/xonecas/lined/internal/term"
	"github.com/xonecas/lined/style"
)

// ErrInterrupt is returned when the user breaks the read with C-d.
// The terminal is left on a fresh line before it surfaces.
var ErrInterrupt = errors.New("lined: interrupted")

// ErrNotTerminal is returned by ReadPassword when stdio is redirected;
// a masked prompt cannot be honored there.
var ErrNotTerminal = errors.New("lined: not a terminal")

// ErrNoMatch is returned by the keyword readers on the non-tty path
// when the typed line matches no keyword.
var ErrNoMatch = errors.New("lined: no matching keyword")

// Clipboard is the single-entry kill ring shared across read calls.
// KillRingSave (C-w) writes it, Yank (C-y) reads it.
type Clipboard interface {
	Get() string
	Set(string)
}

// NewClipboard returns a fresh in-memory clipboard cell.
func NewClipboard() Clipboard { return &engine.Cell{} }

// globalClipboard is the default cell shared by every call that does
// not pass WithClipboard.
var globalClipboard Clipboard = &engine.Cell{}

// Completion is the outcome of a Completer. Build one with
// NoCompletion, CompleteWith or Possibilities.
type Completion struct {
	kind   complete.Kind
	before string
	after  string
	words  []string
}

// NoCompletion reports that nothing matched.
func NoCompletion() Completion { return Completion{kind: complete.None} }

// CompleteWith replaces the buffer with the given caret split.
func CompleteWith(before, after string) Completion {
	return Completion{kind: complete.With, before: before, after: after}
}

// Possibilities lists the remaining candidates for display.
func Possibilities(words ...string) Completion {
	return Completion{kind: complete.Words, words: words}
}

// Completer computes a completion for the buffer split at the caret.
// It runs concurrently with the next key read; when the user types
// first, ctx is canceled and the completer must return promptly — its
// result is discarded.
type Completer func(ctx context.Context, before, after string) Completion

// Complete extends the typed word against a candidate list: the
// common-prefix convenience most completers are built from. A single
// match is inserted with a trailing space; an advancing common prefix
// is inserted; otherwise the sorted matches come back as Possibilities.
func Complete(before, word, after string, candidates []string) Completion {
	r := complete.Complete(before, word, after, candidates)
	return Completion{kind: r.Kind, before: r.Before, after: r.After, words: r.List}
}

// WordsCompleter builds a Completer that completes the
// whitespace-delimited word left of the caret against a fixed list.
func WordsCompleter(words ...string) Completer {
	return func(_ context.Context, before, after string) Completion {
		i := strings.LastIndexFunc(before, unicode.IsSpace)
		return Complete(before[:i+1], before[i+1:], after, words)
	}
}

// Keyword associates an input word with the value ReadKeyword returns.
type Keyword[V any] struct {
	Word  string
	Value V
}

// Plain wraps an unstyled prompt string.
func Plain(s string) style.Text { return style.Text{style.T(s)} }

type readMode int

const (
	modeLine readMode = iota
	modePassword
	modeKeyword
)

// Option configures a read call.
type Option func(*config)

type config struct {
	history       []string
	completer     Completer
	clipboard     Clipboard
	mask          render.MapText
	caseSensitive bool

	// test seams; nil means the real thing
	tty    tty
	stdin  io.Reader
	stdout io.Writer
}

// WithHistory seeds history navigation, most recent line first.
func WithHistory(lines []string) Option {
	return func(c *config) { c.history = lines }
}

// WithCompleter installs the tab completer.
func WithCompleter(f Completer) Option {
	return func(c *config) { c.completer = f }
}

// WithClipboard overrides the process-wide kill-ring cell.
func WithClipboard(cl Clipboard) Option {
	return func(c *config) { c.clipboard = cl }
}

// WithMask sets the password mask grapheme. ReadPassword defaults
// to "*".
func WithMask(g string) Option {
	return func(c *config) { c.mask = render.MaskChar(g) }
}

// WithMaskClear shows password input as typed.
func WithMaskClear() Option {
	return func(c *config) { c.mask = render.Clear }
}

// WithMaskHidden echoes nothing at all for password input.
func WithMaskHidden() Option {
	return func(c *config) { c.mask = render.Empty }
}

// WithCaseSensitive makes keyword matching case-sensitive.
func WithCaseSensitive() Option {
	return func(c *config) { c.caseSensitive = true }
}

func withTTY(t tty) Option {
	return func(c *config) { c.tty = t }
}

func withStdio(in io.Reader, out io.Writer) Option {
	return func(c *config) { c.stdin = in; c.stdout = out }
}

func newConfig(opts []Option) *config {
	c := &config{
		clipboard: globalClipboard,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// terminal returns the tty to drive, or nil when the interactive path
// cannot be used and the caller must fall back.
func (c *config) terminal() (tty, error) {
	if c.tty != nil {
		if !c.tty.InputIsTerminal() || !c.tty.OutputIsTerminal() {
			return nil, nil
		}
		return c.tty, nil
	}
	if !term.StdinIsTerminal() || !term.StdoutIsTerminal() {
		return nil, nil
	}
	return term.Open()
}

// ownsTTY reports whether the session opened the terminal itself and
// must close it. Injected ttys stay open across calls.
func (c *config) ownsTTY() bool { return c.tty == nil }

// ReadLine reads one line with full editing, history and completion.
// It returns the accepted line (possibly empty) or ErrInterrupt.
func ReadLine(prompt style.Text, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	t, err := cfg.terminal()
	if err != nil {
		return "", err
	}
	if t == nil {
		return fallbackReadLine(cfg, prompt)
	}
	s := newSession(t, cfg, prompt, modeLine)
	return s.runRaw()
}

// ReadPassword reads a secret with masked echo. History and completion
// are disabled (Tab only collapses a selection); editing, selection and
// the kill ring still work underneath the mask. Pending input is
// drained first so a paste aimed at an earlier prompt cannot feed the
// secret.
func ReadPassword(prompt style.Text, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	cfg.history = nil
	cfg.completer = nil
	if cfg.mask == nil {
		cfg.mask = render.MaskChar("*")
	}
	t, err := cfg.terminal()
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", ErrNotTerminal
	}
	if err := t.Drain(); err != nil {
		return "", err
	}
	s := newSession(t, cfg, prompt, modePassword)
	return s.runRaw()
}

// ReadKeyword reads until the buffer matches one of the keywords and
// returns the associated value. Matching is case-insensitive unless
// WithCaseSensitive is given; Enter on a non-matching buffer keeps
// editing. Tab completes a uniquely-prefixed keyword.
func ReadKeyword[V any](prompt style.Text, keywords []Keyword[V], opts ...Option) (V, error) {
	var zero V
	cfg := newConfig(opts)
	cfg.completer = nil
	words := make([]string, len(keywords))
	for i, kw := range keywords {
		words[i] = kw.Word
	}

	t, err := cfg.terminal()
	if err != nil {
		return zero, err
	}
	if t == nil {
		idx, err := fallbackReadKeyword(cfg, prompt, words)
		if err != nil {
			return zero, err
		}
		return keywords[idx].Value, nil
	}
	s := newSession(t, cfg, prompt, modeKeyword)
	s.keywords = words
	if _, err := s.runRaw(); err != nil {
		return zero, err
	}
	return keywords[s.keywordIndex].Value, nil
}

// ReadYesNo asks a yes/no question; it accepts yes/y/no/n in any case.
func ReadYesNo(prompt style.Text, opts ...Option) (bool, error) {
	return ReadKeyword(prompt, []Keyword[bool]{
		{Word: "yes", Value: true},
		{Word: "y", Value: true},
		{Word: "no", Value: false},
		{Word: "n", Value: false},
	}, opts...)
}
