package engine

import (
	"unicode"
	"unicode/utf8"

	"github.com/xonecas/lined/internal/textseg"
)

// Clipboard is the single-entry kill ring. Only OpKillRingSave writes
// it and only OpYank reads it; the cell is caller-visible state that
// may be shared across read calls.
type Clipboard interface {
	Get() string
	Set(string)
}

// Cell is the in-memory Clipboard.
type Cell struct {
	s string
}

func (c *Cell) Get() string  { return c.s }
func (c *Cell) Set(s string) { c.s = s }

// State is the engine state: either an Edition (text split at the
// caret) or a Selection (a mark and a cursor into a frozen text),
// plus the history zipper. The zero value is an empty Edition with no
// history.
type State struct {
	// Edition representation, valid when !selecting.
	before, after string

	// Selection representation, valid when selecting. mark and cursor
	// are pointers into text, which is the buffer frozen at the moment
	// the selection was entered.
	selecting    bool
	text         string
	mark, cursor textseg.Pointer

	// History zipper. past[0] is the most recent prior line; future[0]
	// is what the user navigated away from last.
	past, future []string
}

// New creates the state for a fresh read call: an empty Edition with
// the given history (most recent first) as the past.
func New(history []string) State {
	return State{past: history}
}

// AllInput returns the complete buffer contents.
func (s State) AllInput() string {
	if s.selecting {
		return s.text
	}
	return s.before + s.after
}

// Selecting reports whether a selection is active.
func (s State) Selecting() bool { return s.selecting }

// Edition returns the buffer split at the caret, resetting any active
// selection first.
func (s State) Edition() (before, after string) {
	r := s.Reset()
	return r.before, r.after
}

// Selection returns the frozen text with the mark and cursor pointers.
// Only meaningful while Selecting.
func (s State) Selection() (text string, mark, cursor textseg.Pointer) {
	return s.text, s.mark, s.cursor
}

// Reset collapses a Selection back to an Edition with the caret at the
// cursor and the text kept verbatim. Identity on an Edition; idempotent.
func (s State) Reset() State {
	if !s.selecting {
		return s
	}
	return State{
		before: s.text[:s.cursor],
		after:  s.text[s.cursor:],
		past:   s.past,
		future: s.future,
	}
}

// WithEdition replaces the buffer with a new caret split, keeping the
// history zipper. Used when a completion result rewrites the buffer.
func (s State) WithEdition(before, after string) State {
	r := s.Reset()
	r.before = before
	r.after = after
	return r
}

// Eq compares the buffer-visible parts of two states; the history
// zipper is not compared. The input loop uses it to skip redraws, and
// still keeps the new state, so a zipper-only move (recalling a history
// entry equal to the current line) is not lost.
func (s State) Eq(o State) bool {
	return s.before == o.before && s.after == o.after &&
		s.selecting == o.selecting && s.text == o.text &&
		s.mark == o.mark && s.cursor == o.cursor
}

// Update applies one command and returns the new state. Pure: no I/O,
// no mutation of s. The clipboard cell is the only out-of-state effect:
// only OpKillRingSave writes it and only OpYank reads it.
func Update(s State, clip Clipboard, c Command) State {
	if s.selecting {
		return updateSelection(s, clip, c)
	}
	return updateEdition(s, clip, c)
}

func updateSelection(s State, clip Clipboard, c Command) State {
	switch c.Op {
	case OpNop:
		return s
	case OpForwardChar:
		if p, ok := textseg.Next(s.text, s.cursor); ok {
			s.cursor = p
		}
		return s
	case OpBackwardChar:
		if p, ok := textseg.Prev(s.text, s.cursor); ok {
			s.cursor = p
		}
		return s
	case OpBeginningOfLine:
		s.cursor = textseg.Left()
		return s
	case OpEndOfLine:
		s.cursor = textseg.Right(s.text)
		return s
	case OpKillRingSave:
		mn, mx := s.mark, s.cursor
		if mn > mx {
			mn, mx = mx, mn
		}
		clip.Set(textseg.Between(s.text, mn, mx))
		return State{
			before: s.text[:mn],
			after:  s.text[mx:],
			past:   s.past,
			future: s.future,
		}
	default:
		// Any other command collapses the selection, then applies.
		return updateEdition(s.Reset(), clip, c)
	}
}

func updateEdition(s State, clip Clipboard, c Command) State {
	switch c.Op {
	case OpChar:
		s.before += c.Grapheme
	case OpSetMark:
		text := s.before + s.after
		p := textseg.PointerAt(text, textseg.Count(s.before))
		return State{
			selecting: true,
			text:      text,
			mark:      p,
			cursor:    p,
			past:      s.past,
			future:    s.future,
		}
	case OpYank:
		s.before += clip.Get()
	case OpBackwardDeleteChar:
		s.before = textseg.RChop(s.before)
	case OpForwardDeleteChar:
		s.after = textseg.LChop(s.after)
	case OpBackwardDeleteWord:
		s.before = rchopWord(s.before)
	case OpForwardDeleteWord:
		s.after = lchopWord(s.after)
	case OpBeginningOfLine:
		s.after = s.before + s.after
		s.before = ""
	case OpEndOfLine:
		s.before += s.after
		s.after = ""
	case OpKillLine:
		s.after = ""
	case OpHistoryPrevious:
		if len(s.past) == 0 {
			return s
		}
		line := s.past[0]
		return State{
			before: line,
			past:   s.past[1:],
			future: prepend(s.before+s.after, s.future),
		}
	case OpHistoryNext:
		if len(s.future) == 0 {
			return s
		}
		line := s.future[0]
		return State{
			before: line,
			past:   prepend(s.before+s.after, s.past),
			future: s.future[1:],
		}
	case OpBackwardChar:
		if s.before == "" {
			return s
		}
		g := textseg.At(s.before, -1)
		s.before = textseg.RChop(s.before)
		s.after = g + s.after
	case OpForwardChar:
		if s.after == "" {
			return s
		}
		g := textseg.At(s.after, 0)
		s.after = textseg.LChop(s.after)
		s.before += g
	}
	// Deferred commands (complete, accept, break, clear, refresh) and
	// the reserved Insert are identities here; the input loop owns them.
	return s
}

func prepend(x string, xs []string) []string {
	out := make([]string, 0, len(xs)+1)
	out = append(out, x)
	return append(out, xs...)
}

func isSpaceGrapheme(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return g != "" && unicode.IsSpace(r)
}

// rchopWord removes trailing whitespace and then the word before it.
func rchopWord(s string) string {
	for s != "" && isSpaceGrapheme(textseg.At(s, -1)) {
		s = textseg.RChop(s)
	}
	for s != "" && !isSpaceGrapheme(textseg.At(s, -1)) {
		s = textseg.RChop(s)
	}
	return s
}

// lchopWord removes leading whitespace and then the word after it.
func lchopWord(s string) string {
	for s != "" && isSpaceGrapheme(textseg.At(s, 0)) {
		s = textseg.LChop(s)
	}
	for s != "" && !isSpaceGrapheme(textseg.At(s, 0)) {
		s = textseg.LChop(s)
	}
	return s
}
