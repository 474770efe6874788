// Package style models prompt text as a flat sequence of style
// directives and literal fragments. The renderer turns directives into
// SGR escape sequences; non-tty output strips them entirely.
package style

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Code is a terminal style directive.
type Code int

const (
	// codeNone marks an Item carrying literal text instead of a directive.
	codeNone Code = iota
	Reset
	Bold
	Faint
	Italic
	Underline
	Blink
	Reverse
)

// sgr maps a directive to its escape sequence.
func sgr(c Code) string {
	switch c {
	case Reset:
		return ansi.ResetStyle
	case Bold:
		return "\x1b[1m"
	case Faint:
		return "\x1b[2m"
	case Italic:
		return "\x1b[3m"
	case Underline:
		return "\x1b[4m"
	case Blink:
		return "\x1b[5m"
	case Reverse:
		return "\x1b[7m"
	}
	return ""
}

// Item is one element of a styled text: either a directive or a
// literal fragment, never both.
type Item struct {
	Code Code
	Str  string
}

// T wraps a literal fragment.
func T(s string) Item { return Item{Str: s} }

// C wraps a style directive.
func C(c Code) Item { return Item{Code: c} }

// Text is a styled text: directives interleaved with fragments.
type Text []Item

// IsText reports whether the item is a literal fragment.
func (it Item) IsText() bool { return it.Code == codeNone }

// Plain returns the concatenated fragments with all directives dropped.
func (t Text) Plain() string {
	var sb strings.Builder
	for _, it := range t {
		if it.IsText() {
			sb.WriteString(it.Str)
		}
	}
	return sb.String()
}

// String renders the text with SGR sequences in place of directives.
func (t Text) String() string {
	var sb strings.Builder
	for _, it := range t {
		if it.IsText() {
			sb.WriteString(it.Str)
		} else {
			sb.WriteString(sgr(it.Code))
		}
	}
	return sb.String()
}

// Append returns t with more items appended, leaving t untouched.
func (t Text) Append(items ...Item) Text {
	out := make(Text, 0, len(t)+len(items))
	out = append(out, t...)
	out = append(out, items...)
	return out
}
