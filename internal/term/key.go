package term

import (
	"bufio"
	"unicode/utf8"
)

// Kind classifies a decoded key event.
type Kind int

const (
	// KindRune is a printable key carrying its rune.
	KindRune Kind = iota
	// KindCtrl is a control byte: 0x00-0x1f or DEL (0x7f). Enter, Tab
	// and Backspace arrive here as C-m, C-i and C-? respectively.
	KindCtrl
	KindUp
	KindDown
	KindLeft
	KindRight
	KindHome
	KindEnd
	KindInsert
	KindDelete
	// KindIgnore is an escape sequence we do not handle.
	KindIgnore
)

// Key is one decoded key event.
type Key struct {
	Kind Kind
	Rune rune // valid for KindRune
	Byte byte // valid for KindCtrl
}

// Ctrl builds a control key from its letter, e.g. Ctrl('a') for C-a.
// Pass 0x7f for C-? and 0 for C-@.
func Ctrl(c byte) Key {
	if c == 0x7f || c == 0 {
		return Key{Kind: KindCtrl, Byte: c}
	}
	return Key{Kind: KindCtrl, Byte: c & 0x1f}
}

// Rune builds a printable key.
func Rune(r rune) Key { return Key{Kind: KindRune, Rune: r} }

// ReadKey decodes one key event from r. It understands UTF-8 runes,
// control bytes, and the common CSI/SS3 sequences for arrows, Home,
// End, Insert and Delete. Unknown escape sequences decode to
// KindIgnore rather than an error.
func ReadKey(r *bufio.Reader) (Key, error) {
	c, _, err := r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	switch {
	case c == 0x1b:
		return readEscape(r)
	case c < 0x20 || c == 0x7f:
		return Key{Kind: KindCtrl, Byte: byte(c)}, nil
	case c == utf8.RuneError:
		return Key{Kind: KindIgnore}, nil
	default:
		return Key{Kind: KindRune, Rune: c}, nil
	}
}

func readEscape(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch b {
	case '[':
		return readCSI(r)
	case 'O':
		// SS3 variants emitted by some terminals in application mode.
		f, err := r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		switch f {
		case 'A':
			return Key{Kind: KindUp}, nil
		case 'B':
			return Key{Kind: KindDown}, nil
		case 'C':
			return Key{Kind: KindRight}, nil
		case 'D':
			return Key{Kind: KindLeft}, nil
		case 'H':
			return Key{Kind: KindHome}, nil
		case 'F':
			return Key{Kind: KindEnd}, nil
		}
		return Key{Kind: KindIgnore}, nil
	default:
		// Bare ESC or an alt-modified key; neither is bound.
		return Key{Kind: KindIgnore}, nil
	}
}

func readCSI(r *bufio.Reader) (Key, error) {
	// Collect parameter bytes up to the final byte (0x40-0x7e).
	var params []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if b >= 0x40 && b <= 0x7e {
			return csiKey(b, params), nil
		}
		params = append(params, b)
		if len(params) > 16 {
			return Key{Kind: KindIgnore}, nil
		}
	}
}

func csiKey(final byte, params []byte) Key {
	switch final {
	case 'A':
		return Key{Kind: KindUp}
	case 'B':
		return Key{Kind: KindDown}
	case 'C':
		return Key{Kind: KindRight}
	case 'D':
		return Key{Kind: KindLeft}
	case 'H':
		return Key{Kind: KindHome}
	case 'F':
		return Key{Kind: KindEnd}
	case '~':
		switch string(params) {
		case "1", "7":
			return Key{Kind: KindHome}
		case "4", "8":
			return Key{Kind: KindEnd}
		case "2":
			return Key{Kind: KindInsert}
		case "3":
			return Key{Kind: KindDelete}
		}
	}
	return Key{Kind: KindIgnore}
}
