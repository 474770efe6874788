// Package engine is the pure edit engine: a closed command set and a
// side-effect-free state transformer over Edition/Selection states
// plus a history zipper. It performs no I/O; the input loop owns all
// commands with control-flow or terminal effects.
package engine

import (
	"github.com/xonecas/lined/internal/term"
	"github.com/xonecas/lined/internal/textseg"
)

// Op enumerates the editor commands.
type Op int

const (
	OpNop Op = iota
	OpChar
	OpBackwardDeleteChar
	OpForwardDeleteChar
	OpBeginningOfLine
	OpEndOfLine
	OpComplete
	OpKillLine
	OpAcceptLine
	OpBackwardDeleteWord
	OpForwardDeleteWord
	OpHistoryNext
	OpHistoryPrevious
	OpBreak
	OpClearScreen
	OpInsert // reserved: mapped from the Insert key but has no effect
	OpRefresh
	OpBackwardChar
	OpForwardChar
	OpSetMark
	OpYank
	OpKillRingSave
)

// Command pairs an Op with its grapheme payload (OpChar only).
type Command struct {
	Op       Op
	Grapheme string
}

// Char builds an insert command for one grapheme.
func Char(g string) Command { return Command{Op: OpChar, Grapheme: g} }

// ctrlCommands is the control-byte binding table.
//
// Two bindings look backwards on purpose: C-n moves the cursor
// backward and C-p forward, inverted from the readline convention.
// This matches the behavior the editor has always shipped with and is
// kept verbatim.
var ctrlCommands = map[byte]Op{
	0x00: OpSetMark,            // C-@
	0x01: OpBeginningOfLine,    // C-a
	0x04: OpBreak,              // C-d
	0x05: OpEndOfLine,          // C-e
	0x09: OpComplete,           // C-i / Tab
	0x0a: OpAcceptLine,         // C-j
	0x0b: OpKillLine,           // C-k
	0x0c: OpClearScreen,        // C-l
	0x0d: OpAcceptLine,         // C-m / Enter
	0x0e: OpBackwardChar,       // C-n (historical inversion)
	0x10: OpForwardChar,        // C-p (historical inversion)
	0x12: OpRefresh,            // C-r
	0x17: OpKillRingSave,       // C-w
	0x19: OpYank,               // C-y
	0x7f: OpBackwardDeleteChar, // C-? / Backspace
}

// CommandFor maps a key event to a command. Unbound keys map to OpNop.
func CommandFor(k term.Key) Command {
	switch k.Kind {
	case term.KindUp:
		return Command{Op: OpHistoryPrevious}
	case term.KindDown:
		return Command{Op: OpHistoryNext}
	case term.KindLeft:
		return Command{Op: OpBackwardChar}
	case term.KindRight:
		return Command{Op: OpForwardChar}
	case term.KindHome:
		return Command{Op: OpBeginningOfLine}
	case term.KindEnd:
		return Command{Op: OpEndOfLine}
	case term.KindInsert:
		return Command{Op: OpInsert}
	case term.KindDelete:
		return Command{Op: OpForwardDeleteChar}
	case term.KindCtrl:
		if op, ok := ctrlCommands[k.Byte]; ok {
			return Command{Op: op}
		}
		return Command{Op: OpNop}
	case term.KindRune:
		g := string(k.Rune)
		if textseg.IsPrintable(g) {
			return Char(g)
		}
		return Command{Op: OpNop}
	default:
		return Command{Op: OpNop}
	}
}
