package engine

import (
	"testing"

	"github.com/xonecas/lined/internal/term"
)

func TestCommandForSpecialKeys(t *testing.T) {
	tests := []struct {
		key  term.Key
		want Op
	}{
		{term.Key{Kind: term.KindUp}, OpHistoryPrevious},
		{term.Key{Kind: term.KindDown}, OpHistoryNext},
		{term.Key{Kind: term.KindLeft}, OpBackwardChar},
		{term.Key{Kind: term.KindRight}, OpForwardChar},
		{term.Key{Kind: term.KindHome}, OpBeginningOfLine},
		{term.Key{Kind: term.KindEnd}, OpEndOfLine},
		{term.Key{Kind: term.KindInsert}, OpInsert},
		{term.Key{Kind: term.KindDelete}, OpForwardDeleteChar},
		{term.Key{Kind: term.KindIgnore}, OpNop},
	}
	for _, tt := range tests {
		if got := CommandFor(tt.key); got.Op != tt.want {
			t.Errorf("CommandFor(%+v) = %d, want %d", tt.key, got.Op, tt.want)
		}
	}
}

func TestCommandForControls(t *testing.T) {
	tests := []struct {
		b    byte
		want Op
	}{
		{0x00, OpSetMark},
		{0x01, OpBeginningOfLine},
		{0x04, OpBreak},
		{0x05, OpEndOfLine},
		{0x09, OpComplete},
		{0x0a, OpAcceptLine},
		{0x0b, OpKillLine},
		{0x0c, OpClearScreen},
		{0x0d, OpAcceptLine},
		{0x0e, OpBackwardChar}, // historical inversion
		{0x10, OpForwardChar},  // historical inversion
		{0x12, OpRefresh},
		{0x17, OpKillRingSave},
		{0x19, OpYank},
		{0x7f, OpBackwardDeleteChar},
		{0x02, OpNop}, // C-b unbound
		{0x08, OpNop}, // C-h unbound
	}
	for _, tt := range tests {
		got := CommandFor(term.Key{Kind: term.KindCtrl, Byte: tt.b})
		if got.Op != tt.want {
			t.Errorf("ctrl %#x = %d, want %d", tt.b, got.Op, tt.want)
		}
	}
}

func TestCommandForRunes(t *testing.T) {
	got := CommandFor(term.Rune('x'))
	if got.Op != OpChar || got.Grapheme != "x" {
		t.Errorf("rune x = %+v", got)
	}
	got = CommandFor(term.Rune('日'))
	if got.Op != OpChar || got.Grapheme != "日" {
		t.Errorf("rune 日 = %+v", got)
	}
}
