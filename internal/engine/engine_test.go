package engine

import (
	"testing"

	"github.com/xonecas/lined/internal/textseg"
)

func edition(before, after string) State {
	return State{before: before, after: after}
}

func TestNopIdentity(t *testing.T) {
	clip := &Cell{}
	states := []State{
		{},
		edition("abc", "def"),
		Update(edition("ab", "cd"), clip, Command{Op: OpSetMark}),
	}
	for i, s := range states {
		if got := Update(s, clip, Command{Op: OpNop}); !got.Eq(s) {
			t.Errorf("state %d: Nop changed the state", i)
		}
	}
}

func TestCharInsertion(t *testing.T) {
	clip := &Cell{}
	s := edition("ab", "cd")
	s = Update(s, clip, Char("x"))
	if s.AllInput() != "abxcd" {
		t.Errorf("AllInput = %q, want abxcd", s.AllInput())
	}
	b, a := s.Edition()
	if b != "abx" || a != "cd" {
		t.Errorf("split = (%q, %q), want (abx, cd)", b, a)
	}
}

func TestHomeEnd(t *testing.T) {
	clip := &Cell{}
	s := edition("abc", "def")

	home := Update(s, clip, Command{Op: OpBeginningOfLine})
	if b, a := home.Edition(); b != "" || a != "abcdef" {
		t.Errorf("home split = (%q, %q)", b, a)
	}
	end := Update(s, clip, Command{Op: OpEndOfLine})
	if b, a := end.Edition(); b != "abcdef" || a != "" {
		t.Errorf("end split = (%q, %q)", b, a)
	}
	if home.AllInput() != s.AllInput() || end.AllInput() != s.AllInput() {
		t.Error("home/end must preserve the buffer contents")
	}
}

func TestDeleteAtEdges(t *testing.T) {
	clip := &Cell{}
	s := edition("", "abc")
	if got := Update(s, clip, Command{Op: OpBackwardDeleteChar}); !got.Eq(s) {
		t.Error("backspace at home must be identity")
	}
	s = edition("abc", "")
	if got := Update(s, clip, Command{Op: OpForwardDeleteChar}); !got.Eq(s) {
		t.Error("delete at end must be identity")
	}
}

func TestDeleteChars(t *testing.T) {
	clip := &Cell{}
	s := edition("ab", "cd")
	if got := Update(s, clip, Command{Op: OpBackwardDeleteChar}); got.AllInput() != "acd" {
		t.Errorf("backspace: %q", got.AllInput())
	}
	if got := Update(s, clip, Command{Op: OpForwardDeleteChar}); got.AllInput() != "abd" {
		t.Errorf("delete: %q", got.AllInput())
	}
	// Whole clusters go at once.
	s = edition("xé", "")
	if got := Update(s, clip, Command{Op: OpBackwardDeleteChar}); got.AllInput() != "x" {
		t.Errorf("backspace on cluster: %q", got.AllInput())
	}
}

func TestKillLine(t *testing.T) {
	clip := &Cell{}
	s := Update(edition("keep", "gone"), clip, Command{Op: OpKillLine})
	if b, a := s.Edition(); b != "keep" || a != "" {
		t.Errorf("kill line split = (%q, %q)", b, a)
	}
}

func TestHistoryZipperRoundTrip(t *testing.T) {
	clip := &Cell{}
	s := New([]string{"prev1", "prev2"})
	s = Update(s, clip, Char("d"))
	s = Update(s, clip, Char("r"))

	up := Update(s, clip, Command{Op: OpHistoryPrevious})
	if b, a := up.Edition(); b != "prev1" || a != "" {
		t.Fatalf("after up: (%q, %q)", b, a)
	}
	up2 := Update(up, clip, Command{Op: OpHistoryPrevious})
	if b, _ := up2.Edition(); b != "prev2" {
		t.Fatalf("after up up: %q", b)
	}

	// Down, down restores the timeline: prev1 then the typed line.
	down := Update(up2, clip, Command{Op: OpHistoryNext})
	if b, _ := down.Edition(); b != "prev1" {
		t.Fatalf("after down: %q", b)
	}
	down2 := Update(down, clip, Command{Op: OpHistoryNext})
	if got := down2.AllInput(); got != "dr" {
		t.Fatalf("after down down: %q", got)
	}
	if got := Update(down2, clip, Command{Op: OpHistoryNext}); !got.Eq(down2) {
		t.Error("down at the newest entry must be identity")
	}
	if got := Update(up2, clip, Command{Op: OpHistoryPrevious}); !got.Eq(up2) {
		t.Error("up at the oldest entry must be identity")
	}
}

func TestSelectionCutAndYank(t *testing.T) {
	for n := 0; n <= 3; n++ {
		clip := &Cell{}
		s := edition("ab", "cde")
		s = Update(s, clip, Command{Op: OpSetMark})
		for i := 0; i < n; i++ {
			s = Update(s, clip, Command{Op: OpForwardChar})
		}
		s = Update(s, clip, Command{Op: OpKillRingSave})

		wantCut := "cde"[:n]
		wantAfter := "cde"[n:]
		if clip.Get() != wantCut {
			t.Errorf("n=%d: clipboard = %q, want %q", n, clip.Get(), wantCut)
		}
		if b, a := s.Edition(); b != "ab" || a != wantAfter {
			t.Errorf("n=%d: split = (%q, %q), want (ab, %q)", n, b, a, wantAfter)
		}

		// Yank restores the original contents.
		s = Update(s, clip, Command{Op: OpYank})
		if got := s.AllInput(); got != "abcde" {
			t.Errorf("n=%d: after yank AllInput = %q", n, got)
		}
	}
}

func TestSelectionCursorBeforeMark(t *testing.T) {
	clip := &Cell{}
	s := edition("abc", "de")
	s = Update(s, clip, Command{Op: OpSetMark})
	s = Update(s, clip, Command{Op: OpBackwardChar})
	s = Update(s, clip, Command{Op: OpBackwardChar})
	s = Update(s, clip, Command{Op: OpKillRingSave})
	if clip.Get() != "bc" {
		t.Errorf("clipboard = %q, want bc", clip.Get())
	}
	if got := s.AllInput(); got != "ade" {
		t.Errorf("buffer = %q, want ade", got)
	}
}

func TestSelectionHomeEndMoves(t *testing.T) {
	clip := &Cell{}
	s := edition("ab", "cd")
	s = Update(s, clip, Command{Op: OpSetMark})
	s = Update(s, clip, Command{Op: OpEndOfLine})
	_, _, cursor := s.Selection()
	if cursor != textseg.Right("abcd") {
		t.Errorf("cursor = %d, want right end", cursor)
	}
	s = Update(s, clip, Command{Op: OpBeginningOfLine})
	_, _, cursor = s.Selection()
	if cursor != textseg.Left() {
		t.Errorf("cursor = %d, want left end", cursor)
	}
	// Moves at the ends are identities.
	if got := Update(s, clip, Command{Op: OpBackwardChar}); !got.Eq(s) {
		t.Error("backward at left end must be identity")
	}
}

func TestSelectionOtherCommandResets(t *testing.T) {
	clip := &Cell{}
	s := edition("ab", "cd")
	s = Update(s, clip, Command{Op: OpSetMark})
	s = Update(s, clip, Command{Op: OpForwardChar})
	// Char is not honored in selection mode: reset to the cursor, then
	// insert. The selection itself is kept verbatim in the buffer.
	s = Update(s, clip, Char("x"))
	if s.Selecting() {
		t.Fatal("char must leave selection mode")
	}
	if got := s.AllInput(); got != "abcxd" {
		t.Errorf("buffer = %q, want abcxd", got)
	}
}

func TestResetIdempotent(t *testing.T) {
	clip := &Cell{}
	ed := edition("ab", "cd")
	if got := ed.Reset(); !got.Eq(ed) {
		t.Error("reset on an edition must be identity")
	}
	sel := Update(ed, clip, Command{Op: OpSetMark})
	once := sel.Reset()
	twice := once.Reset()
	if !once.Eq(twice) {
		t.Error("reset must be idempotent")
	}
	if b, a := once.Edition(); b != "ab" || a != "cd" {
		t.Errorf("reset split = (%q, %q), want (ab, cd)", b, a)
	}
}

func TestWordDeletes(t *testing.T) {
	clip := &Cell{}
	tests := []struct {
		before, after string
		op            Op
		wantB, wantA  string
	}{
		{"foo bar ", "x", OpBackwardDeleteWord, "foo ", "x"},
		{"foo", "", OpBackwardDeleteWord, "", ""},
		{"", "  foo bar", OpForwardDeleteWord, "", " bar"},
		{"", "", OpForwardDeleteWord, "", ""},
	}
	for _, tt := range tests {
		s := Update(edition(tt.before, tt.after), clip, Command{Op: tt.op})
		if b, a := s.Edition(); b != tt.wantB || a != tt.wantA {
			t.Errorf("(%q,%q) op %d: got (%q, %q), want (%q, %q)",
				tt.before, tt.after, tt.op, b, a, tt.wantB, tt.wantA)
		}
	}
}
