package textseg

import "testing"

func TestCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"héllo", 5},
		{"ábc", 3}, // combining accent folds into one cluster
		{"日本語", 3},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChop(t *testing.T) {
	if got := LChop("héllo"); got != "éllo" {
		t.Errorf("LChop(héllo) = %q, want éllo", got)
	}
	if got := RChop("abc"); got != "ab" {
		t.Errorf("RChop(abc) = %q, want ab", got)
	}
	if got := RChop("ab日"); got != "ab" {
		t.Errorf("RChop(ab日) = %q, want ab", got)
	}
	if LChop("") != "" || RChop("") != "" {
		t.Error("chop on empty string must be identity")
	}
	if got := RChop("xá"); got != "x" {
		t.Errorf("RChop must drop the whole cluster, got %q", got)
	}
}

func TestAt(t *testing.T) {
	s := "abc"
	tests := []struct {
		i    int
		want string
	}{
		{0, "a"}, {1, "b"}, {2, "c"},
		{-1, "c"}, {-2, "b"}, {-3, "a"},
		{3, ""}, {-4, ""},
	}
	for _, tt := range tests {
		if got := At(s, tt.i); got != tt.want {
			t.Errorf("At(%q, %d) = %q, want %q", s, tt.i, got, tt.want)
		}
	}
}

func TestPointerWalk(t *testing.T) {
	s := "a日c"
	p := Left()
	var seen []string
	for {
		g := GraphemeAt(s, p)
		if g == "" {
			break
		}
		seen = append(seen, g)
		next, ok := Next(s, p)
		if !ok {
			t.Fatal("Next failed before right end")
		}
		p = next
	}
	if p != Right(s) {
		t.Errorf("walk ended at %d, want %d", p, Right(s))
	}
	if len(seen) != 3 || seen[0] != "a" || seen[1] != "日" || seen[2] != "c" {
		t.Errorf("walk saw %q", seen)
	}

	// Walk back.
	for i := len(seen) - 1; i >= 0; i-- {
		prev, ok := Prev(s, p)
		if !ok {
			t.Fatal("Prev failed before left end")
		}
		p = prev
		if g := GraphemeAt(s, p); g != seen[i] {
			t.Errorf("backward walk at %d saw %q, want %q", i, g, seen[i])
		}
	}
	if _, ok := Prev(s, p); ok {
		t.Error("Prev at left end must report !ok")
	}
	if _, ok := Next(s, Right(s)); ok {
		t.Error("Next at right end must report !ok")
	}
}

func TestPointerAtAndBetween(t *testing.T) {
	s := "héllo"
	p := PointerAt(s, 2)
	if got := Between(s, Left(), p); got != "hé" {
		t.Errorf("Between = %q, want hé", got)
	}
	if got := Between(s, p, Right(s)); got != "llo" {
		t.Errorf("Between = %q, want llo", got)
	}
	// Swapped arguments are tolerated.
	if got := Between(s, Right(s), p); got != "llo" {
		t.Errorf("Between swapped = %q, want llo", got)
	}
	if got := PointerAt(s, 99); got != Right(s) {
		t.Errorf("PointerAt past end = %d, want %d", got, Right(s))
	}
}

func TestIsPrintable(t *testing.T) {
	tests := []struct {
		g    string
		want bool
	}{
		{"a", true},
		{" ", true},
		{"é", true},
		{"日", true},
		{"\t", false},
		{"\x01", false},
		{"\x7f", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPrintable(tt.g); got != tt.want {
			t.Errorf("IsPrintable(%q) = %v, want %v", tt.g, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	if !Equal("abc", "abc") || Equal("abc", "Abc") {
		t.Error("Equal is case-sensitive")
	}
	if !EqualFold("YeS", "yes") {
		t.Error("EqualFold must ignore case")
	}
}
