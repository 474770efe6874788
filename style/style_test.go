package style

import "testing"

func TestPlainStripsDirectives(t *testing.T) {
	tx := Text{C(Bold), T("hi"), C(Reset), T(" there"), C(Underline)}
	if got := tx.Plain(); got != "hi there" {
		t.Errorf("Plain = %q, want %q", got, "hi there")
	}
}

func TestStringRendersSGR(t *testing.T) {
	tx := Text{C(Bold), T("x"), C(Reset)}
	if got := tx.String(); got != "\x1b[1mx\x1b[m" {
		t.Errorf("String = %q", got)
	}
	tx = Text{C(Underline), T("u")}
	if got := tx.String(); got != "\x1b[4mu" {
		t.Errorf("String = %q", got)
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	base := make(Text, 0, 8)
	base = append(base, T("a"))
	one := base.Append(T("b"))
	two := base.Append(T("c"))
	if one[1].Str != "b" || two[1].Str != "c" {
		t.Error("Append must copy, not share backing storage")
	}
}
