// Package textseg treats plain strings as sequences of Unicode
// grapheme clusters. All editor positions are expressed as Pointer
// values produced by this package; a Pointer is only meaningful for
// the exact string it was derived from.
package textseg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Pointer is a position inside a specific string, always on a grapheme
// cluster boundary. Pointers into the same string are totally ordered.
type Pointer int

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// LChop drops the first grapheme cluster. Identity on the empty string.
func LChop(s string) string {
	if s == "" {
		return ""
	}
	_, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return rest
}

// RChop drops the last grapheme cluster. Identity on the empty string.
func RChop(s string) string {
	if s == "" {
		return ""
	}
	last := 0
	rem := s
	off := 0
	state := -1
	for rem != "" {
		cluster, rest, _, newState := uniseg.StepString(rem, state)
		last = off
		off += len(cluster)
		rem = rest
		state = newState
	}
	return s[:last]
}

// At returns the grapheme cluster at the signed index i: 0 is the
// first cluster, -1 the last. Out of range yields "".
func At(s string, i int) string {
	if i < 0 {
		i += Count(s)
	}
	if i < 0 {
		return ""
	}
	rem := s
	state := -1
	for rem != "" {
		cluster, rest, _, newState := uniseg.StepString(rem, state)
		if i == 0 {
			return cluster
		}
		i--
		rem = rest
		state = newState
	}
	return ""
}

// Left returns the pointer before the first cluster.
func Left() Pointer { return 0 }

// Right returns the pointer after the last cluster of s.
func Right(s string) Pointer { return Pointer(len(s)) }

// PointerAt returns the pointer sitting after n grapheme clusters,
// clamped to the ends of s.
func PointerAt(s string, n int) Pointer {
	if n <= 0 {
		return 0
	}
	off := 0
	rem := s
	state := -1
	for rem != "" && n > 0 {
		cluster, rest, _, newState := uniseg.StepString(rem, state)
		off += len(cluster)
		n--
		rem = rest
		state = newState
	}
	return Pointer(off)
}

// Next moves p one cluster forward. ok is false at the right end.
func Next(s string, p Pointer) (Pointer, bool) {
	if int(p) >= len(s) {
		return p, false
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[p:], -1)
	return p + Pointer(len(cluster)), true
}

// Prev moves p one cluster back. ok is false at the left end.
func Prev(s string, p Pointer) (Pointer, bool) {
	if p <= 0 {
		return p, false
	}
	off := Pointer(0)
	rem := s
	state := -1
	for rem != "" {
		cluster, rest, _, newState := uniseg.StepString(rem, state)
		next := off + Pointer(len(cluster))
		if next >= p {
			return off, true
		}
		off = next
		rem = rest
		state = newState
	}
	return 0, true
}

// Between returns the substring from p to q. Arguments are clamped to
// the string and swapped if out of order.
func Between(s string, p, q Pointer) string {
	p = clamp(s, p)
	q = clamp(s, q)
	if p > q {
		p, q = q, p
	}
	return s[p:q]
}

// GraphemeAt returns the cluster starting at p, or "" at the right end.
func GraphemeAt(s string, p Pointer) string {
	p = clamp(s, p)
	if int(p) >= len(s) {
		return ""
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[p:], -1)
	return cluster
}

func clamp(s string, p Pointer) Pointer {
	if p < 0 {
		return 0
	}
	if int(p) > len(s) {
		return Pointer(len(s))
	}
	return p
}

// Each calls fn for every grapheme cluster of s in order.
func Each(s string, fn func(g string)) {
	rem := s
	state := -1
	for rem != "" {
		cluster, rest, _, newState := uniseg.StepString(rem, state)
		fn(cluster)
		rem = rest
		state = newState
	}
}

// HasPrefix reports whether s begins with prefix.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

// Equal is the case-sensitive comparison.
func Equal(a, b string) bool { return a == b }

// EqualFold is the case-insensitive comparison.
func EqualFold(a, b string) bool { return strings.EqualFold(a, b) }

// IsPrintable reports whether the single grapheme cluster g can be
// inserted into the edit buffer as visible text. Control clusters and
// zero-width junk are rejected; the plain space is accepted.
func IsPrintable(g string) bool {
	r, size := utf8.DecodeRuneInString(g)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return false
	}
	if r == ' ' {
		return true
	}
	if unicode.IsControl(r) {
		return false
	}
	return runewidth.StringWidth(g) > 0
}

// Width returns the terminal cell width of s. Used for laying out
// completion candidates, where cells matter rather than cluster counts.
func Width(s string) int {
	return runewidth.StringWidth(s)
}
