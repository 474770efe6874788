// Package render draws the prompt and edit buffer onto a wrapping
// terminal. It keeps a tiny diff state — the grapheme length of the
// last frame and the row height from the caret back to the top of the
// prompt — and every draw starts by rewinding exactly that height.
// The engine knows nothing about terminals; this package knows nothing
// about keys.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/lined/internal/engine"
	"github.com/xonecas/lined/internal/textseg"
	"github.com/xonecas/lined/style"
)

// MapText transforms user text before it is composed for display.
// The prompt is never mapped.
type MapText func(string) string

// MaskChar replaces every grapheme with the fixed mask g.
func MaskChar(g string) MapText {
	return func(s string) string {
		return strings.Repeat(g, textseg.Count(s))
	}
}

// Clear displays the text as typed.
var Clear MapText = func(s string) string { return s }

// Empty hides the text entirely.
var Empty MapText = func(string) string { return "" }

// State caches the metrics of the last drawn frame.
type State struct {
	// Length is the grapheme count of the prepared prompt+buffer,
	// used to pad over stale trailing characters on the next draw.
	Length int
	// HeightBefore is the row offset from the caret back up to the
	// top of the prompt; a correct redraw always rewinds this first.
	HeightBefore int
}

// Renderer writes frames to w. The column width is re-queried on every
// draw so live resizes are tolerated.
type Renderer struct {
	w       io.Writer
	columns func() int
}

// New creates a renderer over w.
func New(w io.Writer, columns func() int) *Renderer {
	return &Renderer{w: w, columns: columns}
}

func (r *Renderer) cols() int {
	c := r.columns()
	if c <= 0 {
		return 80
	}
	return c
}

// height is the row offset of the last cell of an n-grapheme text.
func height(cols, n int) int {
	if n == 0 {
		return 0
	}
	return (n - 1) / cols
}

// beginningOfLine moves up n rows to column 0. The previous-line
// sequence is emitted once per row rather than with a count parameter;
// not every terminal honors the parameterized form.
func beginningOfLine(n int) string {
	if n == 0 {
		return "\r"
	}
	return strings.Repeat(ansi.CursorPreviousLine(1), n)
}

func isNewline(g string) bool {
	return g == "\n" || g == "\r\n"
}

// prepare replaces every embedded newline with enough spaces to pad to
// the end of the current columns-wide row, so stale characters from a
// prior frame on the same physical row are always overwritten. Returns
// the transformed text and its grapheme length.
func prepare(t style.Text, cols int) (style.Text, int) {
	out := make(style.Text, 0, len(t))
	count := 0
	var sb strings.Builder
	for _, it := range t {
		if !it.IsText() {
			out = append(out, it)
			continue
		}
		sb.Reset()
		textseg.Each(it.Str, func(g string) {
			if isNewline(g) {
				pad := cols - count%cols
				sb.WriteString(strings.Repeat(" ", pad))
				count += pad
				return
			}
			sb.WriteString(g)
			count++
		})
		out = append(out, style.T(sb.String()))
	}
	return out, count
}

// compose builds prompt ++ Reset ++ rest.
func compose(prompt style.Text, rest ...style.Item) style.Text {
	out := make(style.Text, 0, len(prompt)+1+len(rest))
	out = append(out, prompt...)
	out = append(out, style.C(style.Reset))
	out = append(out, rest...)
	return out
}

// Draw renders one frame and leaves the terminal cursor at the caret.
// prev must be the state returned by the previous draw, or the zero
// State for the first frame after the prompt row was entered.
func (r *Renderer) Draw(prev State, prompt style.Text, st engine.State, mask MapText) (State, error) {
	if mask == nil {
		mask = Clear
	}
	cols := r.cols()

	var beforeStyled, afterStyled []style.Item
	newlineFix := false
	if st.Selecting() {
		text, mark, cursor := st.Selection()
		mn, mx := mark, cursor
		if mn > mx {
			mn, mx = mx, mn
		}
		head := mask(textseg.Between(text, textseg.Left(), mn))
		sel := mask(textseg.Between(text, mn, mx))
		tail := mask(textseg.Between(text, mx, textseg.Right(text)))
		if cursor < mark {
			// Caret sits at the low end: the selection belongs to the
			// after side so the split point stays at the caret.
			beforeStyled = []style.Item{style.T(head)}
			afterStyled = []style.Item{style.C(style.Underline), style.T(sel), style.C(style.Reset), style.T(tail)}
		} else {
			beforeStyled = []style.Item{style.T(head), style.C(style.Underline), style.T(sel), style.C(style.Reset)}
			afterStyled = []style.Item{style.T(tail)}
		}
		if p, ok := textseg.Prev(text, cursor); ok && isNewline(mask(textseg.GraphemeAt(text, p))) {
			newlineFix = true
		}
	} else {
		before, after := st.Edition()
		mb, ma := mask(before), mask(after)
		beforeStyled = []style.Item{style.T(mb)}
		afterStyled = []style.Item{style.T(ma)}
		if isNewline(textseg.At(mb, -1)) {
			newlineFix = true
		}
	}

	printedBefore, nBefore := prepare(compose(prompt, beforeStyled...), cols)
	printedTotal, nTotal := prepare(compose(prompt, append(append([]style.Item{}, beforeStyled...), afterStyled...)...), cols)

	next := State{Length: nTotal, HeightBefore: height(cols, nBefore)}

	eraseLen := nTotal
	if pad := prev.Length - nTotal; pad > 0 {
		printedTotal = printedTotal.Append(style.T(strings.Repeat(" ", pad)))
		eraseLen += pad
	}

	var buf strings.Builder
	buf.WriteString(beginningOfLine(prev.HeightBefore))
	buf.WriteString(printedTotal.String())
	buf.WriteString(beginningOfLine(height(cols, eraseLen)))
	buf.WriteString(printedBefore.String())
	if newlineFix {
		// A caret right after a newline would be shown at the far end
		// of the prior row on most terminals; move it onto a fresh row.
		buf.WriteString("\r\n")
		next.HeightBefore++
	}
	_, err := io.WriteString(r.w, buf.String())
	return next, err
}

// LastDraw renders the final frame on accept or break and drops to a
// fresh line. No editing happens after it.
func (r *Renderer) LastDraw(prev State, prompt style.Text, input string, mask MapText) error {
	if mask == nil {
		mask = Clear
	}
	printed, _ := prepare(compose(prompt, style.T(mask(input))), r.cols())

	var buf strings.Builder
	buf.WriteString(beginningOfLine(prev.HeightBefore))
	buf.WriteString(printed.String())
	buf.WriteString("\r\n")
	_, err := io.WriteString(r.w, buf.String())
	return err
}

// DrawWords lays completion candidates out in left-to-right columns.
func (r *Renderer) DrawWords(words []string) error {
	cols := r.cols()
	maxw := 0
	for _, w := range words {
		if wd := textseg.Width(w); wd > maxw {
			maxw = wd
		}
	}
	width := maxw + 1
	columns := cols / width
	if columns < 1 {
		columns = 1
	}
	colWidth := cols / columns

	var buf strings.Builder
	col := 0
	justBroke := true
	for _, w := range words {
		buf.WriteString(w)
		if pad := colWidth - textseg.Width(w); pad > 0 {
			buf.WriteString(strings.Repeat(" ", pad))
		}
		col++
		justBroke = false
		if col == columns {
			buf.WriteString("\r\n")
			col = 0
			justBroke = true
		}
	}
	if !justBroke {
		buf.WriteString("\r\n")
	}
	_, err := io.WriteString(r.w, buf.String())
	return err
}
