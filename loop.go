package lined

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/lined/internal/complete"
	"github.com/xonecas/lined/internal/engine"
	"github.com/xonecas/lined/internal/render"
	"github.com/xonecas/lined/internal/term"
	"github.com/xonecas/lined/style"
)

// tty is the slice of the terminal service the loop needs. Satisfied
// by *term.Terminal; tests inject a scripted fake.
type tty interface {
	io.Writer
	ReadKey() (term.Key, error)
	Columns() int
	ClearScreen() error
	WithRaw(func() error) error
	Drain() error
	InputIsTerminal() bool
	OutputIsTerminal() bool
	Close() error
}

type keyEvent struct {
	key term.Key
	err error
}

// session drives one read call: strictly draw → read → update → draw,
// except during completion where the completer and the next key read
// run concurrently and whichever finishes first is committed.
type session struct {
	t      tty
	cfg    *config
	prompt style.Text
	mode   readMode

	st   engine.State
	rs   render.State
	rend *render.Renderer

	// keyword mode
	keywords     []string
	keywordIndex int

	// key plumbing: the reader goroutine reads only on request, so no
	// keystroke is consumed that the loop did not ask for.
	keys        chan keyEvent
	req         chan struct{}
	outstanding bool
	pending     *term.Key
}

func newSession(t tty, cfg *config, prompt style.Text, mode readMode) *session {
	return &session{
		t:      t,
		cfg:    cfg,
		prompt: prompt,
		mode:   mode,
		rend:   render.New(t, t.Columns),
		keys:   make(chan keyEvent),
		req:    make(chan struct{}, 1),
	}
}

// runRaw wraps run in the scoped raw mode; the terminal is restored on
// every exit path, accept, break and failure alike.
func (s *session) runRaw() (string, error) {
	if s.cfg.ownsTTY() {
		defer s.t.Close()
	}
	var line string
	err := s.t.WithRaw(func() error {
		var err error
		line, err = s.run()
		return err
	})
	return line, err
}

func (s *session) run() (string, error) {
	done := make(chan struct{})
	defer close(done)
	go s.readLoop(done)

	s.st = engine.New(s.cfg.history)
	s.rs = render.State{}
	if err := s.redraw(); err != nil {
		return "", err
	}

	for {
		k, err := s.nextKey()
		if err != nil {
			return "", err
		}
		cmd := engine.CommandFor(k)
		switch cmd.Op {
		case engine.OpClearScreen:
			if err := s.t.ClearScreen(); err != nil {
				return "", err
			}
			s.rs = render.State{}
			if err := s.redraw(); err != nil {
				return "", err
			}

		case engine.OpRefresh:
			// Recover from an external writer scribbling on our rows.
			if err := s.redraw(); err != nil {
				return "", err
			}

		case engine.OpAcceptLine:
			input := s.st.AllInput()
			if s.mode == modeKeyword {
				idx, ok := s.lookupKeyword(input)
				if !ok {
					continue
				}
				s.keywordIndex = idx
				if err := s.lastDraw(input); err != nil {
					return "", err
				}
				return input, nil
			}
			if err := s.lastDraw(input); err != nil {
				return "", err
			}
			return input, nil

		case engine.OpBreak:
			if err := s.lastDraw(s.st.AllInput()); err != nil {
				return "", err
			}
			return "", ErrInterrupt

		case engine.OpComplete:
			if err := s.complete(); err != nil {
				return "", err
			}

		default:
			next := engine.Update(s.st, s.cfg.clipboard, cmd)
			changed := !next.Eq(s.st)
			s.st = next
			if !changed {
				continue
			}
			if err := s.redraw(); err != nil {
				return "", err
			}
		}
	}
}

// readLoop feeds keys strictly on demand.
func (s *session) readLoop(done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-s.req:
		}
		k, err := s.t.ReadKey()
		select {
		case s.keys <- keyEvent{key: k, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (s *session) request() {
	if s.outstanding {
		return
	}
	s.outstanding = true
	s.req <- struct{}{}
}

func (s *session) nextKey() (term.Key, error) {
	if s.pending != nil {
		k := *s.pending
		s.pending = nil
		return k, nil
	}
	s.request()
	ev := <-s.keys
	s.outstanding = false
	return ev.key, ev.err
}

func (s *session) mask() render.MapText {
	return s.cfg.mask
}

func (s *session) redraw() error {
	rs, err := s.rend.Draw(s.rs, s.prompt, s.st, s.mask())
	if err != nil {
		return err
	}
	s.rs = rs
	return nil
}

func (s *session) lastDraw(input string) error {
	return s.rend.LastDraw(s.rs, s.prompt, input, s.mask())
}

// complete runs the completion protocol: drop any selection, then race
// the completer against the next keystroke. A keystroke that arrives
// first wins — the completer's context is canceled and its result
// dropped; a completer that finishes first has its result applied.
func (s *session) complete() error {
	if next := s.st.Reset(); !next.Eq(s.st) {
		s.st = next
		if err := s.redraw(); err != nil {
			return err
		}
	}
	switch s.mode {
	case modePassword:
		return nil
	case modeKeyword:
		return s.completeKeyword()
	}
	if s.cfg.completer == nil {
		return nil
	}

	before, after := s.st.Edition()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	results := make(chan Completion, 1)
	go func() { results <- s.cfg.completer(ctx, before, after) }()

	s.request()
	select {
	case ev := <-s.keys:
		// The user kept typing: abort the completer, do not wait for
		// it, dispatch the key on the next loop turn.
		s.outstanding = false
		cancel()
		log.Debug().Msg("lined: completion aborted by keystroke")
		if ev.err != nil {
			return ev.err
		}
		s.pending = &ev.key
		return nil

	case res := <-results:
		// The key request stays outstanding; the main loop picks the
		// keystroke up as its next command.
		switch res.kind {
		case complete.None:
			return nil
		case complete.With:
			s.st = s.st.WithEdition(res.before, res.after)
			return s.redraw()
		case complete.Words:
			if _, err := io.WriteString(s.t, "\r\n"); err != nil {
				return err
			}
			if err := s.rend.DrawWords(res.words); err != nil {
				return err
			}
			s.rs = render.State{}
			return s.redraw()
		}
		return nil
	}
}

// completeKeyword fills the buffer when exactly one keyword extends
// the text left of the caret.
func (s *session) completeKeyword() error {
	before, _ := s.st.Edition()
	var match string
	n := 0
	for _, w := range s.keywords {
		if s.hasKeywordPrefix(w, before) {
			match = w
			n++
		}
	}
	if n != 1 {
		return nil
	}
	s.st = s.st.WithEdition(match, "")
	return s.redraw()
}

func (s *session) hasKeywordPrefix(word, prefix string) bool {
	if s.cfg.caseSensitive {
		return strings.HasPrefix(word, prefix)
	}
	return strings.HasPrefix(strings.ToLower(word), strings.ToLower(prefix))
}

func (s *session) lookupKeyword(input string) (int, bool) {
	for i, w := range s.keywords {
		if s.cfg.caseSensitive {
			if input == w {
				return i, true
			}
		} else if strings.EqualFold(input, w) {
			return i, true
		}
	}
	return 0, false
}
