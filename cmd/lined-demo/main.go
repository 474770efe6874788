// Command lined-demo is a small note-taking REPL that exercises the
// whole lined surface: editing, history, tab completion over command
// names and note keys, masked password entry and yes/no confirmation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/lined"
	"github.com/xonecas/lined/internal/config"
	"github.com/xonecas/lined/internal/notes"
	"github.com/xonecas/lined/style"
)

var commands = []string{"add", "get", "del", "keys", "lock", "unlock", "help", "quit"}

func main() {
	cfgPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "lined-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	if _, err := config.EnsureDataDir(); err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Logs go to a file: stderr belongs to the terminal while a
	// prompt is live.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.Logger = zerolog.New(logFile).With().Timestamp().Logger()

	store, err := notes.Open(cfg.NotesDB)
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := lined.LoadHistory(cfg.HistoryFile)
	if err != nil {
		log.Error().Err(err).Msg("demo: history load failed")
	}

	r := &repl{
		store:   store,
		cfg:     cfg,
		prompt:  style.Text{style.C(style.Bold), style.T(cfg.Prompt), style.C(style.Reset)},
		history: history,
	}
	err = r.loop()
	if saveErr := lined.SaveHistory(cfg.HistoryFile, r.history); saveErr != nil {
		log.Error().Err(saveErr).Msg("demo: history save failed")
	}
	return err
}

type repl struct {
	store   *notes.Store
	cfg     *config.Config
	prompt  style.Text
	history []string
	passkey string
	locked  bool
}

func (r *repl) loop() error {
	for {
		line, err := lined.ReadLine(r.prompt,
			lined.WithHistory(r.history),
			lined.WithCompleter(r.complete))
		if errors.Is(err, lined.ErrInterrupt) {
			fmt.Println("bye")
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.history = append([]string{line}, r.history...)

		quit, err := r.dispatch(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// complete offers command names for the first word and note keys
// afterwards.
func (r *repl) complete(_ context.Context, before, after string) lined.Completion {
	words := commands
	if strings.ContainsFunc(before, unicode.IsSpace) {
		keys, err := r.store.Keys()
		if err != nil {
			log.Error().Err(err).Msg("demo: completion keys")
			return lined.NoCompletion()
		}
		words = keys
	}
	i := strings.LastIndexFunc(before, unicode.IsSpace)
	return lined.Complete(before[:i+1], before[i+1:], after, words)
}

func (r *repl) dispatch(line string) (quit bool, err error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	if r.locked && cmd != "unlock" && cmd != "quit" && cmd != "help" {
		fmt.Println("locked; use unlock")
		return false, nil
	}

	switch cmd {
	case "help":
		fmt.Println("commands: add <key> <body> | get <key> | del <key> | keys | lock | unlock | quit")
	case "add":
		key, body, ok := strings.Cut(rest, " ")
		if !ok || key == "" {
			fmt.Println("usage: add <key> <body>")
			return false, nil
		}
		if err := r.store.Put(key, body); err != nil {
			return false, err
		}
	case "get":
		if body, ok := r.store.Get(rest); ok {
			fmt.Println(body)
		} else {
			fmt.Printf("no note %q\n", rest)
		}
	case "del":
		sure, err := lined.ReadYesNo(lined.Plain(fmt.Sprintf("delete %q? ", rest)))
		if err != nil && !errors.Is(err, lined.ErrInterrupt) {
			return false, err
		}
		if err == nil && sure {
			if err := r.store.Delete(rest); err != nil {
				return false, err
			}
		}
	case "keys":
		keys, err := r.store.Keys()
		if err != nil {
			return false, err
		}
		for _, k := range keys {
			fmt.Println(k)
		}
	case "lock":
		pw, err := lined.ReadPassword(lined.Plain("passphrase: "), lined.WithMask(r.cfg.MaskOrDefault()))
		if err != nil {
			return false, err
		}
		r.passkey = pw
		r.locked = true
	case "unlock":
		if !r.locked {
			fmt.Println("not locked")
			return false, nil
		}
		pw, err := lined.ReadPassword(lined.Plain("passphrase: "), lined.WithMask(r.cfg.MaskOrDefault()))
		if err != nil {
			return false, err
		}
		if pw == r.passkey {
			r.locked = false
			r.passkey = ""
		} else {
			fmt.Println("wrong passphrase")
		}
	case "quit":
		return true, nil
	default:
		fmt.Printf("unknown command %q; try help\n", cmd)
	}
	return false, nil
}
