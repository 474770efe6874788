package lined

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// History files are a sequence of lines, each terminated by a single
// NUL byte. NUL never enters the edit buffer (C-@ is the set-mark
// command, not text), so lines may contain anything else, embedded
// newlines included.

// LoadHistory reads a history file. A missing file is an empty
// history, not an error. Empty entries (adjacent NULs) are skipped;
// note the asymmetry with SaveHistory, which writes empty lines
// faithfully — behavior kept from the original format.
func LoadHistory(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load history: %w", err)
	}
	var lines []string
	for _, chunk := range bytes.Split(data, []byte{0}) {
		if len(chunk) == 0 {
			continue
		}
		lines = append(lines, string(chunk))
	}
	log.Debug().Str("path", path).Int("lines", len(lines)).Msg("lined: history loaded")
	return lines, nil
}

// SaveHistory writes the lines, each followed by a NUL, creating the
// parent directory when needed.
func SaveHistory(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte(0)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
