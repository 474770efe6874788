package lined

import (
	"bufio"
	"io"
	"strings"

	"github.com/xonecas/lined/style"
)

// readPlainLine reads up to the next newline, byte by byte so nothing
// beyond the line is consumed from a shared reader.
func readPlainLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimSuffix(sb.String(), "\r"), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
	}
}

// fallbackReadLine is the non-tty path: stripped prompt, one plain
// line.
func fallbackReadLine(cfg *config, prompt style.Text) (string, error) {
	if _, err := io.WriteString(cfg.stdout, prompt.Plain()); err != nil {
		return "", err
	}
	if bw, ok := cfg.stdout.(*bufio.Writer); ok {
		if err := bw.Flush(); err != nil {
			return "", err
		}
	}
	return readPlainLine(cfg.stdin)
}

// fallbackReadKeyword reads one plain line and resolves it against the
// keyword list, or fails with ErrNoMatch.
func fallbackReadKeyword(cfg *config, prompt style.Text, words []string) (int, error) {
	line, err := fallbackReadLine(cfg, prompt)
	if err != nil {
		return 0, err
	}
	for i, w := range words {
		if cfg.caseSensitive {
			if line == w {
				return i, nil
			}
		} else if strings.EqualFold(line, w) {
			return i, nil
		}
	}
	return 0, ErrNoMatch
}
