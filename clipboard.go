package lined

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/lined/internal/engine"
)

// systemClipboard mirrors the kill ring onto the OS clipboard. The OS
// side is best-effort: on headless systems every call falls back to
// the in-memory cell so editing keeps working.
type systemClipboard struct {
	cell engine.Cell
}

// SystemClipboard returns a Clipboard backed by the OS clipboard, so
// C-w/C-y interoperate with other programs. Pass it to WithClipboard.
func SystemClipboard() Clipboard {
	return &systemClipboard{}
}

func (c *systemClipboard) Set(s string) {
	c.cell.Set(s)
	if err := clipboard.WriteAll(s); err != nil {
		log.Debug().Err(err).Msg("lined: system clipboard write failed")
	}
}

func (c *systemClipboard) Get() string {
	s, err := clipboard.ReadAll()
	if err != nil {
		log.Debug().Err(err).Msg("lined: system clipboard read failed")
		return c.cell.Get()
	}
	return s
}
