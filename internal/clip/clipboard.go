// Package clip copies text to the system clipboard.
package clip

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("clipboard not available on this system")

// Copier puts text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// System uses the platform clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows API).
type System struct{}

func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory keeps the last copied text; used where no clipboard exists.
type Memory struct {
	Text string
}

func (m *Memory) Copy(text string) error {
	m.Text = text
	return nil
}
