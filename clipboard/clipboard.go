// Package clipboard writes resolved commands to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable means the host refused or lacks clipboard access.
var ErrUnavailable = errors.New("clipboard unavailable")

type Writer interface {
	WriteAll(text string) error
}

// System uses the platform clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows API).
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
