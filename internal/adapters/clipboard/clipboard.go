package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/iandelaney/youtran/internal/ports"
)

// ErrEmptyText is returned when asked to copy nothing
var ErrEmptyText = errors.New("nothing to copy")

// ErrUnsupported is returned when no clipboard utility is available
var ErrUnsupported = errors.New("clipboard not supported on this system")

// System writes to the operating system clipboard
type System struct{}

// New returns the system clipboard
func New() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found
func (System) Available() bool {
	return !clipboard.Unsupported
}

func (s System) WriteAll(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	if !s.Available() {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// ReadAll returns the clipboard contents
func (s System) ReadAll() (string, error) {
	if !s.Available() {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

var _ ports.Clipboard = System{}
