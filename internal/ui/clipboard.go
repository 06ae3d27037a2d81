package ui

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard receives copied values.
type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard writes to the desktop clipboard.
type SystemClipboard struct{}

var initClipboard = sync.OnceValue(clipboard.Init)

// WriteText implements Clipboard.
func (SystemClipboard) WriteText(text string) error {
	if err := initClipboard(); err != nil {
		return fmt.Errorf("clipboard is not available: %w", err)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
