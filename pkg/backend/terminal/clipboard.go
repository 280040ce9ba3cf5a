package terminal

import (
	"sync"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Clipboard is the system clipboard. When the system clipboard cannot be
// reached, for example over SSH without a helper, it falls back to an
// in-process buffer.
type Clipboard struct {
	mu       sync.Mutex
	fallback string
	has      bool
}

// Read returns the clipboard content.
func (c *Clipboard) Read() (string, bool) {
	if !clipboard.Unsupported {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text, true
		}
		Logger().Debug("system clipboard read failed", zap.Error(err))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fallback, c.has
}

// Write replaces the clipboard content.
func (c *Clipboard) Write(text string) {
	c.mu.Lock()
	c.fallback, c.has = text, true
	c.mu.Unlock()
	if clipboard.Unsupported {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		Logger().Debug("system clipboard write failed", zap.Error(err))
	}
}
