package export

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/disintegration/imaging"
	"golang.design/x/clipboard"
)

// Clipboard puts PNG-encoded images on the system clipboard. The platform
// clipboard is initialised lazily on first use.
type Clipboard struct {
	logger  *slog.Logger
	once    sync.Once
	initErr error
	mu      sync.Mutex

	init  func() error
	write func(data []byte)
}

// NewClipboard returns a sink backed by golang.design/x/clipboard.
func NewClipboard(logger *slog.Logger) *Clipboard {
	return &Clipboard{
		logger: logger,
		init:   clipboard.Init,
		write:  func(data []byte) { clipboard.Write(clipboard.FmtImage, data) },
	}
}

// PutImage encodes img as PNG and writes it to the clipboard.
func (c *Clipboard) PutImage(img image.Image) error {
	c.once.Do(func() { c.initErr = c.init() })
	if c.initErr != nil {
		return fmt.Errorf("%w: %v", ErrPlatform, c.initErr)
	}
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("%w: empty image", ErrEncode)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(buf.Bytes())
	if c.logger != nil {
		c.logger.Debug("clipboard.written", "bytes", buf.Len())
	}
	return nil
}
