// Package export writes cropped captures to disk or the system clipboard.
package export

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	// ErrEncode wraps image encoding and file write failures.
	ErrEncode = errors.New("export: encode failed")
	// ErrUnsupportedFormat is returned for file extensions without an encoder.
	ErrUnsupportedFormat = errors.New("export: unsupported format")
	// ErrPlatform wraps clipboard failures.
	ErrPlatform = errors.New("export: platform clipboard unavailable")
)

// Result describes a written file.
type Result struct {
	Path   string
	Size   int64
	Width  int
	Height int
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%dx%d, %s)", r.Path, r.Width, r.Height, humanize.Bytes(uint64(r.Size)))
}
