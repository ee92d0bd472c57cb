package export

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Formats lists the accepted save formats in menu order.
var Formats = []string{"png", "jpg", "gif", "bmp", "tiff"}

// FileOptions configure a FileExporter.
type FileOptions struct {
	Dir         string
	Format      string
	JPEGQuality int
}

// FileExporter encodes images by file extension.
type FileExporter struct {
	logger *slog.Logger
	opts   FileOptions
	now    func() time.Time
	newID  func() string
}

// NewFileExporter validates the default format and returns an exporter.
func NewFileExporter(logger *slog.Logger, opts FileOptions) (*FileExporter, error) {
	opts.Format = strings.TrimPrefix(strings.ToLower(opts.Format), ".")
	if opts.Format == "" {
		opts.Format = "png"
	}
	if _, err := formatOf("x." + opts.Format); err != nil {
		return nil, err
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 95
	}
	return &FileExporter{
		logger: logger,
		opts:   opts,
		now:    time.Now,
		newID:  func() string { return uuid.NewString()[:8] },
	}, nil
}

// DefaultName is screenshot-<yyyymmdd-hhmmss>-<short id>.<ext> in the save
// directory.
func (e *FileExporter) DefaultName() string {
	name := fmt.Sprintf("screenshot-%s-%s.%s", e.now().Format("20060102-150405"), e.newID(), e.opts.Format)
	return filepath.Join(e.opts.Dir, name)
}

// Export encodes img to target, or to DefaultName when target is empty. The
// format follows the target's extension.
func (e *FileExporter) Export(img image.Image, target string) (Result, error) {
	if img == nil || img.Bounds().Empty() {
		return Result{}, fmt.Errorf("%w: empty image", ErrEncode)
	}
	if target == "" {
		target = e.DefaultName()
	}
	format, err := formatOf(target)
	if err != nil {
		return Result{}, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(e.opts.JPEGQuality)); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrEncode, err)
		}
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	b := img.Bounds()
	res := Result{Path: target, Size: int64(buf.Len()), Width: b.Dx(), Height: b.Dy()}
	if e.logger != nil {
		e.logger.Debug("export.written", "path", target, "format", format.String(), "bytes", res.Size)
	}
	return res, nil
}

func formatOf(path string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return f, nil
}
