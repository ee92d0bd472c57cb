package export

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 40), B: 90, A: 255})
		}
	}
	return img
}

func newTestExporter(t *testing.T, format string) *FileExporter {
	t.Helper()
	e, err := NewFileExporter(nil, FileOptions{Dir: t.TempDir(), Format: format})
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	e.newID = func() string { return "abcd1234" }
	return e
}

func TestDefaultName(t *testing.T) {
	e := newTestExporter(t, "JPG")
	assert.Equal(t, "screenshot-20240309-140507-abcd1234.jpg", filepath.Base(e.DefaultName()))
}

func TestExport_AllFormats(t *testing.T) {
	for _, f := range Formats {
		t.Run(f, func(t *testing.T) {
			e := newTestExporter(t, "png")
			target := filepath.Join(e.opts.Dir, "nested", "out."+f)
			res, err := e.Export(testImage(), target)
			require.NoError(t, err)
			assert.Equal(t, target, res.Path)
			assert.Equal(t, 8, res.Width)
			assert.Equal(t, 6, res.Height)

			st, err := os.Stat(target)
			require.NoError(t, err)
			assert.Equal(t, res.Size, st.Size())

			back, err := imaging.Open(target)
			require.NoError(t, err)
			assert.Equal(t, image.Pt(8, 6), back.Bounds().Size())
		})
	}
}

func TestExport_DefaultTarget(t *testing.T) {
	e := newTestExporter(t, "png")
	res, err := e.Export(testImage(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.opts.Dir, "screenshot-20240309-140507-abcd1234.png"), res.Path)
	assert.Contains(t, res.String(), "8x6")
}

func TestExport_Errors(t *testing.T) {
	e := newTestExporter(t, "png")
	_, err := e.Export(testImage(), filepath.Join(e.opts.Dir, "out.webp"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = e.Export(image.NewNRGBA(image.Rectangle{}), "")
	assert.ErrorIs(t, err, ErrEncode)

	_, err = NewFileExporter(nil, FileOptions{Format: "psd"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestResultString(t *testing.T) {
	r := Result{Path: "a.png", Size: 1500000, Width: 10, Height: 20}
	assert.Equal(t, "a.png (10x20, 1.5 MB)", r.String())
}

func TestClipboard_PutImage(t *testing.T) {
	var inits, writes int
	var last []byte
	c := &Clipboard{
		init:  func() error { inits++; return nil },
		write: func(data []byte) { writes++; last = data },
	}
	require.NoError(t, c.PutImage(testImage()))
	require.NoError(t, c.PutImage(testImage()))
	assert.Equal(t, 1, inits)
	assert.Equal(t, 2, writes)
	assert.Equal(t, []byte("\x89PNG"), last[:4])
}

func TestClipboard_InitFailure(t *testing.T) {
	c := &Clipboard{
		init:  func() error { return errors.New("no display") },
		write: func([]byte) { t.Fatal("write after failed init") },
	}
	assert.ErrorIs(t, c.PutImage(testImage()), ErrPlatform)
	assert.ErrorIs(t, c.PutImage(testImage()), ErrPlatform)
}
