package images

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

type scaleKey struct {
	seq  uint64
	src  image.Rectangle
	w, h int
}

// ScaleCache keeps recently scaled copies of capture buffers so a static
// scene is not resampled on every frame.
type ScaleCache struct {
	entries *lru.Cache[scaleKey, *image.RGBA]
}

// NewScaleCache returns a cache holding up to size scaled images.
func NewScaleCache(size int) *ScaleCache {
	if size < 1 {
		size = 1
	}
	c, _ := lru.New[scaleKey, *image.RGBA](size)
	return &ScaleCache{entries: c}
}

// Scaled returns the sr part of src resampled to w x h. seq identifies src;
// two images with the same seq are assumed identical.
func (c *ScaleCache) Scaled(seq uint64, src image.Image, sr image.Rectangle, w, h int) *image.RGBA {
	key := scaleKey{seq: seq, src: sr, w: w, h: h}
	if img, ok := c.entries.Get(key); ok {
		return img
	}
	img := Scale(src, sr, w, h)
	c.entries.Add(key, img)
	return img
}

// Purge drops every cached image.
func (c *ScaleCache) Purge() { c.entries.Purge() }

// Len is the number of cached images.
func (c *ScaleCache) Len() int { return c.entries.Len() }
