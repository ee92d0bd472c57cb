package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soocke/snapcrop-go/domain/geometry"
)

var outline = geometry.Rect{Min: geometry.Pt(100, 100), Max: geometry.Pt(300, 250)}

func TestClassifyPoint(t *testing.T) {
	tests := []struct {
		name string
		p    geometry.Point
		want Edge
	}{
		{"top band", geometry.Pt(200, 102), EdgeTop},
		{"bottom band", geometry.Pt(200, 248), EdgeBottom},
		{"left band", geometry.Pt(102, 175), EdgeLeft},
		{"right band", geometry.Pt(298, 175), EdgeRight},
		{"bottom wins bottom-left corner", geometry.Pt(101, 249), EdgeBottom},
		{"top wins top-right corner", geometry.Pt(299, 101), EdgeTop},
		{"core", geometry.Pt(200, 175), EdgeNone},
		{"outside", geometry.Pt(50, 50), EdgeNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPoint(tt.p, outline, DefaultInset))
		})
	}
}

func TestGesture_BeginOnlyOnRing(t *testing.T) {
	var g Gesture
	assert.Equal(t, EdgeRight, g.Begin(geometry.Pt(299, 175), outline, DefaultInset))
	assert.Equal(t, EdgeRight, g.Active())
	g.End()
	assert.Equal(t, EdgeNone, g.Active())

	assert.Equal(t, EdgeNone, g.Begin(geometry.Pt(200, 175), outline, DefaultInset), "core")
	assert.Equal(t, EdgeNone, g.Begin(geometry.Pt(10, 10), outline, DefaultInset), "outside")
}

func TestGesture_ZeroInsetGrabsNothing(t *testing.T) {
	var g Gesture
	for _, p := range []geometry.Point{outline.Min, outline.Max, geometry.Pt(100, 175), geometry.Pt(200, 250)} {
		assert.Equal(t, EdgeNone, g.Begin(p, outline, 0), "point %v", p)
	}
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "top", EdgeTop.String())
	assert.Equal(t, "none", Edge(42).String())
}
