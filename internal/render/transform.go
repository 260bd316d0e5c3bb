package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/scene"
)

// Transform maps scene metres to window pixels.
type Transform struct {
	m     mgl64.Mat3
	scale float64
}

// NewTransform returns the mapping for a window height pixels tall:
// sx = x*scale, sy = height - y*scale.
func NewTransform(height, scale float64) Transform {
	m := mgl64.Translate2D(0, height).Mul3(mgl64.Scale2D(scale, -scale))
	return Transform{m: m, scale: scale}
}

// DefaultTransform uses scene.PixelsPerMeter.
func DefaultTransform(height float64) Transform {
	return NewTransform(height, scene.PixelsPerMeter)
}

func (t Transform) Point(x, y float64) (float64, float64) {
	v := t.m.Mul3x1(mgl64.Vec3{x, y, 1})
	return v[0], v[1]
}

func (t Transform) Length(l float64) float64 { return l * t.scale }

// Rotation converts a counter-clockwise body angle in radians to the
// clockwise degrees a y-down screen expects.
func (t Transform) Rotation(angle float64) float64 {
	return -mgl64.RadToDeg(angle)
}
