package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

var (
	Background = color.RGBA{0, 0, 0, 255}
	StaticFill = color.RGBA{255, 0, 0, 255}
)

var namedColors = map[string]color.RGBA{
	"black":  {0, 0, 0, 255},
	"white":  {255, 255, 255, 255},
	"red":    StaticFill,
	"green":  {0, 255, 0, 255},
	"blue":   {0, 0, 255, 255},
	"yellow": {255, 255, 0, 255},
	"cyan":   {0, 255, 255, 255},
	"gray":   {128, 128, 128, 255},
}

// Sprite is a box on screen. X and Y are its centre in pixels and Rotation
// is clockwise degrees about that centre.
type Sprite struct {
	Name     string
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64
	Color    color.RGBA
}

// Sprites holds one sprite per scene body, in declaration order.
type Sprites struct {
	tf    Transform
	items []Sprite
	index map[string]int
}

func NewSprites(sc *scene.Scene, height float64) *Sprites {
	s := &Sprites{
		tf:    DefaultTransform(height),
		items: make([]Sprite, len(sc.Bodies)),
		index: make(map[string]int, len(sc.Bodies)),
	}
	for i, b := range sc.Bodies {
		fill := StaticFill
		if b.Kind == scene.Dynamic {
			fill = ParseColor(b.Color, namedColors["white"])
		}
		x, y := s.tf.Point(b.X, b.Y)
		s.items[i] = Sprite{
			Name:     b.Name,
			X:        x,
			Y:        y,
			Width:    s.tf.Length(b.Width),
			Height:   s.tf.Length(b.Height),
			Rotation: s.tf.Rotation(b.Angle()),
			Color:    fill,
		}
		s.index[b.Name] = i
	}
	return s
}

// Sync moves every sprite to its body's pose in f. Bodies missing from f
// keep their last pose.
func (s *Sprites) Sync(f dynamo.Frame) {
	for _, b := range f.Bodies {
		i, ok := s.index[b.Name]
		if !ok {
			continue
		}
		s.items[i].X, s.items[i].Y = s.tf.Point(b.X, b.Y)
		s.items[i].Rotation = s.tf.Rotation(b.Angle)
	}
}

func (s *Sprites) Items() []Sprite { return s.items }

func (s *Sprites) Get(name string) (Sprite, bool) {
	i, ok := s.index[name]
	if !ok {
		return Sprite{}, false
	}
	return s.items[i], true
}

// ParseColor accepts a colour name or "#rrggbb", falling back to def.
func ParseColor(name string, def color.RGBA) color.RGBA {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := namedColors[name]; ok {
		return c
	}
	if len(name) == 7 && name[0] == '#' {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
		}
	}
	return def
}
