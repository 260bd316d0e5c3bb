package viz

import (
	"math"
	"strings"

	"github.com/san-kum/rigidsim/internal/scene"
)

const blankCell = 0x2800

// dotBits maps a dot inside a 2x4 braille cell to its bit:
//
//	0x01 0x08
//	0x02 0x10
//	0x04 0x20
//	0x40 0x80
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed by dot. A canvas of c columns
// and r rows holds 2c x 4r dots, origin top left.
type Canvas struct {
	Cols, Rows int
	cells      [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, cells: make([][]rune, rows)}
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Cols * 2, c.Rows * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return 0, 0, false
	}
	return row, col, true
}

// Set turns on the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.cells[row][col]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = blankCell
		}
	}
}

// Line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Polygon draws the closed outline through pts.
func (c *Canvas) Polygon(pts [][2]int) {
	for i := range pts {
		j := (i + 1) % len(pts)
		c.Line(pts[i][0], pts[i][1], pts[j][0], pts[j][1])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps scene metres onto canvas dots, y up.
type Viewport struct {
	minX, minY float64
	offX, offY float64
	scale      float64
	dotsH      int
}

// FitScene frames every body of sc, as initially placed, inside a canvas of
// dotsW x dotsH dots, keeping the aspect ratio.
func FitScene(sc *scene.Scene, dotsW, dotsH int) Viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range sc.Bodies {
		for _, p := range corners(b.X, b.Y, b.Width, b.Height, b.Angle()) {
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}
	if math.IsInf(minX, 0) {
		minX, minY, maxX, maxY = -1, -1, 1, 1
	}

	spanX := math.Max(maxX-minX, 1e-6) * 1.1
	spanY := math.Max(maxY-minY, 1e-6) * 1.1
	scale := math.Min(float64(dotsW-1)/spanX, float64(dotsH-1)/spanY)

	return Viewport{
		minX:  minX - spanX*0.05/1.1,
		minY:  minY - spanY*0.05/1.1,
		offX:  (float64(dotsW-1) - spanX*scale) / 2,
		offY:  (float64(dotsH-1) - spanY*scale) / 2,
		scale: scale,
		dotsH: dotsH,
	}
}

func (v Viewport) Project(x, y float64) (int, int) {
	px := v.offX + (x-v.minX)*v.scale
	py := float64(v.dotsH-1) - v.offY - (y-v.minY)*v.scale
	return int(math.Round(px)), int(math.Round(py))
}

// Box draws the outline of a w x h box centred on (x, y), rotated by angle
// radians counter-clockwise.
func (v Viewport) Box(c *Canvas, x, y, w, h, angle float64) {
	cs := corners(x, y, w, h, angle)
	pts := make([][2]int, len(cs))
	for i, p := range cs {
		pts[i][0], pts[i][1] = v.Project(p[0], p[1])
	}
	c.Polygon(pts)
}

func corners(x, y, w, h, angle float64) [4][2]float64 {
	sin, cos := math.Sincos(angle)
	hw, hh := w/2, h/2
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4][2]float64
	for i, p := range local {
		out[i] = [2]float64{x + p[0]*cos - p[1]*sin, y + p[0]*sin + p[1]*cos}
	}
	return out
}
