package viz

import (
	"math"
	"strings"
)

// Braille cells hold a 2x4 dot grid:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells addressed in dot coordinates. The
// dot size is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

func (c *Canvas) DotsX() int { return c.Width * 2 }
func (c *Canvas) DotsY() int { return c.Height * 4 }

// Set lights the dot at (x, y); out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

// Lit counts lit dots.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - brailleBlank; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

// Line draws a segment with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Plot maps data coordinates onto a canvas with y growing upward.
type Plot struct {
	*Canvas
	MinX, MaxX, MinY, MaxY float64
}

func NewPlot(w, h int, minX, maxX, minY, maxY float64) *Plot {
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	return &Plot{Canvas: NewCanvas(w, h), MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

func (p *Plot) dot(x, y float64) (int, int, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	dx := int(math.Round((x - p.MinX) / (p.MaxX - p.MinX) * float64(p.DotsX()-1)))
	dy := int(math.Round((p.MaxY - y) / (p.MaxY - p.MinY) * float64(p.DotsY()-1)))
	return dx, dy, true
}

func (p *Plot) Point(x, y float64) {
	if dx, dy, ok := p.dot(x, y); ok {
		p.Set(dx, dy)
	}
}

func (p *Plot) Segment(x0, y0, x1, y1 float64) {
	ax, ay, ok0 := p.dot(x0, y0)
	bx, by, ok1 := p.dot(x1, y1)
	if ok0 && ok1 {
		p.Line(ax, ay, bx, by)
	}
}

// Polyline joins consecutive points.
func (p *Plot) Polyline(xs, ys []float64) {
	n := min(len(xs), len(ys))
	for i := 1; i < n; i++ {
		p.Segment(xs[i-1], ys[i-1], xs[i], ys[i])
	}
}
