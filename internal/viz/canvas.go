package viz

import (
	"math"
	"strings"

	"github.com/san-kum/dpend/internal/pendulum"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set turns on the dot at sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels; anything outside is ignored.
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

// Dots calls fn with the sub-pixel coordinates of every set dot, row by
// row.
func (c *Canvas) Dots(fn func(x, y int)) {
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			bits := int(r - 0x2800)
			if bits == 0 {
				continue
			}
			for sy := 0; sy < 4; sy++ {
				for sx := 0; sx < 2; sx++ {
					if bits&pixelMap[sy][sx] != 0 {
						fn(col*2+sx, row*4+sy)
					}
				}
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps plane coordinates onto canvas sub-pixels. The square
// [-Extent, Extent]² is centred on the canvas with y pointing down, the same
// orientation as the simulation.
type Viewport struct {
	Extent float64
	cx, cy int
	scale  float64
}

func NewViewport(c *Canvas, extent float64) Viewport {
	w, h := c.Width*2, c.Height*4
	scale := math.Min(float64(w-1), float64(h-1)) / (2 * extent)
	return Viewport{Extent: extent, cx: w / 2, cy: h / 2, scale: scale}
}

// Project returns the sub-pixel for p. ok is false for non-finite or far
// off-canvas points, which should not be drawn.
func (v Viewport) Project(p pendulum.Position) (x, y int, ok bool) {
	fx, fy := p.X*v.scale, p.Y*v.scale
	limit := float64(4 * (v.cx + v.cy + 1))
	if !(math.Abs(fx) <= limit) || !(math.Abs(fy) <= limit) {
		return 0, 0, false
	}
	return v.cx + int(math.Round(fx)), v.cy + int(math.Round(fy)), true
}

// DrawPendulum draws the trail, the pivot, both arms and a 3x3 bob on the
// far joint. Points that do not project are left out.
func DrawPendulum(c *Canvas, v Viewport, trail []pendulum.Position, joint1, joint2 pendulum.Position) {
	for _, p := range trail {
		if x, y, ok := v.Project(p); ok {
			c.Set(x, y)
		}
	}

	px, py, _ := v.Project(pendulum.Position{})
	x1, y1, ok1 := v.Project(joint1)
	x2, y2, ok2 := v.Project(joint2)

	c.Set(px, py)
	if ok1 {
		c.DrawLine(px, py, x1, y1)
	}
	if ok1 && ok2 {
		c.DrawLine(x1, y1, x2, y2)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				c.Set(x2+dx, y2+dy)
			}
		}
	}
}
