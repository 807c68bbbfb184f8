package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Draw layers. A higher layer always wins a cell; within a layer the nearer
// glyph wins.
const (
	layerLink = iota + 1
	layerCore
	layerNode
	layerLabel
)

type cell struct {
	r     rune
	color lipgloss.Color
	bold  bool
	layer int
	depth float64
}

// Canvas is a character grid with a depth buffer.
type Canvas struct {
	w, h  int
	cells []cell
	band  int // highlighted scan-line row, -1 for none
	bandC lipgloss.Color
}

// NewCanvas allocates a blank canvas.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{w: w, h: h, cells: make([]cell, w*h), band: -1}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) { return c.w, c.h }

// At returns the rune at x, y, or a space.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || c.cells[y*c.w+x].layer == 0 {
		return ' '
	}
	return c.cells[y*c.w+x].r
}

// Set writes r at x, y subject to the layer and depth test.
func (c *Canvas) Set(x, y int, r rune, color lipgloss.Color, bold bool, layer int, depth float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	cur := &c.cells[y*c.w+x]
	if cur.layer > layer || (cur.layer == layer && cur.depth <= depth) {
		return
	}
	*cur = cell{r: r, color: color, bold: bold, layer: layer, depth: depth}
}

// Text writes s starting at x, y on one row.
func (c *Canvas) Text(x, y int, s string, color lipgloss.Color, bold bool, layer int, depth float64) {
	for _, r := range s {
		c.Set(x, y, r, color, bold, layer, depth)
		x++
	}
}

// Line rasterizes a segment between two projected points, interpolating
// depth along it.
func (c *Canvas) Line(x0, y0, d0, x1, y1, d1 float64, r rune, color lipgloss.Color, bold bool, layer int) {
	ax, ay := int(math.Floor(x0)), int(math.Floor(y0))
	bx, by := int(math.Floor(x1)), int(math.Floor(y1))

	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	steps := max(dx, -dy)
	// Keep runaway segments from projections near the eye bounded.
	if steps > 4*(c.w+c.h) {
		return
	}
	err := dx + dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		c.Set(ax, ay, r, color, bold, layer, d0+(d1-d0)*t)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

// Band highlights one row as the scan line.
func (c *Canvas) Band(y int, color lipgloss.Color) {
	c.band = y
	c.bandC = color
}

// Render converts the canvas into styled text, one line per row.
func (c *Canvas) Render() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		c.renderRow(&sb, y)
	}
	return sb.String()
}

func (c *Canvas) renderRow(sb *strings.Builder, y int) {
	row := c.cells[y*c.w : (y+1)*c.w]
	var run strings.Builder
	var runStyle *cell
	flush := func() {
		if run.Len() == 0 {
			return
		}
		st := lipgloss.NewStyle()
		if runStyle != nil && runStyle.layer > 0 {
			st = st.Foreground(runStyle.color).Bold(runStyle.bold)
		}
		if y == c.band {
			st = st.Background(c.bandC)
		}
		sb.WriteString(st.Render(run.String()))
		run.Reset()
	}
	for i := range row {
		cl := &row[i]
		if runStyle == nil || !sameStyle(runStyle, cl) {
			flush()
			runStyle = cl
		}
		if cl.layer == 0 {
			run.WriteByte(' ')
		} else {
			run.WriteRune(cl.r)
		}
	}
	flush()
}

func sameStyle(a, b *cell) bool {
	if a.layer == 0 || b.layer == 0 {
		return a.layer == b.layer
	}
	return a.color == b.color && a.bold == b.bold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
