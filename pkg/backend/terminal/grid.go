package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/go-drift/mvu/pkg/graphics"
)

// Cell is one character cell.
type Cell struct {
	Rune rune
	FG   graphics.Color
	BG   graphics.Color
}

// Grid is a character buffer. One logical unit is one cell.
type Grid struct {
	Width, Height int
	Cells         [][]Cell
}

// NewGrid creates a grid of blank cells on background bg.
func NewGrid(width, height int, bg graphics.Color) *Grid {
	g := &Grid{Width: max(width, 0), Height: max(height, 0)}
	g.Cells = make([][]Cell, g.Height)
	for y := range g.Cells {
		row := make([]Cell, g.Width)
		for x := range row {
			row[x] = Cell{Rune: ' ', BG: bg}
		}
		g.Cells[y] = row
	}
	return g
}

// Paint draws f into a new grid the size of its viewport.
func Paint(f graphics.Frame) *Grid {
	g := NewGrid(int(math.Round(f.Viewport.Width)), int(math.Round(f.Viewport.Height)), f.Background)
	for _, p := range f.Primitives {
		g.draw(p)
	}
	return g
}

// cellRange returns the cells whose centers lie in r.
func cellRange(r graphics.Rect) (x0, y0, x1, y1 int) {
	return int(math.Ceil(r.Left - 0.5)), int(math.Ceil(r.Top - 0.5)),
		int(math.Ceil(r.Right - 0.5)), int(math.Ceil(r.Bottom - 0.5))
}

func (g *Grid) at(x, y int, clip graphics.Rect) *Cell {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return nil
	}
	cx, cy := float64(x)+0.5, float64(y)+0.5
	if !clip.Contains(graphics.Offset{X: cx, Y: cy}) {
		return nil
	}
	return &g.Cells[y][x]
}

func (g *Grid) draw(p graphics.Primitive) {
	switch p := p.(type) {
	case graphics.Quad:
		g.quad(p)
	case graphics.Text:
		g.text(p)
	case graphics.Path:
		// Paths have no cell form; mark the middle of their bounds.
		c := p.Bounds().Center()
		color := p.Stroke
		if color.Alpha() == 0 {
			color = p.Fill
		}
		if cell := g.at(int(c.X), int(c.Y), p.Clip); cell != nil {
			cell.Rune, cell.FG = '✓', color
		}
	}
}

func (g *Grid) quad(q graphics.Quad) {
	x0, y0, x1, y1 := cellRange(q.Rect)
	border := q.Border.Width > 0 && q.Border.Color.Alpha() > 0 && x1-x0 >= 2 && y1-y0 >= 2
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cell := g.at(x, y, q.Clip)
			if cell == nil {
				continue
			}
			if q.Background.Alpha() > 0 {
				cell.BG = q.Background
				cell.Rune = ' '
			}
			if border {
				if r := borderRune(x-x0, y-y0, x1-x0, y1-y0, q.Border.Radius > 0); r != 0 {
					cell.Rune, cell.FG = r, q.Border.Color
				}
			}
		}
	}
}

func borderRune(x, y, w, h int, rounded bool) rune {
	top, bottom, left, right := y == 0, y == h-1, x == 0, x == w-1
	corners := [4]rune{'┌', '┐', '└', '┘'}
	if rounded {
		corners = [4]rune{'╭', '╮', '╰', '╯'}
	}
	switch {
	case top && left:
		return corners[0]
	case top && right:
		return corners[1]
	case bottom && left:
		return corners[2]
	case bottom && right:
		return corners[3]
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return 0
}

func (g *Grid) text(t graphics.Text) {
	y := int(math.Round(t.Origin.Y))
	for i, line := range strings.Split(t.Content, "\n") {
		x := int(math.Round(t.Origin.X))
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if cell := g.at(x, y+i, t.Clip); cell != nil {
				cell.Rune, cell.FG = r, t.Color
				// The next cell is covered by a wide rune.
				if w == 2 {
					if next := g.at(x+1, y+i, t.Clip); next != nil {
						next.Rune = 0
					}
				}
			}
			x += max(w, 1)
		}
	}
}

// Plain returns the grid text without colors, rows separated by '\n'.
// Trailing spaces are kept so every row is Width cells wide.
func (g *Grid) Plain() string {
	lines := make([]string, len(g.Cells))
	for y, row := range g.Cells {
		var b strings.Builder
		for _, c := range row {
			if c.Rune != 0 {
				b.WriteRune(c.Rune)
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// String renders the grid with lipgloss, one style per run of equal colors.
func (g *Grid) String() string {
	lines := make([]string, len(g.Cells))
	for y, row := range g.Cells {
		var (
			b      strings.Builder
			run    strings.Builder
			fg, bg graphics.Color
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(style(fg, bg).Render(run.String()))
			run.Reset()
		}
		for x, c := range row {
			if x == 0 || c.FG != fg || c.BG != bg {
				flush()
				fg, bg = c.FG, c.BG
			}
			if c.Rune != 0 {
				run.WriteRune(c.Rune)
			}
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func style(fg, bg graphics.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg.Alpha() > 0 {
		s = s.Foreground(lipgloss.Color(hex(fg)))
	}
	if bg.Alpha() > 0 {
		s = s.Background(lipgloss.Color(hex(bg)))
	}
	return s
}

func hex(c graphics.Color) string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}
