package models

import "fmt"

// OutOfBoundsError reports an attempt to address a cell outside the grid.
// It indicates a programming error in the caller, never user input.
type OutOfBoundsError struct {
	Pos    Position
	Height int
	Width  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position (%d,%d) outside %dx%d grid", e.Pos.Row, e.Pos.Col, e.Height, e.Width)
}

// Cell holds the ordered stack of objects occupying one grid coordinate.
// An empty cell is implicitly floor; floor is never stored explicitly.
type Cell struct {
	Objects []GridObject `json:"objects"`
}

// Top returns the topmost object of the cell, or false if the cell is empty
func (c *Cell) Top() (GridObject, bool) {
	if len(c.Objects) == 0 {
		return GridObject{}, false
	}
	return c.Objects[len(c.Objects)-1], true
}

// HasBlocking reports whether any object in the cell blocks movement
func (c *Cell) HasBlocking() bool {
	for _, obj := range c.Objects {
		if obj.Blocks() {
			return true
		}
	}
	return false
}

// HasOpaque reports whether any object in the cell blocks line of sight
func (c *Cell) HasOpaque() bool {
	for _, obj := range c.Objects {
		if obj.Opaque() {
			return true
		}
	}
	return false
}

// Contains reports whether the cell holds an object of the given kind.
// ColorNone matches any color.
func (c *Cell) Contains(kind ObjectKind, color Color) bool {
	for _, obj := range c.Objects {
		if obj.Kind == kind && (color == ColorNone || obj.Color == color) {
			return true
		}
	}
	return false
}

// Place pushes an object onto the cell stack. At most one blocking object
// may occupy a cell; callers check HasBlocking before placing one.
func (c *Cell) Place(obj GridObject) {
	c.Objects = append(c.Objects, obj)
}

// Remove takes the topmost object of the given kind out of the cell
func (c *Cell) Remove(kind ObjectKind) (GridObject, bool) {
	for i := len(c.Objects) - 1; i >= 0; i-- {
		if c.Objects[i].Kind == kind {
			obj := c.Objects[i]
			c.Objects = append(c.Objects[:i], c.Objects[i+1:]...)
			return obj, true
		}
	}
	return GridObject{}, false
}

// Grid is the 2D cell space defining the world
type Grid struct {
	Height int      `json:"height"`
	Width  int      `json:"width"`
	Cells  [][]Cell `json:"cells"`
}

// NewGrid creates an empty grid of the given dimensions
func NewGrid(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", height, width)
	}
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
	}
	return &Grid{Height: height, Width: width, Cells: cells}, nil
}

// InBounds reports whether the position addresses a cell of this grid
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Height && pos.Col >= 0 && pos.Col < g.Width
}

// Get returns the cell at the position, or false if out of bounds
func (g *Grid) Get(pos Position) (*Cell, bool) {
	if !g.InBounds(pos) {
		return nil, false
	}
	return &g.Cells[pos.Row][pos.Col], true
}

// Mutate applies fn to the cell at the position. Addressing a cell outside
// the grid fails with an OutOfBoundsError; there is no wraparound.
func (g *Grid) Mutate(pos Position, fn func(*Cell)) error {
	cell, ok := g.Get(pos)
	if !ok {
		return &OutOfBoundsError{Pos: pos, Height: g.Height, Width: g.Width}
	}
	fn(cell)
	return nil
}

// FindAll returns the positions of every object of the given kind.
// ColorNone matches any color. Positions are returned in row-major order.
func (g *Grid) FindAll(kind ObjectKind, color Color) []Position {
	var positions []Position
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.Cells[row][col].Contains(kind, color) {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.Height)
	for row := range cells {
		cells[row] = make([]Cell, g.Width)
		for col := range cells[row] {
			src := g.Cells[row][col].Objects
			if len(src) > 0 {
				objs := make([]GridObject, len(src))
				copy(objs, src)
				for i := range objs {
					if objs[i].Content != nil {
						content := *objs[i].Content
						objs[i].Content = &content
					}
				}
				cells[row][col].Objects = objs
			}
		}
	}
	return &Grid{Height: g.Height, Width: g.Width, Cells: cells}
}
