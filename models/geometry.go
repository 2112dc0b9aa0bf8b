package models

// Position identifies a single cell in the grid
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the position offset by the given delta
func (p Position) Add(other Position) Position {
	return Position{Row: p.Row + other.Row, Col: p.Col + other.Col}
}

// Orientation is one of the four cardinal directions the agent can face
type Orientation int

const (
	North Orientation = iota
	East
	South
	West
)

// String returns the human-readable name of the orientation
func (o Orientation) String() string {
	switch o {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// RotateLeft returns the orientation after a 90 degree counter-clockwise turn
func (o Orientation) RotateLeft() Orientation {
	return (o + 3) % 4
}

// RotateRight returns the orientation after a 90 degree clockwise turn
func (o Orientation) RotateRight() Orientation {
	return (o + 1) % 4
}

// Forward returns the unit delta one step ahead of the orientation.
// Row 0 is the top of the grid, so facing north decrements the row.
func (o Orientation) Forward() Position {
	switch o {
	case North:
		return Position{Row: -1, Col: 0}
	case East:
		return Position{Row: 0, Col: 1}
	case South:
		return Position{Row: 1, Col: 0}
	case West:
		return Position{Row: 0, Col: -1}
	}
	return Position{}
}

// Backward returns the unit delta one step behind the orientation
func (o Orientation) Backward() Position {
	f := o.Forward()
	return Position{Row: -f.Row, Col: -f.Col}
}

// Left returns the unit delta one step to the left of the orientation
func (o Orientation) Left() Position {
	return o.RotateLeft().Forward()
}

// Right returns the unit delta one step to the right of the orientation
func (o Orientation) Right() Position {
	return o.RotateRight().Forward()
}
