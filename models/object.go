package models

import (
	"fmt"
	"strings"
)

// ObjectKind identifies the type of a grid object
type ObjectKind int

const (
	KindFloor ObjectKind = iota
	KindWall
	KindGoal
	KindDoor
	KindKey
	KindMovingObstacle
	KindBox
)

// String returns the canonical lowercase name of the kind
func (k ObjectKind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	case KindGoal:
		return "goal"
	case KindDoor:
		return "door"
	case KindKey:
		return "key"
	case KindMovingObstacle:
		return "moving_obstacle"
	case KindBox:
		return "box"
	}
	return "unknown"
}

// kindNames maps every accepted name variant to its canonical kind.
// Matching is case-insensitive, so "Wall" and "wall" collapse to one kind.
var kindNames = map[string]ObjectKind{
	"floor":           KindFloor,
	"wall":            KindWall,
	"goal":            KindGoal,
	"door":            KindDoor,
	"key":             KindKey,
	"moving_obstacle": KindMovingObstacle,
	"movingobstacle":  KindMovingObstacle,
	"box":             KindBox,
}

// ParseObjectKind resolves an object kind name to its canonical kind
func ParseObjectKind(name string) (ObjectKind, error) {
	kind, ok := kindNames[strings.ToLower(name)]
	if !ok {
		return KindFloor, fmt.Errorf("unknown object kind %q", name)
	}
	return kind, nil
}

// Color is the optional color carried by colorable grid objects
type Color int

const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
)

// String returns the canonical uppercase name of the color
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "NONE"
	case ColorRed:
		return "RED"
	case ColorGreen:
		return "GREEN"
	case ColorBlue:
		return "BLUE"
	case ColorYellow:
		return "YELLOW"
	}
	return "UNKNOWN"
}

// ParseColor resolves a color name, case-insensitively
func ParseColor(name string) (Color, error) {
	switch strings.ToUpper(name) {
	case "NONE", "":
		return ColorNone, nil
	case "RED":
		return ColorRed, nil
	case "GREEN":
		return ColorGreen, nil
	case "BLUE":
		return ColorBlue, nil
	case "YELLOW":
		return ColorYellow, nil
	}
	return ColorNone, fmt.Errorf("unknown color %q", name)
}

// GridObject is a typed, optionally colored entity occupying a cell
type GridObject struct {
	Kind    ObjectKind  `json:"kind"`
	Color   Color       `json:"color"`
	IsOpen  bool        `json:"is_open,omitempty"`  // Doors only
	Content *GridObject `json:"content,omitempty"`  // Boxes only
}

// Capabilities describes what an object kind can do. All engine logic
// consults this table instead of branching on the kind directly.
type Capabilities struct {
	BlocksMovement bool
	IsColorable    bool
	IsCarryable    bool
	IsOpenable     bool
	IsGoalLike     bool
}

// registry is the static capability table for every object kind
var registry = map[ObjectKind]Capabilities{
	KindFloor:          {},
	KindWall:           {BlocksMovement: true},
	KindGoal:           {IsColorable: true, IsGoalLike: true},
	KindDoor:           {BlocksMovement: true, IsColorable: true, IsOpenable: true},
	KindKey:            {IsColorable: true, IsCarryable: true},
	KindMovingObstacle: {IsColorable: true},
	KindBox:            {BlocksMovement: true, IsColorable: true},
}

// CapabilitiesOf returns the capability flags for the given kind
func CapabilitiesOf(kind ObjectKind) Capabilities {
	return registry[kind]
}

// Blocks reports whether the object currently blocks movement.
// An open door does not block even though its kind is a blocking kind.
func (o GridObject) Blocks() bool {
	if o.Kind == KindDoor && o.IsOpen {
		return false
	}
	return registry[o.Kind].BlocksMovement
}

// Opaque reports whether the object blocks line of sight. Opacity follows
// the blocking flag: walls, closed doors and boxes occlude rays.
func (o GridObject) Opaque() bool {
	return o.Blocks()
}
