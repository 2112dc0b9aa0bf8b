package models

import (
	"fmt"
	"strings"
)

// Action is one of the discrete actions the agent can take
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionTurnLeft
	ActionTurnRight
	ActionActuate
	ActionPickNDrop
)

// String returns the canonical name of the action
func (a Action) String() string {
	switch a {
	case ActionMoveForward:
		return "MOVE_FORWARD"
	case ActionMoveBackward:
		return "MOVE_BACKWARD"
	case ActionMoveLeft:
		return "MOVE_LEFT"
	case ActionMoveRight:
		return "MOVE_RIGHT"
	case ActionTurnLeft:
		return "TURN_LEFT"
	case ActionTurnRight:
		return "TURN_RIGHT"
	case ActionActuate:
		return "ACTUATE"
	case ActionPickNDrop:
		return "PICK_N_DROP"
	}
	return "UNKNOWN"
}

// ParseAction resolves an action name, case-insensitively
func ParseAction(name string) (Action, error) {
	switch strings.ToUpper(name) {
	case "MOVE_FORWARD":
		return ActionMoveForward, nil
	case "MOVE_BACKWARD":
		return ActionMoveBackward, nil
	case "MOVE_LEFT":
		return ActionMoveLeft, nil
	case "MOVE_RIGHT":
		return ActionMoveRight, nil
	case "TURN_LEFT":
		return ActionTurnLeft, nil
	case "TURN_RIGHT":
		return ActionTurnRight, nil
	case "ACTUATE":
		return ActionActuate, nil
	case "PICK_N_DROP":
		return ActionPickNDrop, nil
	}
	return ActionMoveForward, fmt.Errorf("unknown action %q", name)
}

// Delta returns the movement offset of the action relative to the given
// orientation, or false if the action does not move the agent.
func (a Action) Delta(o Orientation) (Position, bool) {
	switch a {
	case ActionMoveForward:
		return o.Forward(), true
	case ActionMoveBackward:
		return o.Backward(), true
	case ActionMoveLeft:
		return o.Left(), true
	case ActionMoveRight:
		return o.Right(), true
	}
	return Position{}, false
}

// Agent is the single controllable entity in the world
type Agent struct {
	Pos         Position    `json:"pos"`
	Orientation Orientation `json:"orientation"`
	Carrying    *GridObject `json:"carrying,omitempty"`
}

// State is the complete mutable world state: grid, agent and step counter.
// Only the reset and transition engines mutate it; every other engine
// reads it without modification.
type State struct {
	Grid  *Grid `json:"grid"`
	Agent Agent `json:"agent"`
	Step  int   `json:"step"`
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	clone := &State{
		Grid:  s.Grid.Clone(),
		Agent: s.Agent,
		Step:  s.Step,
	}
	if s.Agent.Carrying != nil {
		carrying := *s.Agent.Carrying
		clone.Agent.Carrying = &carrying
	}
	return clone
}
