package services

import (
	"fmt"
	"math/rand"

	"gridrealm/config"
	"gridrealm/models"
)

// applyTransitions runs the configured transition functions against the
// state, in the exact order listed in the configuration. Later functions
// observe the mutations of earlier ones within the same step.
func applyTransitions(cfg *config.Config, state *models.State, action models.Action, rng *rand.Rand) error {
	for _, name := range cfg.TransitionFunctions {
		var err error
		switch name {
		case config.TransitionUpdateAgent:
			err = updateAgent(state, action)
		case config.TransitionActuateDoor:
			err = actuateDoor(state, action)
		case config.TransitionPickupMechanics:
			err = pickupMechanics(state, action)
		case config.TransitionStepMovingObstacles:
			err = stepMovingObstacles(state, rng)
		default:
			err = fmt.Errorf("unknown transition function %q", name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// updateAgent applies movement and turning. Moving into a blocking object
// or off the grid is a silent no-op, never an error.
func updateAgent(state *models.State, action models.Action) error {
	switch action {
	case models.ActionTurnLeft:
		state.Agent.Orientation = state.Agent.Orientation.RotateLeft()
		return nil
	case models.ActionTurnRight:
		state.Agent.Orientation = state.Agent.Orientation.RotateRight()
		return nil
	}

	delta, moves := action.Delta(state.Agent.Orientation)
	if !moves {
		return nil
	}
	target := state.Agent.Pos.Add(delta)
	cell, ok := state.Grid.Get(target)
	if !ok || cell.HasBlocking() {
		return nil
	}
	state.Agent.Pos = target
	return nil
}

// actuateDoor toggles the door directly in front of the agent. The door
// only responds when it is colorless or the agent carries a key of the
// same color. Anything else in front of the agent makes ACTUATE a no-op.
func actuateDoor(state *models.State, action models.Action) error {
	if action != models.ActionActuate {
		return nil
	}
	front := state.Agent.Pos.Add(state.Agent.Orientation.Forward())
	cell, ok := state.Grid.Get(front)
	if !ok {
		return nil
	}
	for i := range cell.Objects {
		obj := &cell.Objects[i]
		if obj.Kind != models.KindDoor {
			continue
		}
		if obj.Color != models.ColorNone {
			carrying := state.Agent.Carrying
			if carrying == nil || carrying.Kind != models.KindKey || carrying.Color != obj.Color {
				return nil
			}
		}
		obj.IsOpen = !obj.IsOpen
		return nil
	}
	return nil
}

// pickupMechanics swaps objects between the cell in front of the agent and
// the agent's carry slot. Picking requires an empty carry slot and a
// carryable object ahead; dropping requires an empty, non-blocking cell.
func pickupMechanics(state *models.State, action models.Action) error {
	if action != models.ActionPickNDrop {
		return nil
	}
	front := state.Agent.Pos.Add(state.Agent.Orientation.Forward())
	cell, ok := state.Grid.Get(front)
	if !ok {
		return nil
	}

	if state.Agent.Carrying == nil {
		top, found := cell.Top()
		if !found || !models.CapabilitiesOf(top.Kind).IsCarryable {
			return nil
		}
		obj, _ := cell.Remove(top.Kind)
		state.Agent.Carrying = &obj
		return nil
	}

	if len(cell.Objects) > 0 {
		return nil
	}
	cell.Place(*state.Agent.Carrying)
	state.Agent.Carrying = nil
	return nil
}

// stepMovingObstacles advances every moving obstacle by one random step to
// an adjacent free cell. An obstacle with no free neighbor stays put. The
// walk is independent of the agent's action.
func stepMovingObstacles(state *models.State, rng *rand.Rand) error {
	deltas := []models.Position{
		{Row: -1, Col: 0},
		{Row: 0, Col: 1},
		{Row: 1, Col: 0},
		{Row: 0, Col: -1},
	}

	for _, pos := range state.Grid.FindAll(models.KindMovingObstacle, models.ColorNone) {
		var candidates []models.Position
		for _, delta := range deltas {
			target := pos.Add(delta)
			cell, ok := state.Grid.Get(target)
			if !ok || cell.HasBlocking() || cell.Contains(models.KindMovingObstacle, models.ColorNone) {
				continue
			}
			if len(cell.Objects) > 0 {
				continue
			}
			candidates = append(candidates, target)
		}
		if len(candidates) == 0 {
			continue
		}
		target := candidates[rng.Intn(len(candidates))]
		obstacle, found := state.Grid.Cells[pos.Row][pos.Col].Remove(models.KindMovingObstacle)
		if !found {
			continue
		}
		state.Grid.Cells[target.Row][target.Col].Place(obstacle)
	}
	return nil
}
