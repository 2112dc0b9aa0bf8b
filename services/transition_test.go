package services

import (
	"testing"

	"gridrealm/config"
	"gridrealm/models"
)

func TestUpdateAgentTurning(t *testing.T) {
	state := blankState(4, 4)
	for i := 0; i < 4; i++ {
		if err := updateAgent(state, models.ActionTurnRight); err != nil {
			t.Fatal(err)
		}
	}
	if state.Agent.Orientation != models.East {
		t.Errorf("four right turns ended facing %v", state.Agent.Orientation)
	}
	if err := updateAgent(state, models.ActionTurnLeft); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Orientation != models.North {
		t.Errorf("left turn from east ended facing %v", state.Agent.Orientation)
	}
}

func TestUpdateAgentMoveRoundTrip(t *testing.T) {
	state := blankState(4, 4)
	start := state.Agent.Pos

	if err := updateAgent(state, models.ActionMoveForward); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Pos != (models.Position{Row: 1, Col: 2}) {
		t.Fatalf("forward facing east moved to %+v", state.Agent.Pos)
	}
	if err := updateAgent(state, models.ActionMoveBackward); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Pos != start {
		t.Errorf("forward then backward ended at %+v", state.Agent.Pos)
	}
}

func TestUpdateAgentBlockedIsNoOp(t *testing.T) {
	state := blankState(4, 4)
	state.Grid.Cells[1][2].Place(models.GridObject{Kind: models.KindWall})

	if err := updateAgent(state, models.ActionMoveForward); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Pos != (models.Position{Row: 1, Col: 1}) {
		t.Errorf("agent moved into a wall, at %+v", state.Agent.Pos)
	}
}

func TestUpdateAgentOffGridIsNoOp(t *testing.T) {
	state := blankState(4, 4)
	state.Agent.Pos = models.Position{Row: 0, Col: 0}
	state.Agent.Orientation = models.North

	if err := updateAgent(state, models.ActionMoveForward); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Pos != (models.Position{Row: 0, Col: 0}) {
		t.Errorf("agent left the grid, at %+v", state.Agent.Pos)
	}
}

func TestActuateColorlessDoor(t *testing.T) {
	state := blankState(4, 4)
	state.Grid.Cells[1][2].Place(models.GridObject{Kind: models.KindDoor})

	if err := actuateDoor(state, models.ActionActuate); err != nil {
		t.Fatal(err)
	}
	door, _ := state.Grid.Cells[1][2].Top()
	if !door.IsOpen {
		t.Error("colorless door did not open")
	}

	if err := actuateDoor(state, models.ActionActuate); err != nil {
		t.Fatal(err)
	}
	door, _ = state.Grid.Cells[1][2].Top()
	if door.IsOpen {
		t.Error("second actuation did not close the door")
	}
}

func TestActuateColoredDoorNeedsMatchingKey(t *testing.T) {
	state := blankState(4, 4)
	state.Grid.Cells[1][2].Place(models.GridObject{Kind: models.KindDoor, Color: models.ColorRed})

	if err := actuateDoor(state, models.ActionActuate); err != nil {
		t.Fatal(err)
	}
	if door, _ := state.Grid.Cells[1][2].Top(); door.IsOpen {
		t.Error("red door opened without a key")
	}

	state.Agent.Carrying = &models.GridObject{Kind: models.KindKey, Color: models.ColorBlue}
	if err := actuateDoor(state, models.ActionActuate); err != nil {
		t.Fatal(err)
	}
	if door, _ := state.Grid.Cells[1][2].Top(); door.IsOpen {
		t.Error("red door opened with a blue key")
	}

	state.Agent.Carrying = &models.GridObject{Kind: models.KindKey, Color: models.ColorRed}
	if err := actuateDoor(state, models.ActionActuate); err != nil {
		t.Fatal(err)
	}
	if door, _ := state.Grid.Cells[1][2].Top(); !door.IsOpen {
		t.Error("red door stayed closed despite a red key")
	}
}

func TestPickupAndDrop(t *testing.T) {
	state := blankState(4, 4)
	state.Grid.Cells[1][2].Place(models.GridObject{Kind: models.KindKey, Color: models.ColorGreen})

	if err := pickupMechanics(state, models.ActionPickNDrop); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Carrying == nil || state.Agent.Carrying.Kind != models.KindKey {
		t.Fatalf("carrying = %+v", state.Agent.Carrying)
	}
	if len(state.Grid.Cells[1][2].Objects) != 0 {
		t.Error("key still on the grid after pickup")
	}

	// Drop into the now-empty cell ahead.
	if err := pickupMechanics(state, models.ActionPickNDrop); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Carrying != nil {
		t.Error("still carrying after drop")
	}
	if !state.Grid.Cells[1][2].Contains(models.KindKey, models.ColorGreen) {
		t.Error("key not back on the grid after drop")
	}
}

func TestPickupIgnoresNonCarryable(t *testing.T) {
	state := blankState(4, 4)
	state.Grid.Cells[1][2].Place(models.GridObject{Kind: models.KindWall})

	if err := pickupMechanics(state, models.ActionPickNDrop); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Carrying != nil {
		t.Errorf("picked up a wall: %+v", state.Agent.Carrying)
	}
}

func TestDropRequiresEmptyCell(t *testing.T) {
	state := blankState(4, 4)
	state.Agent.Carrying = &models.GridObject{Kind: models.KindKey}
	state.Grid.Cells[1][2].Place(models.GridObject{Kind: models.KindGoal})

	if err := pickupMechanics(state, models.ActionPickNDrop); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Carrying == nil {
		t.Error("dropped onto an occupied cell")
	}
}

func TestStepMovingObstaclesMovesToFreeNeighbor(t *testing.T) {
	state := blankState(3, 5)
	state.Grid.Cells[1][3].Place(models.GridObject{Kind: models.KindMovingObstacle})
	// Box the obstacle in on three sides; only (1,2) stays open.
	state.Grid.Cells[0][3].Place(models.GridObject{Kind: models.KindWall})
	state.Grid.Cells[2][3].Place(models.GridObject{Kind: models.KindWall})
	state.Grid.Cells[1][4].Place(models.GridObject{Kind: models.KindWall})

	if err := stepMovingObstacles(state, testRng(1)); err != nil {
		t.Fatal(err)
	}
	obstacles := state.Grid.FindAll(models.KindMovingObstacle, models.ColorNone)
	if len(obstacles) != 1 || obstacles[0] != (models.Position{Row: 1, Col: 2}) {
		t.Errorf("obstacle at %v, want (1,2)", obstacles)
	}
}

func TestStepMovingObstaclesBoxedInStaysPut(t *testing.T) {
	state := blankState(3, 3)
	state.Grid.Cells[1][1].Place(models.GridObject{Kind: models.KindMovingObstacle})
	for _, pos := range []models.Position{{Row: 0, Col: 1}, {Row: 2, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}} {
		state.Grid.Cells[pos.Row][pos.Col].Place(models.GridObject{Kind: models.KindWall})
	}

	if err := stepMovingObstacles(state, testRng(1)); err != nil {
		t.Fatal(err)
	}
	obstacles := state.Grid.FindAll(models.KindMovingObstacle, models.ColorNone)
	if len(obstacles) != 1 || obstacles[0] != (models.Position{Row: 1, Col: 1}) {
		t.Errorf("boxed-in obstacle moved to %v", obstacles)
	}
}

func TestTransitionOrderIsConfigured(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.TransitionFunctions = []string{config.TransitionUpdateAgent, config.TransitionActuateDoor}
	state := blankState(5, 5)
	state.Grid.Cells[1][3].Place(models.GridObject{Kind: models.KindDoor})

	// update_agent runs first: the agent steps from (1,1) to (1,2), then
	// actuate_door sees the door one cell further ahead. A single step
	// cannot both move and actuate, so the door stays closed here.
	if err := applyTransitions(cfg, state, models.ActionMoveForward, testRng(1)); err != nil {
		t.Fatal(err)
	}
	if state.Agent.Pos != (models.Position{Row: 1, Col: 2}) {
		t.Fatalf("agent at %+v", state.Agent.Pos)
	}
	if door, _ := state.Grid.Cells[1][3].Top(); door.IsOpen {
		t.Error("door opened on a movement action")
	}

	if err := applyTransitions(cfg, state, models.ActionActuate, testRng(1)); err != nil {
		t.Fatal(err)
	}
	if door, _ := state.Grid.Cells[1][3].Top(); !door.IsOpen {
		t.Error("door did not open on ACTUATE")
	}
}

func TestUnknownTransitionFails(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.TransitionFunctions = []string{"teleport_agent"}
	if err := applyTransitions(cfg, blankState(5, 5), models.ActionMoveForward, testRng(1)); err == nil {
		t.Error("expected error for unknown transition function")
	}
}
