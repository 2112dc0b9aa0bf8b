package services

import (
	"testing"

	"gridrealm/config"
	"gridrealm/models"
)

func TestResetEmptyLayout(t *testing.T) {
	cfg := testConfig(5, 5)
	state, err := BuildInitialState(cfg, testRng(1))
	if err != nil {
		t.Fatal(err)
	}

	if state.Grid.Height != 5 || state.Grid.Width != 5 {
		t.Fatalf("grid is %dx%d", state.Grid.Height, state.Grid.Width)
	}
	walls := state.Grid.FindAll(models.KindWall, models.ColorNone)
	if len(walls) != 16 {
		t.Errorf("border of a 5x5 grid should hold 16 walls, got %d", len(walls))
	}
	goals := state.Grid.FindAll(models.KindGoal, models.ColorNone)
	if len(goals) != 1 || goals[0] != (models.Position{Row: 3, Col: 3}) {
		t.Errorf("goal positions = %v", goals)
	}
	if state.Agent.Pos != (models.Position{Row: 1, Col: 1}) || state.Agent.Orientation != models.East {
		t.Errorf("agent = %+v", state.Agent)
	}
	if state.Step != 0 {
		t.Errorf("initial step = %d", state.Step)
	}
}

func TestResetObjectTypeOverride(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.StateSpace.Objects = append(cfg.StateSpace.Objects, models.KindBox)
	cfg.ResetFunction.ObjectType = models.KindBox
	cfg.ResetFunction.HasObject = true

	state, err := BuildInitialState(cfg, testRng(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Grid.FindAll(models.KindGoal, models.ColorNone)) != 0 {
		t.Error("override should place no goal")
	}
	if len(state.Grid.FindAll(models.KindBox, models.ColorNone)) != 1 {
		t.Error("override should place one box")
	}
}

func TestResetRandomAgentDeterminism(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.ResetFunction.RandomAgent = true

	first, err := BuildInitialState(cfg, testRng(42))
	if err != nil {
		t.Fatal(err)
	}
	second, err := BuildInitialState(cfg, testRng(42))
	if err != nil {
		t.Fatal(err)
	}
	if first.Agent != second.Agent {
		t.Errorf("same seed produced agents %+v and %+v", first.Agent, second.Agent)
	}

	cell, _ := first.Grid.Get(first.Agent.Pos)
	if cell.HasBlocking() {
		t.Error("random agent placed on a blocking cell")
	}
}

func TestResetDynamicObstacles(t *testing.T) {
	cfg := testConfig(6, 6)
	cfg.StateSpace.Objects = append(cfg.StateSpace.Objects, models.KindMovingObstacle)
	cfg.ResetFunction.Name = config.ResetDynamicObstacles
	cfg.ResetFunction.NumObstacles = 3

	state, err := BuildInitialState(cfg, testRng(7))
	if err != nil {
		t.Fatal(err)
	}
	obstacles := state.Grid.FindAll(models.KindMovingObstacle, models.ColorNone)
	if len(obstacles) != 3 {
		t.Fatalf("placed %d obstacles, want 3", len(obstacles))
	}
	for _, pos := range obstacles {
		if pos == state.Agent.Pos {
			t.Error("obstacle placed on the agent's start cell")
		}
	}
}

func TestResetDynamicObstaclesOverfull(t *testing.T) {
	cfg := testConfig(4, 4)
	cfg.StateSpace.Objects = append(cfg.StateSpace.Objects, models.KindMovingObstacle)
	cfg.ResetFunction.Name = config.ResetDynamicObstacles
	cfg.ResetFunction.NumObstacles = 100

	if _, err := BuildInitialState(cfg, testRng(7)); err == nil {
		t.Error("expected failure placing 100 obstacles on a 4x4 grid")
	}
}

func TestResetKeyDoor(t *testing.T) {
	cfg := testConfig(8, 8)
	cfg.StateSpace.Objects = append(cfg.StateSpace.Objects, models.KindDoor, models.KindKey)
	cfg.StateSpace.Colors = append(cfg.StateSpace.Colors, models.ColorYellow)
	cfg.ResetFunction.Name = config.ResetKeyDoor

	state, err := BuildInitialState(cfg, testRng(3))
	if err != nil {
		t.Fatal(err)
	}

	doors := state.Grid.FindAll(models.KindDoor, models.ColorNone)
	keys := state.Grid.FindAll(models.KindKey, models.ColorNone)
	goals := state.Grid.FindAll(models.KindGoal, models.ColorNone)
	if len(doors) != 1 || len(keys) != 1 || len(goals) != 1 {
		t.Fatalf("doors=%v keys=%v goals=%v", doors, keys, goals)
	}

	doorCell, _ := state.Grid.Get(doors[0])
	keyCell, _ := state.Grid.Get(keys[0])
	doorObj, _ := doorCell.Top()
	keyObj, _ := keyCell.Top()
	if doorObj.Color == models.ColorNone || doorObj.Color != keyObj.Color {
		t.Errorf("door color %v, key color %v", doorObj.Color, keyObj.Color)
	}

	// Key and agent in the first room, goal behind the wall.
	if keys[0].Col >= doors[0].Col {
		t.Errorf("key at %v not left of the wall at col %d", keys[0], doors[0].Col)
	}
	if goals[0].Col <= doors[0].Col {
		t.Errorf("goal at %v not right of the wall at col %d", goals[0], doors[0].Col)
	}
	if state.Agent.Pos.Col >= doors[0].Col {
		t.Errorf("agent at %v not left of the wall at col %d", state.Agent.Pos, doors[0].Col)
	}
	if state.Agent.Pos == keys[0] {
		t.Error("agent starts on the key")
	}
}

func TestResetCrossing(t *testing.T) {
	cfg := testConfig(9, 9)
	cfg.ResetFunction.Name = config.ResetCrossing
	cfg.ResetFunction.NumRivers = 3

	state, err := BuildInitialState(cfg, testRng(5))
	if err != nil {
		t.Fatal(err)
	}

	// Each river lane keeps exactly one gap in its wall row.
	for _, row := range []int{2, 4, 6} {
		gaps := 0
		for col := 1; col < state.Grid.Width-1; col++ {
			if !state.Grid.Cells[row][col].Contains(models.KindWall, models.ColorNone) {
				gaps++
			}
		}
		if gaps != 1 {
			t.Errorf("lane row %d has %d gaps, want 1", row, gaps)
		}
	}
}

func TestResetFourRoomsConnectivity(t *testing.T) {
	cfg := testConfig(9, 9)
	cfg.ResetFunction.Name = config.ResetFourRooms

	state, err := BuildInitialState(cfg, testRng(11))
	if err != nil {
		t.Fatal(err)
	}
	goals := state.Grid.FindAll(models.KindGoal, models.ColorNone)
	if len(goals) != 1 {
		t.Fatalf("goals = %v", goals)
	}
	if !reachable(state.Grid, state.Agent.Pos, goals[0]) {
		t.Error("goal unreachable from the agent's start cell")
	}
}

// reachable walks the grid from start over non-blocking cells
func reachable(grid *models.Grid, start, target models.Position) bool {
	visited := map[models.Position]bool{start: true}
	queue := []models.Position{start}
	deltas := []models.Position{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		if pos == target {
			return true
		}
		for _, delta := range deltas {
			next := pos.Add(delta)
			cell, ok := grid.Get(next)
			if !ok || visited[next] || cell.HasBlocking() {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return false
}
