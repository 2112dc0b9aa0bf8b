package services

import (
	"fmt"
	"math/rand"

	"gridrealm/config"
	"gridrealm/models"
)

// BuildInitialState runs the configured layout generator and returns a
// fully populated initial state. Placement that cannot satisfy the
// requested object counts fails with a ConfigurationError.
func BuildInitialState(cfg *config.Config, rng *rand.Rand) (*models.State, error) {
	shape := cfg.GridShape()
	grid, err := models.NewGrid(shape.Height, shape.Width)
	if err != nil {
		return nil, err
	}

	// Every layout is enclosed by a single wall border.
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			if row == 0 || row == grid.Height-1 || col == 0 || col == grid.Width-1 {
				grid.Cells[row][col].Place(models.GridObject{Kind: models.KindWall})
			}
		}
	}

	state := &models.State{Grid: grid}

	switch cfg.ResetFunction.Name {
	case config.ResetEmpty:
		err = resetEmpty(cfg, state, rng)
	case config.ResetFourRooms:
		err = resetFourRooms(cfg, state, rng)
	case config.ResetDynamicObstacles:
		err = resetDynamicObstacles(cfg, state, rng)
	case config.ResetKeyDoor:
		err = resetKeyDoor(cfg, state, rng)
	case config.ResetCrossing:
		err = resetCrossing(cfg, state, rng)
	default:
		err = fmt.Errorf("unknown reset function %q", cfg.ResetFunction.Name)
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// goalObject returns the target object placed by the generators, honoring
// the optional object_type override
func goalObject(cfg *config.Config) models.GridObject {
	kind := models.KindGoal
	if cfg.ResetFunction.HasObject {
		kind = cfg.ResetFunction.ObjectType
	}
	return models.GridObject{Kind: kind}
}

// placeAgent puts the agent on its start cell: the fixed top-left free
// cell facing east, or a uniformly random free cell and orientation when
// random_agent is set.
func placeAgent(cfg *config.Config, state *models.State, rng *rand.Rand) error {
	if !cfg.ResetFunction.RandomAgent {
		start := models.Position{Row: 1, Col: 1}
		if cell, ok := state.Grid.Get(start); !ok || cell.HasBlocking() {
			return &config.ConfigurationError{Reason: "fixed agent start cell is blocked"}
		}
		state.Agent = models.Agent{Pos: start, Orientation: models.East}
		return nil
	}

	free := freeCells(state.Grid, nil)
	if len(free) == 0 {
		return &config.ConfigurationError{Reason: "no free cell left for the agent"}
	}
	pos := free[rng.Intn(len(free))]
	state.Agent = models.Agent{
		Pos:         pos,
		Orientation: models.Orientation(rng.Intn(4)),
	}
	return nil
}

// freeCells returns every position whose cell holds no object at all,
// excluding the given positions
func freeCells(grid *models.Grid, exclude []models.Position) []models.Position {
	excluded := make(map[models.Position]bool, len(exclude))
	for _, pos := range exclude {
		excluded[pos] = true
	}
	var free []models.Position
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			pos := models.Position{Row: row, Col: col}
			if excluded[pos] {
				continue
			}
			if len(grid.Cells[row][col].Objects) == 0 {
				free = append(free, pos)
			}
		}
	}
	return free
}

func resetEmpty(cfg *config.Config, state *models.State, rng *rand.Rand) error {
	goal := models.Position{Row: state.Grid.Height - 2, Col: state.Grid.Width - 2}
	if err := state.Grid.Mutate(goal, func(c *models.Cell) {
		c.Place(goalObject(cfg))
	}); err != nil {
		return err
	}
	return placeAgent(cfg, state, rng)
}

func resetFourRooms(cfg *config.Config, state *models.State, rng *rand.Rand) error {
	grid := state.Grid
	midRow := grid.Height / 2
	midCol := grid.Width / 2

	for col := 1; col < grid.Width-1; col++ {
		grid.Cells[midRow][col].Place(models.GridObject{Kind: models.KindWall})
	}
	for row := 1; row < grid.Height-1; row++ {
		if row == midRow {
			continue
		}
		grid.Cells[row][midCol].Place(models.GridObject{Kind: models.KindWall})
	}

	// One opening per wall arm connects the four rooms.
	openings := []models.Position{
		{Row: midRow, Col: 1 + rng.Intn(midCol-1)},
		{Row: midRow, Col: midCol + 1 + rng.Intn(grid.Width-midCol-2)},
		{Row: 1 + rng.Intn(midRow-1), Col: midCol},
		{Row: midRow + 1 + rng.Intn(grid.Height-midRow-2), Col: midCol},
	}
	for _, pos := range openings {
		grid.Cells[pos.Row][pos.Col].Remove(models.KindWall)
	}

	goal := models.Position{Row: grid.Height - 2, Col: grid.Width - 2}
	grid.Cells[goal.Row][goal.Col].Place(goalObject(cfg))
	return placeAgent(cfg, state, rng)
}

func resetDynamicObstacles(cfg *config.Config, state *models.State, rng *rand.Rand) error {
	if err := resetEmpty(cfg, state, rng); err != nil {
		return err
	}
	free := freeCells(state.Grid, []models.Position{state.Agent.Pos})
	if len(free) < cfg.ResetFunction.NumObstacles {
		return &config.ConfigurationError{
			Reason: fmt.Sprintf("%d moving obstacles do not fit %d free cells",
				cfg.ResetFunction.NumObstacles, len(free)),
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	for i := 0; i < cfg.ResetFunction.NumObstacles; i++ {
		pos := free[i]
		state.Grid.Cells[pos.Row][pos.Col].Place(models.GridObject{Kind: models.KindMovingObstacle})
	}
	return nil
}

func resetKeyDoor(cfg *config.Config, state *models.State, rng *rand.Rand) error {
	grid := state.Grid
	color := pairColor(cfg)

	// A vertical wall splits the room; the door is the only way through.
	wallCol := 2 + rng.Intn(grid.Width-4)
	for row := 1; row < grid.Height-1; row++ {
		grid.Cells[row][wallCol].Place(models.GridObject{Kind: models.KindWall})
	}
	doorRow := 1 + rng.Intn(grid.Height-2)
	grid.Cells[doorRow][wallCol].Remove(models.KindWall)
	grid.Cells[doorRow][wallCol].Place(models.GridObject{Kind: models.KindDoor, Color: color})

	// Key on the agent's side of the wall, goal on the far side.
	var left []models.Position
	for row := 1; row < grid.Height-1; row++ {
		for col := 1; col < wallCol; col++ {
			if len(grid.Cells[row][col].Objects) == 0 {
				left = append(left, models.Position{Row: row, Col: col})
			}
		}
	}
	if len(left) < 2 {
		return &config.ConfigurationError{Reason: "keydoor room too small for key and agent"}
	}
	keyPos := left[rng.Intn(len(left))]
	grid.Cells[keyPos.Row][keyPos.Col].Place(models.GridObject{Kind: models.KindKey, Color: color})

	goal := models.Position{Row: grid.Height - 2, Col: grid.Width - 2}
	if goal.Col <= wallCol {
		goal.Col = wallCol + 1
	}
	grid.Cells[goal.Row][goal.Col].Place(goalObject(cfg))

	if cfg.ResetFunction.RandomAgent {
		start := left[rng.Intn(len(left))]
		for start == keyPos {
			start = left[rng.Intn(len(left))]
		}
		state.Agent = models.Agent{Pos: start, Orientation: models.Orientation(rng.Intn(4))}
		return nil
	}
	if keyPos == (models.Position{Row: 1, Col: 1}) {
		state.Agent = models.Agent{Pos: models.Position{Row: 2, Col: 1}, Orientation: models.East}
		return nil
	}
	state.Agent = models.Agent{Pos: models.Position{Row: 1, Col: 1}, Orientation: models.East}
	return nil
}

// pairColor picks the color shared by the key/door pair: the first
// non-NONE color the state space declares
func pairColor(cfg *config.Config) models.Color {
	for _, color := range cfg.StateSpace.Colors {
		if color != models.ColorNone {
			return color
		}
	}
	return models.ColorYellow
}

func resetCrossing(cfg *config.Config, state *models.State, rng *rand.Rand) error {
	grid := state.Grid

	// River lanes are full-width wall rows with a single random gap,
	// spaced one free row apart starting below the agent's row.
	laneRows := make([]int, 0, cfg.ResetFunction.NumRivers)
	for row := 2; row < grid.Height-2 && len(laneRows) < cfg.ResetFunction.NumRivers; row += 2 {
		laneRows = append(laneRows, row)
	}
	if len(laneRows) < cfg.ResetFunction.NumRivers {
		return &config.ConfigurationError{
			Reason: fmt.Sprintf("%d rivers do not fit a %dx%d grid",
				cfg.ResetFunction.NumRivers, grid.Height, grid.Width),
		}
	}
	for _, row := range laneRows {
		gap := 1 + rng.Intn(grid.Width-2)
		for col := 1; col < grid.Width-1; col++ {
			if col == gap {
				continue
			}
			grid.Cells[row][col].Place(models.GridObject{Kind: models.KindWall})
		}
	}

	goal := models.Position{Row: grid.Height - 2, Col: grid.Width - 2}
	grid.Cells[goal.Row][goal.Col].Place(goalObject(cfg))
	return placeAgent(cfg, state, rng)
}
