package services

import (
	"fmt"
	"math/rand"

	"gridrealm/config"
	"gridrealm/models"
)

// BuildObservation computes the agent's observation of the state under the
// configured visibility policy. The observation shape is fixed by the
// observation space regardless of policy; cells outside the visible set
// are reported as unknown.
func BuildObservation(cfg *config.Config, state *models.State, rng *rand.Rand) (*models.Observation, error) {
	if cfg.ObservationFunction == config.VisibilityFull {
		return fullObservation(cfg, state), nil
	}

	height := cfg.ObservationSpace.Shape.Height
	width := cfg.ObservationSpace.Shape.Width
	window := extractWindow(cfg, state, height, width)

	var visible [][]bool
	switch cfg.ObservationFunction {
	case config.VisibilityMinigrid:
		visible = minigridVisibility(height, width)
	case config.VisibilityRaytracing:
		visible = raytracingVisibility(window, height, width)
	case config.VisibilityStochasticRaytracing:
		visible = stochasticRaytracingVisibility(window, height, width, rng)
	default:
		return nil, fmt.Errorf("unknown visibility function %q", cfg.ObservationFunction)
	}

	obs := &models.Observation{
		Height:      height,
		Width:       width,
		Cells:       make([][]models.ObsCell, height),
		AgentPos:    models.Position{Row: height - 1, Col: width / 2},
		Orientation: state.Agent.Orientation,
	}
	if state.Agent.Carrying != nil {
		carrying := *state.Agent.Carrying
		obs.Carrying = &carrying
	}
	for row := 0; row < height; row++ {
		obs.Cells[row] = make([]models.ObsCell, width)
		for col := 0; col < width; col++ {
			if !visible[row][col] || !window.inGrid[row][col] {
				obs.Cells[row][col] = models.ObsCell{Unknown: true}
				continue
			}
			obs.Cells[row][col] = window.cells[row][col]
		}
	}
	return obs, nil
}

// fullObservation reports the entire grid in the world frame
func fullObservation(cfg *config.Config, state *models.State) *models.Observation {
	grid := state.Grid
	obs := &models.Observation{
		Height:      grid.Height,
		Width:       grid.Width,
		Cells:       make([][]models.ObsCell, grid.Height),
		AgentPos:    state.Agent.Pos,
		Orientation: state.Agent.Orientation,
	}
	if state.Agent.Carrying != nil {
		carrying := *state.Agent.Carrying
		obs.Carrying = &carrying
	}
	for row := 0; row < grid.Height; row++ {
		obs.Cells[row] = make([]models.ObsCell, grid.Width)
		for col := 0; col < grid.Width; col++ {
			obs.Cells[row][col] = renderCell(cfg, &grid.Cells[row][col])
		}
	}
	return obs
}

// window is the agent-centered view of the grid before masking: rendered
// cell content, opacity for raytracing, and whether each view cell maps
// onto the grid at all.
type window struct {
	cells  [][]models.ObsCell
	opaque [][]bool
	inGrid [][]bool
}

// extractWindow maps view coordinates onto the grid. The agent sits at the
// bottom-center of the window facing the top row, whatever its world
// orientation; view row distance is depth ahead of the agent and view
// column distance is lateral offset.
func extractWindow(cfg *config.Config, state *models.State, height, width int) *window {
	forward := state.Agent.Orientation.Forward()
	right := state.Agent.Orientation.Right()
	center := width / 2

	w := &window{
		cells:  make([][]models.ObsCell, height),
		opaque: make([][]bool, height),
		inGrid: make([][]bool, height),
	}
	for row := 0; row < height; row++ {
		w.cells[row] = make([]models.ObsCell, width)
		w.opaque[row] = make([]bool, width)
		w.inGrid[row] = make([]bool, width)
		depth := height - 1 - row
		for col := 0; col < width; col++ {
			lateral := col - center
			worldPos := models.Position{
				Row: state.Agent.Pos.Row + depth*forward.Row + lateral*right.Row,
				Col: state.Agent.Pos.Col + depth*forward.Col + lateral*right.Col,
			}
			cell, ok := state.Grid.Get(worldPos)
			if !ok {
				continue
			}
			w.inGrid[row][col] = true
			w.cells[row][col] = renderCell(cfg, cell)
			w.opaque[row][col] = cell.HasOpaque()
		}
	}
	return w
}

// renderCell reports the topmost object of a cell, restricted to the kinds
// and colors the observation space declares. Undeclared kinds read as
// floor; undeclared colors read as NONE. An empty cell is floor.
func renderCell(cfg *config.Config, cell *models.Cell) models.ObsCell {
	top, found := cell.Top()
	if !found || !cfg.ObservationSpace.HasObject(top.Kind) {
		return models.ObsCell{Kind: models.KindFloor}
	}
	rendered := models.ObsCell{Kind: top.Kind, Color: top.Color, IsOpen: top.IsOpen}
	if !cfg.ObservationSpace.HasColor(top.Color) {
		rendered.Color = models.ColorNone
	}
	return rendered
}
