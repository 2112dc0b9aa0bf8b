package services

import (
	"math/rand"

	"gridrealm/config"
	"gridrealm/models"
)

var allActions = []models.Action{
	models.ActionMoveForward,
	models.ActionMoveBackward,
	models.ActionMoveLeft,
	models.ActionMoveRight,
	models.ActionTurnLeft,
	models.ActionTurnRight,
	models.ActionActuate,
	models.ActionPickNDrop,
}

// testConfig builds a goal-seeking environment on an h by w grid with the
// empty layout and full visibility
func testConfig(h, w int) *config.Config {
	space := config.Space{
		Shape: config.Shape{Height: h, Width: w},
		Objects: []models.ObjectKind{
			models.KindFloor, models.KindWall, models.KindGoal,
		},
		Colors: []models.Color{models.ColorNone},
	}
	return &config.Config{
		StateSpace:          space,
		ActionSpace:         allActions,
		ObservationSpace:    space,
		ResetFunction:       config.Reset{Name: config.ResetEmpty},
		TransitionFunctions: []string{config.TransitionUpdateAgent},
		RewardFunctions: []*config.RewardNode{
			{Name: config.RewardOverlap, RewardOn: 1.0, RewardOff: 0.0, ObjectType: models.KindGoal},
		},
		ObservationFunction: config.VisibilityFull,
		TerminatingFunction: &config.TerminatingNode{
			Name:       config.TerminateReachObject,
			ObjectType: models.KindGoal,
		},
	}
}

// blankState builds a borderless empty grid with the agent at (1,1) east
func blankState(h, w int) *models.State {
	grid, err := models.NewGrid(h, w)
	if err != nil {
		panic(err)
	}
	return &models.State{
		Grid:  grid,
		Agent: models.Agent{Pos: models.Position{Row: 1, Col: 1}, Orientation: models.East},
	}
}

func testRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
