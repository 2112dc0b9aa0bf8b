package config

import "gridrealm/models"

// validate performs the semantic checks the schema cannot express.
// Everything here fails with a ConfigurationError before any engine
// is constructed.
func (c *Config) validate() error {
	if c.ObservationSpace.Shape.Width%2 == 0 {
		return configErrorf("observation_space width must be odd to center on the agent, got %d", c.ObservationSpace.Shape.Width)
	}

	layout := c.ResetFunction.Layout
	if layout != (Shape{}) && layout != c.StateSpace.Shape {
		return configErrorf("reset layout %dx%d does not match state_space shape %dx%d",
			layout.Height, layout.Width, c.StateSpace.Shape.Height, c.StateSpace.Shape.Width)
	}

	if err := c.validateReset(); err != nil {
		return err
	}
	for _, name := range c.TransitionFunctions {
		if err := c.validateTransition(name); err != nil {
			return err
		}
	}
	for _, node := range c.RewardFunctions {
		if err := c.validateReward(node); err != nil {
			return err
		}
	}
	return c.validateTerminating(c.TerminatingFunction)
}

func (c *Config) requireObject(context string, kind models.ObjectKind) error {
	if !c.StateSpace.HasObject(kind) {
		return configErrorf("%s references object %q which is not in state_space.objects", context, kind)
	}
	return nil
}

func (c *Config) validateReset() error {
	shape := c.GridShape()
	interior := (shape.Height - 2) * (shape.Width - 2)

	if err := c.requireObject("reset_function", models.KindWall); err != nil {
		return err
	}

	goalKind := models.KindGoal
	if c.ResetFunction.HasObject {
		goalKind = c.ResetFunction.ObjectType
	}
	if err := c.requireObject("reset_function", goalKind); err != nil {
		return err
	}

	switch c.ResetFunction.Name {
	case ResetEmpty:
		if interior < 2 {
			return configErrorf("grid %dx%d too small for agent and goal", shape.Height, shape.Width)
		}
	case ResetFourRooms:
		if shape.Height < 5 || shape.Width < 5 {
			return configErrorf("four_rooms requires a grid of at least 5x5, got %dx%d", shape.Height, shape.Width)
		}
	case ResetDynamicObstacles:
		if err := c.requireObject("reset_function", models.KindMovingObstacle); err != nil {
			return err
		}
		if c.ResetFunction.NumObstacles+2 > interior {
			return configErrorf("%d obstacles plus agent and goal do not fit %d free cells",
				c.ResetFunction.NumObstacles, interior)
		}
	case ResetKeyDoor:
		if shape.Height < 5 || shape.Width < 5 {
			return configErrorf("keydoor requires a grid of at least 5x5, got %dx%d", shape.Height, shape.Width)
		}
		for _, kind := range []models.ObjectKind{models.KindDoor, models.KindKey} {
			if err := c.requireObject("reset_function", kind); err != nil {
				return err
			}
		}
		if !c.hasNonNoneColor() {
			return configErrorf("keydoor requires a non-NONE color for the key/door pair")
		}
	case ResetCrossing:
		lanes := (shape.Height - 3) / 2
		if c.ResetFunction.NumRivers > lanes {
			return configErrorf("%d rivers do not fit a %dx%d grid (%d lanes available)",
				c.ResetFunction.NumRivers, shape.Height, shape.Width, lanes)
		}
	}
	return nil
}

func (c *Config) hasNonNoneColor() bool {
	for _, color := range c.StateSpace.Colors {
		if color != models.ColorNone {
			return true
		}
	}
	return false
}

func (c *Config) validateTransition(name string) error {
	switch name {
	case TransitionActuateDoor:
		return c.requireObject("transition_functions", models.KindDoor)
	case TransitionStepMovingObstacles:
		return c.requireObject("transition_functions", models.KindMovingObstacle)
	}
	return nil
}

func (c *Config) validateReward(node *RewardNode) error {
	if needsObjectType(node.Name) {
		if err := c.requireObject("reward_functions", node.ObjectType); err != nil {
			return err
		}
	}
	if node.Name == RewardBumpMovingObstacle {
		if err := c.requireObject("reward_functions", models.KindMovingObstacle); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := c.validateReward(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateTerminating(node *TerminatingNode) error {
	switch node.Name {
	case TerminateReachObject:
		if err := c.requireObject("terminating_function", node.ObjectType); err != nil {
			return err
		}
	case TerminateBumpMovingObstacle:
		if err := c.requireObject("terminating_function", models.KindMovingObstacle); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := c.validateTerminating(child); err != nil {
			return err
		}
	}
	return nil
}

// GridShape returns the effective grid dimensions: the reset layout when
// set, otherwise the declared state space shape.
func (c *Config) GridShape() Shape {
	if c.ResetFunction.Layout != (Shape{}) {
		return c.ResetFunction.Layout
	}
	return c.StateSpace.Shape
}
