package config

import (
	"fmt"

	"gridrealm/models"
)

// ConfigurationError reports a schema-valid but semantically impossible
// configuration. It is fatal and only ever raised at construction time.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// Shape is a grid extent in (height, width) order
type Shape struct {
	Height int
	Width  int
}

// Space declares the shape, object kinds and colors a state or observation
// may contain
type Space struct {
	Shape   Shape
	Objects []models.ObjectKind
	Colors  []models.Color
}

// HasObject reports whether the space declares the given object kind
func (s Space) HasObject(kind models.ObjectKind) bool {
	for _, k := range s.Objects {
		if k == kind {
			return true
		}
	}
	return false
}

// HasColor reports whether the space declares the given color
func (s Space) HasColor(color models.Color) bool {
	for _, c := range s.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// Names of the layout generators the reset engine provides
const (
	ResetEmpty            = "empty"
	ResetFourRooms        = "four_rooms"
	ResetDynamicObstacles = "dynamic_obstacles"
	ResetKeyDoor          = "keydoor"
	ResetCrossing         = "crossing"
)

// Reset selects and parameterizes a layout generator
type Reset struct {
	Name         string
	Layout       Shape // zero value means state_space.shape
	NumObstacles int
	NumRivers    int
	RandomAgent  bool
	ObjectType   models.ObjectKind
	HasObject    bool // whether object_type was set
}

// Names of the transition functions
const (
	TransitionUpdateAgent         = "update_agent"
	TransitionActuateDoor         = "actuate_door"
	TransitionPickupMechanics     = "pickup_mechanics"
	TransitionStepMovingObstacles = "step_moving_obstacles"
)

// Names of the reward function leaves and composite
const (
	RewardLivingReward           = "living_reward"
	RewardOverlap                = "overlap"
	RewardProportionalToDistance = "proportional_to_distance"
	RewardGettingCloser          = "getting_closer"
	RewardBumpIntoWall           = "bump_into_wall"
	RewardBumpMovingObstacle     = "bump_moving_obstacle"
	RewardReduceSum              = "reduce_sum"
)

// Names of the distance functions used by shaping rewards
const (
	DistanceManhattan = "manhattan"
	DistanceEuclidean = "euclidean"
)

// RewardNode is one node of the reward function tree: either a leaf with
// kind-specific parameters or a reduce_sum composite with children.
type RewardNode struct {
	Name                  string
	Reward                float64
	RewardOn              float64
	RewardOff             float64
	RewardPerUnitDistance float64
	RewardCloser          float64
	RewardFurther         float64
	DistanceFunction      string
	ObjectType            models.ObjectKind
	Children              []*RewardNode
}

// Names of the terminating function leaves and composite
const (
	TerminateReachObject        = "reach_object"
	TerminateBumpIntoWall       = "bump_into_wall"
	TerminateBumpMovingObstacle = "bump_moving_obstacle"
	TerminateTimeout            = "timeout"
	TerminateReduceAny          = "reduce_any"
)

// TerminatingNode is one node of the terminating function tree. The
// reduce_any composite fires when any of its children fire.
type TerminatingNode struct {
	Name       string
	ObjectType models.ObjectKind
	MaxSteps   int
	Children   []*TerminatingNode
}

// Names of the visibility policies
const (
	VisibilityFull                 = "full_visibility"
	VisibilityMinigrid             = "minigrid_visibility"
	VisibilityRaytracing           = "raytracing_visibility"
	VisibilityStochasticRaytracing = "stochastic_raytracing_visibility"
)

// Config is a fully validated environment configuration. It is immutable
// once built and owned by the environment for its whole lifetime.
type Config struct {
	StateSpace          Space
	ActionSpace         []models.Action
	ObservationSpace    Space
	ResetFunction       Reset
	TransitionFunctions []string
	RewardFunctions     []*RewardNode
	ObservationFunction string
	TerminatingFunction *TerminatingNode
}

// HasAction reports whether the action space declares the given action
func (c *Config) HasAction(action models.Action) bool {
	for _, a := range c.ActionSpace {
		if a == action {
			return true
		}
	}
	return false
}
