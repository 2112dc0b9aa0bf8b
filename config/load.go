package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"gridrealm/models"
)

//go:embed env.schema.json
var schemaSource string

var envSchema = jsonschema.MustCompileString("env.schema.json", schemaSource)

// document mirrors the raw YAML configuration before resolution
type document struct {
	StateSpace          spaceDoc       `yaml:"state_space" json:"state_space"`
	ActionSpace         []string       `yaml:"action_space" json:"action_space"`
	ObservationSpace    spaceDoc       `yaml:"observation_space" json:"observation_space"`
	ResetFunction       resetDoc       `yaml:"reset_function" json:"reset_function"`
	TransitionFunctions []namedDoc     `yaml:"transition_functions" json:"transition_functions"`
	RewardFunctions     []rewardDoc    `yaml:"reward_functions" json:"reward_functions"`
	ObservationFunction namedDoc       `yaml:"observation_function" json:"observation_function"`
	TerminatingFunction terminatingDoc `yaml:"terminating_function" json:"terminating_function"`
}

type spaceDoc struct {
	Shape   []int    `yaml:"shape" json:"shape"`
	Objects []string `yaml:"objects" json:"objects"`
	Colors  []string `yaml:"colors" json:"colors"`
}

type resetDoc struct {
	Name         string `yaml:"name" json:"name"`
	Layout       []int  `yaml:"layout,omitempty" json:"layout,omitempty"`
	NumObstacles int    `yaml:"num_obstacles,omitempty" json:"num_obstacles,omitempty"`
	NumRivers    int    `yaml:"num_rivers,omitempty" json:"num_rivers,omitempty"`
	RandomAgent  bool   `yaml:"random_agent,omitempty" json:"random_agent,omitempty"`
	ObjectType   string `yaml:"object_type,omitempty" json:"object_type,omitempty"`
}

type namedDoc struct {
	Name string `yaml:"name" json:"name"`
}

type rewardDoc struct {
	Name                  string      `yaml:"name" json:"name"`
	Reward                *float64    `yaml:"reward,omitempty" json:"reward,omitempty"`
	RewardOn              *float64    `yaml:"reward_on,omitempty" json:"reward_on,omitempty"`
	RewardOff             *float64    `yaml:"reward_off,omitempty" json:"reward_off,omitempty"`
	RewardPerUnitDistance *float64    `yaml:"reward_per_unit_distance,omitempty" json:"reward_per_unit_distance,omitempty"`
	RewardCloser          *float64    `yaml:"reward_closer,omitempty" json:"reward_closer,omitempty"`
	RewardFurther         *float64    `yaml:"reward_further,omitempty" json:"reward_further,omitempty"`
	DistanceFunction      string      `yaml:"distance_function,omitempty" json:"distance_function,omitempty"`
	ObjectType            string      `yaml:"object_type,omitempty" json:"object_type,omitempty"`
	RewardFunctions       []rewardDoc `yaml:"reward_functions,omitempty" json:"reward_functions,omitempty"`
}

type terminatingDoc struct {
	Name                 string           `yaml:"name" json:"name"`
	ObjectType           string           `yaml:"object_type,omitempty" json:"object_type,omitempty"`
	MaxSteps             int              `yaml:"max_steps,omitempty" json:"max_steps,omitempty"`
	TerminatingFunctions []terminatingDoc `yaml:"terminating_functions,omitempty" json:"terminating_functions,omitempty"`
}

// LoadFile reads, validates and resolves an environment configuration
// from a YAML file
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(raw)
}

// Load validates and resolves an environment configuration from YAML bytes.
// The document is checked against the embedded JSON schema first; unknown
// keys and unknown enum values are rejected here, before the engine exists.
func Load(raw []byte) (*Config, error) {
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Round-trip through encoding/json so the schema validator sees the
	// value shapes it expects.
	jsonBytes, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize config: %w", err)
	}
	var jsonValue interface{}
	if err := json.Unmarshal(jsonBytes, &jsonValue); err != nil {
		return nil, fmt.Errorf("failed to normalize config: %w", err)
	}
	if err := envSchema.Validate(jsonValue); err != nil {
		return nil, fmt.Errorf("config rejected by schema: %w", err)
	}

	var doc document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	cfg, err := resolve(&doc)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve converts the raw document into canonical types
func resolve(doc *document) (*Config, error) {
	cfg := &Config{}

	var err error
	if cfg.StateSpace, err = resolveSpace(doc.StateSpace); err != nil {
		return nil, fmt.Errorf("state_space: %w", err)
	}
	if cfg.ObservationSpace, err = resolveSpace(doc.ObservationSpace); err != nil {
		return nil, fmt.Errorf("observation_space: %w", err)
	}

	for _, name := range doc.ActionSpace {
		action, err := models.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("action_space: %w", err)
		}
		cfg.ActionSpace = append(cfg.ActionSpace, action)
	}

	cfg.ResetFunction = Reset{
		Name:         doc.ResetFunction.Name,
		NumObstacles: doc.ResetFunction.NumObstacles,
		NumRivers:    doc.ResetFunction.NumRivers,
		RandomAgent:  doc.ResetFunction.RandomAgent,
	}
	if len(doc.ResetFunction.Layout) == 2 {
		cfg.ResetFunction.Layout = Shape{Height: doc.ResetFunction.Layout[0], Width: doc.ResetFunction.Layout[1]}
	}
	if doc.ResetFunction.ObjectType != "" {
		kind, err := models.ParseObjectKind(doc.ResetFunction.ObjectType)
		if err != nil {
			return nil, fmt.Errorf("reset_function: %w", err)
		}
		cfg.ResetFunction.ObjectType = kind
		cfg.ResetFunction.HasObject = true
	}

	for _, fn := range doc.TransitionFunctions {
		cfg.TransitionFunctions = append(cfg.TransitionFunctions, fn.Name)
	}

	for i := range doc.RewardFunctions {
		node, err := resolveReward(&doc.RewardFunctions[i])
		if err != nil {
			return nil, err
		}
		cfg.RewardFunctions = append(cfg.RewardFunctions, node)
	}

	cfg.ObservationFunction = doc.ObservationFunction.Name

	terminating, err := resolveTerminating(&doc.TerminatingFunction)
	if err != nil {
		return nil, err
	}
	cfg.TerminatingFunction = terminating

	return cfg, nil
}

func resolveSpace(doc spaceDoc) (Space, error) {
	space := Space{}
	if len(doc.Shape) != 2 {
		return space, configErrorf("shape must have two entries")
	}
	space.Shape = Shape{Height: doc.Shape[0], Width: doc.Shape[1]}

	seen := make(map[models.ObjectKind]bool)
	for _, name := range doc.Objects {
		kind, err := models.ParseObjectKind(name)
		if err != nil {
			return space, err
		}
		// Duplicate name variants collapse to one canonical kind.
		if seen[kind] {
			continue
		}
		seen[kind] = true
		space.Objects = append(space.Objects, kind)
	}

	seenColors := make(map[models.Color]bool)
	for _, name := range doc.Colors {
		color, err := models.ParseColor(name)
		if err != nil {
			return space, err
		}
		if seenColors[color] {
			continue
		}
		seenColors[color] = true
		space.Colors = append(space.Colors, color)
	}
	return space, nil
}

func resolveReward(doc *rewardDoc) (*RewardNode, error) {
	node := &RewardNode{
		Name:             doc.Name,
		DistanceFunction: doc.DistanceFunction,
	}
	if node.DistanceFunction == "" {
		node.DistanceFunction = DistanceManhattan
	}
	if doc.Reward != nil {
		node.Reward = *doc.Reward
	}
	if doc.RewardOn != nil {
		node.RewardOn = *doc.RewardOn
	}
	if doc.RewardOff != nil {
		node.RewardOff = *doc.RewardOff
	}
	if doc.RewardPerUnitDistance != nil {
		node.RewardPerUnitDistance = *doc.RewardPerUnitDistance
	}
	if doc.RewardCloser != nil {
		node.RewardCloser = *doc.RewardCloser
	}
	if doc.RewardFurther != nil {
		node.RewardFurther = *doc.RewardFurther
	}
	if doc.ObjectType != "" {
		kind, err := models.ParseObjectKind(doc.ObjectType)
		if err != nil {
			return nil, fmt.Errorf("reward_functions: %w", err)
		}
		node.ObjectType = kind
	} else if needsObjectType(doc.Name) {
		return nil, configErrorf("reward function %q requires object_type", doc.Name)
	}
	if doc.Name == RewardReduceSum {
		if len(doc.RewardFunctions) == 0 {
			return nil, configErrorf("reduce_sum requires nested reward_functions")
		}
		for i := range doc.RewardFunctions {
			child, err := resolveReward(&doc.RewardFunctions[i])
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}
	return node, nil
}

func needsObjectType(name string) bool {
	switch name {
	case RewardOverlap, RewardProportionalToDistance, RewardGettingCloser:
		return true
	}
	return false
}

func resolveTerminating(doc *terminatingDoc) (*TerminatingNode, error) {
	node := &TerminatingNode{
		Name:     doc.Name,
		MaxSteps: doc.MaxSteps,
	}
	if doc.ObjectType != "" {
		kind, err := models.ParseObjectKind(doc.ObjectType)
		if err != nil {
			return nil, fmt.Errorf("terminating_function: %w", err)
		}
		node.ObjectType = kind
	} else if doc.Name == TerminateReachObject {
		return nil, configErrorf("terminating function reach_object requires object_type")
	}
	switch doc.Name {
	case TerminateTimeout:
		if doc.MaxSteps <= 0 {
			return nil, configErrorf("terminating function timeout requires max_steps")
		}
	case TerminateReduceAny:
		if len(doc.TerminatingFunctions) == 0 {
			return nil, configErrorf("reduce_any requires nested terminating_functions")
		}
		for i := range doc.TerminatingFunctions {
			child, err := resolveTerminating(&doc.TerminatingFunctions[i])
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}
	return node, nil
}
