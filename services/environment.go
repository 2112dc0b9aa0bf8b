package services

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"gridrealm/config"
	"gridrealm/models"
)

// ErrEpisodeOver is returned by Step after the terminating function has
// fired and before the next Reset
var ErrEpisodeOver = errors.New("episode is over, call Reset")

// Environment drives one episode at a time: reset builds the initial
// state, and each step runs the transition, reward, termination and
// observation engines in that order. An Environment is single-threaded;
// independent instances share nothing mutable and may run concurrently.
type Environment struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	state       *models.State
	episodeID   string
	totalReward float64
	done        bool
}

// NewEnvironment builds an environment from a validated configuration.
// The seed fixes every random choice the engines make, so two
// environments with the same configuration and seed produce identical
// episodes under identical action streams.
func NewEnvironment(cfg *config.Config, seed int64) (*Environment, error) {
	env := &Environment{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
	// Fail impossible layouts at construction, not on first Reset.
	probe := rand.New(rand.NewSource(seed))
	if _, err := BuildInitialState(cfg, probe); err != nil {
		return nil, err
	}
	return env, nil
}

// Config returns the immutable configuration the environment runs
func (e *Environment) Config() *config.Config {
	return e.cfg
}

// Seed returns the seed the environment was built with
func (e *Environment) Seed() int64 {
	return e.seed
}

// EpisodeID returns the identifier of the current episode
func (e *Environment) EpisodeID() string {
	return e.episodeID
}

// TotalReward returns the reward accumulated in the current episode
func (e *Environment) TotalReward() float64 {
	return e.totalReward
}

// StepCount returns the number of steps taken in the current episode
func (e *Environment) StepCount() int {
	if e.state == nil {
		return 0
	}
	return e.state.Step
}

// Done reports whether the current episode has terminated
func (e *Environment) Done() bool {
	return e.done
}

// State returns a copy of the current state for inspection. The engine's
// own state is never handed out, so callers cannot mutate an episode.
func (e *Environment) State() *models.State {
	if e.state == nil {
		return nil
	}
	return e.state.Clone()
}

// Reset starts a new episode and returns its first observation
func (e *Environment) Reset() (*models.Observation, error) {
	state, err := BuildInitialState(e.cfg, e.rng)
	if err != nil {
		return nil, err
	}
	e.state = state
	e.episodeID = uuid.New().String()
	e.totalReward = 0
	e.done = false
	return BuildObservation(e.cfg, e.state, e.rng)
}

// Step applies one action and resolves the full pipeline: transition,
// reward, termination, observation. Illegal-but-attempted actions are
// silent no-ops inside the transition engine; an action outside the
// declared action space is a caller error.
func (e *Environment) Step(action models.Action) (*models.Observation, float64, bool, error) {
	if e.state == nil {
		return nil, 0, false, errors.New("environment not reset")
	}
	if e.done {
		return nil, 0, false, ErrEpisodeOver
	}
	if !e.cfg.HasAction(action) {
		return nil, 0, false, errors.New("action " + action.String() + " is not in the action space")
	}

	prev := e.state.Clone()
	if err := applyTransitions(e.cfg, e.state, action, e.rng); err != nil {
		return nil, 0, false, err
	}
	e.state.Step++

	reward := evalRewards(e.cfg, prev, action, e.state)
	e.totalReward += reward
	e.done = evalTerminating(e.cfg.TerminatingFunction, prev, action, e.state)

	obs, err := BuildObservation(e.cfg, e.state, e.rng)
	if err != nil {
		return nil, 0, false, err
	}
	return obs, reward, e.done, nil
}
