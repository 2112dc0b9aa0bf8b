package services

import (
	"math"

	"gridrealm/config"
	"gridrealm/models"
)

// evalRewards sums the configured top-level reward functions for one step
func evalRewards(cfg *config.Config, prev *models.State, action models.Action, next *models.State) float64 {
	total := 0.0
	for _, node := range cfg.RewardFunctions {
		total += evalReward(node, prev, action, next)
	}
	return total
}

// evalReward evaluates one node of the reward tree by a post-order walk.
// Composites contribute nothing beyond the sum of their children.
func evalReward(node *config.RewardNode, prev *models.State, action models.Action, next *models.State) float64 {
	switch node.Name {
	case config.RewardReduceSum:
		total := 0.0
		for _, child := range node.Children {
			total += evalReward(child, prev, action, next)
		}
		return total

	case config.RewardLivingReward:
		return node.Reward

	case config.RewardOverlap:
		if agentOverlaps(next, node.ObjectType) {
			return node.RewardOn
		}
		return node.RewardOff

	case config.RewardProportionalToDistance:
		dist, found := nearestDistance(next, node.ObjectType, node.DistanceFunction)
		if !found {
			return 0
		}
		return node.RewardPerUnitDistance * dist

	case config.RewardGettingCloser:
		before, foundBefore := nearestDistance(prev, node.ObjectType, node.DistanceFunction)
		after, foundAfter := nearestDistance(next, node.ObjectType, node.DistanceFunction)
		if !foundBefore || !foundAfter {
			return 0
		}
		if after < before {
			return node.RewardCloser
		}
		if after > before {
			return node.RewardFurther
		}
		return 0

	case config.RewardBumpIntoWall:
		if bumpedIntoBlocking(prev, action, next) {
			return node.Reward
		}
		return 0

	case config.RewardBumpMovingObstacle:
		if agentOverlaps(next, models.KindMovingObstacle) {
			return node.Reward
		}
		return 0
	}
	return 0
}

// agentOverlaps reports whether the agent's cell holds an object of the
// given kind
func agentOverlaps(state *models.State, kind models.ObjectKind) bool {
	cell, ok := state.Grid.Get(state.Agent.Pos)
	if !ok {
		return false
	}
	return cell.Contains(kind, models.ColorNone)
}

// bumpedIntoBlocking reports whether a movement action left the agent in
// place because the target cell was blocking or off the grid
func bumpedIntoBlocking(prev *models.State, action models.Action, next *models.State) bool {
	delta, moves := action.Delta(prev.Agent.Orientation)
	if !moves || prev.Agent.Pos != next.Agent.Pos {
		return false
	}
	target := prev.Agent.Pos.Add(delta)
	cell, ok := prev.Grid.Get(target)
	return !ok || cell.HasBlocking()
}

// nearestDistance measures the distance from the agent to the nearest
// instance of the kind. Returns false if no instance exists.
func nearestDistance(state *models.State, kind models.ObjectKind, distanceFunction string) (float64, bool) {
	positions := state.Grid.FindAll(kind, models.ColorNone)
	if len(positions) == 0 {
		return 0, false
	}
	best := math.Inf(1)
	for _, pos := range positions {
		d := distance(state.Agent.Pos, pos, distanceFunction)
		if d < best {
			best = d
		}
	}
	return best, true
}

// distance computes the configured distance between two positions
func distance(a, b models.Position, distanceFunction string) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	if distanceFunction == config.DistanceEuclidean {
		return math.Sqrt(dr*dr + dc*dc)
	}
	return math.Abs(dr) + math.Abs(dc)
}
