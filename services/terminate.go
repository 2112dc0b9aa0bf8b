package services

import (
	"gridrealm/config"
	"gridrealm/models"
)

// evalTerminating evaluates one node of the terminating function tree.
// The reduce_any composite is an OR over its children: the episode ends
// as soon as any child predicate holds.
func evalTerminating(node *config.TerminatingNode, prev *models.State, action models.Action, next *models.State) bool {
	switch node.Name {
	case config.TerminateReduceAny:
		for _, child := range node.Children {
			if evalTerminating(child, prev, action, next) {
				return true
			}
		}
		return false

	case config.TerminateReachObject:
		return agentOverlaps(next, node.ObjectType)

	case config.TerminateBumpIntoWall:
		return bumpedIntoBlocking(prev, action, next)

	case config.TerminateBumpMovingObstacle:
		return agentOverlaps(next, models.KindMovingObstacle)

	case config.TerminateTimeout:
		return next.Step >= node.MaxSteps
	}
	return false
}
