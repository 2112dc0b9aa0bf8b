package main

import (
	"strings"

	"gridrealm/models"
)

// agentGlyphs shows where the agent faces at its cell in the window
var agentGlyphs = map[models.Orientation]byte{
	models.North: '^',
	models.East:  '>',
	models.South: 'v',
	models.West:  '<',
}

func cellGlyph(cell models.ObsCell) byte {
	if cell.Unknown {
		return '?'
	}
	switch cell.Kind {
	case models.KindWall:
		return '#'
	case models.KindGoal:
		return 'G'
	case models.KindDoor:
		if cell.IsOpen {
			return 'd'
		}
		return 'D'
	case models.KindKey:
		return 'K'
	case models.KindMovingObstacle:
		return 'O'
	case models.KindBox:
		return 'B'
	default:
		return '.'
	}
}

// renderObservation draws the observation window with the agent glyph at
// its position inside the window
func renderObservation(obs *models.Observation) string {
	var sb strings.Builder
	for row := 0; row < obs.Height; row++ {
		for col := 0; col < obs.Width; col++ {
			if row == obs.AgentPos.Row && col == obs.AgentPos.Col {
				sb.WriteByte(agentGlyphs[obs.Orientation])
				continue
			}
			sb.WriteByte(cellGlyph(obs.Cells[row][col]))
		}
		if row < obs.Height-1 {
			sb.WriteByte('\n')
		}
	}
	if obs.Carrying != nil {
		sb.WriteString("\ncarrying: " + obs.Carrying.Kind.String())
	}
	return sb.String()
}
