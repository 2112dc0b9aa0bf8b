package services

import (
	"math"
	"math/rand"

	"gridrealm/models"
)

// minigridVisibility lights a cone extending forward from the agent at
// the bottom-center of the window: a cell is visible when its lateral
// offset does not exceed its depth. No line-of-sight blocking applies.
func minigridVisibility(height, width int) [][]bool {
	center := width / 2
	visible := make([][]bool, height)
	for row := 0; row < height; row++ {
		visible[row] = make([]bool, width)
		depth := height - 1 - row
		for col := 0; col < width; col++ {
			if abs(col-center) <= depth {
				visible[row][col] = true
			}
		}
	}
	return visible
}

// raytracingVisibility casts a ray from the agent to every window cell and
// marks the cell visible iff no opaque cell lies strictly between them.
// The traversal is a supercover walk visiting every cell the continuous
// segment crosses, so walls meeting at a corner leave no diagonal leak.
func raytracingVisibility(w *window, height, width int) [][]bool {
	eye := models.Position{Row: height - 1, Col: width / 2}
	visible := make([][]bool, height)
	for row := 0; row < height; row++ {
		visible[row] = make([]bool, width)
		for col := 0; col < width; col++ {
			visible[row][col] = rayClear(w, eye, models.Position{Row: row, Col: col})
		}
	}
	return visible
}

// stochasticRaytracingVisibility keeps the raytracing geometry but samples
// each unblocked ray with a success probability decaying with euclidean
// distance. The agent's own cell and its direct neighbors always succeed.
// Sampling order is row-major, so a fixed seed reproduces the exact mask.
func stochasticRaytracingVisibility(w *window, height, width int, rng *rand.Rand) [][]bool {
	eye := models.Position{Row: height - 1, Col: width / 2}
	visible := make([][]bool, height)
	for row := 0; row < height; row++ {
		visible[row] = make([]bool, width)
		for col := 0; col < width; col++ {
			if !rayClear(w, eye, models.Position{Row: row, Col: col}) {
				continue
			}
			dr := float64(row - eye.Row)
			dc := float64(col - eye.Col)
			dist := math.Sqrt(dr*dr + dc*dc)
			if dist <= 1 {
				visible[row][col] = true
				continue
			}
			visible[row][col] = rng.Float64() < 1/(1+dist)
		}
	}
	return visible
}

// rayClear reports whether the segment between the centers of two window
// cells crosses no opaque cell, endpoints excluded
func rayClear(w *window, from, to models.Position) bool {
	for _, pos := range supercoverLine(from, to) {
		if pos == from || pos == to {
			continue
		}
		if w.opaque[pos.Row][pos.Col] {
			return false
		}
	}
	return true
}

// supercoverLine returns every cell the continuous segment between the two
// cell centers passes through, endpoints included. When the segment passes
// exactly through a cell corner, both cells adjacent to the corner are
// included, which is what prevents visibility leaking between two
// diagonally touching blockers.
func supercoverLine(from, to models.Position) []models.Position {
	dr := to.Row - from.Row
	dc := to.Col - from.Col
	nr, nc := abs(dr), abs(dc)
	sr, sc := sign(dr), sign(dc)

	points := []models.Position{from}
	row, col := from.Row, from.Col
	ir, ic := 0, 0
	for ir < nr || ic < nc {
		decision := (1+2*ir)*nc - (1+2*ic)*nr
		switch {
		case decision == 0:
			// Exact corner crossing: take the diagonal step but also
			// record both cells sharing the corner.
			points = append(points,
				models.Position{Row: row + sr, Col: col},
				models.Position{Row: row, Col: col + sc},
			)
			row += sr
			col += sc
			ir++
			ic++
		case decision < 0:
			row += sr
			ir++
		default:
			col += sc
			ic++
		}
		points = append(points, models.Position{Row: row, Col: col})
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
