// Package gaze turns raw screen coordinates into joypad directions.
package gaze

import "math"

// Point is a raw gaze coordinate in screen space. Values outside the screen
// are valid and are not clamped.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Classifier holds the screen geometry used by Classify.
type Classifier struct {
	Width    float64
	Height   float64
	DeadZone float64 // half-width of the square dead zone around the centre
}

// Classify maps p to a direction relative to the screen centre.
func (c Classifier) Classify(p Point) Direction {
	return Classify(p.X, p.Y, c.Width, c.Height, c.DeadZone)
}

// Center returns the screen centre.
func (c Classifier) Center() Point {
	return Point{X: c.Width / 2, Y: c.Height / 2}
}

// Classify returns None when (x, y) lies strictly inside the dead zone on
// both axes. Otherwise the dominant axis wins; on an exact diagonal the
// vertical axis wins.
func Classify(x, y, screenWidth, screenHeight, deadZone float64) Direction {
	dx := x - screenWidth/2
	dy := y - screenHeight/2

	if math.Abs(dx) < deadZone && math.Abs(dy) < deadZone {
		return None
	}

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Right
		}
		return Left
	}
	if dy > 0 {
		return Down
	}
	return Up
}
